package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"BALLOT_ADDR", "SESSION_TIMEOUT", "SESSION_WARNING", "REDIS_URL", "KAFKA_BROKERS", "SESSION_SIGNING_KEY", "SESSION_COOKIE_SECURE"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 300*time.Second, cfg.Session.Timeout)
	assert.Equal(t, 120*time.Second, cfg.Session.WarningBefore)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "ballot-audit", cfg.Kafka.Topic)
	assert.NotEmpty(t, cfg.SessionSigningKey)
	assert.False(t, cfg.SecureCookies)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("BALLOT_ADDR", ":9090")
	t.Setenv("SESSION_TIMEOUT", "10m")
	t.Setenv("SESSION_WARNING", "bogus")
	t.Setenv("REDIS_POOL_SIZE", "25")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, ,broker-2:9092")
	t.Setenv("AUTH_RATE_PER_MINUTE", "not-a-number")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Session.Timeout)
	assert.Equal(t, 120*time.Second, cfg.Session.WarningBefore, "invalid durations fall back")
	assert.Equal(t, 25, cfg.Redis.PoolSize)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30, cfg.AuthRatePerMinute)
	assert.True(t, cfg.SecureCookies)
}

func TestFromEnv_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("SESSION_COOKIE_SECURE", "maybe")
	assert.False(t, FromEnv().SecureCookies)
}
