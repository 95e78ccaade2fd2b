package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr     string
	LogLevel string

	AdminToken     string
	AdminTokenHash string // bcrypt hash; takes precedence over AdminToken when set

	SessionSigningKey string
	Session           SessionConfig
	SecureCookies     bool

	Redis       RedisConfig
	DatabaseURL string
	Kafka       KafkaConfig

	ElectionFile      string
	AuthRatePerMinute int
	AuditBuffer       int
}

// SessionConfig controls the voter inactivity countdown.
type SessionConfig struct {
	Timeout       time.Duration
	WarningBefore time.Duration
	// CookieTTL bounds how long a session cookie and stored snapshot live.
	CookieTTL time.Duration
}

// RedisConfig configures the shared Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit sink. No brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		// Development default; override in any shared deployment.
		signingKey = "dev-session-key-change-me"
	}

	return Server{
		Addr:              getEnv("BALLOT_ADDR", ":8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AdminToken:        getEnv("ADMIN_API_TOKEN", "dev-admin-token"),
		AdminTokenHash:    os.Getenv("ADMIN_API_TOKEN_HASH"),
		SessionSigningKey: signingKey,
		Session: SessionConfig{
			Timeout:       getDuration("SESSION_TIMEOUT", 300*time.Second),
			WarningBefore: getDuration("SESSION_WARNING", 120*time.Second),
			CookieTTL:     getDuration("SESSION_COOKIE_TTL", 30*time.Minute),
		},
		SecureCookies: getBool("SESSION_COOKIE_SECURE", false),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("AUDIT_TOPIC", "ballot-audit"),
		},
		ElectionFile:      os.Getenv("ELECTION_FILE"),
		AuthRatePerMinute: getInt("AUTH_RATE_PER_MINUTE", 30),
		AuditBuffer:       getInt("AUDIT_BUFFER", 1024),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
