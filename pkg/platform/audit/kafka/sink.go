// Package kafka forwards audit events to a Kafka topic for downstream
// retention and alerting.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "ballotbox/pkg/platform/audit"
)

// Payload is the JSON document written for each event.
type Payload struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
	Subject   string `json:"subject,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Severity  string `json:"severity"`
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

func PayloadFrom(e audit.Event) Payload {
	return Payload{
		ID:        e.ID.String(),
		Category:  string(e.Category),
		Action:    string(e.Action),
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		Subject:   e.Subject,
		ActorID:   e.ActorID,
		Detail:    e.Detail,
		Severity:  string(e.Severity),
		RequestID: e.RequestID,
		ClientIP:  e.ClientIP,
		UserAgent: e.UserAgent,
	}
}

// Sink produces audit events keyed by subject so one voter's events stay ordered.
type Sink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewSink(brokers []string, topic string, logger *slog.Logger) (*Sink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(5*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{client: client, topic: topic, logger: logger}, nil
}

// EnsureTopic creates the topic if it does not exist yet.
func (s *Sink) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(s.client)
	resp, err := adm.CreateTopics(ctx, partitions, replication, nil, s.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", s.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

func (s *Sink) Publish(ctx context.Context, event audit.Event) error {
	value, err := json.Marshal(PayloadFrom(event))
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Subject),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *Sink) Close() {
	s.client.Close()
}
