package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(context.Context, ...kafka.Message) error
	Close() error
}

// KafkaPublisher delivers roster-change events to a single Kafka topic.
// Messages are keyed by activity name so per-activity ordering is preserved.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a KafkaPublisher over the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Async:        false,
	}
	return &KafkaPublisher{writer: writer}
}

// SignupRecorded emits a roster.signup event.
func (p *KafkaPublisher) SignupRecorded(ctx context.Context, activityName, email string) error {
	return p.publish(ctx, ActionSignup, activityName, email)
}

// UnregisterRecorded emits a roster.unregister event.
func (p *KafkaPublisher) UnregisterRecorded(ctx context.Context, activityName, email string) error {
	return p.publish(ctx, ActionUnregister, activityName, email)
}

func (p *KafkaPublisher) publish(ctx context.Context, action, activityName, email string) error {
	event := RosterChanged{
		EventID:    uuid.NewString(),
		Activity:   activityName,
		Email:      email,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(activityName),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(action)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		failedCounter.Inc()
		return err
	}
	publishedCounter.WithLabelValues(action).Inc()
	return nil
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no Kafka brokers are configured.
type NoopPublisher struct{}

// SignupRecorded performs no action.
func (NoopPublisher) SignupRecorded(context.Context, string, string) error { return nil }

// UnregisterRecorded performs no action.
func (NoopPublisher) UnregisterRecorded(context.Context, string, string) error { return nil }
