// Package kafka publishes domain events to a Kafka topic as JSON.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"shipflow/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

// Writer is the part of kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// envelope is the message value. Consumers switch on Type.
type envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Publisher implements ports.EventPublisher. Events are keyed by their
// record so one record's events stay in order on one partition.
type Publisher struct {
	writer  Writer
	timeout time.Duration
	logger  *slog.Logger
}

// DefaultPublishTimeout bounds one Publish call. Events go out after the
// write has committed, so a slow broker must not hold the request.
const DefaultPublishTimeout = 3 * time.Second

// NewPublisher writes to topic on brokers.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	return NewPublisherWithWriter(&skafka.Writer{
		Addr:         skafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &skafka.Hash{},
		RequiredAcks: skafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: DefaultPublishTimeout,
		MaxAttempts:  3,
	}, logger)
}

func NewPublisherWithWriter(w Writer, logger *slog.Logger) *Publisher {
	return &Publisher{writer: w, timeout: DefaultPublishTimeout, logger: logger.With("component", "kafka-publisher")}
}

// WithTimeout replaces DefaultPublishTimeout.
func (p *Publisher) WithTimeout(d time.Duration) *Publisher {
	p.timeout = d
	return p
}

func (p *Publisher) Publish(ctx context.Context, events ...ports.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]skafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(envelope{Type: e.Type, OccurredAt: e.OccurredAt.UTC(), Payload: e.Payload})
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", e.Type, err)
		}
		msgs = append(msgs, skafka.Message{
			Key:     []byte(e.Key),
			Value:   value,
			Time:    e.OccurredAt,
			Headers: []skafka.Header{{Key: "event-type", Value: []byte(e.Type)}},
		})
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error("kafka write failed", "events", len(msgs), "error", err)
		return fmt.Errorf("write events: %w", err)
	}

	p.logger.Debug("events published", "events", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It stands in when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...ports.Event) error { return nil }
func (NopPublisher) Close() error                                  { return nil }
