package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"shipflow/internal/adapters/out/kafka"
	"shipflow/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWriter records the messages written.
type fakeWriter struct {
	msgs   []skafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := kafka.NewPublisherWithWriter(fw, slog.New(slog.DiscardHandler))
	at := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	err := p.Publish(t.Context(), ports.Event{
		Type:       ports.EventShipmentStatusChanged,
		Key:        "SHP-000001",
		OccurredAt: at,
		Payload: ports.ShipmentStatusChanged{
			ID:   "SHP-000001",
			Code: "AB12-XY99-20240315",
			From: "Pending Shipment",
			To:   "Pending Inspection",
		},
	})
	require.NoError(t, err)
	require.Len(t, fw.msgs, 1)

	msg := fw.msgs[0]
	assert.Equal(t, "SHP-000001", string(msg.Key))
	assert.Equal(t, []skafka.Header{{Key: "event-type", Value: []byte("shipment.status_changed")}}, msg.Headers)

	var decoded struct {
		Type       string         `json:"type"`
		OccurredAt time.Time      `json:"occurredAt"`
		Payload    map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "shipment.status_changed", decoded.Type)
	assert.True(t, decoded.OccurredAt.Equal(at))
	assert.Equal(t, "Pending Inspection", decoded.Payload["to"])
	assert.Equal(t, "AB12-XY99-20240315", decoded.Payload["shipmentCode"])
}

func TestPublisher_NoEvents(t *testing.T) {
	fw := &fakeWriter{err: errors.New("must not be called")}
	p := kafka.NewPublisherWithWriter(fw, slog.New(slog.DiscardHandler))

	require.NoError(t, p.Publish(t.Context()))
}

func TestPublisher_WriteError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker down")}
	p := kafka.NewPublisherWithWriter(fw, slog.New(slog.DiscardHandler))

	err := p.Publish(t.Context(), ports.Event{Type: ports.EventSignoffSummary, Key: "production"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

// stalledWriter blocks until its context ends, like a broker that never acks.
type stalledWriter struct{}

func (stalledWriter) WriteMessages(ctx context.Context, _ ...skafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func (stalledWriter) Close() error { return nil }

func TestPublisher_StalledBrokerTimesOut(t *testing.T) {
	p := kafka.NewPublisherWithWriter(stalledWriter{}, slog.New(slog.DiscardHandler)).
		WithTimeout(20 * time.Millisecond)

	started := time.Now()
	err := p.Publish(t.Context(), ports.Event{Type: ports.EventSignoffSummary, Key: "production"})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 2*time.Second)
}

func TestPublisher_Close(t *testing.T) {
	fw := &fakeWriter{}
	require.NoError(t, kafka.NewPublisherWithWriter(fw, slog.New(slog.DiscardHandler)).Close())
	assert.True(t, fw.closed)
}

func TestNopPublisher(t *testing.T) {
	var p ports.EventPublisher = kafka.NopPublisher{}
	require.NoError(t, p.Publish(t.Context(), ports.Event{Type: "x"}))
	require.NoError(t, p.Close())
}
