package ports

import (
	"context"
	"time"
)

const (
	EventShipmentStatusChanged = "shipment.status_changed"
	EventSignoffSummary        = "signoff.summary"
)

// Event is an integration event published after a transaction commits.
// Key orders events of the same record on one partition.
type Event struct {
	Type       string
	Key        string
	OccurredAt time.Time
	Payload    any
}

// EventPublisher delivers events to the message broker. Publishing is best
// effort: callers log failures and never undo a committed write because of one.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// ShipmentStatusChanged is the payload of EventShipmentStatusChanged.
// From is empty for a record that was just created.
type ShipmentStatusChanged struct {
	ID        string `json:"id"`
	Code      string `json:"shipmentCode"`
	From      string `json:"from,omitempty"`
	To        string `json:"to"`
	ChangedBy string `json:"changedBy"`
}

// SignoffSummary is the payload of EventSignoffSummary: how many records wait
// on each party, and the oldest one of each.
type SignoffSummary struct {
	Environment string               `json:"environment"`
	Waiting     []SignoffSummaryLine `json:"waiting"`
}

type SignoffSummaryLine struct {
	Status   string    `json:"status"`
	Count    int64     `json:"count"`
	OldestID string    `json:"oldestId"`
	Since    time.Time `json:"since"`
}
