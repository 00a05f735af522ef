package ports

import (
	"context"

	"shipflow/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment records.
type ShipmentRepository interface {
	// Add persists a record that was just given its sequence number.
	// A sequence number already taken yields *errs.SequenceConflictError.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update overwrites every field of a saved record, including the
	// recomputed status and shipment code.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get loads a record by its identifier (e.g. "SHP-000042").
	// Returns *errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id string) (*shipment.Shipment, error)

	// Delete removes a record permanently. There is no soft delete.
	Delete(ctx context.Context, id string) error
}
