package ports

import (
	"context"

	"shipflow/internal/core/domain/model/training"
)

// TrainingRepository defines the persistence contract for training records.
type TrainingRepository interface {
	Add(ctx context.Context, aggregate *training.Record) error
	Update(ctx context.Context, aggregate *training.Record) error

	// Get returns *errs.ObjectNotFoundError when the record does not exist.
	Get(ctx context.Context, id string) (*training.Record, error)
}
