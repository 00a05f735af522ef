package ports

import (
	"context"

	"shipflow/internal/core/domain/model/batch"
)

// BatchRepository defines the persistence contract for batch forms.
type BatchRepository interface {
	Add(ctx context.Context, aggregate *batch.Form) error
}
