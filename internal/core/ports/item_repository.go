package ports

import (
	"context"

	"shipflow/internal/core/domain/model/item"
)

// ItemRepository defines the persistence contract for the item master.
type ItemRepository interface {
	// Save inserts the item or overwrites the entry with the same number.
	Save(ctx context.Context, aggregate *item.Item) error
	Get(ctx context.Context, number string) (*item.Item, error)
}
