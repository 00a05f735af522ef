package ports

import (
	"context"

	"shipflow/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// The environment selects the database the unit of work is bound to.
type UnitOfWorkFactory interface {
	Create(env kernel.Environment) UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Repositories and the allocator are bound to the transaction started by Begin().
	ShipmentRepository() ShipmentRepository
	TrainingRepository() TrainingRepository
	UserRepository() UserRepository
	ItemRepository() ItemRepository
	BatchRepository() BatchRepository
	SequenceAllocator() SequenceAllocator
}
