// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: authorization, validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	TrainingRepoFactory interface {
		TrainingRepository() ports.TrainingRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// SequenceAllocatorFactory provides the allocator bound to the same
	// transaction as the repositories, so a rolled-back creation releases
	// its number.
	SequenceAllocatorFactory interface {
		SequenceAllocator() ports.SequenceAllocator
	}

	// ShipmentUoW manages transactions for shipment operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		SequenceAllocatorFactory
	}

	// ShipmentUoWFactory creates shipment units of work bound to the session's environment.
	ShipmentUoWFactory interface {
		Create(env kernel.Environment) ShipmentUoW
	}

	TrainingUoW interface {
		TxManager
		TrainingRepoFactory
		SequenceAllocatorFactory
	}

	TrainingUoWFactory interface {
		Create(env kernel.Environment) TrainingUoW
	}

	// UserUoW manages user accounts. Accounts always live in the primary
	// database, whatever environment a session later works in.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	ItemUoW interface {
		TxManager
		ItemRepoFactory
	}

	ItemUoWFactory interface {
		Create(env kernel.Environment) ItemUoW
	}

	BatchUoW interface {
		TxManager
		BatchRepoFactory
		SequenceAllocatorFactory
	}

	BatchUoWFactory interface {
		Create(env kernel.Environment) BatchUoW
	}
)
