// Package postgres provides the GORM-based Unit of Work that every command
// runs in, plus connection and schema helpers.
//
// A unit of work is bound to one database when it is created: the primary
// database, or the test database when the session works in the test
// environment. Repositories and the sequence allocator handed out after
// Begin share its transaction, so a record and the sequence number it
// consumed are committed or rolled back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(primary, test)
//	uow := factory.Create(session.Environment())
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	n, err := uow.SequenceAllocator().Next(ctx, sequence.Shipment)
//	if err != nil {
//	    return err
//	}
//	if err = draft.AssignSequence(n); err != nil {
//	    return err
//	}
//	if err = uow.ShipmentRepository().Add(ctx, draft); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Creators of the same record type serialize on the counter row
package postgres

import (
	"context"
	"errors"

	"shipflow/internal/adapters/out/postgres/batchrepo"
	"shipflow/internal/adapters/out/postgres/itemrepo"
	"shipflow/internal/adapters/out/postgres/sequencerepo"
	"shipflow/internal/adapters/out/postgres/shipmentrepo"
	"shipflow/internal/adapters/out/postgres/trainingrepo"
	"shipflow/internal/adapters/out/postgres/userrepo"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/ports"
	"shipflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// ErrTestDatabaseNotConfigured is returned by Begin for a test-environment
// unit of work when no test database was configured.
var ErrTestDatabaseNotConfigured = errors.New("test database is not configured")

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	ID        string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances bound to the database
// of the requested environment.
type GormUnitOfWorkFactory struct {
	primary *gorm.DB
	test    *gorm.DB
}

// NewGormUnitOfWorkFactory creates the factory. test may be nil, in which
// case test-environment work fails at Begin with a StorageError.
func NewGormUnitOfWorkFactory(primary, test *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{primary: primary, test: test}
}

// Create produces a new UnitOfWork for env. Each instance keeps its own
// transaction state and tracked aggregates.
func (f *GormUnitOfWorkFactory) Create(env kernel.Environment) ports.UnitOfWork {
	db := f.primary
	if env == kernel.EnvironmentTest {
		db = f.test
	}
	return &GormUnitOfWork{
		db:                db,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []TrackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}
	if uow.db == nil {
		return errs.NewStorageError("begin transaction", ErrTestDatabaseNotConfigured)
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction when
// none is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when
// none is open, which is what the deferred rollback after a commit sees.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the open transaction, or the plain connection outside one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TrainingRepository() ports.TrainingRepository {
	return trainingrepo.NewGormTrainingRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ItemRepository() ports.ItemRepository {
	return itemrepo.NewGormItemRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BatchRepository() ports.BatchRepository {
	return batchrepo.NewGormBatchRepository(uow.conn(), uow)
}

// SequenceAllocator must be used after Begin; outside a transaction the
// counter row is released immediately and numbers can be skipped.
func (uow *GormUnitOfWork) SequenceAllocator() ports.SequenceAllocator {
	return sequencerepo.NewGormSequenceAllocator(uow.conn())
}

// TrackAggregate is called by the repositories for every aggregate they add
// or update.
func (uow *GormUnitOfWork) TrackAggregate(id string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	return uow.trackedAggregates
}
