package batchrepo

import (
	"context"
	"errors"

	"shipflow/internal/core/domain/model/batch"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Form) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.SequenceNumber() == 0 {
		return errs.NewValueIsRequiredError("sequenceNumber")
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewSequenceConflictError(string(sequence.DP), dto.SequenceNumber, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
