package trainingrepo

import (
	"context"
	"errors"

	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/model/training"
	"shipflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormTrainingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormTrainingRepository(db *gorm.DB, tracker aggregateTracker) *GormTrainingRepository {
	return &GormTrainingRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTrainingRepository) Add(ctx context.Context, aggregate *training.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.SequenceNumber() == 0 {
		return errs.NewValueIsRequiredError("sequenceNumber")
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewSequenceConflictError(string(sequence.Training), dto.SequenceNumber, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the review block. Trainee fields never change after submission.
func (r *GormTrainingRepository) Update(ctx context.Context, aggregate *training.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TrainingRecordDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "decision", "reviewer_id", "reviewer_name", "reviewer_signature", "reviewer_signed_at", "notes").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("training record", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTrainingRepository) Get(ctx context.Context, id string) (*training.Record, error) {
	var dto TrainingRecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("training record", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
