// Package trainingrepo persists training records.
package trainingrepo

import (
	"time"

	"shipflow/internal/adapters/out/postgres/columns"
	"shipflow/internal/core/domain/model/training"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TrainingRecordDTO struct {
	ID             string `gorm:"type:varchar(16);primaryKey"`
	SequenceNumber int64  `gorm:"not null;uniqueIndex"`
	Status         string `gorm:"type:varchar(16);not null;index"`

	TraineeID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	SOPCode      string                 `gorm:"type:varchar(64);not null"`
	SOPTitle     string                 `gorm:"type:varchar(255);not null"`
	TrainingDate datatypes.Date         `gorm:"not null"`
	Trainee      columns.SignoffColumns `gorm:"embedded;embeddedPrefix:trainee_"`

	Decision   string                 `gorm:"type:varchar(16)"`
	ReviewerID *uuid.UUID             `gorm:"type:uuid"`
	Reviewer   columns.SignoffColumns `gorm:"embedded;embeddedPrefix:reviewer_"`
	Notes      string                 `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
}

func (TrainingRecordDTO) TableName() string {
	return "training_records"
}

func fromDomain(r *training.Record) TrainingRecordDTO {
	dto := TrainingRecordDTO{
		ID:             r.ID(),
		SequenceNumber: r.SequenceNumber(),
		Status:         r.Status().String(),
		TraineeID:      columns.UUID(r.Trainee()),
		SOPCode:        r.SOPCode(),
		SOPTitle:       r.SOPTitle(),
		TrainingDate:   columns.Date(r.TrainingDate()),
		Trainee:        columns.FromSignoff(r.TraineeSignoff()),
		ReviewerID:     columns.NullableUUID(r.Reviewer()),
		Reviewer:       columns.FromSignoff(r.ReviewSignoff()),
		Notes:          r.ReviewNotes(),
		CreatedAt:      r.CreatedAt(),
	}
	if r.Decision() != training.Unknown {
		dto.Decision = r.Decision().String()
	}
	return dto
}

func toDomain(dto TrainingRecordDTO) (*training.Record, error) {
	trainee, err := columns.UUIDValue(dto.TraineeID)
	if err != nil {
		return nil, err
	}
	reviewer, err := columns.NullableUUIDValue(dto.ReviewerID)
	if err != nil {
		return nil, err
	}
	traineeSignoff, err := dto.Trainee.ToSignoff()
	if err != nil {
		return nil, err
	}
	reviewSignoff, err := dto.Reviewer.ToSignoff()
	if err != nil {
		return nil, err
	}

	decision := training.Unknown
	if dto.Decision != "" {
		if decision, err = training.ParseStatus(dto.Decision); err != nil {
			return nil, err
		}
	}

	return training.RestoreRecord(training.RestoreParams{
		ID:             dto.ID,
		SequenceNumber: dto.SequenceNumber,
		Trainee:        trainee,
		SOPCode:        dto.SOPCode,
		SOPTitle:       dto.SOPTitle,
		TrainingDate:   columns.DateValue(dto.TrainingDate),
		TraineeSignoff: traineeSignoff,
		Decision:       decision,
		Reviewer:       reviewer,
		ReviewSignoff:  reviewSignoff,
		ReviewNotes:    dto.Notes,
		CreatedAt:      dto.CreatedAt,
	})
}
