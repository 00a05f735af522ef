// Package sequencerepo allocates human-readable sequence numbers with a
// counter row per record type.
package sequencerepo

import (
	"context"
	"fmt"

	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// RecordSequenceDTO is the counter row of one record type.
type RecordSequenceDTO struct {
	RecordType string `gorm:"type:varchar(16);primaryKey"`
	LastValue  int64  `gorm:"not null"`
}

func (RecordSequenceDTO) TableName() string {
	return "record_sequences"
}

// seedTables names the table whose highest sequence number seeds the
// counter the first time a record type is allocated.
var seedTables = map[sequence.RecordType]string{
	sequence.Shipment: "shipments",
	sequence.Training: "training_records",
	sequence.DP:       "batch_forms",
}

// GormSequenceAllocator implements SequenceAllocator with an upsert on the
// counter row. The row stays locked until the caller's transaction ends, so
// concurrent creators of the same type queue behind each other and a rolled
// back creation gives its number back.
type GormSequenceAllocator struct {
	db *gorm.DB
}

func NewGormSequenceAllocator(db *gorm.DB) *GormSequenceAllocator {
	return &GormSequenceAllocator{db: db}
}

func (a *GormSequenceAllocator) Next(ctx context.Context, recordType sequence.RecordType) (int64, error) {
	table, ok := seedTables[recordType]
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause("record type is invalid",
			fmt.Errorf("%q has no sequence", recordType))
	}

	//nolint:gosec // table comes from seedTables, never from input
	query := fmt.Sprintf(`
		INSERT INTO record_sequences (record_type, last_value)
		VALUES (?, (SELECT COALESCE(MAX(sequence_number), 0) FROM %s) + 1)
		ON CONFLICT (record_type) DO UPDATE
			SET last_value = record_sequences.last_value + 1
		RETURNING last_value
	`, table)

	var next int64
	if err := a.db.WithContext(ctx).Raw(query, string(recordType)).Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}
