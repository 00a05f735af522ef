// Package batchrepo persists batch forms. Blending, filling and packaging
// forms share one table, keyed by DP number.
package batchrepo

import (
	"time"

	"shipflow/internal/adapters/out/postgres/columns"
	"shipflow/internal/core/domain/model/batch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BatchFormDTO struct {
	ID              string                 `gorm:"type:varchar(16);primaryKey"`
	SequenceNumber  int64                  `gorm:"not null;uniqueIndex"`
	FormType        string                 `gorm:"type:varchar(16);not null;index"`
	ItemNumber      string                 `gorm:"type:varchar(64);not null"`
	ProductName     string                 `gorm:"type:varchar(255);not null"`
	LotNumber       string                 `gorm:"type:varchar(64);not null"`
	BatchQuantity   decimal.Decimal        `gorm:"type:numeric(18,4);not null"`
	ManufactureDate datatypes.Date         `gorm:"not null"`
	Operator        columns.SignoffColumns `gorm:"embedded;embeddedPrefix:operator_"`
	CreatedBy       uuid.UUID              `gorm:"type:uuid;not null"`
	CreatedAt       time.Time              `gorm:"not null"`
}

func (BatchFormDTO) TableName() string {
	return "batch_forms"
}

func fromDomain(f *batch.Form) BatchFormDTO {
	fields := f.Fields()
	return BatchFormDTO{
		ID:              f.ID(),
		SequenceNumber:  f.SequenceNumber(),
		FormType:        fields.FormType.String(),
		ItemNumber:      fields.ItemNumber,
		ProductName:     fields.ProductName,
		LotNumber:       fields.LotNumber,
		BatchQuantity:   fields.BatchQuantity,
		ManufactureDate: columns.Date(fields.ManufactureDate),
		Operator:        columns.FromSignoff(fields.Operator),
		CreatedBy:       columns.UUID(f.CreatedBy()),
		CreatedAt:       f.CreatedAt(),
	}
}
