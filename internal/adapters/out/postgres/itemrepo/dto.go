// Package itemrepo persists the item master.
package itemrepo

import (
	"time"

	"shipflow/internal/core/domain/model/item"
)

type ItemDTO struct {
	Number       string `gorm:"type:varchar(64);primaryKey"`
	Name         string `gorm:"type:varchar(255);not null"`
	Unit         string `gorm:"type:varchar(32)"`
	Manufacturer string `gorm:"type:varchar(255)"`
	Vendor       string `gorm:"type:varchar(255)"`
	Active       bool   `gorm:"not null;index"`
	UpdatedAt    time.Time
}

func (ItemDTO) TableName() string {
	return "items"
}

func fromDomain(i *item.Item) ItemDTO {
	return ItemDTO{
		Number:       i.Number(),
		Name:         i.Name(),
		Unit:         i.Unit(),
		Manufacturer: i.Manufacturer(),
		Vendor:       i.Vendor(),
		Active:       i.Active(),
	}
}

func toDomain(dto ItemDTO) *item.Item {
	return item.RestoreItem(dto.Number, dto.Name, dto.Unit, dto.Manufacturer, dto.Vendor, dto.Active)
}
