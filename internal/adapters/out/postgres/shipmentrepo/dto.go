// Package shipmentrepo persists shipment records. Status and shipment code
// are stored for listing and filtering but recomputed from the signoffs on
// every load.
package shipmentrepo

import (
	"time"

	"shipflow/internal/adapters/out/postgres/columns"
	"shipflow/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ShipmentDTO represents the database structure for persisting shipment records.
type ShipmentDTO struct {
	ID             string `gorm:"type:varchar(16);primaryKey"`
	SequenceNumber int64  `gorm:"not null;uniqueIndex"`
	Code           string `gorm:"type:varchar(32);index"`
	Status         string `gorm:"type:varchar(32);not null;index"`

	ShipmentDate      datatypes.Date      `gorm:"not null"`
	ItemNumber        string              `gorm:"type:varchar(64);not null;index"`
	ItemName          string              `gorm:"type:varchar(255);not null"`
	LotNumber         string              `gorm:"type:varchar(64);not null"`
	Quantity          decimal.Decimal     `gorm:"type:numeric(18,4);not null"`
	RemainingQuantity decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	Unit              string              `gorm:"type:varchar(32)"`
	Manufacturer      string              `gorm:"type:varchar(255)"`
	Vendor            string              `gorm:"type:varchar(255)"`
	Transportation    string              `gorm:"type:varchar(255)"`
	BillNumber        string              `gorm:"type:varchar(64)"`
	ExpiryDate        *datatypes.Date
	Damage            DamageDTO `gorm:"embedded;embeddedPrefix:damage_"`
	AttachmentRef     string    `gorm:"type:varchar(512)"`

	Receiver  columns.SignoffColumns `gorm:"embedded;embeddedPrefix:receiver_"`
	Inspector columns.SignoffColumns `gorm:"embedded;embeddedPrefix:inspector_"`
	Approver  columns.SignoffColumns `gorm:"embedded;embeddedPrefix:approver_"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for shipment records.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// DamageDTO is the receiver's damage report, embedded in the shipment row.
type DamageDTO struct {
	PackagingDamaged bool
	ProductDamaged   bool
	Notes            string `gorm:"type:text"`
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	base := s.Base()
	return ShipmentDTO{
		ID:                s.ID(),
		SequenceNumber:    s.SequenceNumber(),
		Code:              s.Code(),
		Status:            s.Status().String(),
		ShipmentDate:      columns.Date(base.ShipmentDate),
		ItemNumber:        base.ItemNumber,
		ItemName:          base.ItemName,
		LotNumber:         base.LotNumber,
		Quantity:          base.Quantity,
		RemainingQuantity: base.RemainingQuantity,
		Unit:              base.Unit,
		Manufacturer:      base.Manufacturer,
		Vendor:            base.Vendor,
		Transportation:    base.Transportation,
		BillNumber:        base.BillNumber,
		ExpiryDate:        columns.NullableDate(base.ExpiryDate),
		Damage: DamageDTO{
			PackagingDamaged: base.Damage.PackagingDamaged,
			ProductDamaged:   base.Damage.ProductDamaged,
			Notes:            base.Damage.Notes,
		},
		AttachmentRef: base.AttachmentRef,
		Receiver:      columns.FromSignoff(s.Signoff(shipment.Receiver)),
		Inspector:     columns.FromSignoff(s.Signoff(shipment.Inspector)),
		Approver:      columns.FromSignoff(s.Signoff(shipment.Approver)),
		CreatedBy:     columns.UUID(s.CreatedBy()),
		CreatedAt:     s.CreatedAt(),
		UpdatedAt:     s.UpdatedAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	createdBy, err := columns.UUIDValue(dto.CreatedBy)
	if err != nil {
		return nil, err
	}
	receiver, err := dto.Receiver.ToSignoff()
	if err != nil {
		return nil, err
	}
	inspector, err := dto.Inspector.ToSignoff()
	if err != nil {
		return nil, err
	}
	approver, err := dto.Approver.ToSignoff()
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.RestoreParams{
		ID:             dto.ID,
		SequenceNumber: dto.SequenceNumber,
		Base: shipment.BaseFields{
			ShipmentDate:      columns.DateValue(dto.ShipmentDate),
			ItemNumber:        dto.ItemNumber,
			ItemName:          dto.ItemName,
			LotNumber:         dto.LotNumber,
			Quantity:          dto.Quantity,
			RemainingQuantity: dto.RemainingQuantity,
			Unit:              dto.Unit,
			Manufacturer:      dto.Manufacturer,
			Vendor:            dto.Vendor,
			Transportation:    dto.Transportation,
			BillNumber:        dto.BillNumber,
			ExpiryDate:        columns.NullableDateValue(dto.ExpiryDate),
			Damage: shipment.Damage{
				PackagingDamaged: dto.Damage.PackagingDamaged,
				ProductDamaged:   dto.Damage.ProductDamaged,
				Notes:            dto.Damage.Notes,
			},
			AttachmentRef: dto.AttachmentRef,
		},
		Receiver:  receiver,
		Inspector: inspector,
		Approver:  approver,
		CreatedBy: createdBy,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
