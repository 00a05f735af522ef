package queries

import (
	"context"
	"time"

	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/core/domain/services"
	"shipflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type GetShipmentQueryHandler struct {
	dbs    Databases
	policy services.AccessPolicy
}

func NewGetShipmentQueryHandler(dbs Databases, policy services.AccessPolicy) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{dbs: dbs, policy: policy}
}

// shipmentRow mirrors the shipments table. The stored code and status are
// not read: both are derived again from the fields they depend on.
type shipmentRow struct {
	ID                     string
	SequenceNumber         int64
	ShipmentDate           time.Time
	ItemNumber             string
	ItemName               string
	LotNumber              string
	Quantity               decimal.Decimal
	RemainingQuantity      decimal.NullDecimal
	Unit                   string
	Manufacturer           string
	Vendor                 string
	Transportation         string
	BillNumber             string
	ExpiryDate             *time.Time
	DamagePackagingDamaged bool
	DamageProductDamaged   bool
	DamageNotes            string
	AttachmentRef          string
	ReceiverName           string
	ReceiverSignature      []byte
	ReceiverSignedAt       *time.Time
	InspectorName          string
	InspectorSignature     []byte
	InspectorSignedAt      *time.Time
	ApproverName           string
	ApproverSignature      []byte
	ApproverSignedAt       *time.Time
	CreatedBy              string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Handle returns an ObjectNotFoundError when the record does not exist.
func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}
	if err := h.policy.Authorize(query.Session(), services.ViewShipments); err != nil {
		return ShipmentView{}, err
	}
	db, err := h.dbs.For(query.Session().Environment())
	if err != nil {
		return ShipmentView{}, err
	}

	var row shipmentRow
	result := db.WithContext(ctx).Raw(`
		SELECT
			id, sequence_number,
			shipment_date, item_number, item_name, lot_number,
			quantity, remaining_quantity,
			unit, manufacturer, vendor, transportation, bill_number, expiry_date,
			damage_packaging_damaged, damage_product_damaged, damage_notes,
			attachment_ref,
			receiver_name, receiver_signature, receiver_signed_at,
			inspector_name, inspector_signature, inspector_signed_at,
			approver_name, approver_signature, approver_signed_at,
			created_by::text AS created_by, created_at, updated_at
		FROM shipments
		WHERE id = ?
	`, query.ID()).Scan(&row)
	if result.Error != nil {
		return ShipmentView{}, readError("get shipment", result.Error)
	}
	if result.RowsAffected == 0 {
		return ShipmentView{}, errs.NewObjectNotFoundError("shipment", query.ID())
	}

	return row.view(), nil
}

func (r shipmentRow) view() ShipmentView {
	status := shipment.DeriveStatus(
		len(r.ReceiverSignature) > 0,
		len(r.InspectorSignature) > 0,
		len(r.ApproverSignature) > 0,
	)
	return ShipmentView{
		ID:                r.ID,
		SequenceNumber:    r.SequenceNumber,
		Code:              shipment.ComputeShipmentCode(r.ItemNumber, r.LotNumber, r.ShipmentDate),
		Status:            status.String(),
		ShipmentDate:      r.ShipmentDate,
		ItemNumber:        r.ItemNumber,
		ItemName:          r.ItemName,
		LotNumber:         r.LotNumber,
		Quantity:          r.Quantity,
		RemainingQuantity: r.RemainingQuantity,
		Unit:              r.Unit,
		Manufacturer:      r.Manufacturer,
		Vendor:            r.Vendor,
		Transportation:    r.Transportation,
		BillNumber:        r.BillNumber,
		ExpiryDate:        r.ExpiryDate,
		PackagingDamaged:  r.DamagePackagingDamaged,
		ProductDamaged:    r.DamageProductDamaged,
		DamageNotes:       r.DamageNotes,
		AttachmentRef:     r.AttachmentRef,
		Receiver:          SignoffView{Name: r.ReceiverName, Signature: r.ReceiverSignature, SignedAt: r.ReceiverSignedAt},
		Inspector:         SignoffView{Name: r.InspectorName, Signature: r.InspectorSignature, SignedAt: r.InspectorSignedAt},
		Approver:          SignoffView{Name: r.ApproverName, Signature: r.ApproverSignature, SignedAt: r.ApproverSignedAt},
		Editable:          editableBlocks(status),
		CreatedBy:         r.CreatedBy,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func editableBlocks(status shipment.Status) []string {
	blocks := make([]string, 0, 2)
	for _, owner := range []shipment.FieldOwner{
		shipment.OwnerBase, shipment.OwnerReceiver, shipment.OwnerInspector, shipment.OwnerApprover,
	} {
		if shipment.CanEdit(owner, status) {
			blocks = append(blocks, owner.String())
		}
	}
	return blocks
}
