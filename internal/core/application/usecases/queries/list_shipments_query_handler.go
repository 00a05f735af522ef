package queries

import (
	"context"
	"database/sql"

	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/core/domain/services"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListShipmentsQueryHandler struct {
	dbs    Databases
	policy services.AccessPolicy
}

func NewListShipmentsQueryHandler(dbs Databases, policy services.AccessPolicy) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{dbs: dbs, policy: policy}
}

// Handle returns at most query.Limit() records ordered by sequence number,
// highest first.
func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) ([]ShipmentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(query.Session(), services.ViewShipments); err != nil {
		return nil, err
	}
	db, err := h.dbs.For(query.Session().Environment())
	if err != nil {
		return nil, err
	}

	rows, err := h.rows(ctx, db, query)
	if err != nil {
		return nil, readError("list shipments", err)
	}
	defer rows.Close()

	shipments := make([]ShipmentSummary, 0)
	for rows.Next() {
		var (
			s                                               ShipmentSummary
			receiverSigned, inspectorSigned, approverSigned bool
		)
		if err = rows.Scan(
			&s.ID,
			&receiverSigned,
			&inspectorSigned,
			&approverSigned,
			&s.ShipmentDate,
			&s.ItemNumber,
			&s.ItemName,
			&s.LotNumber,
			&s.Quantity,
			&s.Unit,
			&s.ReceiverName,
			&s.InspectorName,
			&s.ApproverName,
			&s.UpdatedAt,
		); err != nil {
			return nil, readError("list shipments", err)
		}
		s.Status = shipment.DeriveStatus(receiverSigned, inspectorSigned, approverSigned).String()
		s.Code = shipment.ComputeShipmentCode(s.ItemNumber, s.LotNumber, s.ShipmentDate)
		shipments = append(shipments, s)
	}
	if err = rows.Err(); err != nil {
		return nil, readError("list shipments", err)
	}

	return shipments, nil
}

func (h ListShipmentsQueryHandler) rows(ctx context.Context, db *gorm.DB, query ListShipmentsQuery) (*sql.Rows, error) {
	const columns = `
		SELECT
			id,
			COALESCE(octet_length(receiver_signature), 0) > 0,
			COALESCE(octet_length(inspector_signature), 0) > 0,
			COALESCE(octet_length(approver_signature), 0) > 0,
			shipment_date,
			item_number,
			item_name,
			lot_number,
			quantity,
			COALESCE(unit, ''),
			COALESCE(receiver_name, ''),
			COALESCE(inspector_name, ''),
			COALESCE(approver_name, ''),
			updated_at
		FROM shipments`

	if len(query.Statuses()) == 0 {
		return db.WithContext(ctx).Raw(columns+`
		ORDER BY sequence_number DESC
		LIMIT ?`, query.Limit()).Rows()
	}
	return db.WithContext(ctx).Raw(columns+`
		WHERE status = ANY(?)
		ORDER BY sequence_number DESC
		LIMIT ?`, pq.Array(query.Statuses()), query.Limit()).Rows()
}
