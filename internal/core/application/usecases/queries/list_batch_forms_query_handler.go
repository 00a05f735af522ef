package queries

import (
	"context"

	"shipflow/internal/core/domain/services"
)

type ListBatchFormsQueryHandler struct {
	dbs    Databases
	policy services.AccessPolicy
}

func NewListBatchFormsQueryHandler(dbs Databases, policy services.AccessPolicy) ListBatchFormsQueryHandler {
	return ListBatchFormsQueryHandler{dbs: dbs, policy: policy}
}

func (h ListBatchFormsQueryHandler) Handle(ctx context.Context, query ListBatchFormsQuery) ([]BatchFormSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(query.Session(), services.ViewBatches); err != nil {
		return nil, err
	}
	db, err := h.dbs.For(query.Session().Environment())
	if err != nil {
		return nil, err
	}

	// An empty form type matches every row.
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			form_type,
			item_number,
			product_name,
			lot_number,
			batch_quantity,
			manufacture_date,
			COALESCE(operator_name, ''),
			created_at
		FROM batch_forms
		WHERE (? = '' OR form_type = ?)
		ORDER BY sequence_number DESC
		LIMIT ?
	`, query.FormType(), query.FormType(), query.Limit()).Rows()
	if err != nil {
		return nil, readError("list batch forms", err)
	}
	defer rows.Close()

	forms := make([]BatchFormSummary, 0)
	for rows.Next() {
		var f BatchFormSummary
		if err = rows.Scan(
			&f.ID,
			&f.FormType,
			&f.ItemNumber,
			&f.ProductName,
			&f.LotNumber,
			&f.BatchQuantity,
			&f.ManufactureDate,
			&f.OperatorName,
			&f.CreatedAt,
		); err != nil {
			return nil, readError("list batch forms", err)
		}
		forms = append(forms, f)
	}
	if err = rows.Err(); err != nil {
		return nil, readError("list batch forms", err)
	}

	return forms, nil
}
