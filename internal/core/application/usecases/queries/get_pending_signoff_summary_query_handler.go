package queries

import (
	"context"
	"sort"

	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/core/domain/services"
)

type GetPendingSignoffSummaryQueryHandler struct {
	dbs    Databases
	policy services.AccessPolicy
}

func NewGetPendingSignoffSummaryQueryHandler(dbs Databases, policy services.AccessPolicy) GetPendingSignoffSummaryQueryHandler {
	return GetPendingSignoffSummaryQueryHandler{dbs: dbs, policy: policy}
}

// Handle returns one line per non-final status that has records, in
// workflow order. Approved records are not counted.
func (h GetPendingSignoffSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetPendingSignoffSummaryQuery,
) ([]PendingSignoffLine, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(query.Session(), services.ViewSignoffSummary); err != nil {
		return nil, err
	}
	db, err := h.dbs.For(query.Session().Environment())
	if err != nil {
		return nil, err
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			(ARRAY_AGG(id ORDER BY sequence_number))[1],
			MIN(created_at)
		FROM shipments
		WHERE status <> ?
		GROUP BY status
	`, shipment.Approved.String()).Rows()
	if err != nil {
		return nil, readError("summarize pending sign-offs", err)
	}
	defer rows.Close()

	lines := make([]PendingSignoffLine, 0)
	order := make(map[string]shipment.Status)
	for rows.Next() {
		var line PendingSignoffLine
		if err = rows.Scan(&line.Status, &line.Count, &line.OldestID, &line.Since); err != nil {
			return nil, readError("summarize pending sign-offs", err)
		}
		status, parseErr := shipment.ParseStatus(line.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		if party, ok := status.Owner(); ok {
			line.Party = party.String()
		}
		order[line.Status] = status
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, readError("summarize pending sign-offs", err)
	}

	sort.Slice(lines, func(i, j int) bool {
		return order[lines[i].Status] < order[lines[j].Status]
	})
	return lines, nil
}
