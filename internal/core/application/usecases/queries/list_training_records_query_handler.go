package queries

import (
	"context"
	"strings"

	"shipflow/internal/core/domain/services"

	"github.com/lib/pq"
)

type ListTrainingRecordsQueryHandler struct {
	dbs    Databases
	policy services.AccessPolicy
}

func NewListTrainingRecordsQueryHandler(dbs Databases, policy services.AccessPolicy) ListTrainingRecordsQueryHandler {
	return ListTrainingRecordsQueryHandler{dbs: dbs, policy: policy}
}

func (h ListTrainingRecordsQueryHandler) Handle(
	ctx context.Context,
	query ListTrainingRecordsQuery,
) ([]TrainingRecordSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	session := query.Session()
	if err := h.policy.Authorize(session, services.ViewTraining); err != nil {
		return nil, err
	}
	db, err := h.dbs.For(session.Environment())
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	switch {
	case !h.policy.SeesAllTraining(session):
		where = append(where, "trainee_id = ?")
		args = append(args, session.Identity().String())
	case query.Trainee() != nil:
		where = append(where, "trainee_id = ?")
		args = append(args, query.Trainee().String())
	}
	if len(query.Statuses()) > 0 {
		where = append(where, "status = ANY(?)")
		args = append(args, pq.Array(query.Statuses()))
	}

	sql := `
		SELECT
			id,
			status,
			sop_code,
			sop_title,
			training_date,
			trainee_id::text,
			COALESCE(trainee_name, ''),
			COALESCE(reviewer_name, ''),
			COALESCE(notes, ''),
			created_at
		FROM training_records`
	if len(where) > 0 {
		sql += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	sql += "\n\t\tORDER BY sequence_number DESC\n\t\tLIMIT ?"
	args = append(args, query.Limit())

	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, readError("list training records", err)
	}
	defer rows.Close()

	records := make([]TrainingRecordSummary, 0)
	for rows.Next() {
		var r TrainingRecordSummary
		if err = rows.Scan(
			&r.ID,
			&r.Status,
			&r.SOPCode,
			&r.SOPTitle,
			&r.TrainingDate,
			&r.TraineeID,
			&r.TraineeName,
			&r.ReviewerName,
			&r.Notes,
			&r.CreatedAt,
		); err != nil {
			return nil, readError("list training records", err)
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, readError("list training records", err)
	}

	return records, nil
}
