package queries

import (
	"context"

	"shipflow/internal/core/domain/model/user"
	"shipflow/internal/core/domain/services"
)

type ListPendingRegistrationsQueryHandler struct {
	dbs    Databases
	policy services.AccessPolicy
}

func NewListPendingRegistrationsQueryHandler(dbs Databases, policy services.AccessPolicy) ListPendingRegistrationsQueryHandler {
	return ListPendingRegistrationsQueryHandler{dbs: dbs, policy: policy}
}

// Handle reads the primary database whatever the session's environment,
// oldest registration first.
func (h ListPendingRegistrationsQueryHandler) Handle(
	ctx context.Context,
	query ListPendingRegistrationsQuery,
) ([]PendingRegistration, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(query.Session(), services.ManageRegistrations); err != nil {
		return nil, err
	}

	rows, err := h.dbs.Primary().WithContext(ctx).Raw(`
		SELECT
			id::text,
			name,
			email,
			requested_role,
			created_at
		FROM users
		WHERE status = ?
		ORDER BY created_at
	`, user.Pending.String()).Rows()
	if err != nil {
		return nil, readError("list registrations", err)
	}
	defer rows.Close()

	registrations := make([]PendingRegistration, 0)
	for rows.Next() {
		var r PendingRegistration
		if err = rows.Scan(&r.ID, &r.Name, &r.Email, &r.RequestedRole, &r.CreatedAt); err != nil {
			return nil, readError("list registrations", err)
		}
		registrations = append(registrations, r)
	}
	if err = rows.Err(); err != nil {
		return nil, readError("list registrations", err)
	}

	return registrations, nil
}
