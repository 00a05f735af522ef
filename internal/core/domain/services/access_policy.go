package services

import (
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"
)

// Operation is something a session can ask to do.
type Operation int

const (
	ViewShipments Operation = iota + 1
	EditShipments
	DeleteShipments
	UploadAttachments
	SubmitTraining
	ViewTraining
	ReviewTraining
	ViewItems
	ManageItems
	ViewBatches
	EditBatches
	ManageRegistrations
	ViewSignoffSummary
)

func (o Operation) String() string {
	switch o {
	case ViewShipments:
		return "view shipments"
	case EditShipments:
		return "edit shipments"
	case DeleteShipments:
		return "delete shipments"
	case UploadAttachments:
		return "upload attachments"
	case SubmitTraining:
		return "submit training records"
	case ViewTraining:
		return "view training records"
	case ReviewTraining:
		return "review training records"
	case ViewItems:
		return "view items"
	case ManageItems:
		return "manage items"
	case ViewBatches:
		return "view batch forms"
	case EditBatches:
		return "edit batch forms"
	case ManageRegistrations:
		return "manage registrations"
	case ViewSignoffSummary:
		return "view the sign-off summary"
	default:
		return "unknown operation"
	}
}

// AccessPolicy maps roles to the operations they may run. Admins may run
// everything. Training records are visible to every approved user, but
// trainees only see their own; the query applies that filter.
//
// Example:
//
//	policy := services.NewAccessPolicy()
//	if err := policy.Authorize(session, services.ReviewTraining); err != nil {
//	    return err // *errs.PermissionError
//	}
type AccessPolicy struct {
	grants map[Operation][]kernel.Role
}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{grants: map[Operation][]kernel.Role{
		ViewShipments:       {kernel.RoleShipping, kernel.RoleManager},
		EditShipments:       {kernel.RoleShipping},
		DeleteShipments:     {},
		UploadAttachments:   {kernel.RoleShipping},
		SubmitTraining:      {kernel.RoleShipping, kernel.RoleTraining, kernel.RoleManager},
		ViewTraining:        {kernel.RoleShipping, kernel.RoleTraining, kernel.RoleManager},
		ReviewTraining:      {kernel.RoleManager},
		ViewItems:           {kernel.RoleShipping, kernel.RoleTraining, kernel.RoleManager},
		ManageItems:         {},
		ViewBatches:         {kernel.RoleShipping, kernel.RoleManager},
		EditBatches:         {kernel.RoleShipping},
		ManageRegistrations: {},
		ViewSignoffSummary:  {kernel.RoleShipping, kernel.RoleManager},
	}}
}

// Authorize returns a PermissionError naming the role and the operation when
// the session may not run op.
func (p AccessPolicy) Authorize(session kernel.Session, op Operation) error {
	if err := session.Validate(); err != nil {
		return err
	}
	roles, known := p.grants[op]
	if known && session.HasRole(roles...) {
		return nil
	}
	return errs.NewPermissionError("role %s may not %s", session.Role(), op)
}

// SeesAllTraining reports whether the session sees every trainee's records
// rather than only its own.
func (p AccessPolicy) SeesAllTraining(session kernel.Session) bool {
	return session.HasRole(kernel.RoleManager)
}
