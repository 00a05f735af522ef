package http

import (
	"net/http"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}

// RegisterUser handles POST /api/v1/auth/register.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var body registerBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	role := kernel.RoleUnknown
	if body.Role != "" {
		var err error
		if role, err = kernel.ParseRole(body.Role); err != nil {
			return s.fail(ctx, err)
		}
	}

	cmd, err := commands.NewRegisterUserCommand(body.Name, body.Email, body.Password, role)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := s.h.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, registrationStatusBody{ID: id.String(), Status: user.Pending.String()})
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var body loginBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	env, err := kernel.ParseEnvironment(body.Environment)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAuthenticateCommand(body.Email, body.Password, env)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.Authenticate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTokenBody(result.Token, result.ExpiresAt, result.Session))
}

// SwitchEnvironment handles POST /api/v1/auth/environment. The caller keeps
// their identity and role; only the target database changes.
func (s *Server) SwitchEnvironment(ctx echo.Context) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body environmentBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}
	env, err := kernel.ParseEnvironment(body.Environment)
	if err != nil {
		return s.fail(ctx, err)
	}

	token, expiresAt, err := s.tokens.WithEnvironment(session, env)
	if err != nil {
		return s.fail(ctx, err)
	}
	switched, err := kernel.NewSession(session.Identity(), session.Role(), env)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTokenBody(token, expiresAt, switched.WithEmail(session.Email())))
}

// ListPendingRegistrations handles GET /api/v1/admin/registrations.
func (s *Server) ListPendingRegistrations(ctx echo.Context) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListPendingRegistrationsQuery(session)
	if err != nil {
		return s.fail(ctx, err)
	}
	pending, err := s.h.ListPendingRegistrations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]registrationBody, len(pending))
	for i, p := range pending {
		response[i] = registrationBody{
			ID:            p.ID,
			Name:          p.Name,
			Email:         p.Email,
			RequestedRole: p.RequestedRole,
			CreatedAt:     p.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ApproveRegistration handles POST /api/v1/admin/registrations/{id}/approve.
func (s *Server) ApproveRegistration(ctx echo.Context, id openapi_types.UUID) error {
	return s.decideRegistration(ctx, id, true)
}

// RejectRegistration handles POST /api/v1/admin/registrations/{id}/reject.
func (s *Server) RejectRegistration(ctx echo.Context, id openapi_types.UUID) error {
	return s.decideRegistration(ctx, id, false)
}

func (s *Server) decideRegistration(ctx echo.Context, id openapi_types.UUID, approve bool) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body decisionBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}
	userID, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	var cmd commands.DecideRegistrationCommand
	if approve {
		role, roleErr := kernel.ParseRole(body.Role)
		if roleErr != nil {
			return s.fail(ctx, roleErr)
		}
		cmd, err = commands.NewApproveUserCommand(session, userID, role)
	} else {
		cmd, err = commands.NewRejectUserCommand(session, userID, body.Reason)
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.h.DecideRegistration.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, registrationStatusBody{ID: userID.String(), Status: status.String()})
}
