package http

import (
	"net/http"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

// ListShipments handles GET /api/v1/shipments.
func (s *Server) ListShipments(ctx echo.Context, params ListShipmentsParams) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListShipmentsQuery(session, deref(params.Status), deref(params.Limit))
	if err != nil {
		return s.fail(ctx, err)
	}
	shipments, err := s.h.ListShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toShipmentSummaries(shipments))
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	return s.submitShipment(ctx, "", http.StatusCreated)
}

// UpdateShipment handles PATCH /api/v1/shipments/{id}.
func (s *Server) UpdateShipment(ctx echo.Context, id string) error {
	return s.submitShipment(ctx, id, http.StatusOK)
}

func (s *Server) submitShipment(ctx echo.Context, id string, status int) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body shipmentChangesBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	cmd, err := commands.NewSubmitShipmentCommand(session, id, body.toChanges())
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.SubmitShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.failWith(ctx, err, body)
	}
	return ctx.JSON(status, toShipmentSaved(result))
}

// GetShipment handles GET /api/v1/shipments/{id}.
func (s *Server) GetShipment(ctx echo.Context, id string) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetShipmentQuery(session, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	view, err := s.h.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toShipmentBody(view))
}

// DeleteShipment handles DELETE /api/v1/shipments/{id}.
func (s *Server) DeleteShipment(ctx echo.Context, id string) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteShipmentCommand(session, id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.DeleteShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveShipmentSignature handles DELETE /api/v1/shipments/{id}/signatures/{party}.
func (s *Server) RemoveShipmentSignature(ctx echo.Context, id string, party string) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	p, err := shipment.ParseParty(party)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewRemoveShipmentSignatureCommand(session, id, p)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.RemoveSignature.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toShipmentSaved(result))
}

// GetPendingSignoffSummary handles GET /api/v1/reports/pending-signoffs.
func (s *Server) GetPendingSignoffSummary(ctx echo.Context) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetPendingSignoffSummaryQuery(session)
	if err != nil {
		return s.fail(ctx, err)
	}
	lines, err := s.h.PendingSignoffSummary.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]pendingSignoffBody, len(lines))
	for i, l := range lines {
		response[i] = pendingSignoffBody{
			Status:   l.Status,
			Party:    l.Party,
			Count:    l.Count,
			OldestID: l.OldestID,
			Since:    l.Since,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// UploadAttachment handles POST /api/v1/attachments. The returned key is
// what clients put into attachmentRef.
func (s *Server) UploadAttachment(ctx echo.Context) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	file, err := formFile(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	defer file.Close()

	cmd, err := commands.NewUploadAttachmentCommand(session, file.name, file.contentType, file, file.size)
	if err != nil {
		return s.fail(ctx, err)
	}
	key, err := s.h.UploadAttachment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, map[string]string{"key": key})
}
