package commands

import (
	"context"
	"log/slog"
	"time"

	"shipflow/internal/core/domain/services"
	"shipflow/internal/core/ports"
)

// RemoveShipmentSignatureCommandHandler clears a signature under the
// workflow's removal rule and publishes the resulting status change.
type RemoveShipmentSignatureCommandHandler struct {
	uowFactory ShipmentUoWFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewRemoveShipmentSignatureCommandHandler(
	uowFactory ShipmentUoWFactory,
	policy services.AccessPolicy,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RemoveShipmentSignatureCommandHandler {
	return RemoveShipmentSignatureCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
		logger:     logger.With("component", "RemoveShipmentSignatureCommandHandler"),
	}
}

func (h *RemoveShipmentSignatureCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveShipmentSignatureCommand,
) (SubmitShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitShipmentResult{}, err
	}
	if err := h.policy.Authorize(cmd.Session(), services.EditShipments); err != nil {
		return SubmitShipmentResult{}, err
	}

	uow := h.uowFactory.Create(cmd.Session().Environment())
	if err := uow.Begin(ctx); err != nil {
		return SubmitShipmentResult{}, storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	record, err := repo.Get(ctx, cmd.ID())
	if err != nil {
		return SubmitShipmentResult{}, storageError("get shipment", err)
	}
	previous := record.SavedStatus()

	if err = record.RemoveSignature(cmd.Party(), time.Now()); err != nil {
		return SubmitShipmentResult{}, err
	}

	if err = repo.Update(ctx, record); err != nil {
		return SubmitShipmentResult{}, storageError("update shipment", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitShipmentResult{}, storageError("commit shipment", err)
	}
	record.MarkSaved()

	publishStatusChange(ctx, h.publisher, h.logger, cmd.Session().Identity().String(), record, previous)

	return SubmitShipmentResult{ID: record.ID(), Code: record.Code(), Status: record.Status()}, nil
}
