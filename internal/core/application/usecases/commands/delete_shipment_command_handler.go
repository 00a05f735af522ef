package commands

import (
	"context"

	"shipflow/internal/core/domain/services"
)

type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	policy     services.AccessPolicy
}

func NewDeleteShipmentCommandHandler(uowFactory ShipmentUoWFactory, policy services.AccessPolicy) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h *DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Authorize(cmd.Session(), services.DeleteShipments); err != nil {
		return err
	}

	uow := h.uowFactory.Create(cmd.Session().Environment())
	if err := uow.Begin(ctx); err != nil {
		return storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Delete(ctx, cmd.ID()); err != nil {
		return storageError("delete shipment", err)
	}

	return storageError("commit shipment deletion", uow.Commit(ctx))
}
