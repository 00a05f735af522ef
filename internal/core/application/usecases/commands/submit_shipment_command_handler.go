package commands

import (
	"context"
	"log/slog"
	"time"

	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/core/domain/services"
	"shipflow/internal/core/ports"
)

// SubmitShipmentResult describes the record as saved.
type SubmitShipmentResult struct {
	ID     string
	Code   string
	Status shipment.Status
}

// SubmitShipmentCommandHandler creates and updates shipment records in one
// transaction each. New records draw their number from the shipment
// sequence; a lost sequence race is retried once. A status change is
// published after commit.
//
// Example:
//
//	handler := NewSubmitShipmentCommandHandler(uowFactory, policy, publisher, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // ValidationError, PermissionError, StorageError...
//	}
//	fmt.Println(result.ID, result.Status) // SHP-000001 Pending Inspection
type SubmitShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewSubmitShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	policy services.AccessPolicy,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) SubmitShipmentCommandHandler {
	return SubmitShipmentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
		logger:     logger.With("component", "SubmitShipmentCommandHandler"),
	}
}

func (h *SubmitShipmentCommandHandler) Handle(ctx context.Context, cmd SubmitShipmentCommand) (SubmitShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitShipmentResult{}, err
	}
	if err := h.policy.Authorize(cmd.Session(), services.EditShipments); err != nil {
		return SubmitShipmentResult{}, err
	}

	var (
		saved    *shipment.Shipment
		previous shipment.Status
		err      error
	)
	if cmd.IsCreate() {
		err = retryOnSequenceConflict(func() error {
			saved, err = h.create(ctx, cmd)
			return err
		})
	} else {
		saved, previous, err = h.update(ctx, cmd)
	}
	if err != nil {
		return SubmitShipmentResult{}, err
	}

	if saved.Status() != previous {
		publishStatusChange(ctx, h.publisher, h.logger, cmd.Session().Identity().String(), saved, previous)
	}

	return SubmitShipmentResult{ID: saved.ID(), Code: saved.Code(), Status: saved.Status()}, nil
}

func (h *SubmitShipmentCommandHandler) create(ctx context.Context, cmd SubmitShipmentCommand) (*shipment.Shipment, error) {
	now := time.Now()
	draft, err := shipment.PrepareDraft(cmd.Session().Identity(), cmd.Changes(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create(cmd.Session().Environment())
	if err = uow.Begin(ctx); err != nil {
		return nil, storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	n, err := uow.SequenceAllocator().Next(ctx, sequence.Shipment)
	if err != nil {
		return nil, storageError("allocate shipment sequence", err)
	}
	if err = draft.AssignSequence(n); err != nil {
		return nil, err
	}

	if err = uow.ShipmentRepository().Add(ctx, draft); err != nil {
		return nil, storageError("add shipment", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, storageError("commit shipment", err)
	}

	draft.MarkSaved()
	return draft, nil
}

func (h *SubmitShipmentCommandHandler) update(
	ctx context.Context,
	cmd SubmitShipmentCommand,
) (*shipment.Shipment, shipment.Status, error) {
	uow := h.uowFactory.Create(cmd.Session().Environment())
	if err := uow.Begin(ctx); err != nil {
		return nil, shipment.Unknown, storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	record, err := repo.Get(ctx, cmd.ID())
	if err != nil {
		return nil, shipment.Unknown, storageError("get shipment", err)
	}
	previous := record.SavedStatus()

	if err = record.Apply(cmd.Changes(), time.Now()); err != nil {
		return nil, previous, err
	}
	if err = record.ValidateForSubmit(); err != nil {
		return nil, previous, err
	}

	if err = repo.Update(ctx, record); err != nil {
		return nil, previous, storageError("update shipment", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, previous, storageError("commit shipment", err)
	}

	record.MarkSaved()
	return record, previous, nil
}
