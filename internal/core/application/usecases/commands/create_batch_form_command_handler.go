package commands

import (
	"context"
	"time"

	"shipflow/internal/core/domain/model/batch"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/services"
)

// CreateBatchFormCommandHandler stores a batch form under the next DP
// number. All form types share that sequence.
type CreateBatchFormCommandHandler struct {
	uowFactory BatchUoWFactory
	policy     services.AccessPolicy
}

func NewCreateBatchFormCommandHandler(uowFactory BatchUoWFactory, policy services.AccessPolicy) CreateBatchFormCommandHandler {
	return CreateBatchFormCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle returns the DP number of the new form.
func (h *CreateBatchFormCommandHandler) Handle(ctx context.Context, cmd CreateBatchFormCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	if err := h.policy.Authorize(cmd.Session(), services.EditBatches); err != nil {
		return "", err
	}

	var id string
	err := retryOnSequenceConflict(func() error {
		now := time.Now()
		fields := cmd.Fields()
		fields.Operator = partialSignoff(cmd.OperatorName(), cmd.Signature(), now)

		form, err := batch.NewForm(cmd.Session().Identity(), fields, now)
		if err != nil {
			return err
		}
		if err = h.add(ctx, cmd, form); err != nil {
			return err
		}
		id = form.ID()
		return nil
	})
	return id, err
}

func (h *CreateBatchFormCommandHandler) add(ctx context.Context, cmd CreateBatchFormCommand, form *batch.Form) error {
	uow := h.uowFactory.Create(cmd.Session().Environment())
	if err := uow.Begin(ctx); err != nil {
		return storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	n, err := uow.SequenceAllocator().Next(ctx, sequence.DP)
	if err != nil {
		return storageError("allocate dp sequence", err)
	}
	if err = form.AssignSequence(n); err != nil {
		return err
	}

	if err = uow.BatchRepository().Add(ctx, form); err != nil {
		return storageError("add batch form", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return storageError("commit batch form", err)
	}
	return nil
}
