package commands

import (
	"context"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/model/training"
	"shipflow/internal/core/domain/services"
)

type SubmitTrainingCommandHandler struct {
	uowFactory TrainingUoWFactory
	policy     services.AccessPolicy
}

func NewSubmitTrainingCommandHandler(uowFactory TrainingUoWFactory, policy services.AccessPolicy) SubmitTrainingCommandHandler {
	return SubmitTrainingCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle stores the record and returns its TRN identifier.
func (h *SubmitTrainingCommandHandler) Handle(ctx context.Context, cmd SubmitTrainingCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	if err := h.policy.Authorize(cmd.Session(), services.SubmitTraining); err != nil {
		return "", err
	}

	var id string
	err := retryOnSequenceConflict(func() error {
		record, err := h.newRecord(cmd)
		if err != nil {
			return err
		}
		if err = h.add(ctx, cmd.Session().Environment(), record); err != nil {
			return err
		}
		id = record.ID()
		return nil
	})
	return id, err
}

func (h *SubmitTrainingCommandHandler) newRecord(cmd SubmitTrainingCommand) (*training.Record, error) {
	now := time.Now()
	signoff := partialSignoff(cmd.TraineeName(), cmd.Signature(), now)
	return training.NewRecord(cmd.Session().Identity(), cmd.SOPCode(), cmd.SOPTitle(), cmd.TrainingDate(), signoff, now)
}

func (h *SubmitTrainingCommandHandler) add(ctx context.Context, env kernel.Environment, record *training.Record) error {
	uow := h.uowFactory.Create(env)
	if err := uow.Begin(ctx); err != nil {
		return storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	n, err := uow.SequenceAllocator().Next(ctx, sequence.Training)
	if err != nil {
		return storageError("allocate training sequence", err)
	}
	if err = record.AssignSequence(n); err != nil {
		return err
	}

	if err = uow.TrainingRepository().Add(ctx, record); err != nil {
		return storageError("add training record", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return storageError("commit training record", err)
	}
	return nil
}

