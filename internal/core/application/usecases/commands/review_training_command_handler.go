package commands

import (
	"context"
	"time"

	"shipflow/internal/core/domain/model/training"
	"shipflow/internal/core/domain/services"
)

type ReviewTrainingCommandHandler struct {
	uowFactory TrainingUoWFactory
	policy     services.AccessPolicy
}

func NewReviewTrainingCommandHandler(uowFactory TrainingUoWFactory, policy services.AccessPolicy) ReviewTrainingCommandHandler {
	return ReviewTrainingCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle records the decision and returns the record's new status.
func (h *ReviewTrainingCommandHandler) Handle(ctx context.Context, cmd ReviewTrainingCommand) (training.Status, error) {
	if err := cmd.Validate(); err != nil {
		return training.Unknown, err
	}
	if err := h.policy.Authorize(cmd.Session(), services.ReviewTraining); err != nil {
		return training.Unknown, err
	}

	signoff := partialSignoff(cmd.ReviewerName(), cmd.Signature(), time.Now())

	uow := h.uowFactory.Create(cmd.Session().Environment())
	if err := uow.Begin(ctx); err != nil {
		return training.Unknown, storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TrainingRepository()
	record, err := repo.Get(ctx, cmd.ID())
	if err != nil {
		return training.Unknown, storageError("get training record", err)
	}

	if err = record.Review(cmd.Session().Identity(), cmd.Decision(), signoff, cmd.Notes()); err != nil {
		return training.Unknown, err
	}

	if err = repo.Update(ctx, record); err != nil {
		return training.Unknown, storageError("update training record", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return training.Unknown, storageError("commit training record", err)
	}
	return record.Status(), nil
}
