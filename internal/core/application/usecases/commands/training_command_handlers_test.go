package commands_test

import (
	"testing"
	"time"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/model/training"
	"shipflow/internal/core/domain/services"
	"shipflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var trainingDate = time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

func storedTrainingRecord(t *testing.T, trainee kernel.UUID) *training.Record {
	t.Helper()

	r, err := training.RestoreRecord(training.RestoreParams{
		ID:             "TRN-000004",
		SequenceNumber: 4,
		Trainee:        trainee,
		SOPCode:        "SOP-12",
		SOPTitle:       "Line clearance",
		TrainingDate:   trainingDate,
		TraineeSignoff: signed(t, "Tia"),
		CreatedAt:      trainingDate,
	})
	require.NoError(t, err)
	return r
}

func TestSubmitTrainingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	session := newSession(t, kernel.RoleTraining)
	cmd, err := commands.NewSubmitTrainingCommand(session, "sop-12", "Line clearance", trainingDate, "Tia", []byte("sig:tia"))
	require.NoError(t, err)

	repo := new(MockTrainingRepository)
	allocator := new(MockSequenceAllocator)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SequenceAllocator").Return(allocator).Once(),
		allocator.On("Next", ctx, sequence.Training).Return(int64(4), nil).Once(),
		uow.On("TrainingRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(r *training.Record) bool {
			return r.SOPCode() == "SOP-12" && r.Trainee().IsEqual(session.Identity()) && r.Status() == training.Pending
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrainingUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	h := commands.NewSubmitTrainingCommandHandler(factory, services.NewAccessPolicy())
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "TRN-000004", id)

	repo.AssertExpectations(t)
	allocator.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitTrainingCommandHandler_Handle_ListsMissingFields(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSubmitTrainingCommand(newSession(t, kernel.RoleTraining), "", "Line clearance", time.Time{}, "", nil)
	require.NoError(t, err)

	factory := new(MockTrainingUoWFactory)
	h := commands.NewSubmitTrainingCommandHandler(factory, services.NewAccessPolicy())
	_, err = h.Handle(ctx, cmd)

	var vErr *errs.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"sopCode", "trainingDate", "trainee.name", "trainee.signature"}, vErr.Fields)
	factory.AssertNotCalled(t, "Create", mock.Anything)
}

func TestReviewTrainingCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	manager := newSession(t, kernel.RoleManager)
	cmd, err := commands.NewReviewTrainingCommand(manager, "trn-4", training.Approved, "Max", []byte("sig:max"), "")
	require.NoError(t, err)
	assert.Equal(t, "TRN-000004", cmd.ID())

	repo := new(MockTrainingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TrainingRepository").Return(repo).Once(),
		repo.On("Get", ctx, "TRN-000004").Return(storedTrainingRecord(t, kernel.NewUUID()), nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*training.Record")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrainingUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	h := commands.NewReviewTrainingCommandHandler(factory, services.NewAccessPolicy())
	status, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, training.Approved, status)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReviewTrainingCommandHandler_Handle_OwnRecordDenied(t *testing.T) {
	ctx := t.Context()
	manager := newSession(t, kernel.RoleManager)
	cmd, err := commands.NewReviewTrainingCommand(manager, "TRN-000004", training.Approved, "Max", []byte("sig:max"), "")
	require.NoError(t, err)

	repo := new(MockTrainingRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TrainingRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, "TRN-000004").Return(storedTrainingRecord(t, manager.Identity()), nil).Once()

	factory := new(MockTrainingUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	h := commands.NewReviewTrainingCommandHandler(factory, services.NewAccessPolicy())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReviewTrainingCommandHandler_Handle_RejectWithoutNotes(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReviewTrainingCommand(newSession(t, kernel.RoleManager), "TRN-000004", training.Rejected, "Max", []byte("sig:max"), " ")
	require.NoError(t, err)

	repo := new(MockTrainingRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TrainingRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, "TRN-000004").Return(storedTrainingRecord(t, kernel.NewUUID()), nil).Once()

	factory := new(MockTrainingUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	h := commands.NewReviewTrainingCommandHandler(factory, services.NewAccessPolicy())
	_, err = h.Handle(ctx, cmd)

	var vErr *errs.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"notes"}, vErr.Fields)
}

func TestReviewTrainingCommandHandler_Handle_TraineeRoleDenied(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReviewTrainingCommand(newSession(t, kernel.RoleTraining), "TRN-000004", training.Approved, "Tom", []byte("sig"), "")
	require.NoError(t, err)

	factory := new(MockTrainingUoWFactory)
	h := commands.NewReviewTrainingCommandHandler(factory, services.NewAccessPolicy())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	factory.AssertNotCalled(t, "Create", mock.Anything)
}

func TestNewReviewTrainingCommand_InvalidID(t *testing.T) {
	_, err := commands.NewReviewTrainingCommand(newSession(t, kernel.RoleManager), "SHP-000001", training.Approved, "Max", nil, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
