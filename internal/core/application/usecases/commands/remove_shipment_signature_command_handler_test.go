package commands_test

import (
	"log/slog"
	"testing"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/core/domain/services"
	"shipflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRemoveHandler(factory commands.ShipmentUoWFactory, publisher *MockEventPublisher) commands.RemoveShipmentSignatureCommandHandler {
	return commands.NewRemoveShipmentSignatureCommandHandler(factory, services.NewAccessPolicy(), publisher, slog.New(slog.DiscardHandler))
}

func TestRemoveShipmentSignatureCommandHandler_Handle_MovesStatusBack(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRemoveShipmentSignatureCommand(newSession(t, kernel.RoleShipping), "SHP-000001", shipment.Inspector)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", ctx, "SHP-000001").Return(storedShipment(t, shipment.PendingApproval), nil).Once(),
		repo.On("Update", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
			inspector := s.Signoff(shipment.Inspector)
			return !inspector.IsSigned() && inspector.SignedAt() == nil && inspector.Name() == "Ian"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, statusEvent("Pending Approval", "Pending Inspection")).Return(nil).Once()

	h := newRemoveHandler(factory, publisher)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, shipment.PendingInspection, result.Status)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRemoveShipmentSignatureCommandHandler_Handle_LaterPartySigned(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRemoveShipmentSignatureCommand(newSession(t, kernel.RoleShipping), "SHP-000001", shipment.Receiver)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, "SHP-000001").Return(storedShipment(t, shipment.PendingApproval), nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := newRemoveHandler(factory, publisher)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "cannot remove receiver signature while inspector has signed")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRemoveShipmentSignatureCommandHandler_Handle_ApprovedIsFinal(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRemoveShipmentSignatureCommand(newSession(t, kernel.RoleAdmin), "SHP-000001", shipment.Approver)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, "SHP-000001").Return(storedShipment(t, shipment.Approved), nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	h := newRemoveHandler(factory, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestRemoveShipmentSignatureCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRemoveShipmentSignatureCommand(newSession(t, kernel.RoleShipping), "SHP-000009", shipment.Receiver)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, "SHP-000009").Return(nil, errs.NewObjectNotFoundError("id", "SHP-000009")).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	h := newRemoveHandler(factory, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.NotErrorIs(t, err, errs.ErrStorage)
}

func TestDeleteShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeleteShipmentCommand(newSession(t, kernel.RoleAdmin), "SHP-000001")
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Delete", ctx, "SHP-000001").Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	h := commands.NewDeleteShipmentCommandHandler(factory, services.NewAccessPolicy())
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteShipmentCommandHandler_Handle_AdminOnly(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeleteShipmentCommand(newSession(t, kernel.RoleShipping), "SHP-000001")
	require.NoError(t, err)

	factory := new(MockShipmentUoWFactory)
	h := commands.NewDeleteShipmentCommandHandler(factory, services.NewAccessPolicy())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	factory.AssertNotCalled(t, "Create", mock.Anything)
}
