package commands_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/domain/model/batch"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/services"
	"shipflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func blendingFields() batch.Fields {
	return batch.Fields{
		FormType:        batch.Blending,
		ItemNumber:      "AB12",
		ProductName:     "Lemon syrup",
		LotNumber:       "L-100",
		BatchQuantity:   decimal.NewFromInt(500),
		ManufactureDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateBatchFormCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateBatchFormCommand(newSession(t, kernel.RoleShipping), blendingFields(), "Olu", []byte("sig:olu"))
	require.NoError(t, err)

	repo := new(MockBatchRepository)
	allocator := new(MockSequenceAllocator)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SequenceAllocator").Return(allocator).Once(),
		allocator.On("Next", ctx, sequence.DP).Return(int64(12), nil).Once(),
		uow.On("BatchRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(f *batch.Form) bool {
			return f.Fields().Operator.IsSigned() && f.Fields().FormType == batch.Blending
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create", kernel.EnvironmentProduction).Return(uow).Once()

	h := commands.NewCreateBatchFormCommandHandler(factory, services.NewAccessPolicy())
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "DP-00012", id)
	repo.AssertExpectations(t)
	allocator.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateBatchFormCommandHandler_Handle_MissingOperatorSignature(t *testing.T) {
	cmd, err := commands.NewCreateBatchFormCommand(newSession(t, kernel.RoleShipping), blendingFields(), "Olu", nil)
	require.NoError(t, err)

	factory := new(MockBatchUoWFactory)
	h := commands.NewCreateBatchFormCommandHandler(factory, services.NewAccessPolicy())
	_, err = h.Handle(t.Context(), cmd)

	var vErr *errs.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"operator.signature"}, vErr.Fields)
	factory.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUploadAttachmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	body := strings.NewReader("%PDF-1.7")
	cmd, err := commands.NewUploadAttachmentCommand(newSession(t, kernel.RoleShipping), `C:\scans\bill.pdf`, "application/pdf", body, 8)
	require.NoError(t, err)
	assert.Equal(t, "bill.pdf", cmd.Filename())

	store := new(MockBlobStore)
	store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "attachments/") && strings.HasSuffix(key, "/bill.pdf")
	}), "application/pdf", body, int64(8)).Return(nil).Once()

	h := commands.NewUploadAttachmentCommandHandler(store, services.NewAccessPolicy())
	key, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	parts := strings.Split(key, "/")
	require.Len(t, parts, 3)
	_, err = kernel.UUIDFromString(parts[1])
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUploadAttachmentCommandHandler_Handle_StoreFailure(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUploadAttachmentCommand(newSession(t, kernel.RoleShipping), "bill.pdf", "", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", cmd.ContentType())

	store := new(MockBlobStore)
	store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket missing")).Once()

	h := commands.NewUploadAttachmentCommandHandler(store, services.NewAccessPolicy())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStorage)
}

func TestNewUploadAttachmentCommand_Invalid(t *testing.T) {
	session := newSession(t, kernel.RoleShipping)

	_, err := commands.NewUploadAttachmentCommand(session, "", "", strings.NewReader("x"), 1)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = commands.NewUploadAttachmentCommand(session, "a.pdf", "", strings.NewReader(""), 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewUploadAttachmentCommand(session, "a.pdf", "", strings.NewReader(""), commands.MaxAttachmentSize+1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
