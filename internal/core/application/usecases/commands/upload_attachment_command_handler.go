package commands

import (
	"context"
	"fmt"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/services"
	"shipflow/internal/core/ports"
	"shipflow/internal/pkg/errs"
)

// UploadAttachmentCommandHandler stores a file and returns the key a
// shipment keeps in its attachmentRef field.
type UploadAttachmentCommandHandler struct {
	store  ports.BlobStore
	policy services.AccessPolicy
}

func NewUploadAttachmentCommandHandler(store ports.BlobStore, policy services.AccessPolicy) UploadAttachmentCommandHandler {
	return UploadAttachmentCommandHandler{
		store:  store,
		policy: policy,
	}
}

func (h *UploadAttachmentCommandHandler) Handle(ctx context.Context, cmd UploadAttachmentCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	if err := h.policy.Authorize(cmd.Session(), services.UploadAttachments); err != nil {
		return "", err
	}

	key := fmt.Sprintf("attachments/%s/%s", kernel.NewUUID(), cmd.Filename())

	if err := h.store.Put(ctx, key, cmd.ContentType(), cmd.Body(), cmd.Size()); err != nil {
		return "", errs.NewStorageError("put attachment", err)
	}
	return key, nil
}
