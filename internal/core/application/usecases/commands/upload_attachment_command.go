package commands

import (
	"errors"
	"io"
	"path"
	"strings"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"
	"shipflow/internal/pkg/guard"
)

var ErrUploadAttachmentCommandIsNotConstructed = errors.New(
	"UploadAttachmentCommand must be created via NewUploadAttachmentCommand constructor",
)

// MaxAttachmentSize bounds a single upload.
const MaxAttachmentSize = 20 << 20

type UploadAttachmentCommand struct { //nolint:recvcheck //using for validation
	session     kernel.Session
	filename    string
	contentType string
	body        io.Reader
	size        int64

	guard guard.ConstructorGuard
}

func NewUploadAttachmentCommand(
	session kernel.Session,
	filename, contentType string,
	body io.Reader,
	size int64,
) (UploadAttachmentCommand, error) {
	if err := session.Validate(); err != nil {
		return UploadAttachmentCommand{}, err
	}

	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" || name == "" || body == nil {
		return UploadAttachmentCommand{}, errs.NewMissingFieldsError("file")
	}
	if size <= 0 || size > MaxAttachmentSize {
		return UploadAttachmentCommand{}, errs.NewValueIsOutOfRangeError("size", size, 1, MaxAttachmentSize)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return UploadAttachmentCommand{
		session:     session,
		filename:    name,
		contentType: contentType,
		body:        body,
		size:        size,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UploadAttachmentCommand) Validate() error {
	return c.guard.Validate(ErrUploadAttachmentCommandIsNotConstructed)
}

func (c UploadAttachmentCommand) Session() kernel.Session { return c.session }
func (c UploadAttachmentCommand) Filename() string        { return c.filename }
func (c UploadAttachmentCommand) ContentType() string     { return c.contentType }
func (c UploadAttachmentCommand) Body() io.Reader         { return c.body }
func (c UploadAttachmentCommand) Size() int64             { return c.size }
