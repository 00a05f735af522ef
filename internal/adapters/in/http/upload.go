package http

import (
	"mime/multipart"

	"shipflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// upload is the "file" part of a multipart request.
type upload struct {
	multipart.File
	name        string
	contentType string
	size        int64
}

func formFile(ctx echo.Context) (*upload, error) {
	header, err := ctx.FormFile("file")
	if err != nil {
		return nil, errs.NewMissingFieldsError("file")
	}
	f, err := header.Open()
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("file", err)
	}
	return &upload{
		File:        f,
		name:        header.Filename,
		contentType: header.Header.Get(echo.HeaderContentType),
		size:        header.Size,
	}, nil
}
