package http

import (
	"errors"
	"net/http"

	"shipflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed request.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
	// Submitted echoes a write the store could not take, so it can be resent.
	Submitted any `json:"submitted,omitempty"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists), errors.Is(err, errs.ErrSequenceConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// missingFields collects the fields of every ValidationError in err's tree.
func missingFields(err error) []string {
	var fields []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if vErr, ok := e.(*errs.ValidationError); ok {
			fields = append(fields, vErr.Fields...)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return fields
}

// fail writes err as an Error body. Unexpected errors are logged and their
// text is not sent to the client.
func (s *Server) fail(c echo.Context, err error) error {
	return s.failWith(c, err, nil)
}

// failWith is fail for writes: when the store was unavailable the response
// carries submitted back untouched.
func (s *Server) failWith(c echo.Context, err error, submitted any) error {
	code := statusOf(err)
	body := Error{Code: code, Message: err.Error(), Fields: missingFields(err)}
	if code == http.StatusServiceUnavailable {
		body.Submitted = submitted
	}

	switch code {
	case http.StatusUnauthorized:
		body.Message = "authentication required"
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		if code == http.StatusInternalServerError {
			body.Message = "internal error"
		}
	}
	return c.JSON(code, body)
}

// ErrorHandler renders echo's own errors (unknown route, bad parameter,
// failed request validation) in the same shape as use case errors.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, Error{Code: code, Message: message})
}
