package http

import (
	"net/http"
	"time"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/batch"

	"github.com/labstack/echo/v4"
)

// ListBatchForms handles GET /api/v1/batches.
func (s *Server) ListBatchForms(ctx echo.Context, params ListBatchFormsParams) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListBatchFormsQuery(session, deref(params.FormType), deref(params.Limit))
	if err != nil {
		return s.fail(ctx, err)
	}
	forms, err := s.h.ListBatchForms.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]batchFormBody, len(forms))
	for i, f := range forms {
		response[i] = batchFormBody{
			ID:              f.ID,
			FormType:        f.FormType,
			ItemNumber:      f.ItemNumber,
			ProductName:     f.ProductName,
			LotNumber:       f.LotNumber,
			BatchQuantity:   f.BatchQuantity,
			ManufactureDate: f.ManufactureDate.Format(dateLayout),
			OperatorName:    f.OperatorName,
			CreatedAt:       f.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateBatchForm handles POST /api/v1/batches and answers with the DP number.
func (s *Server) CreateBatchForm(ctx echo.Context) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body batchFormRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	formType, err := batch.ParseFormType(body.FormType)
	if err != nil {
		return s.fail(ctx, err)
	}
	var manufactured time.Time
	if d := dateOf(body.ManufactureDate); d != nil {
		manufactured = *d
	}
	name, signature := signer(body.Operator)

	cmd, err := commands.NewCreateBatchFormCommand(session, batch.Fields{
		FormType:        formType,
		ItemNumber:      body.ItemNumber,
		ProductName:     body.ProductName,
		LotNumber:       body.LotNumber,
		BatchQuantity:   deref(body.BatchQuantity),
		ManufactureDate: manufactured,
	}, name, signature)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := s.h.CreateBatchForm.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createdBody{ID: id})
}
