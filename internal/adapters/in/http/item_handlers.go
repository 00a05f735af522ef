package http

import (
	"net/http"

	"shipflow/internal/adapters/in/xlsx"
	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListItems handles GET /api/v1/items.
func (s *Server) ListItems(ctx echo.Context, params ListItemsParams) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListItemsQuery(session, deref(params.Search), deref(params.IncludeInactive), deref(params.Limit))
	if err != nil {
		return s.fail(ctx, err)
	}
	items, err := s.h.ListItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]itemBody, len(items))
	for i, it := range items {
		active := it.Active
		response[i] = itemBody{
			Number:       it.Number,
			Name:         it.Name,
			Unit:         it.Unit,
			Manufacturer: it.Manufacturer,
			Vendor:       it.Vendor,
			Active:       &active,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpsertItem handles PUT /api/v1/items/{number}. Items are active unless
// the body says otherwise.
func (s *Server) UpsertItem(ctx echo.Context, number string) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body itemBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}
	cmd, err := commands.NewUpsertItemCommand(session, commands.ItemRow{
		Number:       number,
		Name:         body.Name,
		Unit:         body.Unit,
		Manufacturer: body.Manufacturer,
		Vendor:       body.Vendor,
		Active:       active,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	saved, err := s.h.UpsertItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"number": saved})
}

// ImportItems handles POST /api/v1/items/import with an xlsx workbook in
// the "file" part.
func (s *Server) ImportItems(ctx echo.Context) error {
	session, err := sessionFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	file, err := formFile(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	defer file.Close()

	rows, err := xlsx.ReadItems(file)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewImportItemsCommand(session, rows)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.h.ImportItems.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := importResultBody{Imported: result.Imported, Failed: result.Failed, Errors: result.Errors}
	if response.Errors == nil {
		response.Errors = []string{}
	}
	return ctx.JSON(http.StatusOK, response)
}
