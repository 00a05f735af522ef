package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const BaseURL = "/api/v1"

// ServerInterface lists the operations of openapi.yaml. Path and query
// parameters arrive already bound and typed.
type ServerInterface interface {
	// (POST /auth/register)
	RegisterUser(ctx echo.Context) error
	// (POST /auth/login)
	Login(ctx echo.Context) error
	// (POST /auth/environment)
	SwitchEnvironment(ctx echo.Context) error
	// (GET /admin/registrations)
	ListPendingRegistrations(ctx echo.Context) error
	// (POST /admin/registrations/{id}/approve)
	ApproveRegistration(ctx echo.Context, id openapi_types.UUID) error
	// (POST /admin/registrations/{id}/reject)
	RejectRegistration(ctx echo.Context, id openapi_types.UUID) error
	// (GET /reports/pending-signoffs)
	GetPendingSignoffSummary(ctx echo.Context) error
	// (GET /shipments)
	ListShipments(ctx echo.Context, params ListShipmentsParams) error
	// (POST /shipments)
	CreateShipment(ctx echo.Context) error
	// (GET /shipments/{id})
	GetShipment(ctx echo.Context, id string) error
	// (PATCH /shipments/{id})
	UpdateShipment(ctx echo.Context, id string) error
	// (DELETE /shipments/{id})
	DeleteShipment(ctx echo.Context, id string) error
	// (DELETE /shipments/{id}/signatures/{party})
	RemoveShipmentSignature(ctx echo.Context, id string, party string) error
	// (POST /attachments)
	UploadAttachment(ctx echo.Context) error
	// (GET /training)
	ListTrainingRecords(ctx echo.Context, params ListTrainingRecordsParams) error
	// (POST /training)
	SubmitTraining(ctx echo.Context) error
	// (POST /training/{id}/review)
	ReviewTraining(ctx echo.Context, id string) error
	// (GET /items)
	ListItems(ctx echo.Context, params ListItemsParams) error
	// (PUT /items/{number})
	UpsertItem(ctx echo.Context, number string) error
	// (POST /items/import)
	ImportItems(ctx echo.Context) error
	// (GET /batches)
	ListBatchForms(ctx echo.Context, params ListBatchFormsParams) error
	// (POST /batches)
	CreateBatchForm(ctx echo.Context) error
}

type ListShipmentsParams struct {
	Status *[]string `form:"status,omitempty" json:"status,omitempty"`
	Limit  *int      `form:"limit,omitempty" json:"limit,omitempty"`
}

type ListTrainingRecordsParams struct {
	Status  *[]string           `form:"status,omitempty" json:"status,omitempty"`
	Trainee *openapi_types.UUID `form:"trainee,omitempty" json:"trainee,omitempty"`
	Limit   *int                `form:"limit,omitempty" json:"limit,omitempty"`
}

type ListItemsParams struct {
	Search          *string `form:"search,omitempty" json:"search,omitempty"`
	IncludeInactive *bool   `form:"includeInactive,omitempty" json:"includeInactive,omitempty"`
	Limit           *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

type ListBatchFormsParams struct {
	FormType *string `form:"formType,omitempty" json:"formType,omitempty"`
	Limit    *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterfaceWrapper binds parameters and calls the ServerInterface.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindQuery(ctx echo.Context, name string, explode bool, dest any) error {
	if err := runtime.BindQueryParameter("form", explode, false, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	return w.Handler.Login(ctx)
}

func (w *ServerInterfaceWrapper) SwitchEnvironment(ctx echo.Context) error {
	return w.Handler.SwitchEnvironment(ctx)
}

func (w *ServerInterfaceWrapper) ListPendingRegistrations(ctx echo.Context) error {
	return w.Handler.ListPendingRegistrations(ctx)
}

func (w *ServerInterfaceWrapper) ApproveRegistration(ctx echo.Context) error {
	var id openapi_types.UUID
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.ApproveRegistration(ctx, id)
}

func (w *ServerInterfaceWrapper) RejectRegistration(ctx echo.Context) error {
	var id openapi_types.UUID
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.RejectRegistration(ctx, id)
}

func (w *ServerInterfaceWrapper) GetPendingSignoffSummary(ctx echo.Context) error {
	return w.Handler.GetPendingSignoffSummary(ctx)
}

func (w *ServerInterfaceWrapper) ListShipments(ctx echo.Context) error {
	var params ListShipmentsParams
	if err := bindQuery(ctx, "status", true, &params.Status); err != nil {
		return err
	}
	if err := bindQuery(ctx, "limit", true, &params.Limit); err != nil {
		return err
	}
	return w.Handler.ListShipments(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateShipment(ctx echo.Context) error {
	return w.Handler.CreateShipment(ctx)
}

func (w *ServerInterfaceWrapper) GetShipment(ctx echo.Context) error {
	var id string
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.GetShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateShipment(ctx echo.Context) error {
	var id string
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.UpdateShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteShipment(ctx echo.Context) error {
	var id string
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.DeleteShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) RemoveShipmentSignature(ctx echo.Context) error {
	var id, party string
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	if err := bindPath(ctx, "party", &party); err != nil {
		return err
	}
	return w.Handler.RemoveShipmentSignature(ctx, id, party)
}

func (w *ServerInterfaceWrapper) UploadAttachment(ctx echo.Context) error {
	return w.Handler.UploadAttachment(ctx)
}

func (w *ServerInterfaceWrapper) ListTrainingRecords(ctx echo.Context) error {
	var params ListTrainingRecordsParams
	if err := bindQuery(ctx, "status", true, &params.Status); err != nil {
		return err
	}
	if err := bindQuery(ctx, "trainee", true, &params.Trainee); err != nil {
		return err
	}
	if err := bindQuery(ctx, "limit", true, &params.Limit); err != nil {
		return err
	}
	return w.Handler.ListTrainingRecords(ctx, params)
}

func (w *ServerInterfaceWrapper) SubmitTraining(ctx echo.Context) error {
	return w.Handler.SubmitTraining(ctx)
}

func (w *ServerInterfaceWrapper) ReviewTraining(ctx echo.Context) error {
	var id string
	if err := bindPath(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.ReviewTraining(ctx, id)
}

func (w *ServerInterfaceWrapper) ListItems(ctx echo.Context) error {
	var params ListItemsParams
	if err := bindQuery(ctx, "search", true, &params.Search); err != nil {
		return err
	}
	if err := bindQuery(ctx, "includeInactive", true, &params.IncludeInactive); err != nil {
		return err
	}
	if err := bindQuery(ctx, "limit", true, &params.Limit); err != nil {
		return err
	}
	return w.Handler.ListItems(ctx, params)
}

func (w *ServerInterfaceWrapper) UpsertItem(ctx echo.Context) error {
	var number string
	if err := bindPath(ctx, "number", &number); err != nil {
		return err
	}
	return w.Handler.UpsertItem(ctx, number)
}

func (w *ServerInterfaceWrapper) ImportItems(ctx echo.Context) error {
	return w.Handler.ImportItems(ctx)
}

func (w *ServerInterfaceWrapper) ListBatchForms(ctx echo.Context) error {
	var params ListBatchFormsParams
	if err := bindQuery(ctx, "formType", true, &params.FormType); err != nil {
		return err
	}
	if err := bindQuery(ctx, "limit", true, &params.Limit); err != nil {
		return err
	}
	return w.Handler.ListBatchForms(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateBatchForm(ctx echo.Context) error {
	return w.Handler.CreateBatchForm(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL adds every operation under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/auth/register", w.RegisterUser)
	router.POST(baseURL+"/auth/login", w.Login)
	router.POST(baseURL+"/auth/environment", w.SwitchEnvironment)
	router.GET(baseURL+"/admin/registrations", w.ListPendingRegistrations)
	router.POST(baseURL+"/admin/registrations/:id/approve", w.ApproveRegistration)
	router.POST(baseURL+"/admin/registrations/:id/reject", w.RejectRegistration)
	router.GET(baseURL+"/reports/pending-signoffs", w.GetPendingSignoffSummary)
	router.GET(baseURL+"/shipments", w.ListShipments)
	router.POST(baseURL+"/shipments", w.CreateShipment)
	router.GET(baseURL+"/shipments/:id", w.GetShipment)
	router.PATCH(baseURL+"/shipments/:id", w.UpdateShipment)
	router.DELETE(baseURL+"/shipments/:id", w.DeleteShipment)
	router.DELETE(baseURL+"/shipments/:id/signatures/:party", w.RemoveShipmentSignature)
	router.POST(baseURL+"/attachments", w.UploadAttachment)
	router.GET(baseURL+"/training", w.ListTrainingRecords)
	router.POST(baseURL+"/training", w.SubmitTraining)
	router.POST(baseURL+"/training/:id/review", w.ReviewTraining)
	router.GET(baseURL+"/items", w.ListItems)
	router.PUT(baseURL+"/items/:number", w.UpsertItem)
	router.POST(baseURL+"/items/import", w.ImportItems)
	router.GET(baseURL+"/batches", w.ListBatchForms)
	router.POST(baseURL+"/batches", w.CreateBatchForm)
}
