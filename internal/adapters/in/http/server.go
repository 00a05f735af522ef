package http

import (
	"context"
	"log/slog"
	"time"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/training"
	"shipflow/internal/core/domain/model/user"
)

// Handler is the shape shared by command and query handlers.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

type DeleteShipmentHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteShipmentCommand) error
}

// Tokens parses bearer tokens and re-issues them for another environment.
type Tokens interface {
	Parse(token string) (kernel.Session, error)
	WithEnvironment(session kernel.Session, env kernel.Environment) (string, time.Time, error)
}

// Handlers are the use cases the API exposes. Every field must be set.
type Handlers struct {
	RegisterUser       Handler[commands.RegisterUserCommand, kernel.UUID]
	Authenticate       Handler[commands.AuthenticateCommand, commands.AuthenticateResult]
	DecideRegistration Handler[commands.DecideRegistrationCommand, user.Status]
	SubmitShipment     Handler[commands.SubmitShipmentCommand, commands.SubmitShipmentResult]
	DeleteShipment     DeleteShipmentHandler
	RemoveSignature    Handler[commands.RemoveShipmentSignatureCommand, commands.SubmitShipmentResult]
	UploadAttachment   Handler[commands.UploadAttachmentCommand, string]
	SubmitTraining     Handler[commands.SubmitTrainingCommand, string]
	ReviewTraining     Handler[commands.ReviewTrainingCommand, training.Status]
	UpsertItem         Handler[commands.UpsertItemCommand, string]
	ImportItems        Handler[commands.ImportItemsCommand, commands.ImportItemsResult]
	CreateBatchForm    Handler[commands.CreateBatchFormCommand, string]

	ListShipments            Handler[queries.ListShipmentsQuery, []queries.ShipmentSummary]
	GetShipment              Handler[queries.GetShipmentQuery, queries.ShipmentView]
	PendingSignoffSummary    Handler[queries.GetPendingSignoffSummaryQuery, []queries.PendingSignoffLine]
	ListTrainingRecords      Handler[queries.ListTrainingRecordsQuery, []queries.TrainingRecordSummary]
	ListItems                Handler[queries.ListItemsQuery, []queries.ItemSummary]
	ListPendingRegistrations Handler[queries.ListPendingRegistrationsQuery, []queries.PendingRegistration]
	ListBatchForms           Handler[queries.ListBatchFormsQuery, []queries.BatchFormSummary]
}

// Server implements ServerInterface. Each method turns the request into a
// command or query, runs it with the caller's session and maps the result
// or error to JSON.
type Server struct {
	h      Handlers
	tokens Tokens
	logger *slog.Logger
}

func NewServer(handlers Handlers, tokens Tokens, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		tokens: tokens,
		logger: logger.With("component", "HTTPServer"),
	}
}

var _ ServerInterface = (*Server)(nil)
