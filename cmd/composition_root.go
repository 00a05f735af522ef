package cmd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	api "shipflow/internal/adapters/in/http"
	"shipflow/internal/adapters/out/crypto"
	"shipflow/internal/adapters/out/kafka"
	"shipflow/internal/adapters/out/minio"
	"shipflow/internal/adapters/out/postgres"
	"shipflow/internal/adapters/out/relay"
	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/services"
	"shipflow/internal/core/ports"
	"shipflow/internal/jobs"

	"gorm.io/gorm"
)

const relayTimeout = 10 * time.Second

// CompositionRoot owns the adapters and builds every use case handler on top
// of them.
type CompositionRoot struct {
	cfg        Config
	primary    *gorm.DB
	test       *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	dbs        queries.Databases
	policy     services.AccessPolicy
	publisher  ports.EventPublisher
	blobs      ports.BlobStore
	bucket     *minio.Store
	notifier   ports.AdminNotifier
	hasher     ports.PasswordHasher
	tokens     *crypto.TokenService
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. test may be nil when the test
// environment is not configured. Kafka, MinIO and the mail relay are
// optional; each falls back to a stand-in when its setting is empty.
func NewCompositionRoot(cfg Config, primary, test *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	tokens, err := crypto.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:        cfg,
		primary:    primary,
		test:       test,
		uowFactory: postgres.NewGormUnitOfWorkFactory(primary, test),
		dbs:        queries.NewDatabases(primary, test),
		policy:     services.NewAccessPolicy(),
		hasher:     crypto.NewArgon2Hasher(crypto.DefaultArgon2Params),
		tokens:     tokens,
		logger:     logger,
	}

	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		c.publisher = kafka.NewPublisher(brokers, cfg.ShipmentEventsTopic, logger)
	} else {
		logger.Warn("KAFKA_HOST is empty, events are dropped")
		c.publisher = kafka.NopPublisher{}
	}

	if cfg.MinioEndpoint != "" {
		store, err := minio.New(minio.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, logger)
		if err != nil {
			return nil, err
		}
		c.bucket = store
		c.blobs = store
	} else {
		logger.Warn("MINIO_ENDPOINT is empty, attachment uploads are disabled")
		c.blobs = minio.DisabledStore{}
	}

	if cfg.RelayURL != "" {
		c.notifier = relay.NewClient(cfg.RelayURL, relayTimeout)
	} else {
		logger.Warn("RELAY_URL is empty, administrators are not notified of registrations")
		c.notifier = relay.Disabled{}
	}

	return c, nil
}

// EnsureBucket creates the attachment bucket when MinIO is configured.
func (c *CompositionRoot) EnsureBucket(ctx context.Context) error {
	if c.bucket == nil {
		return nil
	}
	return c.bucket.EnsureBucket(ctx)
}

// Environments lists the environments that have a database behind them.
func (c *CompositionRoot) Environments() []kernel.Environment {
	envs := []kernel.Environment{kernel.EnvironmentProduction}
	if c.test != nil {
		envs = append(envs, kernel.EnvironmentTest)
	}
	return envs
}

func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func(env kernel.Environment) commands.ShipmentUoW {
		return c.uowFactory.Create(env)
	})
}

func (c *CompositionRoot) trainingUoWFactory() commands.TrainingUoWFactory {
	return FuncTrainingUoWFactory(func(env kernel.Environment) commands.TrainingUoW {
		return c.uowFactory.Create(env)
	})
}

func (c *CompositionRoot) itemUoWFactory() commands.ItemUoWFactory {
	return FuncItemUoWFactory(func(env kernel.Environment) commands.ItemUoW {
		return c.uowFactory.Create(env)
	})
}

func (c *CompositionRoot) batchUoWFactory() commands.BatchUoWFactory {
	return FuncBatchUoWFactory(func(env kernel.Environment) commands.BatchUoW {
		return c.uowFactory.Create(env)
	})
}

// Accounts always live in the production database.
func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create(kernel.EnvironmentProduction)
	})
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAuthenticateCommandHandler() commands.AuthenticateCommandHandler {
	return commands.NewAuthenticateCommandHandler(c.userUoWFactory(), c.hasher, c.tokens)
}

func (c *CompositionRoot) CreateDecideRegistrationCommandHandler() commands.DecideRegistrationCommandHandler {
	return commands.NewDecideRegistrationCommandHandler(c.userUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateSubmitShipmentCommandHandler() commands.SubmitShipmentCommandHandler {
	return commands.NewSubmitShipmentCommandHandler(c.shipmentUoWFactory(), c.policy, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRemoveShipmentSignatureCommandHandler() commands.RemoveShipmentSignatureCommandHandler {
	return commands.NewRemoveShipmentSignatureCommandHandler(c.shipmentUoWFactory(), c.policy, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateUploadAttachmentCommandHandler() commands.UploadAttachmentCommandHandler {
	return commands.NewUploadAttachmentCommandHandler(c.blobs, c.policy)
}

func (c *CompositionRoot) CreateSubmitTrainingCommandHandler() commands.SubmitTrainingCommandHandler {
	return commands.NewSubmitTrainingCommandHandler(c.trainingUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateReviewTrainingCommandHandler() commands.ReviewTrainingCommandHandler {
	return commands.NewReviewTrainingCommandHandler(c.trainingUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateUpsertItemCommandHandler() commands.UpsertItemCommandHandler {
	return commands.NewUpsertItemCommandHandler(c.itemUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateImportItemsCommandHandler() commands.ImportItemsCommandHandler {
	return commands.NewImportItemsCommandHandler(c.itemUoWFactory(), c.policy, c.logger)
}

func (c *CompositionRoot) CreateCreateBatchFormCommandHandler() commands.CreateBatchFormCommandHandler {
	return commands.NewCreateBatchFormCommandHandler(c.batchUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.dbs, c.policy)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.dbs, c.policy)
}

func (c *CompositionRoot) CreateGetPendingSignoffSummaryQueryHandler() queries.GetPendingSignoffSummaryQueryHandler {
	return queries.NewGetPendingSignoffSummaryQueryHandler(c.dbs, c.policy)
}

func (c *CompositionRoot) CreateListTrainingRecordsQueryHandler() queries.ListTrainingRecordsQueryHandler {
	return queries.NewListTrainingRecordsQueryHandler(c.dbs, c.policy)
}

func (c *CompositionRoot) CreateListItemsQueryHandler() queries.ListItemsQueryHandler {
	return queries.NewListItemsQueryHandler(c.dbs, c.policy)
}

func (c *CompositionRoot) CreateListPendingRegistrationsQueryHandler() queries.ListPendingRegistrationsQueryHandler {
	return queries.NewListPendingRegistrationsQueryHandler(c.dbs, c.policy)
}

func (c *CompositionRoot) CreateListBatchFormsQueryHandler() queries.ListBatchFormsQueryHandler {
	return queries.NewListBatchFormsQueryHandler(c.dbs, c.policy)
}

// CreateHTTPServer builds the API server with every handler wired in.
func (c *CompositionRoot) CreateHTTPServer() *api.Server {
	register := c.CreateRegisterUserCommandHandler()
	authenticate := c.CreateAuthenticateCommandHandler()
	decide := c.CreateDecideRegistrationCommandHandler()
	submit := c.CreateSubmitShipmentCommandHandler()
	remove := c.CreateRemoveShipmentSignatureCommandHandler()
	deleteShipment := c.CreateDeleteShipmentCommandHandler()
	upload := c.CreateUploadAttachmentCommandHandler()
	submitTraining := c.CreateSubmitTrainingCommandHandler()
	reviewTraining := c.CreateReviewTrainingCommandHandler()
	upsertItem := c.CreateUpsertItemCommandHandler()
	importItems := c.CreateImportItemsCommandHandler()
	createBatch := c.CreateCreateBatchFormCommandHandler()

	return api.NewServer(api.Handlers{
		RegisterUser:       &register,
		Authenticate:       &authenticate,
		DecideRegistration: &decide,
		SubmitShipment:     &submit,
		DeleteShipment:     &deleteShipment,
		RemoveSignature:    &remove,
		UploadAttachment:   &upload,
		SubmitTraining:     &submitTraining,
		ReviewTraining:     &reviewTraining,
		UpsertItem:         &upsertItem,
		ImportItems:        &importItems,
		CreateBatchForm:    &createBatch,

		ListShipments:            c.CreateListShipmentsQueryHandler(),
		GetShipment:              c.CreateGetShipmentQueryHandler(),
		PendingSignoffSummary:    c.CreateGetPendingSignoffSummaryQueryHandler(),
		ListTrainingRecords:      c.CreateListTrainingRecordsQueryHandler(),
		ListItems:                c.CreateListItemsQueryHandler(),
		ListPendingRegistrations: c.CreateListPendingRegistrationsQueryHandler(),
		ListBatchForms:           c.CreateListBatchFormsQueryHandler(),
	}, c.tokens, c.logger)
}

// CreateJobManager schedules the pending sign-off report for every
// configured environment.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	report := jobs.NewPendingSignoffReportJob(
		c.CreateGetPendingSignoffSummaryQueryHandler(),
		c.publisher,
		c.Environments(),
		c.cfg.ReportSchedule,
		c.logger,
	)
	return jobs.NewJobManager(report)
}

// closeDatabases closes every open pool and joins the errors.
func closeDatabases(dbs ...*gorm.DB) error {
	var errs []error
	for _, db := range dbs {
		if db == nil {
			continue
		}
		errs = append(errs, postgres.Close(db))
	}
	return errors.Join(errs...)
}

type FuncShipmentUoWFactory func(env kernel.Environment) commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create(env kernel.Environment) commands.ShipmentUoW {
	return f(env)
}

type FuncTrainingUoWFactory func(env kernel.Environment) commands.TrainingUoW

func (f FuncTrainingUoWFactory) Create(env kernel.Environment) commands.TrainingUoW {
	return f(env)
}

type FuncItemUoWFactory func(env kernel.Environment) commands.ItemUoW

func (f FuncItemUoWFactory) Create(env kernel.Environment) commands.ItemUoW {
	return f(env)
}

type FuncBatchUoWFactory func(env kernel.Environment) commands.BatchUoW

func (f FuncBatchUoWFactory) Create(env kernel.Environment) commands.BatchUoW {
	return f(env)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
