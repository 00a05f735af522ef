package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/domain/model/batch"
	"shipflow/internal/core/domain/model/item"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/core/domain/model/training"
	"shipflow/internal/core/domain/model/user"
	"shipflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id string) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTrainingRepository struct{ mock.Mock }

func (m *MockTrainingRepository) Add(ctx context.Context, r *training.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockTrainingRepository) Update(ctx context.Context, r *training.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockTrainingRepository) Get(ctx context.Context, id string) (*training.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.Record), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Save(ctx context.Context, i *item.Item) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, number string) (*item.Item, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, f *batch.Form) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

type MockSequenceAllocator struct{ mock.Mock }

func (m *MockSequenceAllocator) Next(ctx context.Context, recordType sequence.RecordType) (int64, error) {
	args := m.Called(ctx, recordType)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every unit of work the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) TrainingRepository() ports.TrainingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrainingRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemRepository)
}

func (m *MockUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockUoW) SequenceAllocator() ports.SequenceAllocator {
	args := m.Called()
	return args.Get(0).(ports.SequenceAllocator)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create(env kernel.Environment) commands.ShipmentUoW {
	args := m.Called(env)
	return args.Get(0).(commands.ShipmentUoW)
}

type MockTrainingUoWFactory struct{ mock.Mock }

func (m *MockTrainingUoWFactory) Create(env kernel.Environment) commands.TrainingUoW {
	args := m.Called(env)
	return args.Get(0).(commands.TrainingUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockItemUoWFactory struct{ mock.Mock }

func (m *MockItemUoWFactory) Create(env kernel.Environment) commands.ItemUoW {
	args := m.Called(env)
	return args.Get(0).(commands.ItemUoW)
}

type MockBatchUoWFactory struct{ mock.Mock }

func (m *MockBatchUoWFactory) Create(env kernel.Environment) commands.BatchUoW {
	args := m.Called(env)
	return args.Get(0).(commands.BatchUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...ports.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error { return nil }

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, encoded string) (bool, error) {
	args := m.Called(password, encoded)
	return args.Bool(0), args.Error(1)
}

type MockTokenService struct{ mock.Mock }

func (m *MockTokenService) Issue(session kernel.Session) (string, time.Time, error) {
	args := m.Called(session)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) Parse(token string) (kernel.Session, error) {
	args := m.Called(token)
	return args.Get(0).(kernel.Session), args.Error(1)
}

type MockAdminNotifier struct{ mock.Mock }

func (m *MockAdminNotifier) NotifyRegistration(ctx context.Context, name, email string) (string, error) {
	args := m.Called(ctx, name, email)
	return args.String(0), args.Error(1)
}

type MockBlobStore struct{ mock.Mock }

func (m *MockBlobStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, key, contentType, body, size)
	return args.Error(0)
}

func ptr[T any](v T) *T {
	return &v
}

func newSession(t *testing.T, role kernel.Role) kernel.Session {
	t.Helper()

	s, err := kernel.NewSession(kernel.NewUUID(), role, kernel.EnvironmentProduction)
	require.NoError(t, err)
	return s
}
