package ports

import (
	"context"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Add returns *errs.ObjectAlreadyExistsError when the email is taken.
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks the user up by normalized email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
