// Package queries contains read-only operations. Handlers read straight from
// the database with SQL and return flat response structs; they never load
// aggregates.
package queries

import (
	"errors"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

var ErrTestDatabaseNotConfigured = errors.New("test database is not configured")

// Databases resolves the connection a session reads from.
type Databases struct {
	primary *gorm.DB
	test    *gorm.DB
}

// NewDatabases pairs the primary connection with the optional test one.
func NewDatabases(primary, test *gorm.DB) Databases {
	return Databases{primary: primary, test: test}
}

// For returns the database of env, or a StorageError when the test
// database is requested but not configured.
func (d Databases) For(env kernel.Environment) (*gorm.DB, error) {
	if env != kernel.EnvironmentTest {
		return d.primary, nil
	}
	if d.test == nil {
		return nil, errs.NewStorageError("open test database", ErrTestDatabaseNotConfigured)
	}
	return d.test, nil
}

// Primary is where user accounts live for every environment.
func (d Databases) Primary() *gorm.DB {
	return d.primary
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// readError wraps a failed read in a StorageError.
func readError(op string, err error) error {
	if err == nil {
		return nil
	}
	var storage *errs.StorageError
	if errors.As(err, &storage) {
		return err
	}
	return errs.NewStorageError(op, err)
}
