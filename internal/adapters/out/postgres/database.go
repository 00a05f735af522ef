package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"shipflow/internal/adapters/out/postgres/batchrepo"
	"shipflow/internal/adapters/out/postgres/itemrepo"
	"shipflow/internal/adapters/out/postgres/sequencerepo"
	"shipflow/internal/adapters/out/postgres/shipmentrepo"
	"shipflow/internal/adapters/out/postgres/trainingrepo"
	"shipflow/internal/adapters/out/postgres/userrepo"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the application owns, in migration order.
func Models() []any {
	return []any{
		&sequencerepo.RecordSequenceDTO{},
		&shipmentrepo.ShipmentDTO{},
		&trainingrepo.TrainingRecordDTO{},
		&userrepo.UserDTO{},
		&itemrepo.ItemDTO{},
		&batchrepo.BatchFormDTO{},
	}
}

// Config opens connections the way the repositories expect them:
// TranslateError is on so unique violations arrive as gorm.ErrDuplicatedKey.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// Open connects to dsn and sizes the pool.
func Open(dsn string, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(dsn), Config())
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("connected to postgres", "database", db.Migrator().CurrentDatabase())
	return db, nil
}

// Migrate creates or alters every table in Models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close releases the pool behind db. A nil db is ignored.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
