package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	api "shipflow/internal/adapters/in/http"
	"shipflow/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ServeCmd runs the API and the scheduled report until SIGINT or SIGTERM.
func ServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := LoadConfig()
			logger := newLogger()
			logger.Info("starting", "config", cfg.String())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			primary, test, err := openDatabases(cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeDatabases(primary, test); err != nil {
					logger.Error("close databases", "error", err)
				}
			}()

			if migrate {
				if err = migrateDatabases(primary, test); err != nil {
					return err
				}
			}

			app, err := NewCompositionRoot(cfg, primary, test, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					logger.Error("close publisher", "error", err)
				}
			}()

			if err = app.EnsureBucket(ctx); err != nil {
				logger.Warn("attachment bucket unavailable", "error", err)
			}

			e, err := api.NewRouter(ctx, app.CreateHTTPServer(), logger)
			if err != nil {
				return err
			}

			return run(ctx, e, ":"+cfg.HTTPPort, cfg.ShutdownTimeout, app.CreateJobManager())
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")
	return cmd
}

// background is what serve runs next to the HTTP server.
type background interface {
	StartAll() error
	StopAll()
}

// run serves e on addr and starts jobs. It returns after ctx is cancelled
// and both have stopped, or as soon as either fails to start.
func run(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration, jobs background) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := jobs.StartAll(); err != nil {
			return fmt.Errorf("start jobs: %w", err)
		}
		<-gctx.Done()
		jobs.StopAll()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openDatabases connects to the primary database and, when TEST_DB_NAME is
// set, to the one behind the test environment.
func openDatabases(cfg Config, logger *slog.Logger) (*gorm.DB, *gorm.DB, error) {
	primary, err := postgres.Open(cfg.DSN(cfg.DBName), logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.TestDBName == "" {
		return primary, nil, nil
	}
	test, err := postgres.Open(cfg.DSN(cfg.TestDBName), logger)
	if err != nil {
		_ = postgres.Close(primary)
		return nil, nil, fmt.Errorf("test environment: %w", err)
	}
	return primary, test, nil
}

func migrateDatabases(dbs ...*gorm.DB) error {
	for _, db := range dbs {
		if db == nil {
			continue
		}
		if err := postgres.Migrate(db); err != nil {
			return err
		}
	}
	return nil
}
