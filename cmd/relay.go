package cmd

import (
	"os/signal"
	"syscall"

	relayserver "shipflow/internal/adapters/in/relay"
	"shipflow/internal/adapters/out/smtp"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

// RelayCmd runs the mail relay that forwards registration notices to the
// administrator.
func RelayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Run the registration mail relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := LoadConfig()
			logger := newLogger()

			settings := relayserver.Settings{
				MailUser:     cfg.MailUser,
				MailPassword: cfg.MailPassword,
				AdminEmail:   cfg.AdminEmail,
			}
			if err := settings.Validate(); err != nil {
				log.Fatal(err)
			}

			sender := smtp.NewSender(smtp.Config{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.MailUser,
				Password: cfg.MailPassword,
			})
			e := relayserver.NewServer(sender, settings, logger).Router()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("relay listening", "port", cfg.RelayPort, "admin", cfg.AdminEmail)
			return run(ctx, e, ":"+cfg.RelayPort, cfg.ShutdownTimeout, noJobs{})
		},
	}
}

type noJobs struct{}

func (noJobs) StartAll() error { return nil }
func (noJobs) StopAll()        {}
