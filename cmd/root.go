package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand returns the shipflow CLI with every subcommand attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shipflow",
		Short: "Shipment sign-off, training and item master service",
		Long: `shipflow records outbound shipments and the signatures each party puts
on them, together with SOP training records, the item master and batch forms.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(RelayCmd())
	rootCmd.AddCommand(MigrateCmd())
	rootCmd.AddCommand(ImportItemsCmd())

	return rootCmd
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
