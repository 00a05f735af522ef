package cmd

import (
	"fmt"
	"os"

	"shipflow/internal/adapters/in/xlsx"
	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/domain/model/kernel"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ImportItemsCmd loads an item master workbook from disk, the same way the
// upload endpoint does.
func ImportItemsCmd() *cobra.Command {
	var environment string

	cmd := &cobra.Command{
		Use:   "import-items <file.xlsx>",
		Short: "Import the item master from an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := kernel.ParseEnvironment(environment)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := xlsx.ReadItems(f)
			if err != nil {
				return err
			}

			cfg := LoadConfig()
			logger := newLogger()

			primary, test, err := openDatabases(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = closeDatabases(primary, test) }()

			app, err := NewCompositionRoot(cfg, primary, test, logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			session, err := kernel.SystemSession(env)
			if err != nil {
				return err
			}
			command, err := commands.NewImportItemsCommand(session, rows)
			if err != nil {
				return err
			}

			handler := app.CreateImportItemsCommandHandler()
			result, err := handler.Handle(cmd.Context(), command)
			if err != nil {
				return err
			}

			printImportResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&environment, "env", "production", "environment to import into (production or test)")
	return cmd
}

func printImportResult(result commands.ImportItemsResult) {
	color.Green("imported: %d", result.Imported)
	if result.Failed == 0 {
		return
	}
	color.Red("failed:   %d", result.Failed)
	for _, msg := range result.Errors {
		fmt.Println("  " + color.New(color.FgYellow).Sprint(msg))
	}
}
