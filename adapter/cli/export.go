package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/queries"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the latest plan to ICS (iCalendar)",
	Long: `Export the latest plan to ICS (iCalendar) format for import into
Google Calendar, Outlook, Apple Calendar, and other calendar apps.

Examples:
  studyflow export --format ics              # Export to stdout
  studyflow export --format ics -o plan.ics  # Export to file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("export requires a database connection.")
			return nil
		}

		switch exportFormat {
		case "ics", "ical":
			return exportICS(cmd, app)
		default:
			return fmt.Errorf("unsupported format: %s (supported: ics)", exportFormat)
		}
	},
}

func exportICS(cmd *cobra.Command, app *App) error {
	body, err := app.Container.ExportICSHandler.Handle(cmd.Context(), queries.ExportICSQuery{Owner: app.OwnerID})
	if err != nil {
		return fmt.Errorf("failed to export plan: %w", err)
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(body), 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported plan to %s\n", exportOutput)
		return nil
	}

	fmt.Print(body)
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "ics", "export format (ics)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
