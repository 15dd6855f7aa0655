package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/queries"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the latest plan to the configured CalDAV calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return errors.New("sync requires a database connection")
		}
		if app.Container.CalDAVExporter == nil {
			return errors.New("CalDAV export is not configured (set CALDAV_ENABLED=true)")
		}

		plan, err := app.Container.GetLatestPlanHandler.Handle(cmd.Context(), queries.GetLatestPlanQuery{Owner: app.OwnerID})
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}
		if plan == nil {
			fmt.Println("No plan yet. Run: studyflow plan rebuild")
			return nil
		}

		result, err := app.Container.CalDAVExporter.Push(cmd.Context(), plan)
		if err != nil {
			return fmt.Errorf("failed to push plan: %w", err)
		}
		app.Container.Metrics.Counter(observability.MetricCalDAVPushed, int64(result.Pushed))
		app.Container.Metrics.Counter(observability.MetricCalDAVFailed, int64(result.Failed))

		fmt.Printf("Synced sessions: pushed=%d failed=%d\n", result.Pushed, result.Failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
