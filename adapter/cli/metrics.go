package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/planner/application/services"
)

var metricsRange string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show plan completion and feasibility metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("metrics requires a database connection.")
			return nil
		}

		result, err := app.Container.GetMetricsHandler.Handle(cmd.Context(), queries.GetMetricsQuery{
			Owner: app.OwnerID,
			Range: services.MetricsRange(metricsRange),
		})
		if err != nil {
			return fmt.Errorf("failed to compute metrics: %w", err)
		}

		fmt.Printf("\n  METRICS (%s - %s)\n", result.RangeStart.Format(time.DateOnly), result.RangeEnd.Format(time.DateOnly))
		fmt.Printf("  sessions:     %d total, %d done (%.1f%%)\n", result.TotalSessions, result.DoneSessions, result.CompletionRate)
		fmt.Printf("  feasibility:  %d/100\n", result.FeasibilityScore)
		for _, reason := range result.Reasons {
			fmt.Printf("    - %s\n", reason)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVarP(&metricsRange, "range", "r", "day", "metrics range: day, week, or month")
	rootCmd.AddCommand(metricsCmd)
}
