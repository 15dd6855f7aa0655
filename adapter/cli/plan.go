package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/planner/application/queries"
	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "View or rebuild the study plan",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the latest plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("plan show requires a database connection.")
			return nil
		}

		plan, err := app.Container.GetLatestPlanHandler.Handle(cmd.Context(), queries.GetLatestPlanQuery{Owner: app.OwnerID})
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}
		if plan == nil {
			fmt.Println("No plan yet. Run: studyflow plan rebuild")
			return nil
		}

		printPlan(plan)
		return nil
	},
}

var planRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the plan from tasks, habits, and free slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("plan rebuild requires a database connection.")
			return nil
		}

		plan, err := app.Container.RebuildPlanHandler.Handle(cmd.Context(), commands.RebuildPlanCommand{Owner: app.OwnerID})
		if err != nil {
			return fmt.Errorf("failed to rebuild plan: %w", err)
		}

		fmt.Printf("Plan rebuilt: version %d, %d sessions\n", plan.PlanVersion, len(plan.Sessions))
		printPlan(plan)
		return nil
	},
}

func printPlan(plan *pdomain.PlanRecord) {
	fmt.Printf("\n  PLAN v%d\n", plan.PlanVersion)
	fmt.Println("  " + strings.Repeat("=", 50))

	byDay := make(map[string][]pdomain.Session)
	var order []string
	for _, s := range plan.Sessions {
		key := pdomain.DateKey(s.PlannedStart)
		if _, ok := byDay[key]; !ok {
			order = append(order, key)
		}
		byDay[key] = append(byDay[key], s)
	}
	sort.Strings(order)

	for _, day := range order {
		fmt.Printf("\n  %s\n", day)
		sessions := byDay[day]
		sort.Slice(sessions, func(i, j int) bool { return sessions[i].PlannedStart.Before(sessions[j].PlannedStart) })
		for _, s := range sessions {
			fmt.Printf("    [%s] %s-%s %s (%s, %d min)\n",
				s.ID.String()[:8],
				s.PlannedStart.Format("15:04"), s.PlannedEnd.Format("15:04"),
				s.Title, s.Status, s.Minutes())
		}
	}

	if len(plan.UnscheduledTasks) > 0 {
		fmt.Println("\n  Unscheduled:")
		for _, u := range plan.UnscheduledTasks {
			fmt.Printf("    [%s] %s - short by %d min\n", u.ID.String()[:8], u.Title, u.ShortfallMinutes)
		}
	}

	if len(plan.Suggestions) > 0 {
		fmt.Println("\n  Suggestions:")
		for _, sg := range plan.Suggestions {
			fmt.Printf("    - (%s) %s\n", sg.Type, sg.Message)
		}
	}
	fmt.Println()
}

func init() {
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planRebuildCmd)
	rootCmd.AddCommand(planCmd)
}
