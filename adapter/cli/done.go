package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/planner/application/queries"
	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

var doneCmd = &cobra.Command{
	Use:   "done <session-id-prefix>",
	Short: "Mark a scheduled session as done",
	Long: `Quickly mark a scheduled session as done using just the first few
characters of its id.

Examples:
  studyflow done abc1      # Mark the session starting with abc1 done
  studyflow done           # List pending sessions`,
	Aliases: []string{"complete", "finish", "x"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("done requires a database connection.")
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

		if len(args) == 0 {
			return showPendingSessions(plan)
		}

		return completeSessionByPrefix(cmd, app, plan, strings.ToLower(args[0]))
	},
}

func showPendingSessions(plan *pdomain.PlanRecord) error {
	fmt.Println("\n  PENDING SESSIONS")
	fmt.Println(strings.Repeat("=", 50))
	for _, s := range plan.Sessions {
		if s.Status != pdomain.StatusPending {
			continue
		}
		fmt.Printf("  [%s] %s %s-%s\n", s.ID.String()[:8], s.Title, s.PlannedStart.Format("Mon 15:04"), s.PlannedEnd.Format("15:04"))
	}
	fmt.Println("\n  Usage: studyflow done <session-id-prefix>")
	return nil
}

func completeSessionByPrefix(cmd *cobra.Command, app *App, plan *pdomain.PlanRecord, prefix string) error {
	var matches []pdomain.Session
	for _, s := range plan.Sessions {
		if strings.HasPrefix(strings.ToLower(s.ID.String()), prefix) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		fmt.Printf("No session found matching '%s'\n", prefix)
		return nil
	case 1:
		return markSessionDone(cmd, app, matches[0])
	default:
		fmt.Println("Multiple sessions match. Be more specific:")
		for _, s := range matches {
			fmt.Printf("  [%s] %s\n", s.ID.String()[:8], s.Title)
		}
		return nil
	}
}

func markSessionDone(cmd *cobra.Command, app *App, session pdomain.Session) error {
	planVersion, err := app.Container.UpdateSessionStatusHandler.Handle(cmd.Context(), commands.UpdateSessionStatusCommand{
		Owner:     app.OwnerID,
		SessionID: session.ID,
		Status:    pdomain.StatusDone,
	})
	if err != nil {
		return fmt.Errorf("failed to mark session done: %w", err)
	}

	fmt.Printf("Session marked done: %s (plan v%d)\n", session.Title, planVersion)
	return nil
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
