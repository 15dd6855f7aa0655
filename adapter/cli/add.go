package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

var (
	addDeadline   string
	addMinutes    int
	addDifficulty int
	addImportance int
	addSubject    string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task to plan against",
	Long: `Add a study task with a deadline and an effort estimate. Run
"studyflow plan rebuild" afterward to place it into sessions.

Examples:
  studyflow add "Finish problem set 3" --deadline 2026-08-10 --minutes 120
  studyflow add "Read chapter 5" --subject biology --minutes 45 --difficulty 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			fmt.Println("add requires a database connection.")
			return nil
		}

		deadline, err := time.Parse("2006-01-02", addDeadline)
		if err != nil {
			return fmt.Errorf("invalid --deadline, expected YYYY-MM-DD: %w", err)
		}
		// Deadlines are end-of-day; NewTask rejects anything already past.
		deadline = deadline.Add(23*time.Hour + 59*time.Minute)

		params := pdomain.NewTaskParams{
			Owner:            app.OwnerID,
			Subject:          addSubject,
			Title:            args[0],
			Deadline:         deadline,
			EstimatedMinutes: addMinutes,
			Difficulty:       addDifficulty,
		}
		if addImportance > 0 {
			params.Importance = &addImportance
		}

		task, err := pdomain.NewTask(params)
		if err != nil {
			return fmt.Errorf("invalid task: %w", err)
		}

		if err := app.Container.TaskWriter.Save(cmd.Context(), task); err != nil {
			return fmt.Errorf("failed to save task: %w", err)
		}

		fmt.Printf("Task added: %s (deadline %s, %d min)\n", args[0], deadline.Format("2006-01-02"), addMinutes)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "deadline date, YYYY-MM-DD (required)")
	addCmd.Flags().IntVar(&addMinutes, "minutes", 60, "estimated effort in minutes")
	addCmd.Flags().IntVar(&addDifficulty, "difficulty", 3, "difficulty, 1-5")
	addCmd.Flags().IntVar(&addImportance, "importance", 0, "importance, 1-3 (0 = unset)")
	addCmd.Flags().StringVar(&addSubject, "subject", "", "subject grouping")
	_ = addCmd.MarkFlagRequired("deadline")

	rootCmd.AddCommand(addCmd)
}
