package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/planner/application/services"
)

func TestTaskScheduler_PlacesSingleTaskAcrossTwoChunks(t *testing.T) {
	scheduler := services.NewTaskScheduler(services.NewAllocator())
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := dayBucket(monday, 1, 180, 120)

	task := mustTask(t, pdomain.NewTaskParams{
		Title: "Problem set 4", Deadline: monday.AddDate(0, 0, 3), EstimatedMinutes: 90,
	})

	sessions, unscheduled, suggestions := scheduler.Schedule([]*services.DayBucket{bucket}, []*pdomain.Task{task}, 45, 0.1, 1)

	require.Len(t, sessions, 2)
	assert.Equal(t, 45, sessions[0].Minutes())
	assert.Equal(t, 45, sessions[1].Minutes())
	assert.Empty(t, unscheduled)
	assert.Empty(t, suggestions)
	assert.Equal(t, 5, sessions[0].BufferMinutes) // round(45*0.1) = round(4.5) = 5
}

func TestTaskScheduler_DeadlineCutoffExcludesLateBuckets(t *testing.T) {
	scheduler := services.NewTaskScheduler(services.NewAllocator())
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	mondayBucket := dayBucket(monday, 1, 180, 120)
	tuesdayBucket := dayBucket(tuesday, 2, 180, 120)

	task := mustTask(t, pdomain.NewTaskParams{
		Title: "Due tomorrow", Deadline: monday.Add(20 * time.Hour), EstimatedMinutes: 200,
	})

	sessions, unscheduled, suggestions := scheduler.Schedule(
		[]*services.DayBucket{mondayBucket, tuesdayBucket}, []*pdomain.Task{task}, 45, 0.0, 1,
	)

	for _, s := range sessions {
		assert.Equal(t, "2026-03-02", pdomain.DateKey(s.PlannedStart))
	}
	require.Len(t, unscheduled, 1)
	assert.Equal(t, 80, unscheduled[0].ShortfallMinutes) // 200 - 120 placed
	require.Len(t, suggestions, 1)
	assert.Equal(t, pdomain.SuggestionReduceDuration, suggestions[0].Type)
}

func TestTaskScheduler_NoEligibleBucketYieldsUnscheduled(t *testing.T) {
	scheduler := services.NewTaskScheduler(services.NewAllocator())
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := dayBucket(monday, 1, 180, 120)

	task := mustTask(t, pdomain.NewTaskParams{
		Title: "Already overdue", Deadline: monday.AddDate(0, 0, -1), EstimatedMinutes: 60,
	})

	sessions, unscheduled, suggestions := scheduler.Schedule([]*services.DayBucket{bucket}, []*pdomain.Task{task}, 45, 0.1, 1)

	assert.Empty(t, sessions)
	require.Len(t, unscheduled, 1)
	assert.Equal(t, 60, unscheduled[0].ShortfallMinutes)
	require.Len(t, suggestions, 1)
	assert.Equal(t, pdomain.SuggestionIncreaseFreeTime, suggestions[0].Type)
}

func TestTaskScheduler_SkipsFullyCompletedTask(t *testing.T) {
	scheduler := services.NewTaskScheduler(services.NewAllocator())
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := dayBucket(monday, 1, 180, 120)

	task := mustTask(t, pdomain.NewTaskParams{
		Title: "Done already", Deadline: monday.AddDate(0, 0, 3),
		EstimatedMinutes: 60, ProgressMinutes: 60,
	})

	sessions, unscheduled, suggestions := scheduler.Schedule([]*services.DayBucket{bucket}, []*pdomain.Task{task}, 45, 0.1, 1)

	assert.Empty(t, sessions)
	assert.Empty(t, unscheduled)
	assert.Empty(t, suggestions)
}

func TestTaskScheduler_MilestonesScheduledAsSeparateChunks(t *testing.T) {
	scheduler := services.NewTaskScheduler(services.NewAllocator())
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := dayBucket(monday, 1, 180, 120)

	task := mustTask(t, pdomain.NewTaskParams{
		Title: "Research paper", Deadline: monday.AddDate(0, 0, 3), EstimatedMinutes: 90,
		Milestones: []pdomain.Milestone{
			{Title: "Outline", MinutesEstimate: 30},
			{Title: "Draft", MinutesEstimate: 60},
		},
	})

	sessions, unscheduled, _ := scheduler.Schedule([]*services.DayBucket{bucket}, []*pdomain.Task{task}, 45, 0.0, 1)

	require.Len(t, sessions, 2)
	require.NotNil(t, sessions[0].MilestoneTitle)
	assert.Equal(t, "Outline", *sessions[0].MilestoneTitle)
	assert.Equal(t, 30, sessions[0].Minutes())
	require.NotNil(t, sessions[1].MilestoneTitle)
	assert.Equal(t, "Draft", *sessions[1].MilestoneTitle)
	assert.Equal(t, 60, sessions[1].Minutes())
	assert.Empty(t, unscheduled)
}

func TestTaskScheduler_DefaultFocusFallsBackTo45(t *testing.T) {
	scheduler := services.NewTaskScheduler(services.NewAllocator())
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := dayBucket(monday, 1, 180, 120)

	task := mustTask(t, pdomain.NewTaskParams{
		Title: "Problem set 4", Deadline: monday.AddDate(0, 0, 3), EstimatedMinutes: 45,
	})

	sessions, _, _ := scheduler.Schedule([]*services.DayBucket{bucket}, []*pdomain.Task{task}, 0, 0.0, 1)

	require.Len(t, sessions, 1)
	assert.Equal(t, 45, sessions[0].Minutes())
}

func TestTaskScheduler_SessionUsesTaskChecklistAndCriteria(t *testing.T) {
	scheduler := services.NewTaskScheduler(services.NewAllocator())
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := dayBucket(monday, 1, 180, 120)

	task := mustTask(t, pdomain.NewTaskParams{
		Title: "Problem set 4", Deadline: monday.AddDate(0, 0, 3), EstimatedMinutes: 45,
		ContentFocus:    "Review chapter 4\nWork through examples",
		SuccessCriteria: []string{"Finish all six problems"},
	})

	sessions, _, _ := scheduler.Schedule([]*services.DayBucket{bucket}, []*pdomain.Task{task}, 45, 0.0, 1)

	require.Len(t, sessions, 1)
	assert.Equal(t, []string{"Review chapter 4", "Work through examples"}, sessions[0].Checklist)
	assert.Equal(t, []string{"Finish all six problems"}, sessions[0].SuccessCriteria)
}
