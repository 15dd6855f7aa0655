package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/planner/infrastructure/persistence"
)

func samplePlan(owner uuid.UUID, taskID uuid.UUID) *pdomain.PlanRecord {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &pdomain.PlanRecord{
		ID:    uuid.New(),
		Owner: owner,
		Sessions: []pdomain.Session{
			{ID: uuid.New(), Source: pdomain.SourceTask, TaskID: &taskID, Subject: "Math", Title: "Problem set 4",
				PlannedStart: start, PlannedEnd: start.Add(45 * time.Minute), BufferMinutes: 5, Status: pdomain.StatusPending,
				SuccessCriteria: []string{"Finish 1-5"}},
		},
		UnscheduledTasks: []pdomain.UnscheduledTask{{ID: uuid.New(), Subject: "Chem", Title: "Lab report", ShortfallMinutes: 30}},
		Suggestions:      []pdomain.Suggestion{{Type: pdomain.SuggestionIncreaseFreeTime, Message: "Add more evening slots"}},
		GeneratedAt:      start,
	}
}

func TestPlanRepository_SaveAssignsMonotonicVersions(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewPlanRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	first := samplePlan(owner, uuid.New())
	require.NoError(t, repo.SavePlan(ctx, owner, first))
	assert.Equal(t, 1, first.PlanVersion)

	second := samplePlan(owner, uuid.New())
	require.NoError(t, repo.SavePlan(ctx, owner, second))
	assert.Equal(t, 2, second.PlanVersion)

	latest, err := repo.GetLatestPlan(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
}

func TestPlanRepository_GetLatestPlanRoundTripsSessionsAndSuggestions(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewPlanRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	taskID := uuid.New()
	plan := samplePlan(owner, taskID)
	require.NoError(t, repo.SavePlan(ctx, owner, plan))

	got, err := repo.GetLatestPlan(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Sessions, 1)
	assert.Equal(t, "Math", got.Sessions[0].Subject)
	require.NotNil(t, got.Sessions[0].TaskID)
	assert.Equal(t, taskID, *got.Sessions[0].TaskID)
	require.Len(t, got.UnscheduledTasks, 1)
	assert.Equal(t, 30, got.UnscheduledTasks[0].ShortfallMinutes)
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, pdomain.SuggestionIncreaseFreeTime, got.Suggestions[0].Type)
}

func TestPlanRepository_GetLatestPlanNilWhenNoneStored(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewPlanRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	got, err := repo.GetLatestPlan(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPlanRepository_UpdateSessionStatusStampsCompletedAt(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewPlanRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	plan := samplePlan(owner, uuid.New())
	require.NoError(t, repo.SavePlan(ctx, owner, plan))
	sessionID := plan.Sessions[0].ID

	version, err := repo.UpdateSessionStatus(ctx, owner, sessionID, pdomain.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	latest, err := repo.GetLatestPlan(ctx, owner)
	require.NoError(t, err)
	found := latest.FindSession(sessionID)
	require.NotNil(t, found)
	assert.Equal(t, pdomain.StatusDone, found.Status)
	assert.NotNil(t, found.CompletedAt)
}

func TestPlanRepository_UpdateSessionStatusErrorsWithoutAPlan(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewPlanRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err := repo.UpdateSessionStatus(ctx, uuid.New(), uuid.New(), pdomain.StatusDone)
	assert.ErrorIs(t, err, pdomain.ErrNoPlanYet)
}

func TestPlanRepository_UpdateSessionStatusErrorsWhenSessionMissing(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewPlanRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	plan := samplePlan(owner, uuid.New())
	require.NoError(t, repo.SavePlan(ctx, owner, plan))

	_, err := repo.UpdateSessionStatus(ctx, owner, uuid.New(), pdomain.StatusDone)
	assert.ErrorIs(t, err, pdomain.ErrSessionNotFound)
}

func TestPlanRepository_RemoveTaskFromPlansCascadesAcrossVersions(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewPlanRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	taskID := uuid.New()
	first := samplePlan(owner, taskID)
	second := samplePlan(owner, taskID)
	require.NoError(t, repo.SavePlan(ctx, owner, first))
	require.NoError(t, repo.SavePlan(ctx, owner, second))

	require.NoError(t, repo.RemoveTaskFromPlans(ctx, owner, taskID))

	plans, err := repo.ListPlans(ctx, owner)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	for _, p := range plans {
		assert.Empty(t, p.Sessions)
		assert.Len(t, p.UnscheduledTasks, 1) // samplePlan's unscheduled entry belongs to another task
	}
}

func TestPlanRepository_RemoveHabitFromPlansLeavesUnrelatedSessions(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewPlanRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	habitID := uuid.New()
	taskID := uuid.New()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	plan := &pdomain.PlanRecord{
		ID: uuid.New(), Owner: owner,
		Sessions: []pdomain.Session{
			{ID: uuid.New(), Source: pdomain.SourceHabit, HabitID: &habitID, PlannedStart: start, PlannedEnd: start.Add(20 * time.Minute)},
			{ID: uuid.New(), Source: pdomain.SourceTask, TaskID: &taskID, PlannedStart: start.Add(20 * time.Minute), PlannedEnd: start.Add(65 * time.Minute)},
		},
		GeneratedAt: start,
	}
	require.NoError(t, repo.SavePlan(ctx, owner, plan))

	require.NoError(t, repo.RemoveHabitFromPlans(ctx, owner, habitID))

	got, err := repo.GetLatestPlan(ctx, owner)
	require.NoError(t, err)
	require.Len(t, got.Sessions, 1)
	assert.Equal(t, pdomain.SourceTask, got.Sessions[0].Source)
}
