package persistence_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/planner/infrastructure/persistence"
)

func TestHabitRepository_SaveAndListRoundTrips(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewHabitRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	weekday := 2
	habit, err := pdomain.NewHabit(pdomain.NewHabitParams{
		Owner: owner, Name: "Flashcards", Cadence: pdomain.CadenceWeekly, Weekday: &weekday,
		Minutes: 20, Preset: "short", PreferredStart: "07:00", EnergyWindow: "morning",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, habit))

	habits, err := repo.ListHabits(ctx, owner)
	require.NoError(t, err)
	require.Len(t, habits, 1)

	got := habits[0]
	assert.Equal(t, habit.ID(), got.ID())
	assert.Equal(t, "Flashcards", got.Name())
	assert.Equal(t, pdomain.CadenceWeekly, got.Cadence())
	require.NotNil(t, got.Weekday())
	assert.Equal(t, 2, *got.Weekday())
	assert.Equal(t, 20, got.Minutes())
}

func TestHabitRepository_DailyHabitHasNilWeekday(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewHabitRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	habit, err := pdomain.NewHabit(pdomain.NewHabitParams{
		Owner: owner, Name: "Review", Cadence: pdomain.CadenceDaily, Minutes: 15,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, habit))

	habits, err := repo.ListHabits(ctx, owner)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Nil(t, habits[0].Weekday())
}

func TestHabitRepository_ListHabitsScopedToOwner(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewHabitRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	ownerA, ownerB := uuid.New(), uuid.New()
	habitA, err := pdomain.NewHabit(pdomain.NewHabitParams{Owner: ownerA, Name: "A", Cadence: pdomain.CadenceDaily, Minutes: 10})
	require.NoError(t, err)
	habitB, err := pdomain.NewHabit(pdomain.NewHabitParams{Owner: ownerB, Name: "B", Cadence: pdomain.CadenceDaily, Minutes: 10})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, habitA))
	require.NoError(t, repo.Save(ctx, habitB))

	habits, err := repo.ListHabits(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "A", habits[0].Name())
}
