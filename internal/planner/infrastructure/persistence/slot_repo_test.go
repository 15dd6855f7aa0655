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

func TestSlotRepository_SaveAndListRoundTrips(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewSlotRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	slot, err := pdomain.NewFreeSlot(uuid.New(), owner, 1, "08:00", "12:00")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, slot))

	slots, err := repo.ListSlots(ctx, owner)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, slot.ID(), slots[0].ID())
	assert.Equal(t, 1, slots[0].Weekday())
	assert.Equal(t, "08:00", slots[0].StartTime())
	assert.Equal(t, "12:00", slots[0].EndTime())
}

func TestSlotRepository_SaveIsUpsertByID(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewSlotRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := uuid.New()
	id := uuid.New()
	slot, err := pdomain.NewFreeSlot(id, owner, 1, "08:00", "12:00")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, slot))

	updated, err := pdomain.NewFreeSlot(id, owner, 1, "09:00", "11:00")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, updated))

	slots, err := repo.ListSlots(ctx, owner)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime())
	assert.Equal(t, "11:00", slots[0].EndTime())
}

func TestSlotRepository_ListSlotsScopedToOwner(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	repo := persistence.NewSlotRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	ownerA, ownerB := uuid.New(), uuid.New()
	slotA, err := pdomain.NewFreeSlot(uuid.New(), ownerA, 0, "08:00", "09:00")
	require.NoError(t, err)
	slotB, err := pdomain.NewFreeSlot(uuid.New(), ownerB, 0, "08:00", "09:00")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, slotA))
	require.NoError(t, repo.Save(ctx, slotB))

	slots, err := repo.ListSlots(ctx, ownerA)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}
