package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/services"
)

func newBucket(allowed int, segStart time.Time, segMinutes int) *services.DayBucket {
	return &services.DayBucket{
		ISODate:        "2026-03-02",
		AllowedMinutes: allowed,
		Segments: []*services.Segment{
			{Start: segStart, End: segStart.Add(time.Duration(segMinutes) * time.Minute)},
		},
	}
}

func TestAllocator_PlacesPreferredChunk(t *testing.T) {
	alloc := services.NewAllocator()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := newBucket(180, start, 120)

	placement, ok := alloc.Allocate(bucket, 90, 45, false)

	require.True(t, ok)
	assert.Equal(t, 45, placement.Minutes)
	assert.True(t, placement.Start.Equal(start))
	assert.Equal(t, 45, bucket.Used)
}

func TestAllocator_ClampsToMaxSession(t *testing.T) {
	alloc := services.NewAllocator()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := newBucket(300, start, 300)

	placement, ok := alloc.Allocate(bucket, 300, 200, false)

	require.True(t, ok)
	assert.Equal(t, services.MaxSession, placement.Minutes)
}

func TestAllocator_RefusesChunkBelowMinWhenMoreRemains(t *testing.T) {
	alloc := services.NewAllocator()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := newBucket(180, start, 20) // only 20 minutes of room in the one segment

	_, ok := alloc.Allocate(bucket, 90, 45, false)

	assert.False(t, ok)
}

func TestAllocator_AllowsShorterThanMinWhenFlagged(t *testing.T) {
	alloc := services.NewAllocator()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := newBucket(180, start, 20)

	placement, ok := alloc.Allocate(bucket, 90, 45, true)

	require.True(t, ok)
	assert.Equal(t, 20, placement.Minutes)
}

func TestAllocator_AllowsFinalChunkBelowMinWhenRemainingIsSmall(t *testing.T) {
	alloc := services.NewAllocator()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := newBucket(180, start, 120)

	// remaining (10) is itself below MinSession, so the short-chunk guard
	// does not apply even with allowShorterThanMin=false.
	placement, ok := alloc.Allocate(bucket, 10, 45, false)

	require.True(t, ok)
	assert.Equal(t, 10, placement.Minutes)
}

func TestAllocator_StopsAtDailyAllowance(t *testing.T) {
	alloc := services.NewAllocator()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := newBucket(30, start, 120)

	placement, ok := alloc.Allocate(bucket, 90, 45, false)
	require.True(t, ok)
	assert.Equal(t, 30, placement.Minutes)

	_, ok = alloc.Allocate(bucket, 60, 45, false)
	assert.False(t, ok)
}

func TestAllocator_SkipsExhaustedSegments(t *testing.T) {
	alloc := services.NewAllocator()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := &services.DayBucket{
		AllowedMinutes: 200,
		Segments: []*services.Segment{
			{Start: start, End: start.Add(10 * time.Minute), Used: 10},
			{Start: start.Add(time.Hour), End: start.Add(time.Hour + 60*time.Minute)},
		},
	}

	placement, ok := alloc.Allocate(bucket, 45, 45, false)

	require.True(t, ok)
	assert.True(t, placement.Start.Equal(start.Add(time.Hour)))
}

func TestAllocator_SubsequentPlacementStartsAfterPrevious(t *testing.T) {
	alloc := services.NewAllocator()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bucket := newBucket(180, start, 120)

	first, ok := alloc.Allocate(bucket, 90, 45, false)
	require.True(t, ok)

	second, ok := alloc.Allocate(bucket, 45, 45, false)
	require.True(t, ok)

	assert.True(t, second.Start.Equal(first.End))
}
