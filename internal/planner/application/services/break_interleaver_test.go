package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/planner/application/services"
)

func focusSession(start time.Time, minutes int) pdomain.Session {
	return pdomain.Session{
		ID:           uuid.New(),
		Source:       pdomain.SourceTask,
		PlannedStart: start,
		PlannedEnd:   start.Add(time.Duration(minutes) * time.Minute),
		Status:       pdomain.StatusPending,
	}
}

func TestBreakInterleaver_InsertsBreakOnSmallGap(t *testing.T) {
	interleaver := services.NewBreakInterleaver()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	sessions := []pdomain.Session{
		focusSession(start, 40),
		focusSession(start.Add(40*time.Minute), 40), // zero-gap, contiguous, load 80 < 90
	}

	result := interleaver.Interleave(sessions, 10, "Break", 1)

	require.Len(t, result, 3)
	assert.Equal(t, pdomain.SourceBreak, result[1].Source)
	assert.Equal(t, 10, result[1].Minutes())
	assert.True(t, result[2].PlannedStart.Equal(result[1].PlannedEnd))
}

func TestBreakInterleaver_NoBreakOnLargeGap(t *testing.T) {
	interleaver := services.NewBreakInterleaver()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	sessions := []pdomain.Session{
		focusSession(start, 45),
		focusSession(start.Add(2*time.Hour), 45),
	}

	result := interleaver.Interleave(sessions, 10, "Break", 1)

	require.Len(t, result, 2)
	assert.Equal(t, pdomain.SourceTask, result[1].Source)
}

func TestBreakInterleaver_LongerRestWhenLoadIsHigh(t *testing.T) {
	interleaver := services.NewBreakInterleaver()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	sessions := []pdomain.Session{
		focusSession(start, 50),
		focusSession(start.Add(50*time.Minute), 50), // load 100 >= 90
	}

	result := interleaver.Interleave(sessions, 10, "Break", 1)

	require.Len(t, result, 3)
	assert.Equal(t, 15, result[1].Minutes()) // 10 + 5 extra
}

func TestBreakInterleaver_ShiftsSuccessorsByBreakDuration(t *testing.T) {
	interleaver := services.NewBreakInterleaver()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	sessions := []pdomain.Session{
		focusSession(start, 45),
		focusSession(start.Add(45*time.Minute), 45),
		focusSession(start.Add(90*time.Minute), 45),
	}

	result := interleaver.Interleave(sessions, 10, "Break", 1)

	require.Len(t, result, 5)
	assert.Equal(t, pdomain.SourceBreak, result[1].Source)
	assert.Equal(t, pdomain.SourceBreak, result[3].Source)
	// each original session starts exactly where the previous entry ended
	assert.True(t, result[2].PlannedStart.Equal(result[1].PlannedEnd))
	assert.True(t, result[4].PlannedStart.Equal(result[3].PlannedEnd))
}

func TestBreakInterleaver_GroupsByDateIndependently(t *testing.T) {
	interleaver := services.NewBreakInterleaver()
	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	sessions := []pdomain.Session{
		focusSession(day1, 45),
		focusSession(day1.Add(45*time.Minute), 45),
		focusSession(day2, 45),
	}

	result := interleaver.Interleave(sessions, 10, "Break", 1)

	require.Len(t, result, 4)
	assert.True(t, result[3].PlannedStart.Equal(day2))
}

func TestBreakInterleaver_ResultIsSortedByPlannedStart(t *testing.T) {
	interleaver := services.NewBreakInterleaver()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	sessions := []pdomain.Session{
		focusSession(start, 45),
		focusSession(start.Add(45*time.Minute), 45),
	}

	result := interleaver.Interleave(sessions, 10, "Break", 1)

	for i := 1; i < len(result); i++ {
		assert.False(t, result[i].PlannedStart.Before(result[i-1].PlannedStart))
	}
}
