package services

import (
	"fmt"
	"math"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/google/uuid"
)

// HabitScheduler emits habit sessions across buckets honoring cadence (C6).
type HabitScheduler struct {
	allocator *Allocator
}

func NewHabitScheduler(allocator *Allocator) *HabitScheduler {
	return &HabitScheduler{allocator: allocator}
}

// Schedule walks buckets in chronological order and, within each bucket,
// habits in declaration order, emitting pending Sessions plus suggestions
// for habits that could not be placed at all.
func (h *HabitScheduler) Schedule(buckets []*DayBucket, habits []*pdomain.Habit, bufferPercent float64, planVersion int) ([]pdomain.Session, []pdomain.Suggestion) {
	var sessions []pdomain.Session
	var suggestions []pdomain.Suggestion

	for _, bucket := range buckets {
		for _, habit := range habits {
			if !habit.EligibleOn(bucket.Weekday) {
				continue
			}

			remaining := habit.Minutes()
			placedAny := false
			for remaining > 0 {
				placement, ok := h.allocator.Allocate(bucket, remaining, habit.Minutes(), true)
				if !ok {
					break
				}
				placedAny = true
				remaining -= placement.Minutes

				habitID := habit.ID()
				sessions = append(sessions, pdomain.Session{
					ID:              uuid.New(),
					Source:          pdomain.SourceHabit,
					HabitID:         &habitID,
					Subject:         "Habit",
					Title:           habit.Name(),
					PlannedStart:    placement.Start,
					PlannedEnd:      placement.End,
					BufferMinutes:   int(math.Round(float64(placement.Minutes) * bufferPercent * 0.5)),
					Status:          pdomain.StatusPending,
					SuccessCriteria: []string{fmt.Sprintf("Sustain %d minutes", placement.Minutes)},
					PlanVersion:     planVersion,
				})
			}

			if !placedAny {
				suggestions = append(suggestions, pdomain.Suggestion{
					Type:    pdomain.SuggestionIncreaseFreeTime,
					Message: fmt.Sprintf("insufficient slot for habit %s on %s", habit.Name(), bucket.ISODate),
				})
			}
		}
	}

	return sessions, suggestions
}
