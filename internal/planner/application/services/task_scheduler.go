package services

import (
	"fmt"
	"math"
	"time"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/google/uuid"
)

// TaskScheduler emits task sessions, respecting deadline cutoffs and
// optional milestones (C7).
type TaskScheduler struct {
	allocator *Allocator
}

func NewTaskScheduler(allocator *Allocator) *TaskScheduler {
	return &TaskScheduler{allocator: allocator}
}

// endOfDay is the last schedulable minute of a bucket's calendar day
// (23:59 local time), the cutoff a task's deadline is compared against.
func endOfDay(b *DayBucket) time.Time {
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), 23, 59, 0, 0, b.Date.Location())
}

// Schedule places prioritized tasks into eligible buckets, returning the
// emitted sessions, the tasks that could not be fully placed, and any
// suggestions generated along the way.
func (t *TaskScheduler) Schedule(buckets []*DayBucket, prioritized []*pdomain.Task, defaultFocus int, bufferPercent float64, planVersion int) ([]pdomain.Session, []pdomain.UnscheduledTask, []pdomain.Suggestion) {
	var sessions []pdomain.Session
	var unscheduled []pdomain.UnscheduledTask
	var suggestions []pdomain.Suggestion

	for _, task := range prioritized {
		remaining := task.RemainingMinutes()
		if remaining == 0 {
			continue
		}

		var eligible []*DayBucket
		for _, b := range buckets {
			if !endOfDay(b).After(task.Deadline()) {
				eligible = append(eligible, b)
			}
		}
		if len(eligible) == 0 {
			suggestions = append(suggestions, pdomain.Suggestion{
				Type:    pdomain.SuggestionIncreaseFreeTime,
				Message: fmt.Sprintf("task %s outside any slot", task.Title()),
			})
			unscheduled = append(unscheduled, pdomain.UnscheduledTask{
				ID:               task.ID(),
				Subject:          task.Subject(),
				Title:            task.Title(),
				ShortfallMinutes: remaining,
			})
			continue
		}

		baseCriteria := task.BaseCriteria()
		checklist := task.Checklist()

		emit := func(placement Placement, milestoneTitle *string) {
			sessions = append(sessions, pdomain.Session{
				ID:              uuid.New(),
				Source:          pdomain.SourceTask,
				TaskID:          taskIDPtr(task.ID()),
				Subject:         task.Subject(),
				Title:           task.Title(),
				PlannedStart:    placement.Start,
				PlannedEnd:      placement.End,
				BufferMinutes:   int(math.Round(float64(placement.Minutes) * bufferPercent)),
				Status:          pdomain.StatusPending,
				Checklist:       checklist,
				SuccessCriteria: baseCriteria,
				MilestoneTitle:  milestoneTitle,
				PlanVersion:     planVersion,
			})
		}

		if len(task.Milestones()) > 0 {
			bucketIdx := 0
			for _, ms := range task.Milestones() {
				msTitle := ms.Title
				msRemaining := ms.MinutesEstimate
				if remaining < msRemaining {
					msRemaining = remaining
				}

				for msRemaining > 0 && bucketIdx < len(eligible) {
					bucket := eligible[bucketIdx]
					placement, ok := t.allocator.Allocate(bucket, msRemaining, ms.MinutesEstimate, true)
					if !ok {
						bucketIdx++
						continue
					}
					emit(placement, &msTitle)
					remaining -= placement.Minutes
					msRemaining -= placement.Minutes
				}
			}
		} else {
			focus := defaultFocus
			if focus <= 0 {
				focus = 45
			}
			for _, bucket := range eligible {
				for remaining > 0 {
					placement, ok := t.allocator.Allocate(bucket, remaining, focus, false)
					if !ok {
						break
					}
					emit(placement, nil)
					remaining -= placement.Minutes
				}
				if remaining == 0 {
					break
				}
			}
		}

		if remaining > 0 {
			suggestions = append(suggestions, pdomain.Suggestion{
				Type:    pdomain.SuggestionReduceDuration,
				Message: fmt.Sprintf("task %s short by %d minutes", task.Title(), remaining),
			})
			unscheduled = append(unscheduled, pdomain.UnscheduledTask{
				ID:               task.ID(),
				Subject:          task.Subject(),
				Title:            task.Title(),
				ShortfallMinutes: remaining,
			})
		}
	}

	return sessions, unscheduled, suggestions
}

func taskIDPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
