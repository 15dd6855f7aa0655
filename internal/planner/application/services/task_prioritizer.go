package services

import (
	"sort"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

// TaskPrioritizer orders the task queue for the Task Scheduler (C4).
type TaskPrioritizer struct{}

func NewTaskPrioritizer() *TaskPrioritizer { return &TaskPrioritizer{} }

// Prioritize returns a new, stably sorted slice ordered ascending by
// (deadline, -importance, -difficulty, -estimatedMinutes).
func (TaskPrioritizer) Prioritize(tasks []*pdomain.Task) []*pdomain.Task {
	sorted := make([]*pdomain.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Deadline().Equal(b.Deadline()) {
			return a.Deadline().Before(b.Deadline())
		}
		if a.ImportanceOrZero() != b.ImportanceOrZero() {
			return a.ImportanceOrZero() > b.ImportanceOrZero()
		}
		if a.Difficulty() != b.Difficulty() {
			return a.Difficulty() > b.Difficulty()
		}
		return a.EstimatedMinutes() > b.EstimatedMinutes()
	})

	return sorted
}
