package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studyflow/internal/shared/domain"
)

// Milestone is a named sub-allocation of a task's total effort. When a task
// declares milestones the scheduler treats each one as its own placement
// unit instead of spreading the task's minutes freely across buckets.
type Milestone struct {
	Title            string
	MinutesEstimate  int
}

// Task is a unit of study work owned by a single owner identity.
type Task struct {
	domain.BaseAggregateRoot
	owner            uuid.UUID
	subject          string
	title            string
	deadline         time.Time
	timezone         string
	difficulty       int
	importance       *int
	estimatedMinutes int
	progressMinutes  int
	successCriteria  []string
	contentFocus     string
	milestones       []Milestone
}

// NewTaskParams carries the fields needed to create a Task; kept as a
// struct rather than a long positional constructor because the owner
// collaborator (outside this core) is expected to fill every field from a
// create-task request.
type NewTaskParams struct {
	Owner            uuid.UUID
	Subject          string
	Title            string
	Deadline         time.Time
	Timezone         string
	Difficulty       int
	Importance       *int
	EstimatedMinutes int
	ProgressMinutes  int
	SuccessCriteria  []string
	ContentFocus     string
	Milestones       []Milestone

	// Clock anchors the deadline-in-the-past check; nil means the system
	// clock. Tests pin it the same way the planner pipeline pins its own.
	Clock Clock
}

// NewTask validates and constructs a Task aggregate.
func NewTask(p NewTaskParams) (*Task, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	clock := p.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	if p.Deadline.Before(clock.Now()) {
		return nil, ErrDeadlineInPast
	}
	if p.Difficulty < 1 || p.Difficulty > 5 {
		return nil, ErrInvalidDifficulty
	}
	if p.Importance != nil && (*p.Importance < 1 || *p.Importance > 3) {
		return nil, ErrInvalidImportance
	}
	if p.EstimatedMinutes <= 0 {
		return nil, ErrInvalidEstimate
	}
	if p.ProgressMinutes > p.EstimatedMinutes {
		return nil, ErrProgressExceeds
	}
	for _, m := range p.Milestones {
		if m.MinutesEstimate < 5 {
			return nil, ErrInvalidMilestone
		}
	}
	if p.Timezone == "" {
		p.Timezone = DefaultTimezone
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		owner:             p.Owner,
		subject:           strings.TrimSpace(p.Subject),
		title:             title,
		deadline:          p.Deadline,
		timezone:          p.Timezone,
		difficulty:        p.Difficulty,
		importance:        p.Importance,
		estimatedMinutes:  p.EstimatedMinutes,
		progressMinutes:   p.ProgressMinutes,
		successCriteria:   p.SuccessCriteria,
		contentFocus:      p.ContentFocus,
		milestones:        p.Milestones,
	}
	return t, nil
}

// RehydrateTask reconstructs a Task from persisted state without replaying
// domain events, the same pattern used by every teacher aggregate.
func RehydrateTask(
	id uuid.UUID,
	owner uuid.UUID,
	subject, title string,
	deadline time.Time,
	timezone string,
	difficulty int,
	importance *int,
	estimatedMinutes, progressMinutes int,
	successCriteria []string,
	contentFocus string,
	milestones []Milestone,
	createdAt, updatedAt time.Time,
) *Task {
	entity := domain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(entity, 0),
		owner:             owner,
		subject:           subject,
		title:             title,
		deadline:          deadline,
		timezone:          timezone,
		difficulty:        difficulty,
		importance:        importance,
		estimatedMinutes:  estimatedMinutes,
		progressMinutes:   progressMinutes,
		successCriteria:   successCriteria,
		contentFocus:      contentFocus,
		milestones:        milestones,
	}
}

func (t *Task) Owner() uuid.UUID             { return t.owner }
func (t *Task) Subject() string              { return t.subject }
func (t *Task) Title() string                { return t.title }
func (t *Task) Deadline() time.Time          { return t.deadline }
func (t *Task) Timezone() string             { return t.timezone }
func (t *Task) Difficulty() int              { return t.difficulty }
func (t *Task) Importance() *int             { return t.importance }
func (t *Task) EstimatedMinutes() int        { return t.estimatedMinutes }
func (t *Task) ProgressMinutes() int         { return t.progressMinutes }
func (t *Task) SuccessCriteria() []string    { return t.successCriteria }
func (t *Task) ContentFocus() string         { return t.contentFocus }
func (t *Task) Milestones() []Milestone      { return t.milestones }

// ImportanceOrZero returns the declared importance, or 0 when unset, the
// value the Task Prioritizer (C4) sorts on.
func (t *Task) ImportanceOrZero() int {
	if t.importance == nil {
		return 0
	}
	return *t.importance
}

// RemainingMinutes is the effort not yet accounted for by progress.
func (t *Task) RemainingMinutes() int {
	r := t.estimatedMinutes - t.progressMinutes
	if r < 0 {
		return 0
	}
	return r
}

// BaseCriteria returns the declared success criteria, or a single default
// entry when none were supplied, per the Task Scheduler's (C7) rule.
func (t *Task) BaseCriteria() []string {
	if len(t.successCriteria) > 0 {
		return t.successCriteria
	}
	return []string{"Complete session"}
}

// Checklist splits contentFocus into its non-empty lines, or nil when the
// field is empty or entirely blank.
func (t *Task) Checklist() []string {
	if strings.TrimSpace(t.contentFocus) == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(t.contentFocus, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}
