package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionSource identifies what a Session was generated from.
type SessionSource string

const (
	SourceTask  SessionSource = "task"
	SourceHabit SessionSource = "habit"
	SourceBreak SessionSource = "break"
)

// SessionStatus is the lifecycle state of a scheduled session.
type SessionStatus string

const (
	StatusPending SessionStatus = "pending"
	StatusDone    SessionStatus = "done"
	StatusSkipped SessionStatus = "skipped"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusDone, StatusSkipped:
		return true
	default:
		return false
	}
}

// Session is a scheduled atom inside a PlanRecord: one task chunk, one
// habit chunk, or one break.
type Session struct {
	ID              uuid.UUID
	Source          SessionSource
	TaskID          *uuid.UUID
	HabitID         *uuid.UUID
	Subject         string
	Title           string
	PlannedStart    time.Time
	PlannedEnd      time.Time
	BufferMinutes   int
	Status          SessionStatus
	CompletedAt     *time.Time
	Checklist       []string
	SuccessCriteria []string
	MilestoneTitle  *string
	PlanVersion     int
}

// Minutes is the session's planned duration.
func (s Session) Minutes() int {
	return int(s.PlannedEnd.Sub(s.PlannedStart).Minutes())
}

// UnscheduledTask is a snapshot of a task that could not be fully placed
// during a rebuild.
type UnscheduledTask struct {
	ID              uuid.UUID
	Subject         string
	Title           string
	ShortfallMinutes int
}

// SuggestionType is the fixed vocabulary of plan-generation nudges.
type SuggestionType string

const (
	SuggestionIncreaseFreeTime SuggestionType = "increase_free_time"
	SuggestionReduceDuration   SuggestionType = "reduce_duration"
)

// Suggestion is a human-readable nudge surfaced alongside a PlanRecord.
type Suggestion struct {
	Type    SuggestionType
	Message string
}

// PlanRecord is the immutable output of one rebuild. Only session-status
// mutations, and the cascading removal of stale task/habit references,
// are permitted after a plan is persisted.
type PlanRecord struct {
	ID               uuid.UUID
	Owner            uuid.UUID
	PlanVersion      int
	Sessions         []Session
	UnscheduledTasks []UnscheduledTask
	Suggestions      []Suggestion
	GeneratedAt      time.Time
}

// FindSession returns a pointer into Sessions for in-place mutation, or nil.
func (p *PlanRecord) FindSession(id uuid.UUID) *Session {
	for i := range p.Sessions {
		if p.Sessions[i].ID == id {
			return &p.Sessions[i]
		}
	}
	return nil
}

// RemoveSessionsByTask strips every session and unscheduled entry tied to
// the given task id, returning whether anything changed.
func (p *PlanRecord) RemoveSessionsByTask(taskID uuid.UUID) bool {
	changed := false
	kept := p.Sessions[:0:0]
	for _, s := range p.Sessions {
		if s.TaskID != nil && *s.TaskID == taskID {
			changed = true
			continue
		}
		kept = append(kept, s)
	}
	p.Sessions = kept

	keptUnscheduled := p.UnscheduledTasks[:0:0]
	for _, u := range p.UnscheduledTasks {
		if u.ID == taskID {
			changed = true
			continue
		}
		keptUnscheduled = append(keptUnscheduled, u)
	}
	p.UnscheduledTasks = keptUnscheduled
	return changed
}

// RemoveSessionsByHabit strips every session tied to the given habit id.
func (p *PlanRecord) RemoveSessionsByHabit(habitID uuid.UUID) bool {
	changed := false
	kept := p.Sessions[:0:0]
	for _, s := range p.Sessions {
		if s.HabitID != nil && *s.HabitID == habitID {
			changed = true
			continue
		}
		kept = append(kept, s)
	}
	p.Sessions = kept
	return changed
}
