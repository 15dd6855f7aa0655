// Package persistence implements the Plan Store (C10) and reference
// Task/Habit/Slot/Settings/Feedback repositories against the shared
// driver-agnostic database.Executor abstraction.
package persistence

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

// sessionRow / unscheduledRow / suggestionRow are the JSON-serializable
// shapes stored in the plan_records table's blob columns. A PlanRecord's
// sessions are only ever read or rewritten wholesale by a rebuild or a
// cascade, never queried piecemeal by SQL, so a JSON column keeps the
// schema small without losing the transactional version-increment
// guarantee, which lives on the plan_records row itself.
type sessionRow struct {
	ID              uuid.UUID  `json:"id"`
	Source          string     `json:"source"`
	TaskID          *uuid.UUID `json:"taskId,omitempty"`
	HabitID         *uuid.UUID `json:"habitId,omitempty"`
	Subject         string     `json:"subject"`
	Title           string     `json:"title"`
	PlannedStart    time.Time  `json:"plannedStart"`
	PlannedEnd      time.Time  `json:"plannedEnd"`
	BufferMinutes   int        `json:"bufferMinutes"`
	Status          string     `json:"status"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	Checklist       []string   `json:"checklist,omitempty"`
	SuccessCriteria []string   `json:"successCriteria,omitempty"`
	MilestoneTitle  *string    `json:"milestoneTitle,omitempty"`
	PlanVersion     int        `json:"planVersion"`
}

type unscheduledRow struct {
	ID               uuid.UUID `json:"id"`
	Subject          string    `json:"subject"`
	Title            string    `json:"title"`
	ShortfallMinutes int       `json:"shortfallMinutes"`
}

type suggestionRow struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func encodeSessions(sessions []pdomain.Session) ([]byte, error) {
	rows := make([]sessionRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, sessionRow{
			ID: s.ID, Source: string(s.Source), TaskID: s.TaskID, HabitID: s.HabitID,
			Subject: s.Subject, Title: s.Title, PlannedStart: s.PlannedStart, PlannedEnd: s.PlannedEnd,
			BufferMinutes: s.BufferMinutes, Status: string(s.Status), CompletedAt: s.CompletedAt,
			Checklist: s.Checklist, SuccessCriteria: s.SuccessCriteria, MilestoneTitle: s.MilestoneTitle,
			PlanVersion: s.PlanVersion,
		})
	}
	return json.Marshal(rows)
}

func decodeSessions(data []byte) ([]pdomain.Session, error) {
	var rows []sessionRow
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	sessions := make([]pdomain.Session, 0, len(rows))
	for _, r := range rows {
		sessions = append(sessions, pdomain.Session{
			ID: r.ID, Source: pdomain.SessionSource(r.Source), TaskID: r.TaskID, HabitID: r.HabitID,
			Subject: r.Subject, Title: r.Title, PlannedStart: r.PlannedStart, PlannedEnd: r.PlannedEnd,
			BufferMinutes: r.BufferMinutes, Status: pdomain.SessionStatus(r.Status), CompletedAt: r.CompletedAt,
			Checklist: r.Checklist, SuccessCriteria: r.SuccessCriteria, MilestoneTitle: r.MilestoneTitle,
			PlanVersion: r.PlanVersion,
		})
	}
	return sessions, nil
}

func encodeUnscheduled(tasks []pdomain.UnscheduledTask) ([]byte, error) {
	rows := make([]unscheduledRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, unscheduledRow{ID: t.ID, Subject: t.Subject, Title: t.Title, ShortfallMinutes: t.ShortfallMinutes})
	}
	return json.Marshal(rows)
}

func decodeUnscheduled(data []byte) ([]pdomain.UnscheduledTask, error) {
	var rows []unscheduledRow
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	tasks := make([]pdomain.UnscheduledTask, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, pdomain.UnscheduledTask{ID: r.ID, Subject: r.Subject, Title: r.Title, ShortfallMinutes: r.ShortfallMinutes})
	}
	return tasks, nil
}

func encodeSuggestions(suggestions []pdomain.Suggestion) ([]byte, error) {
	rows := make([]suggestionRow, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, suggestionRow{Type: string(s.Type), Message: s.Message})
	}
	return json.Marshal(rows)
}

func decodeSuggestions(data []byte) ([]pdomain.Suggestion, error) {
	var rows []suggestionRow
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	suggestions := make([]pdomain.Suggestion, 0, len(rows))
	for _, r := range rows {
		suggestions = append(suggestions, pdomain.Suggestion{Type: pdomain.SuggestionType(r.Type), Message: r.Message})
	}
	return suggestions, nil
}
