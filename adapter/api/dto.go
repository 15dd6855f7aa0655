package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/services"
	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

// This file centralizes the one boundary encoder between storage's
// snake_case model and the wire's camelCase JSON, per the naming
// asymmetry the planner's design notes call out.

type sessionDTO struct {
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

type unscheduledTaskDTO struct {
	ID               uuid.UUID `json:"id"`
	Subject          string    `json:"subject"`
	Title            string    `json:"title"`
	ShortfallMinutes int       `json:"shortfallMinutes"`
}

type suggestionDTO struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type planRecordDTO struct {
	ID               uuid.UUID            `json:"id"`
	Owner            uuid.UUID            `json:"owner"`
	PlanVersion      int                  `json:"planVersion"`
	Sessions         []sessionDTO         `json:"sessions"`
	UnscheduledTasks []unscheduledTaskDTO `json:"unscheduledTasks"`
	Suggestions      []suggestionDTO      `json:"suggestions"`
	GeneratedAt      time.Time            `json:"generatedAt"`
}

func toPlanRecordDTO(p *pdomain.PlanRecord) planRecordDTO {
	dto := planRecordDTO{
		ID:               p.ID,
		Owner:            p.Owner,
		PlanVersion:      p.PlanVersion,
		Sessions:         make([]sessionDTO, 0, len(p.Sessions)),
		UnscheduledTasks: make([]unscheduledTaskDTO, 0, len(p.UnscheduledTasks)),
		Suggestions:      make([]suggestionDTO, 0, len(p.Suggestions)),
		GeneratedAt:      p.GeneratedAt,
	}
	for _, s := range p.Sessions {
		dto.Sessions = append(dto.Sessions, sessionDTO{
			ID:              s.ID,
			Source:          string(s.Source),
			TaskID:          s.TaskID,
			HabitID:         s.HabitID,
			Subject:         s.Subject,
			Title:           s.Title,
			PlannedStart:    s.PlannedStart,
			PlannedEnd:      s.PlannedEnd,
			BufferMinutes:   s.BufferMinutes,
			Status:          string(s.Status),
			CompletedAt:     s.CompletedAt,
			Checklist:       s.Checklist,
			SuccessCriteria: s.SuccessCriteria,
			MilestoneTitle:  s.MilestoneTitle,
			PlanVersion:     s.PlanVersion,
		})
	}
	for _, u := range p.UnscheduledTasks {
		dto.UnscheduledTasks = append(dto.UnscheduledTasks, unscheduledTaskDTO{
			ID:               u.ID,
			Subject:          u.Subject,
			Title:            u.Title,
			ShortfallMinutes: u.ShortfallMinutes,
		})
	}
	for _, sg := range p.Suggestions {
		dto.Suggestions = append(dto.Suggestions, suggestionDTO{Type: string(sg.Type), Message: sg.Message})
	}
	return dto
}

type planMetricsDTO struct {
	RangeStart       time.Time `json:"rangeStart"`
	RangeEnd         time.Time `json:"rangeEnd"`
	TotalSessions    int       `json:"totalSessions"`
	DoneSessions     int       `json:"doneSessions"`
	CompletionRate   float64   `json:"completionRate"`
	FeasibilityScore int       `json:"feasibilityScore"`
	Reasons          []string  `json:"reasons,omitempty"`
}

func toPlanMetricsDTO(m services.PlanMetrics) planMetricsDTO {
	return planMetricsDTO{
		RangeStart:       m.RangeStart,
		RangeEnd:         m.RangeEnd,
		TotalSessions:    m.TotalSessions,
		DoneSessions:     m.DoneSessions,
		CompletionRate:   m.CompletionRate,
		FeasibilityScore: m.FeasibilityScore,
		Reasons:          m.Reasons,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type okResponse struct {
	OK          bool `json:"ok"`
	PlanVersion int  `json:"planVersion"`
}

type caldavExportResponseDTO struct {
	Pushed int `json:"pushed"`
	Failed int `json:"failed"`
}
