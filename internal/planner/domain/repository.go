package domain

import (
	"context"

	"github.com/google/uuid"
)

// TaskRepository reads task rows scoped to one owner. CRUD for tasks is a
// collaborator concern; the core only needs reads. The cascade used when a
// task is deleted elsewhere is PlanRepository.RemoveTaskFromPlans.
type TaskRepository interface {
	ListTasks(ctx context.Context, owner uuid.UUID) ([]*Task, error)
}

// HabitRepository reads habit rows scoped to one owner.
type HabitRepository interface {
	ListHabits(ctx context.Context, owner uuid.UUID) ([]*Habit, error)
}

// SlotRepository reads free-slot rows scoped to one owner.
type SlotRepository interface {
	ListSlots(ctx context.Context, owner uuid.UUID) ([]FreeSlot, error)
}

// SettingsRepository reads and provisions per-owner settings.
type SettingsRepository interface {
	GetSettings(ctx context.Context, owner uuid.UUID) (Settings, error)
}

// FeedbackRepository reads feedback rows scoped to one owner, ascending by
// submittedAt as required by the Feedback Tuner (C9).
type FeedbackRepository interface {
	ListFeedback(ctx context.Context, owner uuid.UUID) ([]Feedback, error)
}

// PlanRepository is the Plan Store (C10): it persists PlanRecords keyed by
// owner, mutates session status, and cascades deletions.
type PlanRepository interface {
	GetLatestPlan(ctx context.Context, owner uuid.UUID) (*PlanRecord, error)
	ListPlans(ctx context.Context, owner uuid.UUID) ([]*PlanRecord, error)
	SavePlan(ctx context.Context, owner uuid.UUID, plan *PlanRecord) error
	UpdateSessionStatus(ctx context.Context, owner, sessionID uuid.UUID, status SessionStatus) (planVersion int, err error)
	RemoveTaskFromPlans(ctx context.Context, owner, taskID uuid.UUID) error
	RemoveHabitFromPlans(ctx context.Context, owner, habitID uuid.UUID) error
}
