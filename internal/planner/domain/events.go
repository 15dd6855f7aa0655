package domain

import (
	"github.com/google/uuid"

	shared "github.com/felixgeelhaar/studyflow/internal/shared/domain"
)

// PlanGenerated is published whenever a rebuild successfully persists a
// new PlanRecord.
type PlanGenerated struct {
	shared.BaseEvent
	Owner       uuid.UUID
	PlanVersion int
	SessionCount int
}

func NewPlanGenerated(owner uuid.UUID, planID uuid.UUID, planVersion, sessionCount int) PlanGenerated {
	return PlanGenerated{
		BaseEvent:    shared.NewBaseEvent(planID, "PlanRecord", "studyflow.plan.generated"),
		Owner:        owner,
		PlanVersion:  planVersion,
		SessionCount: sessionCount,
	}
}

// SessionStatusChanged is published when a session's status is mutated.
type SessionStatusChanged struct {
	shared.BaseEvent
	Owner     uuid.UUID
	SessionID uuid.UUID
	Status    SessionStatus
}

func NewSessionStatusChanged(owner, sessionID uuid.UUID, status SessionStatus) SessionStatusChanged {
	return SessionStatusChanged{
		BaseEvent: shared.NewBaseEvent(sessionID, "Session", "studyflow.session.status_changed"),
		Owner:     owner,
		SessionID: sessionID,
		Status:    status,
	}
}

// TaskRemovedFromPlans is published after a task's sessions are stripped
// from every stored plan of its owner.
type TaskRemovedFromPlans struct {
	shared.BaseEvent
	Owner  uuid.UUID
	TaskID uuid.UUID
}

func NewTaskRemovedFromPlans(owner, taskID uuid.UUID) TaskRemovedFromPlans {
	return TaskRemovedFromPlans{
		BaseEvent: shared.NewBaseEvent(taskID, "Task", "studyflow.task.removed_from_plans"),
		Owner:     owner,
		TaskID:    taskID,
	}
}

// HabitRemovedFromPlans is published after a habit's sessions are stripped
// from every stored plan of its owner.
type HabitRemovedFromPlans struct {
	shared.BaseEvent
	Owner   uuid.UUID
	HabitID uuid.UUID
}

func NewHabitRemovedFromPlans(owner, habitID uuid.UUID) HabitRemovedFromPlans {
	return HabitRemovedFromPlans{
		BaseEvent: shared.NewBaseEvent(habitID, "Habit", "studyflow.habit.removed_from_plans"),
		Owner:     owner,
		HabitID:   habitID,
	}
}
