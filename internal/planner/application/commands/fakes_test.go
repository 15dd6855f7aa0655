package commands_test

import (
	"context"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

type fakeTaskRepo struct {
	tasks []*pdomain.Task
	err   error
}

func (f *fakeTaskRepo) ListTasks(ctx context.Context, owner uuid.UUID) ([]*pdomain.Task, error) {
	return f.tasks, f.err
}

type fakeHabitRepo struct {
	habits []*pdomain.Habit
	err    error
}

func (f *fakeHabitRepo) ListHabits(ctx context.Context, owner uuid.UUID) ([]*pdomain.Habit, error) {
	return f.habits, f.err
}

type fakeSlotRepo struct {
	slots []pdomain.FreeSlot
	err   error
}

func (f *fakeSlotRepo) ListSlots(ctx context.Context, owner uuid.UUID) ([]pdomain.FreeSlot, error) {
	return f.slots, f.err
}

type fakeSettingsRepo struct {
	settings pdomain.Settings
	err      error
}

func (f *fakeSettingsRepo) GetSettings(ctx context.Context, owner uuid.UUID) (pdomain.Settings, error) {
	return f.settings, f.err
}

type fakeFeedbackRepo struct {
	feedback []pdomain.Feedback
	err      error
}

func (f *fakeFeedbackRepo) ListFeedback(ctx context.Context, owner uuid.UUID) ([]pdomain.Feedback, error) {
	return f.feedback, f.err
}

// fakePlanRepo is an in-memory stand-in for the Plan Store, good enough to
// exercise version monotonicity and cascade behavior without a database.
type fakePlanRepo struct {
	byOwner map[uuid.UUID][]*pdomain.PlanRecord
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{byOwner: make(map[uuid.UUID][]*pdomain.PlanRecord)}
}

func (f *fakePlanRepo) GetLatestPlan(ctx context.Context, owner uuid.UUID) (*pdomain.PlanRecord, error) {
	plans := f.byOwner[owner]
	if len(plans) == 0 {
		return nil, nil
	}
	return plans[len(plans)-1], nil
}

func (f *fakePlanRepo) ListPlans(ctx context.Context, owner uuid.UUID) ([]*pdomain.PlanRecord, error) {
	return f.byOwner[owner], nil
}

func (f *fakePlanRepo) SavePlan(ctx context.Context, owner uuid.UUID, plan *pdomain.PlanRecord) error {
	plan.PlanVersion = len(f.byOwner[owner]) + 1
	plan.Owner = owner
	f.byOwner[owner] = append(f.byOwner[owner], plan)
	return nil
}

func (f *fakePlanRepo) UpdateSessionStatus(ctx context.Context, owner, sessionID uuid.UUID, status pdomain.SessionStatus) (int, error) {
	plans := f.byOwner[owner]
	if len(plans) == 0 {
		return 0, pdomain.ErrNoPlanYet
	}
	latest := plans[len(plans)-1]
	session := latest.FindSession(sessionID)
	if session == nil {
		return 0, pdomain.ErrSessionNotFound
	}
	session.Status = status
	return latest.PlanVersion, nil
}

func (f *fakePlanRepo) RemoveTaskFromPlans(ctx context.Context, owner, taskID uuid.UUID) error {
	for _, plan := range f.byOwner[owner] {
		plan.RemoveSessionsByTask(taskID)
	}
	return nil
}

func (f *fakePlanRepo) RemoveHabitFromPlans(ctx context.Context, owner, habitID uuid.UUID) error {
	for _, plan := range f.byOwner[owner] {
		plan.RemoveSessionsByHabit(habitID)
	}
	return nil
}

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	f.published = append(f.published, routingKey)
	return nil
}

func (f *fakePublisher) Close() error { return nil }
