package queries_test

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

// fakePlanRepo answers the PlanRepository interface with a single canned
// plan; the mutation methods are unused by the read-only handlers under
// test here and simply panic if ever reached.
type fakePlanRepo struct {
	plan *pdomain.PlanRecord
	err  error
}

func (f *fakePlanRepo) GetLatestPlan(ctx context.Context, owner uuid.UUID) (*pdomain.PlanRecord, error) {
	return f.plan, f.err
}

func (f *fakePlanRepo) ListPlans(ctx context.Context, owner uuid.UUID) ([]*pdomain.PlanRecord, error) {
	if f.plan == nil {
		return nil, f.err
	}
	return []*pdomain.PlanRecord{f.plan}, f.err
}

func (f *fakePlanRepo) SavePlan(ctx context.Context, owner uuid.UUID, plan *pdomain.PlanRecord) error {
	panic("not used by query handlers")
}

func (f *fakePlanRepo) UpdateSessionStatus(ctx context.Context, owner, sessionID uuid.UUID, status pdomain.SessionStatus) (int, error) {
	panic("not used by query handlers")
}

func (f *fakePlanRepo) RemoveTaskFromPlans(ctx context.Context, owner, taskID uuid.UUID) error {
	panic("not used by query handlers")
}

func (f *fakePlanRepo) RemoveHabitFromPlans(ctx context.Context, owner, habitID uuid.UUID) error {
	panic("not used by query handlers")
}
