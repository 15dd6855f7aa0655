package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
)

// RemoveTaskFromPlansCommand strips a deleted task's sessions from every
// stored plan of its owner. It is a cascade clean-up, not a rebuild: the
// next rebuild is what actually replaces the freed-up time.
type RemoveTaskFromPlansCommand struct {
	Owner  uuid.UUID
	TaskID uuid.UUID
}

func (RemoveTaskFromPlansCommand) CommandName() string { return "planner.remove_task_from_plans" }

type RemoveTaskFromPlansHandler struct {
	plans     pdomain.PlanRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

func NewRemoveTaskFromPlansHandler(plans pdomain.PlanRepository, publisher eventbus.Publisher, logger *slog.Logger) *RemoveTaskFromPlansHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoveTaskFromPlansHandler{plans: plans, publisher: publisher, logger: logger}
}

func (h *RemoveTaskFromPlansHandler) Handle(ctx context.Context, cmd RemoveTaskFromPlansCommand) error {
	if err := h.plans.RemoveTaskFromPlans(ctx, cmd.Owner, cmd.TaskID); err != nil {
		return err
	}

	event := pdomain.NewTaskRemovedFromPlans(cmd.Owner, cmd.TaskID)
	publishEvent(ctx, h.publisher, h.logger, cmd.Owner, &event)
	return nil
}
