package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
)

// RemoveHabitFromPlansCommand strips a deleted habit's sessions from every
// stored plan of its owner, symmetric to RemoveTaskFromPlansCommand.
type RemoveHabitFromPlansCommand struct {
	Owner   uuid.UUID
	HabitID uuid.UUID
}

func (RemoveHabitFromPlansCommand) CommandName() string { return "planner.remove_habit_from_plans" }

type RemoveHabitFromPlansHandler struct {
	plans     pdomain.PlanRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

func NewRemoveHabitFromPlansHandler(plans pdomain.PlanRepository, publisher eventbus.Publisher, logger *slog.Logger) *RemoveHabitFromPlansHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoveHabitFromPlansHandler{plans: plans, publisher: publisher, logger: logger}
}

func (h *RemoveHabitFromPlansHandler) Handle(ctx context.Context, cmd RemoveHabitFromPlansCommand) error {
	if err := h.plans.RemoveHabitFromPlans(ctx, cmd.Owner, cmd.HabitID); err != nil {
		return err
	}

	event := pdomain.NewHabitRemovedFromPlans(cmd.Owner, cmd.HabitID)
	publishEvent(ctx, h.publisher, h.logger, cmd.Owner, &event)
	return nil
}
