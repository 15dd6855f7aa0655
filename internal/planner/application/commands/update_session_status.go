package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
)

// UpdateSessionStatusCommand mutates a single session inside the latest
// plan for an owner.
type UpdateSessionStatusCommand struct {
	Owner     uuid.UUID
	SessionID uuid.UUID
	Status    pdomain.SessionStatus
}

func (UpdateSessionStatusCommand) CommandName() string { return "planner.update_session_status" }

// UpdateSessionStatusHandler applies the mutation against whatever plan
// is currently latest, not a version pinned when the caller first read it.
type UpdateSessionStatusHandler struct {
	plans     pdomain.PlanRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

func NewUpdateSessionStatusHandler(plans pdomain.PlanRepository, publisher eventbus.Publisher, logger *slog.Logger) *UpdateSessionStatusHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateSessionStatusHandler{plans: plans, publisher: publisher, logger: logger}
}

// Handle returns the planVersion the update was applied against, so a
// caller can detect a superseding rebuild racing the update.
func (h *UpdateSessionStatusHandler) Handle(ctx context.Context, cmd UpdateSessionStatusCommand) (int, error) {
	if !cmd.Status.Valid() {
		return 0, pdomain.ErrInvalidStatus
	}

	planVersion, err := h.plans.UpdateSessionStatus(ctx, cmd.Owner, cmd.SessionID, cmd.Status)
	if err != nil {
		return 0, err
	}

	event := pdomain.NewSessionStatusChanged(cmd.Owner, cmd.SessionID, cmd.Status)
	publishEvent(ctx, h.publisher, h.logger, cmd.Owner, &event)

	return planVersion, nil
}
