package queries

import (
	"context"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/planner/infrastructure/ics"
)

// ExportICSQuery renders the owner's latest plan to the iCalendar format.
type ExportICSQuery struct {
	Owner uuid.UUID
}

func (ExportICSQuery) QueryName() string { return "planner.export_ics" }

type ExportICSHandler struct {
	plans   pdomain.PlanRepository
	emitter *ics.Emitter
}

func NewExportICSHandler(plans pdomain.PlanRepository) *ExportICSHandler {
	return &ExportICSHandler{plans: plans, emitter: ics.NewEmitter()}
}

func (h *ExportICSHandler) Handle(ctx context.Context, q ExportICSQuery) (string, error) {
	plan, err := h.plans.GetLatestPlan(ctx, q.Owner)
	if err != nil {
		return "", err
	}
	if plan == nil {
		return "", pdomain.ErrNoPlanYet
	}
	return h.emitter.Emit(plan), nil
}
