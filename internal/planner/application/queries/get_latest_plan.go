// Package queries implements the planner's read-only operations.
package queries

import (
	"context"

	"github.com/google/uuid"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/application"
)

var (
	_ application.Query = GetLatestPlanQuery{}
	_ application.Query = GetMetricsQuery{}
	_ application.Query = ExportICSQuery{}
)

// GetLatestPlanQuery fetches the most recently generated plan for an owner.
type GetLatestPlanQuery struct {
	Owner uuid.UUID
}

func (GetLatestPlanQuery) QueryName() string { return "planner.get_latest_plan" }

type GetLatestPlanHandler struct {
	plans pdomain.PlanRepository
}

func NewGetLatestPlanHandler(plans pdomain.PlanRepository) *GetLatestPlanHandler {
	return &GetLatestPlanHandler{plans: plans}
}

func (h *GetLatestPlanHandler) Handle(ctx context.Context, q GetLatestPlanQuery) (*pdomain.PlanRecord, error) {
	return h.plans.GetLatestPlan(ctx, q.Owner)
}
