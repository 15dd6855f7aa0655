package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/services"
	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

// GetMetricsQuery computes the planner's completion/feasibility metrics
// for a date range (C12).
type GetMetricsQuery struct {
	Owner  uuid.UUID
	Range  services.MetricsRange
	Anchor *time.Time
}

func (GetMetricsQuery) QueryName() string { return "planner.get_metrics" }

type GetMetricsHandler struct {
	tasks    pdomain.TaskRepository
	slots    pdomain.SlotRepository
	settings pdomain.SettingsRepository
	plans    pdomain.PlanRepository
	clock    pdomain.Clock
	metrics  *services.Metrics
}

func NewGetMetricsHandler(
	tasks pdomain.TaskRepository,
	slots pdomain.SlotRepository,
	settings pdomain.SettingsRepository,
	plans pdomain.PlanRepository,
	clock pdomain.Clock,
) *GetMetricsHandler {
	return &GetMetricsHandler{
		tasks:    tasks,
		slots:    slots,
		settings: settings,
		plans:    plans,
		clock:    clock,
		metrics:  services.NewMetrics(),
	}
}

func (h *GetMetricsHandler) Handle(ctx context.Context, q GetMetricsQuery) (services.PlanMetrics, error) {
	settings, err := h.settings.GetSettings(ctx, q.Owner)
	if err != nil {
		return services.PlanMetrics{}, err
	}
	loc := pdomain.ResolveLocation(settings.Timezone)

	anchor := h.clock.Now().In(loc)
	if q.Anchor != nil {
		// The anchor arrives as a bare calendar date; re-anchor that date
		// in the owner's location rather than converting the instant,
		// which would shift the date for negative UTC offsets.
		y, m, d := q.Anchor.Date()
		anchor = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	taskList, err := h.tasks.ListTasks(ctx, q.Owner)
	if err != nil {
		return services.PlanMetrics{}, err
	}
	slotList, err := h.slots.ListSlots(ctx, q.Owner)
	if err != nil {
		return services.PlanMetrics{}, err
	}
	plan, err := h.plans.GetLatestPlan(ctx, q.Owner)
	if err != nil {
		return services.PlanMetrics{}, err
	}

	rng := q.Range
	if rng == "" {
		rng = services.RangeDay
	}

	return h.metrics.Compute(rng, anchor, plan, taskList, slotList, settings.DailyLimitMinutes), nil
}
