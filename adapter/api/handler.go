package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/commands"
	"github.com/felixgeelhaar/studyflow/internal/planner/application/queries"
	"github.com/felixgeelhaar/studyflow/internal/planner/application/services"
	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/planner/infrastructure/caldav"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// PlannerHandler serves the planner's HTTP surface.
type PlannerHandler struct {
	rebuildPlan         *commands.RebuildPlanHandler
	updateSessionStatus *commands.UpdateSessionStatusHandler
	getLatestPlan       *queries.GetLatestPlanHandler
	getMetrics          *queries.GetMetricsHandler
	exportICS           *queries.ExportICSHandler
	caldavExporter      *caldav.Exporter
	owner               uuid.UUID
	logger              *slog.Logger
	metrics             observability.Metrics
}

// PlannerHandlerConfig holds dependencies for the planner handler.
type PlannerHandlerConfig struct {
	RebuildPlan         *commands.RebuildPlanHandler
	UpdateSessionStatus *commands.UpdateSessionStatusHandler
	GetLatestPlan       *queries.GetLatestPlanHandler
	GetMetrics          *queries.GetMetricsHandler
	ExportICS           *queries.ExportICSHandler
	CalDAVExporter      *caldav.Exporter
	Owner               uuid.UUID
	Logger              *slog.Logger
	Metrics             observability.Metrics
}

// NewPlannerHandler creates a new planner handler.
func NewPlannerHandler(cfg PlannerHandlerConfig) *PlannerHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}
	return &PlannerHandler{
		rebuildPlan:         cfg.RebuildPlan,
		updateSessionStatus: cfg.UpdateSessionStatus,
		getLatestPlan:       cfg.GetLatestPlan,
		getMetrics:          cfg.GetMetrics,
		exportICS:           cfg.ExportICS,
		caldavExporter:      cfg.CalDAVExporter,
		owner:               cfg.Owner,
		logger:              cfg.Logger,
		metrics:             cfg.Metrics,
	}
}

// GetLatestPlan handles GET /plan/latest
func (h *PlannerHandler) GetLatestPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.getLatestPlan.Handle(r.Context(), queries.GetLatestPlanQuery{Owner: h.owner})
	if err != nil {
		h.logger.Error("failed to load latest plan", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load plan")
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "no plan yet")
		return
	}
	writeJSON(w, http.StatusOK, toPlanRecordDTO(plan))
}

// RebuildPlan handles POST /plan/rebuild
func (h *PlannerHandler) RebuildPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := observability.TimeOperationResult(r.Context(), h.logger, h.metrics, "plan.rebuild", func() (*pdomain.PlanRecord, error) {
		return h.rebuildPlan.Handle(r.Context(), commands.RebuildPlanCommand{Owner: h.owner})
	})
	if err != nil {
		if errors.Is(err, pdomain.ErrNoInput) {
			writeError(w, http.StatusBadRequest, "no tasks or free slots to plan against")
			return
		}
		h.logger.Error("failed to rebuild plan", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to rebuild plan")
		return
	}
	h.metrics.Counter(observability.MetricPlansRebuilt, 1)
	h.metrics.Gauge(observability.MetricSessionsScheduled, float64(len(plan.Sessions)))
	h.metrics.Gauge(observability.MetricTasksUnscheduled, float64(len(plan.UnscheduledTasks)))
	writeJSON(w, http.StatusOK, toPlanRecordDTO(plan))
}

// UpdateSessionStatus handles PATCH /plan/sessions/{id}/status
func (h *PlannerHandler) UpdateSessionStatus(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	planVersion, err := h.updateSessionStatus.Handle(r.Context(), commands.UpdateSessionStatusCommand{
		Owner:     h.owner,
		SessionID: sessionID,
		Status:    pdomain.SessionStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, pdomain.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		if errors.Is(err, pdomain.ErrSessionNotFound) || errors.Is(err, pdomain.ErrNoPlanYet) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("failed to update session status", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update session status")
		return
	}
	if req.Status == string(pdomain.StatusDone) {
		h.metrics.Counter(observability.MetricSessionsCompleted, 1)
	} else if req.Status == string(pdomain.StatusSkipped) {
		h.metrics.Counter(observability.MetricSessionsSkipped, 1)
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true, PlanVersion: planVersion})
}

// ExportICS handles GET /plan/export/ics
func (h *PlannerHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	body, err := h.exportICS.Handle(r.Context(), queries.ExportICSQuery{Owner: h.owner})
	if err != nil {
		if errors.Is(err, pdomain.ErrNoPlanYet) {
			writeError(w, http.StatusNotFound, "no plan yet")
			return
		}
		h.logger.Error("failed to export plan", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export plan")
		return
	}
	h.metrics.Counter(observability.MetricICSExports, 1)
	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="studyflow.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// ExportCalDAV handles POST /plan/export/caldav
func (h *PlannerHandler) ExportCalDAV(w http.ResponseWriter, r *http.Request) {
	if h.caldavExporter == nil {
		writeError(w, http.StatusServiceUnavailable, "caldav export is not configured")
		return
	}

	plan, err := h.getLatestPlan.Handle(r.Context(), queries.GetLatestPlanQuery{Owner: h.owner})
	if err != nil {
		h.logger.Error("failed to load latest plan", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load plan")
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "no plan yet")
		return
	}

	result, err := h.caldavExporter.Push(r.Context(), plan)
	if err != nil {
		h.logger.Error("failed to push plan to caldav", "error", err)
		writeError(w, http.StatusBadGateway, "failed to push plan to caldav")
		return
	}
	h.metrics.Counter(observability.MetricCalDAVPushed, int64(result.Pushed))
	h.metrics.Counter(observability.MetricCalDAVFailed, int64(result.Failed))
	writeJSON(w, http.StatusOK, caldavExportResponseDTO{Pushed: result.Pushed, Failed: result.Failed})
}

// GetPlanMetrics handles GET /metrics/plan
func (h *PlannerHandler) GetPlanMetrics(w http.ResponseWriter, r *http.Request) {
	rng := services.MetricsRange(r.URL.Query().Get("range"))
	if rng == "" {
		rng = services.RangeDay
	}

	var anchor *time.Time
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		anchor = &parsed
	}

	metrics, err := h.getMetrics.Handle(r.Context(), queries.GetMetricsQuery{Owner: h.owner, Range: rng, Anchor: anchor})
	if err != nil {
		h.logger.Error("failed to compute metrics", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute metrics")
		return
	}
	writeJSON(w, http.StatusOK, toPlanMetricsDTO(metrics))
}
