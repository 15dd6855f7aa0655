// Package commands implements the planner's state-mutating operations:
// rebuilding a plan, mutating session status, and cascading deletions.
package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studyflow/internal/planner/application/services"
	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/eventbus"
)

// RebuildPlanCommand triggers a full planner pipeline run for one owner.
type RebuildPlanCommand struct {
	Owner uuid.UUID
}

func (RebuildPlanCommand) CommandName() string { return "planner.rebuild_plan" }

// RebuildPlanHandler orchestrates C2-C9 and persists the resulting
// PlanRecord through the Plan Store (C10).
type RebuildPlanHandler struct {
	tasks     pdomain.TaskRepository
	habits    pdomain.HabitRepository
	slots     pdomain.SlotRepository
	settings  pdomain.SettingsRepository
	feedback  pdomain.FeedbackRepository
	plans     pdomain.PlanRepository
	clock     pdomain.Clock
	publisher eventbus.Publisher
	logger    *slog.Logger

	slotCleaner      *services.SlotCleaner
	bucketBuilder    *services.DayBucketBuilder
	prioritizer      *services.TaskPrioritizer
	allocator        *services.Allocator
	habitScheduler   *services.HabitScheduler
	taskScheduler    *services.TaskScheduler
	breakInterleaver *services.BreakInterleaver
	feedbackTuner    *services.FeedbackTuner

	// HorizonDays is the bucket window used when there are no tasks to
	// derive a deadline from (a habit-only owner). When tasks exist the
	// window instead grows to the furthest task deadline.
	HorizonDays int
}

// NewRebuildPlanHandler wires the full planner pipeline.
func NewRebuildPlanHandler(
	tasks pdomain.TaskRepository,
	habits pdomain.HabitRepository,
	slots pdomain.SlotRepository,
	settings pdomain.SettingsRepository,
	feedback pdomain.FeedbackRepository,
	plans pdomain.PlanRepository,
	clock pdomain.Clock,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *RebuildPlanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	allocator := services.NewAllocator()
	return &RebuildPlanHandler{
		tasks:            tasks,
		habits:           habits,
		slots:            slots,
		settings:         settings,
		feedback:         feedback,
		plans:            plans,
		clock:            clock,
		publisher:        publisher,
		logger:           logger,
		slotCleaner:      services.NewSlotCleaner(),
		bucketBuilder:    services.NewDayBucketBuilder(),
		prioritizer:      services.NewTaskPrioritizer(),
		allocator:        allocator,
		habitScheduler:   services.NewHabitScheduler(allocator),
		taskScheduler:    services.NewTaskScheduler(allocator),
		breakInterleaver: services.NewBreakInterleaver(),
		feedbackTuner:    services.NewFeedbackTuner(),
		HorizonDays:      14,
	}
}

// Handle runs one rebuild and returns the persisted PlanRecord.
func (h *RebuildPlanHandler) Handle(ctx context.Context, cmd RebuildPlanCommand) (*pdomain.PlanRecord, error) {
	taskList, err := h.tasks.ListTasks(ctx, cmd.Owner)
	if err != nil {
		return nil, err
	}
	habitList, err := h.habits.ListHabits(ctx, cmd.Owner)
	if err != nil {
		return nil, err
	}
	slotList, err := h.slots.ListSlots(ctx, cmd.Owner)
	if err != nil {
		return nil, err
	}
	settings, err := h.settings.GetSettings(ctx, cmd.Owner)
	if err != nil {
		return nil, err
	}
	feedbackList, err := h.feedback.ListFeedback(ctx, cmd.Owner)
	if err != nil {
		return nil, err
	}

	if len(taskList) == 0 && len(slotList) == 0 {
		return nil, pdomain.ErrNoInput
	}

	loc := pdomain.ResolveLocation(settings.Timezone)
	now := h.clock.Now().In(loc)

	effective := h.feedbackTuner.Tune(settings, feedbackList)

	cleaned := h.slotCleaner.Clean(slotList)

	prioritized := h.prioritizer.Prioritize(taskList)

	// The bucket window must reach the furthest task deadline or the
	// Task Scheduler's deadline filter (buckets whose end-of-day is
	// on or before a task's deadline) never sees the later buckets that
	// deadline should make eligible. Only tasks-less horizons (e.g. a
	// habit-only owner) fall back to the default window.
	end := now
	for _, task := range prioritized {
		if task.Deadline().After(end) {
			end = task.Deadline()
		}
	}
	if len(prioritized) == 0 {
		end = now.AddDate(0, 0, h.HorizonDays)
	}
	buckets := h.bucketBuilder.Build(now, end, cleaned.Slots, effective.DailyLimitMinutes, effective.BufferPercent)

	plan := &pdomain.PlanRecord{
		ID:          uuid.New(),
		Owner:       cmd.Owner,
		GeneratedAt: h.clock.Now(),
	}

	var suggestions []pdomain.Suggestion
	for _, w := range cleaned.Warnings {
		suggestions = append(suggestions, pdomain.Suggestion{Type: pdomain.SuggestionIncreaseFreeTime, Message: w})
	}

	habitSessions, habitSuggestions := h.habitScheduler.Schedule(buckets, habitList, effective.BufferPercent, plan.PlanVersion)
	suggestions = append(suggestions, habitSuggestions...)

	totalCapacity := 0
	for _, b := range buckets {
		totalCapacity += b.AllowedMinutes
	}
	totalDemand := 0
	for _, task := range prioritized {
		totalDemand += task.RemainingMinutes()
	}
	if totalCapacity < totalDemand {
		suggestions = append(suggestions, pdomain.Suggestion{
			Type:    pdomain.SuggestionIncreaseFreeTime,
			Message: "not enough free time to finish every task; add slots or raise the daily limit",
		})
	}

	taskSessions, unscheduled, taskSuggestions := h.taskScheduler.Schedule(buckets, prioritized, effective.BreakPreset.Focus, effective.BufferPercent, plan.PlanVersion)
	suggestions = append(suggestions, taskSuggestions...)

	focusSessions := append(habitSessions, taskSessions...)
	allSessions := h.breakInterleaver.Interleave(focusSessions, effective.BreakPreset.Rest, effective.BreakPreset.Label, plan.PlanVersion)

	plan.Sessions = allSessions
	plan.UnscheduledTasks = unscheduled
	plan.Suggestions = suggestions

	if err := h.plans.SavePlan(ctx, cmd.Owner, plan); err != nil {
		return nil, err
	}

	// SavePlan assigns the real planVersion; stamp it onto every session
	// now that it is known (the scheduler emitted them with a placeholder).
	for i := range plan.Sessions {
		plan.Sessions[i].PlanVersion = plan.PlanVersion
	}

	event := pdomain.NewPlanGenerated(cmd.Owner, plan.ID, plan.PlanVersion, len(plan.Sessions))
	publishEvent(ctx, h.publisher, h.logger, cmd.Owner, &event)

	return plan, nil
}
