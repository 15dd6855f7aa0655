package services

import (
	"math"
	"time"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

// MetricsRange selects the anchor window a Metrics computation covers.
type MetricsRange string

const (
	RangeDay   MetricsRange = "day"
	RangeWeek  MetricsRange = "week"
	RangeMonth MetricsRange = "month"
)

// PlanMetrics is the computed result of C12.
type PlanMetrics struct {
	RangeStart      time.Time
	RangeEnd        time.Time
	TotalSessions   int
	DoneSessions    int
	CompletionRate  float64
	FeasibilityScore int
	Reasons         []string
}

// Metrics computes completion rate and a feasibility score for a date
// range (C12).
type Metrics struct{}

func NewMetrics() *Metrics { return &Metrics{} }

// resolveRange computes [rangeStart, rangeEnd) from an anchor date in the
// owner's location. Week starts on Monday.
func resolveRange(rng MetricsRange, anchor time.Time) (time.Time, time.Time) {
	day := pdomain.StartOfDay(anchor)
	switch rng {
	case RangeWeek:
		// Go's Weekday: Sunday=0 .. Saturday=6; ISO week starts Monday.
		offset := (int(day.Weekday()) + 6) % 7
		weekStart := day.AddDate(0, 0, -offset)
		return weekStart, weekStart.AddDate(0, 0, 7)
	case RangeMonth:
		monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return monthStart, monthStart.AddDate(0, 1, 0)
	default:
		return day, day.AddDate(0, 0, 1)
	}
}

// Compute evaluates the metrics for a date range against the latest plan,
// the current open tasks, and the cleaned slot pattern.
func (Metrics) Compute(rng MetricsRange, anchor time.Time, plan *pdomain.PlanRecord, tasks []*pdomain.Task, slots []pdomain.FreeSlot, dailyLimitMinutes int) PlanMetrics {
	rangeStart, rangeEnd := resolveRange(rng, anchor)

	result := PlanMetrics{RangeStart: rangeStart, RangeEnd: rangeEnd, FeasibilityScore: 100}

	dailyFocusMinutes := make(map[string]int)
	focusDaysWithBreak := make(map[string]bool)

	if plan != nil {
		for _, s := range plan.Sessions {
			if s.PlannedStart.Before(rangeStart) || !s.PlannedStart.Before(rangeEnd) {
				continue
			}
			key := pdomain.DateKey(s.PlannedStart)
			if s.Source == pdomain.SourceBreak {
				focusDaysWithBreak[key] = true
				continue
			}
			result.TotalSessions++
			if s.Status == pdomain.StatusDone {
				result.DoneSessions++
			}
			dailyFocusMinutes[key] += s.Minutes()
		}
	}

	if result.TotalSessions > 0 {
		rate := 100 * float64(result.DoneSessions) / float64(result.TotalSessions)
		result.CompletionRate = math.Round(rate*10) / 10
	}

	overloadDays := 0
	for _, minutes := range dailyFocusMinutes {
		if minutes > dailyLimitMinutes {
			overloadDays++
		}
	}
	if overloadDays > 0 {
		penalty := 10 * overloadDays
		if penalty > 30 {
			penalty = 30
		}
		result.FeasibilityScore -= penalty
		result.Reasons = append(result.Reasons, "daily overload on some days")
	}

	demand := 0
	for _, t := range tasks {
		demand += t.RemainingMinutes()
	}
	capacity := 0
	for _, s := range slots {
		capacity += s.CapacityMinutes()
	}
	if demand > capacity && demand > 0 {
		penalty := int(math.Floor(float64(demand-capacity) / float64(demand) * 40))
		if penalty > 25 {
			penalty = 25
		}
		result.FeasibilityScore -= penalty
		result.Reasons = append(result.Reasons, "capacity shortfall versus open task demand")
	}

	missingBreakDays := 0
	for date, minutes := range dailyFocusMinutes {
		if minutes > 0 && !focusDaysWithBreak[date] {
			missingBreakDays++
		}
	}
	if missingBreakDays > 0 {
		penalty := 5 * missingBreakDays
		if penalty > 20 {
			penalty = 20
		}
		result.FeasibilityScore -= penalty
		result.Reasons = append(result.Reasons, "focus days without any break")
	}

	if result.FeasibilityScore < 0 {
		result.FeasibilityScore = 0
	}
	if result.FeasibilityScore > 100 {
		result.FeasibilityScore = 100
	}

	return result
}
