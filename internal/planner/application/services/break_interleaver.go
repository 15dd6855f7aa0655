package services

import (
	"sort"
	"time"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
	"github.com/google/uuid"
)

// BreakInterleaver inserts rest sessions between contiguous focus blocks
// and shifts successors forward (C8).
type BreakInterleaver struct{}

func NewBreakInterleaver() *BreakInterleaver { return &BreakInterleaver{} }

// Interleave groups focus sessions by date and walks each day in
// chronological order, inserting a break whenever the gap between two
// consecutive sessions is at most 5 minutes. The result is globally sorted
// by plannedStart.
func (BreakInterleaver) Interleave(focusSessions []pdomain.Session, restMinutes int, label string, planVersion int) []pdomain.Session {
	byDate := make(map[string][]pdomain.Session)
	var dates []string
	for _, s := range focusSessions {
		key := pdomain.DateKey(s.PlannedStart)
		if _, seen := byDate[key]; !seen {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], s)
	}
	sort.Strings(dates)

	var result []pdomain.Session
	for _, date := range dates {
		day := byDate[date]
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].PlannedStart.Before(day[j].PlannedStart)
		})

		offset := time.Duration(0)
		for i, s := range day {
			shifted := s
			shifted.PlannedStart = s.PlannedStart.Add(offset)
			shifted.PlannedEnd = s.PlannedEnd.Add(offset)
			result = append(result, shifted)

			if i == len(day)-1 {
				continue
			}
			next := day[i+1]
			gap := next.PlannedStart.Sub(s.PlannedEnd)
			if gap > 5*time.Minute {
				continue
			}

			load := s.Minutes() + next.Minutes()
			rest := restMinutes
			if load >= 90 {
				rest += 5
			}

			breakStart := s.PlannedEnd.Add(offset)
			result = append(result, pdomain.Session{
				ID:              uuid.New(),
				Source:          pdomain.SourceBreak,
				Subject:         "Break",
				Title:           label,
				PlannedStart:    breakStart,
				PlannedEnd:      breakStart.Add(time.Duration(rest) * time.Minute),
				Status:          pdomain.StatusPending,
				SuccessCriteria: []string{"Rest"},
				PlanVersion:     planVersion,
			})

			offset += time.Duration(rest) * time.Minute
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PlannedStart.Before(result[j].PlannedStart)
	})

	return result
}
