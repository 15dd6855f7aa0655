// Package services implements the StudyFlow planner pipeline: the pure,
// deterministic components that turn an owner's declared tasks, habits and
// free-time pattern into a concrete PlanRecord.
package services

import (
	"fmt"
	"sort"

	pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"
)

// CleanResult is the output of SlotCleaner.Clean.
type CleanResult struct {
	Slots    []pdomain.FreeSlot
	Warnings []string
}

// SlotCleaner deduplicates, repairs, and merges a weekly slot pattern.
type SlotCleaner struct{}

func NewSlotCleaner() *SlotCleaner { return &SlotCleaner{} }

// Clean implements the Slot Cleaner (C2) algorithm. It is deterministic:
// calling it twice on its own output returns the same slots by value.
func (SlotCleaner) Clean(slots []pdomain.FreeSlot) CleanResult {
	var warnings []string

	byWeekday := make(map[int][]pdomain.FreeSlot)
	for _, s := range slots {
		start := s.StartMinutes()
		end := s.EndMinutes()
		if end <= start {
			warnings = append(warnings, "inverted hours")
			continue
		}

		duration := end - start
		if duration >= 720 {
			warnings = append(warnings, "too long, capped at 180")
		}
		safeDuration := duration
		if safeDuration > 180 {
			safeDuration = 180
		}
		s = s.WithTimes(start, start+safeDuration)
		byWeekday[s.Weekday()] = append(byWeekday[s.Weekday()], s)
	}

	weekdays := make([]int, 0, len(byWeekday))
	for wd := range byWeekday {
		weekdays = append(weekdays, wd)
	}
	sort.Ints(weekdays)

	var result []pdomain.FreeSlot
	for _, wd := range weekdays {
		group := byWeekday[wd]
		sort.Slice(group, func(i, j int) bool {
			return group[i].StartMinutes() < group[j].StartMinutes()
		})

		merged := make([]pdomain.FreeSlot, 0, len(group))
		for _, s := range group {
			if len(merged) == 0 {
				merged = append(merged, s)
				continue
			}
			last := merged[len(merged)-1]
			if s.StartMinutes() <= last.EndMinutes() {
				newEnd := last.EndMinutes()
				if s.EndMinutes() > newEnd {
					newEnd = s.EndMinutes()
				}
				merged[len(merged)-1] = last.WithTimes(last.StartMinutes(), newEnd)
			} else {
				merged = append(merged, s)
			}
		}

		// Merging capped slots can still yield a window past the cap;
		// re-cap so cleaning its own output changes nothing.
		for i, s := range merged {
			if s.CapacityMinutes() > 180 {
				merged[i] = s.WithTimes(s.StartMinutes(), s.StartMinutes()+180)
			}
		}

		if len(merged) < len(group) {
			warnings = append(warnings, fmt.Sprintf("merged overlapping on day %d", wd))
		}

		result = append(result, merged...)
	}

	return CleanResult{Slots: result, Warnings: warnings}
}
