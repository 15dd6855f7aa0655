package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// FreeSlot is a recurring weekly availability window declared by the owner.
// Unlike Task and Habit it is a plain value-ish entity: it has identity for
// persistence purposes but no behavior beyond its own invariants, since the
// interesting logic (cleaning, merging) lives in the Slot Cleaner service.
type FreeSlot struct {
	id        uuid.UUID
	owner     uuid.UUID
	weekday   int
	startTime string // "HH:MM"
	endTime   string // "HH:MM"
}

// NewFreeSlot validates and constructs a FreeSlot.
func NewFreeSlot(id, owner uuid.UUID, weekday int, startTime, endTime string) (FreeSlot, error) {
	if weekday < 0 || weekday > 6 {
		return FreeSlot{}, ErrInvalidWeekday
	}
	startMin, err := ParseHHMM(startTime)
	if err != nil {
		return FreeSlot{}, err
	}
	endMin, err := ParseHHMM(endTime)
	if err != nil {
		return FreeSlot{}, err
	}
	if endMin <= startMin {
		return FreeSlot{}, ErrInvalidTimeRange
	}
	return FreeSlot{id: id, owner: owner, weekday: weekday, startTime: startTime, endTime: endTime}, nil
}

func (s FreeSlot) ID() uuid.UUID       { return s.id }
func (s FreeSlot) Owner() uuid.UUID    { return s.owner }
func (s FreeSlot) Weekday() int        { return s.weekday }
func (s FreeSlot) StartTime() string   { return s.startTime }
func (s FreeSlot) EndTime() string     { return s.endTime }

// StartMinutes returns startTime as minutes-since-midnight.
func (s FreeSlot) StartMinutes() int { m, _ := ParseHHMM(s.startTime); return m }

// EndMinutes returns endTime as minutes-since-midnight.
func (s FreeSlot) EndMinutes() int { m, _ := ParseHHMM(s.endTime); return m }

// CapacityMinutes is the derived window length, recomputed on every read
// rather than stored, so it can never drift from startTime/endTime.
func (s FreeSlot) CapacityMinutes() int {
	return s.EndMinutes() - s.StartMinutes()
}

// WithTimes returns a copy of the slot with new start/end minute offsets,
// used by the Slot Cleaner when merging overlapping windows.
func (s FreeSlot) WithTimes(startMin, endMin int) FreeSlot {
	s.startTime = FormatHHMM(startMin)
	s.endTime = FormatHHMM(endMin)
	return s
}

// ParseHHMM parses a "HH:MM" string into minutes-since-midnight.
func ParseHHMM(v string) (int, error) {
	if len(v) != 5 || v[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", v)
	}
	hh := int(v[0]-'0')*10 + int(v[1]-'0')
	mm := int(v[3]-'0')*10 + int(v[4]-'0')
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", v)
	}
	return hh*60 + mm, nil
}

// FormatHHMM formats minutes-since-midnight back into "HH:MM". Values
// outside a single day (which can happen after capping) are clamped into
// 0..1439 by the caller before formatting where that matters.
func FormatHHMM(totalMinutes int) string {
	hh := (totalMinutes / 60) % 24
	mm := totalMinutes % 60
	return fmt.Sprintf("%02d:%02d", hh, mm)
}
