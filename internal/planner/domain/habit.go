package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/studyflow/internal/shared/domain"
)

// Cadence controls which buckets a habit is eligible for.
type Cadence string

const (
	CadenceDaily  Cadence = "daily"
	CadenceWeekly Cadence = "weekly"
)

// Habit is a recurring practice scheduled alongside task work.
type Habit struct {
	domain.BaseAggregateRoot
	owner          uuid.UUID
	name           string
	cadence        Cadence
	weekday        *int
	minutes        int
	preset         string
	preferredStart string
	energyWindow   string
}

type NewHabitParams struct {
	Owner          uuid.UUID
	Name           string
	Cadence        Cadence
	Weekday        *int
	Minutes        int
	Preset         string
	PreferredStart string
	EnergyWindow   string
}

// NewHabit validates and constructs a Habit aggregate.
func NewHabit(p NewHabitParams) (*Habit, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyTitle
	}
	if p.Cadence != CadenceDaily && p.Cadence != CadenceWeekly {
		return nil, ErrInvalidCadence
	}
	if p.Cadence == CadenceWeekly {
		if p.Weekday == nil {
			return nil, ErrWeeklyNeedsWeekday
		}
		if *p.Weekday < 0 || *p.Weekday > 6 {
			return nil, ErrInvalidWeekday
		}
	}
	if p.Minutes < 1 {
		return nil, ErrInvalidHabitMins
	}

	return &Habit{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		owner:             p.Owner,
		name:              name,
		cadence:           p.Cadence,
		weekday:           p.Weekday,
		minutes:           p.Minutes,
		preset:            p.Preset,
		preferredStart:    p.PreferredStart,
		energyWindow:      p.EnergyWindow,
	}, nil
}

// RehydrateHabit reconstructs a Habit from persisted state.
func RehydrateHabit(
	id, owner uuid.UUID,
	name string,
	cadence Cadence,
	weekday *int,
	minutes int,
	preset, preferredStart, energyWindow string,
	createdAt, updatedAt time.Time,
) *Habit {
	entity := domain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Habit{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(entity, 0),
		owner:             owner,
		name:              name,
		cadence:           cadence,
		weekday:           weekday,
		minutes:           minutes,
		preset:            preset,
		preferredStart:    preferredStart,
		energyWindow:      energyWindow,
	}
}

func (h *Habit) Owner() uuid.UUID          { return h.owner }
func (h *Habit) Name() string              { return h.name }
func (h *Habit) Cadence() Cadence          { return h.cadence }
func (h *Habit) Weekday() *int             { return h.weekday }
func (h *Habit) Minutes() int              { return h.minutes }
func (h *Habit) Preset() string            { return h.preset }
func (h *Habit) PreferredStart() string    { return h.preferredStart }
func (h *Habit) EnergyWindow() string      { return h.energyWindow }

// EligibleOn reports whether the habit should be considered for a bucket
// with the given Sunday=0 weekday, per the Habit Scheduler's (C6) rule.
func (h *Habit) EligibleOn(bucketWeekday int) bool {
	if h.cadence == CadenceDaily {
		return true
	}
	return h.weekday != nil && *h.weekday == bucketWeekday
}
