package domain

import "github.com/google/uuid"

// BreakPreset configures the Break Interleaver's default focus chunk and
// rest duration.
type BreakPreset struct {
	Focus int
	Rest  int
	Label string
}

// DefaultBreakPreset returns the sensible defaults a new owner gets
// before ever touching their settings.
func DefaultBreakPreset() BreakPreset {
	return BreakPreset{Focus: 45, Rest: 10, Label: "Break"}
}

// Settings is per-owner planner configuration.
type Settings struct {
	Owner             uuid.UUID
	DailyLimitMinutes int
	BufferPercent     float64
	BreakPreset       BreakPreset
	Timezone          string
}

// DefaultSettings returns the out-of-the-box settings for a new owner.
func DefaultSettings(owner uuid.UUID) Settings {
	return Settings{
		Owner:             owner,
		DailyLimitMinutes: 180,
		BufferPercent:     0.15,
		BreakPreset:       DefaultBreakPreset(),
		Timezone:          DefaultTimezone,
	}
}

// Validate checks the invariants from the data model section.
func (s Settings) Validate() error {
	if s.DailyLimitMinutes < 30 || s.DailyLimitMinutes > 720 {
		return ErrInvalidDailyLimit
	}
	if s.BufferPercent < 0.0 || s.BufferPercent > 0.5 {
		return ErrInvalidBuffer
	}
	if s.BreakPreset.Focus < 1 {
		return ErrInvalidFocus
	}
	if s.BreakPreset.Rest < 0 {
		return ErrInvalidRest
	}
	return nil
}
