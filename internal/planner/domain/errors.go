package domain

import "errors"

var (
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrDeadlineInPast     = errors.New("deadline must not be in the past")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrInvalidDifficulty  = errors.New("difficulty must be between 1 and 5")
	ErrInvalidImportance  = errors.New("importance must be between 1 and 3")
	ErrInvalidEstimate    = errors.New("estimatedMinutes must be positive")
	ErrProgressExceeds    = errors.New("progressMinutes must not exceed estimatedMinutes")
	ErrInvalidMilestone   = errors.New("milestone minutesEstimate must be at least 5")
	ErrInvalidWeekday     = errors.New("weekday must be between 0 and 6")
	ErrInvalidCadence     = errors.New("cadence must be daily or weekly")
	ErrWeeklyNeedsWeekday = errors.New("weekly habits require a weekday")
	ErrInvalidHabitMins   = errors.New("habit minutes must be at least 1")
	ErrInvalidDailyLimit  = errors.New("dailyLimitMinutes must be between 30 and 720")
	ErrInvalidBuffer      = errors.New("bufferPercent must be between 0.0 and 0.5")
	ErrInvalidFocus       = errors.New("breakPreset.focus must be at least 1")
	ErrInvalidRest        = errors.New("breakPreset.rest must not be negative")
	ErrInvalidFeedback    = errors.New("unrecognized feedback label")
	ErrInvalidStatus      = errors.New("unrecognized session status")

	ErrSessionNotFound = errors.New("session not found in latest plan")
	ErrNoPlanYet       = errors.New("no plan has been generated for this owner")
	ErrNoInput         = errors.New("owner has no tasks and no free slots")
)
