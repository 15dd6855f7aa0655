package services

import pdomain "github.com/felixgeelhaar/studyflow/internal/planner/domain"

// FeedbackTuner derives transient, effective settings for one rebuild from
// the owner's most recent feedback row (C9). The mutation is never
// persisted back onto the stored Settings.
type FeedbackTuner struct{}

func NewFeedbackTuner() *FeedbackTuner { return &FeedbackTuner{} }

// Tune returns the effective settings to use for this rebuild.
func (FeedbackTuner) Tune(settings pdomain.Settings, latest []pdomain.Feedback) pdomain.Settings {
	effective := settings
	if len(latest) == 0 {
		return effective
	}

	last := latest[len(latest)-1]
	switch last.Label {
	case pdomain.FeedbackTooDense:
		effective.BufferPercent += 0.10
		if effective.BufferPercent > 0.5 {
			effective.BufferPercent = 0.5
		}
	case pdomain.FeedbackTooEasy:
		effective.BufferPercent -= 0.05
		if effective.BufferPercent < 0.05 {
			effective.BufferPercent = 0.05
		}
	case pdomain.FeedbackNeedMoreTime:
		effective.DailyLimitMinutes += 30
		if effective.DailyLimitMinutes > 600 {
			effective.DailyLimitMinutes = 600
		}
	case pdomain.FeedbackEveningFocus, pdomain.FeedbackCustom:
		// no change
	}

	return effective
}
