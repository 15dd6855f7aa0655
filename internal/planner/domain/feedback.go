package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackLabel is the fixed vocabulary of post-plan feedback.
type FeedbackLabel string

const (
	FeedbackTooDense      FeedbackLabel = "too_dense"
	FeedbackTooEasy       FeedbackLabel = "too_easy"
	FeedbackNeedMoreTime  FeedbackLabel = "need_more_time"
	FeedbackEveningFocus  FeedbackLabel = "evening_focus"
	FeedbackCustom        FeedbackLabel = "custom"
)

func (l FeedbackLabel) Valid() bool {
	switch l {
	case FeedbackTooDense, FeedbackTooEasy, FeedbackNeedMoreTime, FeedbackEveningFocus, FeedbackCustom:
		return true
	default:
		return false
	}
}

// Feedback is a labelled post-plan note informing the next rebuild's
// effective settings (see Feedback Tuner, C9).
type Feedback struct {
	ID          uuid.UUID
	Owner       uuid.UUID
	Label       FeedbackLabel
	Note        string
	PlanVersion int
	SubmittedAt time.Time
}

// NewFeedback validates and constructs a Feedback record.
func NewFeedback(id, owner uuid.UUID, label FeedbackLabel, note string, planVersion int, submittedAt time.Time) (Feedback, error) {
	if !label.Valid() {
		return Feedback{}, ErrInvalidFeedback
	}
	return Feedback{ID: id, Owner: owner, Label: label, Note: note, PlanVersion: planVersion, SubmittedAt: submittedAt}, nil
}
