package shared

import "time"

// FeedbackLevel controls styling and auto-clear duration.
type FeedbackLevel int

const (
	FeedbackInfo    FeedbackLevel = iota // transient, auto-clears 4s
	FeedbackSuccess                      // green styled, auto-clears 4s
	FeedbackWarning                      // yellow, auto-clears 8s
	FeedbackError                        // red, auto-clears 12s
)

// FeedbackTTL returns the auto-clear duration for a given level.
func FeedbackTTL(level FeedbackLevel) time.Duration {
	switch level {
	case FeedbackInfo, FeedbackSuccess:
		return 4 * time.Second
	case FeedbackWarning:
		return 8 * time.Second
	default:
		return 12 * time.Second
	}
}

// Feedback represents a user-facing feedback message.
type Feedback struct {
	Level     FeedbackLevel
	Message   string
	Timestamp time.Time
}

// FeedbackMsg delivers a feedback message to the app.
type FeedbackMsg struct {
	Feedback Feedback
}

// DismissFeedbackMsg clears the current feedback after its TTL.
type DismissFeedbackMsg struct {
	Timestamp time.Time // only dismiss if it still matches the shown feedback
}
