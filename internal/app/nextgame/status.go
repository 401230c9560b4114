package nextgame

import "time"

// Status is the temporal state of a game relative to a reference instant.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinal    Status = "final"
)

// DefaultLiveWindow is how long after tip-off a game still counts as live.
// Regulation plus stoppages usually fits; overtime-heavy games may read final early.
const DefaultLiveWindow = 3 * time.Hour

// HasStats reports whether a box score is worth fetching for the status.
func (s Status) HasStats() bool {
	return s == StatusLive || s == StatusFinal
}

// Classifier derives a Status from elapsed time alone. Provider status labels are not consulted.
type Classifier struct {
	LiveWindow time.Duration
}

// NewClassifier returns a Classifier using window, or DefaultLiveWindow when window <= 0.
func NewClassifier(window time.Duration) Classifier {
	if window <= 0 {
		window = DefaultLiveWindow
	}
	return Classifier{LiveWindow: window}
}

// Classify returns upcoming when the game starts after reference, live while the elapsed time is
// within the live window (inclusive), and final afterwards.
func (c Classifier) Classify(gameInstant, reference time.Time) Status {
	if gameInstant.After(reference) {
		return StatusUpcoming
	}
	window := c.LiveWindow
	if window <= 0 {
		window = DefaultLiveWindow
	}
	if reference.Sub(gameInstant) <= window {
		return StatusLive
	}
	return StatusFinal
}
