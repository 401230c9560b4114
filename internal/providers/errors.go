package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrProviderUnavailable is returned when no upstream is wired.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrNotFound is returned when the upstream reports the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrQuotaDeadline is returned when the next rate limit token would arrive after the caller's
	// deadline. It matches context.DeadlineExceeded; no upstream call was made.
	ErrQuotaDeadline = fmt.Errorf("rate limit wait exceeds deadline: %w", context.DeadlineExceeded)
)

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
