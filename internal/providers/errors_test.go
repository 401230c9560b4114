package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}

	if _, ok := AsRateLimitError(errors.New("plain")); ok {
		t.Fatalf("expected plain error not to unwrap")
	}
}

func TestErrNotFoundWraps(t *testing.T) {
	err := fmt.Errorf("balldontlie: player 99: %w", ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped ErrNotFound")
	}
}
