package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/metrics"
)

const (
	defaultBreakerFailures = 5
	defaultBreakerCooldown = 30 * time.Second
)

// BreakerConfig tunes the circuit breaker that guards box score lookups.
type BreakerConfig struct {
	Name                string
	ConsecutiveFailures int
	Cooldown            time.Duration
}

// BreakerBoxScoreProvider short-circuits box score lookups after repeated upstream failures,
// so a struggling stats feed stops costing every resolution a timeout.
type BreakerBoxScoreProvider struct {
	next    BoxScoreProvider
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerBoxScoreProvider wraps next with a circuit breaker. Missing records, caller
// cancellations and refused quota waits do not count as upstream failures. State changes are
// logged and, when recorder is non-nil, counted.
func NewBreakerBoxScoreProvider(next BoxScoreProvider, cfg BreakerConfig, logger *slog.Logger, recorder *metrics.Recorder) *BreakerBoxScoreProvider {
	if cfg.Name == "" {
		cfg.Name = "boxscores"
	}
	if cfg.ConsecutiveFailures <= 0 {
		cfg.ConsecutiveFailures = defaultBreakerFailures
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaultBreakerCooldown
	}
	threshold := uint32(cfg.ConsecutiveFailures)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logWithProvider(context.Background(), logger, slog.LevelWarn, name, "box score circuit breaker state changed",
				"from_state", from.String(),
				"to_state", to.String(),
			)
			recorder.RecordBreakerTransition(name, to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, ErrQuotaDeadline) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerBoxScoreProvider{next: next, breaker: cb}
}

// FetchBoxScore runs the lookup through the breaker. When the breaker is open the call fails fast
// with gobreaker.ErrOpenState.
func (p *BreakerBoxScoreProvider) FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error) {
	if p == nil || p.next == nil {
		return nil, ErrProviderUnavailable
	}
	res, err := p.breaker.Execute(func() (interface{}, error) {
		return p.next.FetchBoxScore(ctx, gameID)
	})
	if err != nil {
		return nil, err
	}
	entries, _ := res.([]stats.BoxScoreEntry)
	return entries, nil
}

// State reports the breaker state (closed, half-open, open).
func (p *BreakerBoxScoreProvider) State() string {
	if p == nil || p.breaker == nil {
		return gobreaker.StateClosed.String()
	}
	return p.breaker.State().String()
}
