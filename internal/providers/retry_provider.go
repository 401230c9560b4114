package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

// retryingProvider wraps a DataProvider with retry/backoff behavior and per-attempt metrics.
// Every upstream call is a read, so repeating one is always safe.
type retryingProvider struct {
	inner       DataProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, base time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = base
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

func (r *retryingProvider) FetchPlayer(ctx context.Context, playerID string) (players.Player, error) {
	return withRetry(ctx, r, "fetch_player", func() (players.Player, error) {
		return r.inner.FetchPlayer(ctx, playerID)
	})
}

func (r *retryingProvider) FetchTeamGamesOnDate(ctx context.Context, teamID string, date string) ([]domaingames.Game, error) {
	return withRetry(ctx, r, "fetch_team_games_on_date", func() ([]domaingames.Game, error) {
		return r.inner.FetchTeamGamesOnDate(ctx, teamID, date)
	})
}

func (r *retryingProvider) FetchTeamSeasonGames(ctx context.Context, teamID string, season int, perPage int) ([]domaingames.Game, error) {
	return withRetry(ctx, r, "fetch_team_season_games", func() ([]domaingames.Game, error) {
		return r.inner.FetchTeamSeasonGames(ctx, teamID, season, perPage)
	})
}

func (r *retryingProvider) FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error) {
	return withRetry(ctx, r, "fetch_box_score", func() ([]stats.BoxScoreEntry, error) {
		return r.inner.FetchBoxScore(ctx, gameID)
	})
}

func withRetry[T any](ctx context.Context, r *retryingProvider, op string, call func() (T, error)) (T, error) {
	attempt := 0
	policyBackOff := &retryAfterBackOff{BackOff: r.newBackOff()}
	operation := func() (T, error) {
		attempt++
		start := time.Now()
		val, err := call()
		r.record(time.Since(start), err)
		if err != nil && !retryable(err) {
			return val, backoff.Permanent(err)
		}
		if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
			// A Retry-After past the caller's deadline cannot succeed in time.
			if exceedsDeadline(ctx, rl.RetryAfter) {
				return val, backoff.Permanent(err)
			}
			policyBackOff.hint = rl.RetryAfter
		}
		return val, err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch retry",
			"op", op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(policyBackOff, uint64(r.maxAttempts-1)), ctx)
	val, err := backoff.RetryNotifyWithData(operation, policy, notify)
	if err != nil && retryable(err) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch failed",
			"op", op,
			"attempts", attempt,
			"err", err,
		)
	}
	return val, err
}

// retryAfterBackOff stretches the next delay to an upstream Retry-After hint.
type retryAfterBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next != backoff.Stop && b.hint > next {
		next = b.hint
	}
	b.hint = 0
	return next
}

func exceedsDeadline(ctx context.Context, wait time.Duration) bool {
	deadline, ok := ctx.Deadline()
	return ok && time.Until(deadline) < wait
}

func (r *retryingProvider) record(duration time.Duration, err error) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordProviderAttempt(r.name, duration, err)
	if rl, ok := AsRateLimitError(err); ok {
		r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
	}
}

// retryable reports whether repeating the call could change the outcome.
func retryable(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrProviderUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}
