package nextgame

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/logging"
	"github.com/preston-bernstein/nba-next-game-service/internal/metrics"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
)

// DefaultBoxScoreTimeout bounds a single box score lookup.
const DefaultBoxScoreTimeout = 5 * time.Second

// Correlation outcomes reported to metrics.
const (
	CorrelationMatched     = "matched"
	CorrelationNoMatch     = "no_match"
	CorrelationError       = "error"
	CorrelationTimeout     = "timeout"
	CorrelationBreakerOpen = "breaker_open"
)

// Correlator finds a player's stat line in a game's box score. It never fails: every problem
// degrades to a nil line and a log entry.
type Correlator struct {
	boxScores providers.BoxScoreProvider
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// NewCorrelator builds a Correlator. timeout <= 0 means DefaultBoxScoreTimeout.
func NewCorrelator(boxScores providers.BoxScoreProvider, timeout time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *Correlator {
	if timeout <= 0 {
		timeout = DefaultBoxScoreTimeout
	}
	return &Correlator{boxScores: boxScores, timeout: timeout, logger: logger, metrics: recorder}
}

// Correlate returns the player's line for the game, or nil.
func (c *Correlator) Correlate(ctx context.Context, gameID, playerID string) *stats.StatLine {
	logger := logging.FromContext(ctx, c.logger)
	if c.boxScores == nil {
		c.metrics.RecordCorrelation(CorrelationError)
		logging.Warn(logger, "box score provider not configured", logging.FieldGameID, gameID)
		return nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	entries, err := c.boxScores.FetchBoxScore(lookupCtx, gameID)
	if err != nil {
		outcome := CorrelationError
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			outcome = CorrelationBreakerOpen
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(lookupCtx.Err(), context.DeadlineExceeded):
			outcome = CorrelationTimeout
		}
		c.metrics.RecordCorrelation(outcome)
		logging.Warn(logger, "box score lookup failed",
			logging.FieldGameID, gameID,
			logging.FieldPlayerID, playerID,
			"outcome", outcome,
			"err", err,
		)
		return nil
	}

	entry, ok := stats.FindPlayer(entries, playerID)
	if !ok {
		c.metrics.RecordCorrelation(CorrelationNoMatch)
		if logger != nil {
			logger.Debug("player missing from box score",
				logging.FieldGameID, gameID,
				logging.FieldPlayerID, playerID,
				logging.FieldCount, len(entries),
			)
		}
		return nil
	}
	c.metrics.RecordCorrelation(CorrelationMatched)
	line := entry.Stats
	return &line
}
