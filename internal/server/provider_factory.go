package server

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-next-game-service/internal/app/nextgame"
	"github.com/preston-bernstein/nba-next-game-service/internal/config"
	"github.com/preston-bernstein/nba-next-game-service/internal/metrics"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
)

// providerStack is the wrapped provider the resolver reads from. Box scores go through an extra
// circuit breaker on top of the shared rate limit and retry layers.
type providerStack struct {
	name      string
	data      providers.DataProvider
	boxScores *providers.BreakerBoxScoreProvider

	// quotaInterval is the rate limiter's token spacing, zero when calls are not limited.
	quotaInterval time.Duration
}

// boxScoreBudget extends the box score timeout by one quota interval. A resolution spends the
// current token on its schedule lookup, so the box score call always queues for the next one.
func (s providerStack) boxScoreBudget(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		timeout = nextgame.DefaultBoxScoreTimeout
	}
	return timeout + s.quotaInterval
}

// providerFactory assembles the provider with shared wrappers (rate limit + retry + breaker).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build wraps base, or the configured provider when base is nil.
func (f providerFactory) build(cfg config.Config, base providers.DataProvider) providerStack {
	if base == nil {
		base = selectProvider(cfg, f.logger)
	}
	name := normalizeProviderName(cfg.Provider, base)
	limits := cfg.Limits

	wrapped := base
	var quotaInterval time.Duration
	// The fixture has no quota to respect.
	if name != providerFixture {
		wrapped = providers.NewRateLimitedProvider(wrapped, limits.RequestsPerMinute, f.logger)
		quotaInterval = providers.RateLimitInterval(limits.RequestsPerMinute)
	}
	wrapped = providers.NewRetryingProvider(wrapped, f.logger, f.metrics, name, limits.RetryAttempts, limits.RetryBackoff)

	breaker := providers.NewBreakerBoxScoreProvider(wrapped, providers.BreakerConfig{
		Name:                name + "-boxscores",
		ConsecutiveFailures: limits.BreakerFailures,
		Cooldown:            limits.BreakerCooldown,
	}, f.logger, f.metrics)

	return providerStack{name: name, data: wrapped, boxScores: breaker, quotaInterval: quotaInterval}
}
