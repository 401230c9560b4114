package config

import "time"

const (
	envPort         = "PORT"
	envProvider     = "PROVIDER"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envCORSOrigins  = "CORS_ALLOWED_ORIGINS"

	envRequestsPerMinute = "PROVIDER_REQUESTS_PER_MINUTE"
	envRetryAttempts     = "PROVIDER_RETRY_ATTEMPTS"
	envRetryBackoff      = "PROVIDER_RETRY_BACKOFF"
	envBreakerFailures   = "BOXSCORE_BREAKER_FAILURES"
	envBreakerCooldown   = "BOXSCORE_BREAKER_COOLDOWN"

	envWindowDays        = "WINDOW_DAYS"
	envSeasonPageSize    = "SEASON_PAGE_SIZE"
	envLiveWindow        = "LIVE_WINDOW"
	envDisplayTimezone   = "DISPLAY_TIMEZONE"
	envBoxScoreTimeout   = "BOXSCORE_TIMEOUT"
	envConcurrentWindow  = "RESOLVER_CONCURRENT_WINDOW"
	envWindowConcurrency = "RESOLVER_WINDOW_CONCURRENCY"

	defaultPort        = "4000"
	defaultProvider    = "fixture"
	defaultMetricsPort = "9090"
	defaultServiceName = "nba-next-game-service"

	// balldontlie's free tier allows 5 requests per minute; paid tiers raise this via env.
	defaultRequestsPerMinute = 5
	defaultRetryAttempts     = 3
	defaultRetryBackoff      = 200 * Duration(time.Millisecond)
	defaultBreakerFailures   = 5
	defaultBreakerCooldown   = 30 * Duration(time.Second)

	defaultWindowDays        = 7
	defaultSeasonPageSize    = 100
	defaultLiveWindow        = 3 * Duration(time.Hour)
	defaultDisplayTimezone   = "America/New_York"
	defaultBoxScoreTimeout   = 5 * Duration(time.Second)
	defaultConcurrentWindow  = false
	defaultWindowConcurrency = 4
)
