package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and resolutions,
// forwarding to OpenTelemetry instruments when configured.
type Recorder struct {
	mu           sync.Mutex
	stats        map[string]*providerStats
	resolutions  map[string]int
	correlations map[string]int
	breakers     map[string]int
	otel         *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:        make(map[string]*providerStats),
		resolutions:  make(map[string]int),
		correlations: make(map[string]int),
		breakers:     make(map[string]int),
		otel:         otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.update(provider, func(stats *providerStats) {
		stats.calls++
		stats.lastCallLatency = duration
		if err != nil {
			stats.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.update(provider, func(stats *providerStats) {
		stats.rateLimitHits++
		if retryAfter > 0 {
			stats.lastRetryAfter = retryAfter
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordResolution tracks a next-game resolution by outcome (upcoming, live, final, not_found, error)
// and the search phase that produced it.
func (r *Recorder) RecordResolution(outcome, phase string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.resolutions[outcome]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordResolution(outcome, phase, duration)
	}
}

// Resolutions returns how many resolutions ended with the given outcome.
func (r *Recorder) Resolutions(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolutions[outcome]
}

// RecordCorrelation tracks a box score correlation outcome (matched, no_match, error, timeout).
func (r *Recorder) RecordCorrelation(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.correlations[outcome]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCorrelation(outcome)
	}
}

// Correlations returns how many box score correlations ended with the given outcome.
func (r *Recorder) Correlations(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.correlations[outcome]
}

// RecordBreakerTransition counts a circuit breaker moving into state.
func (r *Recorder) RecordBreakerTransition(breaker, state string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.breakers[breaker+"/"+state]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordBreakerTransition(breaker, state)
	}
}

// BreakerTransitions returns how many times the named breaker entered state.
func (r *Recorder) BreakerTransitions(breaker, state string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.breakers[breaker+"/"+state]
}

func (r *Recorder) update(provider string, fn func(*providerStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	fn(stats)
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
