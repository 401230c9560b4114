package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-next-game-service/internal/app/nextgame"
	"github.com/preston-bernstein/nba-next-game-service/internal/config"
	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/metrics"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
	"github.com/preston-bernstein/nba-next-game-service/internal/teststubs"
	"github.com/preston-bernstein/nba-next-game-service/internal/testutil"
)

// liveGameProvider serves one game that tipped off an hour before the returned reference
// instant, plus a box score carrying p1's line.
func liveGameProvider() (*teststubs.StubProvider, time.Time) {
	tipoff := time.Date(2024, 1, 10, 19, 0, 0, 0, time.UTC)
	return &teststubs.StubProvider{
		Players:          map[string]players.Player{"p1": testutil.SamplePlayer("p1", "home")},
		MissingPlayerErr: providers.ErrNotFound,
		GamesByDate: map[string][]domaingames.Game{
			"2024-01-10": {testutil.SampleGame("g1", tipoff)},
		},
		BoxScores: map[string][]stats.BoxScoreEntry{
			"g1": {{GameID: "g1", PlayerID: "p1", TeamID: "home", Stats: stats.StatLine{Points: 31}}},
		},
	}, tipoff.Add(time.Hour)
}

func resolveLive(t *testing.T, srv *Server, at time.Time) nextgame.Result {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/players/p1/next-game?at="+at.Format(time.RFC3339), nil)
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result nextgame.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	return result
}

func TestDefaultBalldontlieStackAttachesLiveStats(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out two free-tier rate limit intervals")
	}
	t.Setenv("PROVIDER", "balldontlie")
	cfg := config.Load()

	provider, at := liveGameProvider()
	rec := metrics.NewRecorder()
	srv := newServerWithMetrics(cfg, nil, provider, rec)

	result := resolveLive(t, srv, at)
	if result.Status != nextgame.StatusLive {
		t.Fatalf("expected live game, got %s", result.Status)
	}
	if result.PlayerStats == nil || result.PlayerStats.Points != 31 {
		t.Fatalf("expected live stats under the default quota, got %+v", result.PlayerStats)
	}
	if state := srv.providers.boxScores.State(); state != "closed" {
		t.Fatalf("expected breaker to stay closed, got %s", state)
	}
}

func TestBoxScoreBudgetCoversQuotaWait(t *testing.T) {
	provider, at := liveGameProvider()
	cfg := config.Config{
		Provider: "upstream",
		// One token every 100ms, twice the box score timeout.
		Limits:   config.ProviderLimitsConfig{RequestsPerMinute: 600, RetryAttempts: 3},
		Resolver: config.ResolverConfig{DisplayTimezone: "UTC", BoxScoreTimeout: 50 * time.Millisecond},
	}
	rec := metrics.NewRecorder()
	srv := newServerWithMetrics(cfg, nil, provider, rec)

	result := resolveLive(t, srv, at)
	if result.PlayerStats == nil || result.PlayerStats.Points != 31 {
		t.Fatalf("expected stats once the budget covers the quota wait, got %+v", result.PlayerStats)
	}
	if got := rec.Correlations(nextgame.CorrelationMatched); got != 1 {
		t.Fatalf("expected a matched correlation, got %d", got)
	}
	if provider.BoxScoreCalls.Load() != 1 {
		t.Fatalf("expected a single box score call, got %d", provider.BoxScoreCalls.Load())
	}
}

func TestProviderStackBoxScoreBudget(t *testing.T) {
	t.Setenv("PROVIDER", "balldontlie")
	cfg := config.Load()

	limited := newProviderFactory(nil, nil).build(cfg, &teststubs.StubProvider{})
	interval := providers.RateLimitInterval(cfg.Limits.RequestsPerMinute)
	if got := limited.boxScoreBudget(cfg.Resolver.BoxScoreTimeout); got != cfg.Resolver.BoxScoreTimeout+interval || got <= interval {
		t.Fatalf("expected budget past the %s quota interval, got %s", interval, got)
	}

	cfg.Provider = providerFixture
	unlimited := newProviderFactory(nil, nil).build(cfg, nil)
	if got := unlimited.boxScoreBudget(0); got != nextgame.DefaultBoxScoreTimeout {
		t.Fatalf("expected plain default timeout without a limiter, got %s", got)
	}
}

func TestDisplayLocationFallsBackToUTC(t *testing.T) {
	if loc := displayLocation("Mars/Olympus", nil); loc != time.UTC {
		t.Fatalf("expected UTC for unknown zone, got %s", loc)
	}
	if loc := displayLocation("", nil); loc != time.UTC {
		t.Fatalf("expected UTC for empty zone, got %s", loc)
	}
	if loc := displayLocation("America/New_York", nil); loc.String() != "America/New_York" {
		t.Fatalf("expected configured zone, got %s", loc)
	}
}
