package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-next-game-service/internal/app/nextgame"
	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
	"github.com/preston-bernstein/nba-next-game-service/internal/teststubs"
	"github.com/preston-bernstein/nba-next-game-service/internal/testutil"
)

type stubResolver struct {
	result    nextgame.Result
	err       error
	playerID  string
	reference time.Time
}

func (s *stubResolver) ResolveNextGame(ctx context.Context, playerID string, reference time.Time) (nextgame.Result, error) {
	s.playerID = playerID
	s.reference = reference
	return s.result, s.err
}

func routed(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/players/{playerID}/next-game", h.NextGame)
	return r
}

func TestHealth(t *testing.T) {
	h := NewHandler(&stubResolver{}, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler(&stubResolver{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReadyWithoutResolverIsUnavailable(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestReadyReportsDependencies(t *testing.T) {
	state := Readiness{Provider: "fixture", BoxScoreBreaker: "closed"}
	h := NewHandler(&stubResolver{}, nil, func() Readiness { return state })

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ready" || resp["provider"] != "fixture" || resp["boxScoreBreaker"] != "closed" {
		t.Fatalf("unexpected ready body %+v", resp)
	}

	state.BoxScoreBreaker = "open"
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	resp = nil
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "degraded" {
		t.Fatalf("expected degraded with open breaker, got %+v", resp)
	}
}

func TestNextGameReturnsResult(t *testing.T) {
	game := testutil.SampleGame("game-1", time.Date(2024, 1, 11, 0, 30, 0, 0, time.UTC))
	stub := &stubResolver{result: nextgame.Result{
		Game:          game,
		Status:        nextgame.StatusUpcoming,
		FormattedTime: "7:30 PM EST",
		WindowIndex:   1,
		FoundVia:      nextgame.PhaseWindow,
	}}
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	h := NewHandler(stub, nil, nil)
	h.now = testutil.NowAt(now)

	rr := testutil.Serve(routed(h), http.MethodGet, "/players/player-237/next-game", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	if stub.playerID != "player-237" {
		t.Fatalf("expected player id from path, got %q", stub.playerID)
	}
	if !stub.reference.Equal(now) {
		t.Fatalf("expected reference to default to now, got %s", stub.reference)
	}

	var resp struct {
		Game          domaingames.Game `json:"game"`
		Status        string           `json:"status"`
		FormattedTime string           `json:"formattedTime"`
		PlayerStats   any              `json:"playerStats"`
		WindowIndex   int              `json:"windowIndex"`
		FoundVia      string           `json:"foundVia"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Game.ID != "game-1" || resp.Status != "upcoming" || resp.FormattedTime != "7:30 PM EST" {
		t.Fatalf("unexpected body %+v", resp)
	}
	if resp.PlayerStats != nil || resp.WindowIndex != 1 || resp.FoundVia != "window" {
		t.Fatalf("unexpected metadata %+v", resp)
	}
}

func TestNextGameHonorsReferenceParam(t *testing.T) {
	stub := &stubResolver{}
	h := NewHandler(stub, nil, nil)

	rr := testutil.Serve(routed(h), http.MethodGet, "/players/p1/next-game?at=2024-03-01T18:30:00-05:00", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	want := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	if !stub.reference.Equal(want) {
		t.Fatalf("expected reference %s, got %s", want, stub.reference)
	}
}

func TestNextGameRejectsMalformedReference(t *testing.T) {
	stub := &stubResolver{}
	h := NewHandler(stub, nil, nil)

	rr := testutil.Serve(routed(h), http.MethodGet, "/players/p1/next-game?at=yesterday", nil)
	testutil.AssertJSONError(t, rr, http.StatusBadRequest, "invalid at (expected RFC3339)")
	if stub.playerID != "" {
		t.Fatalf("expected resolver not to be called")
	}
}

func TestNextGameRequiresPlayerID(t *testing.T) {
	h := NewHandler(&stubResolver{}, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.NextGame), http.MethodGet, "/players//next-game", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestNextGameWithoutResolver(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	rr := testutil.Serve(routed(h), http.MethodGet, "/players/p1/next-game", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestNextGameMapsErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"player not found", fmt.Errorf("%w: p1", nextgame.ErrPlayerNotFound), http.StatusNotFound, "player not found"},
		{"no game", nextgame.ErrNoGame, http.StatusNotFound, "no upcoming game"},
		{"season lookup", fmt.Errorf("%w: boom", nextgame.ErrSeasonLookup), http.StatusBadGateway, "season schedule unavailable"},
		{"provider unavailable", fmt.Errorf("lookup player p1: %w", providers.ErrProviderUnavailable), http.StatusServiceUnavailable, "provider unavailable"},
		{"canceled", context.Canceled, http.StatusServiceUnavailable, "request canceled"},
		{"upstream", errors.New("connection reset"), http.StatusBadGateway, "upstream lookup failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, _ := testutil.NewBufferLogger()
			h := NewHandler(&stubResolver{err: tc.err}, logger, nil)

			rr := testutil.Serve(routed(h), http.MethodGet, "/players/p1/next-game", nil)
			testutil.AssertJSONError(t, rr, tc.status, tc.msg)
		})
	}
}

func TestNextGameErrorCarriesRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	h := NewHandler(&stubResolver{err: nextgame.ErrNoGame}, logger, nil)
	handler := middleware.LoggingMiddleware(logger, nil, routed(h))

	req := httptest.NewRequest(http.MethodGet, "/players/p1/next-game", nil)
	req.Header.Set("X-Request-ID", "trace-1")
	rr := testutil.ServeRequest(handler, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["requestId"] != "trace-1" {
		t.Fatalf("expected request id in error body, got %+v", resp)
	}
}

func TestNextGameResolvesAgainstProvider(t *testing.T) {
	tipoff := time.Date(2024, 1, 11, 1, 0, 0, 0, time.UTC)
	stub := &teststubs.StubProvider{
		Players:          map[string]players.Player{"p1": testutil.SamplePlayer("p1", "home")},
		MissingPlayerErr: providers.ErrNotFound,
		GamesByDate: map[string][]domaingames.Game{
			"2024-01-11": {testutil.SampleGame("g1", tipoff)},
		},
	}
	h := NewHandler(testutil.NewResolver(stub), nil, nil)

	rr := testutil.Serve(routed(h), http.MethodGet, "/players/p1/next-game?at=2024-01-10T12:00:00Z", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp nextgame.Result
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Game.ID != "g1" || resp.Status != nextgame.StatusUpcoming {
		t.Fatalf("unexpected result %+v", resp)
	}
	if resp.WindowIndex != 1 || resp.FoundVia != nextgame.PhaseWindow {
		t.Fatalf("expected window hit at index 1, got %+v", resp)
	}
	if resp.FormattedTime != "1:00 AM UTC" {
		t.Fatalf("expected UTC display time, got %q", resp.FormattedTime)
	}

	rr = testutil.Serve(routed(h), http.MethodGet, "/players/ghost/next-game", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func BenchmarkNextGame(b *testing.B) {
	game := testutil.SampleGame("game-1", time.Date(2024, 1, 11, 0, 30, 0, 0, time.UTC))
	h := NewHandler(&stubResolver{result: nextgame.Result{Game: game, Status: nextgame.StatusUpcoming}}, nil, nil)
	router := routed(h)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/players/p1/next-game", nil)
		router.ServeHTTP(rr, req)
	}
}
