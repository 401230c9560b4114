package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/metrics"
	"github.com/preston-bernstein/nba-next-game-service/internal/teststubs"
)

type flakeyProvider struct {
	teststubs.StubProvider
	failures int
	calls    int
	err      error
}

func (f *flakeyProvider) fail() error {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return f.err
		}
		return errors.New("boom")
	}
	return nil
}

func (f *flakeyProvider) FetchPlayer(ctx context.Context, playerID string) (players.Player, error) {
	if err := f.fail(); err != nil {
		return players.Player{}, err
	}
	return players.Player{ID: playerID}, nil
}

func (f *flakeyProvider) FetchTeamGamesOnDate(ctx context.Context, teamID string, date string) ([]domaingames.Game, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []domaingames.Game{{ID: "ok"}}, nil
}

func (f *flakeyProvider) FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []stats.BoxScoreEntry{{GameID: gameID}}, nil
}

func newTestRetrying(inner DataProvider, logger *slog.Logger, rec *metrics.Recorder, attempts int) *retryingProvider {
	rp := NewRetryingProvider(inner, logger, rec, "flakey", attempts, time.Millisecond).(*retryingProvider)
	rp.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return rp
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rec := metrics.NewRecorder()
	rp := newTestRetrying(fp, slog.Default(), rec, 3)

	games, err := rp.FetchTeamGamesOnDate(context.Background(), "team-1", "2024-01-01")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(games) != 1 || games[0].ID != "ok" {
		t.Fatalf("unexpected games %+v", games)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
	if rec.ProviderCalls("flakey") != 3 || rec.ProviderErrors("flakey") != 2 {
		t.Fatalf("expected per-attempt metrics, got %+v", rec.Snapshot("flakey"))
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	logger, buf := bufferLogger()
	rp := newTestRetrying(fp, logger, metrics.NewRecorder(), 2)

	_, err := rp.FetchBoxScore(context.Background(), "g1")
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
	if !strings.Contains(buf.String(), "provider fetch failed") || !strings.Contains(buf.String(), "provider=flakey") {
		t.Fatalf("expected failure log with provider, got %q", buf.String())
	}
}

func TestRetryingProviderDoesNotRetryNotFound(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: fmt.Errorf("player 9: %w", ErrNotFound)}
	rp := newTestRetrying(fp, nil, metrics.NewRecorder(), 3)

	_, err := rp.FetchPlayer(context.Background(), "9")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt for not found, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchPlayer(ctx, "1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected no retries after cancel, got %d calls", fp.calls)
	}
}

func TestRetryingProviderRecordsRateLimits(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: 20 * time.Millisecond}}
	rec := metrics.NewRecorder()
	rp := newTestRetrying(fp, nil, rec, 2)

	if _, err := rp.FetchTeamGamesOnDate(context.Background(), "t", "2024-01-01"); err != nil {
		t.Fatalf("expected success after rate limit, got %v", err)
	}
	if rec.RateLimitHits("flakey") != 1 || rec.LastRetryAfter("flakey") != 20*time.Millisecond {
		t.Fatalf("expected rate limit recorded, got %+v", rec.Snapshot("flakey"))
	}
}

func TestRetryingProviderWaitsOutRetryAfter(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: 150 * time.Millisecond}}
	rp := newTestRetrying(fp, nil, nil, 3)

	start := time.Now()
	if _, err := rp.FetchPlayer(context.Background(), "1"); err != nil {
		t.Fatalf("expected success after waiting out the rate limit, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Fatalf("expected retry to wait for Retry-After, elapsed %s", elapsed)
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderGivesUpWhenRetryAfterOutlivesDeadline(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: &RateLimitError{StatusCode: 429, RetryAfter: time.Minute}}
	rp := newTestRetrying(fp, nil, nil, 3)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	_, err := rp.FetchBoxScore(ctx, "g1")
	if _, ok := AsRateLimitError(err); !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("expected immediate give-up, elapsed %s", elapsed)
	}
}

func TestRetryAfterBackOffUsesLongerDelay(t *testing.T) {
	b := &retryAfterBackOff{BackOff: backoff.NewConstantBackOff(10 * time.Millisecond)}
	if got := b.NextBackOff(); got != 10*time.Millisecond {
		t.Fatalf("expected base delay without hint, got %s", got)
	}
	b.hint = time.Second
	if got := b.NextBackOff(); got != time.Second {
		t.Fatalf("expected hinted delay, got %s", got)
	}
	if got := b.NextBackOff(); got != 10*time.Millisecond {
		t.Fatalf("expected hint consumed, got %s", got)
	}

	stopped := &retryAfterBackOff{BackOff: &backoff.StopBackOff{}, hint: time.Second}
	if got := stopped.NextBackOff(); got != backoff.Stop {
		t.Fatalf("expected stop to win over hint, got %s", got)
	}
}

func TestRetryingProviderPassesSeasonThrough(t *testing.T) {
	inner := &teststubs.StubProvider{SeasonGames: []domaingames.Game{{ID: "s1"}}}
	rp := newTestRetrying(inner, nil, nil, 3)

	got, err := rp.FetchTeamSeasonGames(context.Background(), "", 2024, 100)
	if err != nil || len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("expected season games, got %+v err %v", got, err)
	}
}

func TestRetryableClassification(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("boom"), true},
		{&RateLimitError{}, true},
		{fmt.Errorf("x: %w", ErrNotFound), false},
		{ErrProviderUnavailable, false},
		{context.Canceled, false},
		{context.DeadlineExceeded, false},
		{fmt.Errorf("fetch_box_score: %w", ErrQuotaDeadline), false},
	}
	for _, tc := range cases {
		if got := retryable(tc.err); got != tc.want {
			t.Fatalf("retryable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}
