package nextgame

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/timeutil"
)

func lookupFrom(hits map[int]string, delays map[int]time.Duration, canceled *atomic.Int32) dateLookup {
	return func(ctx context.Context, index int, date string) (domaingames.Game, bool) {
		if d := delays[index]; d > 0 {
			select {
			case <-ctx.Done():
				if canceled != nil {
					canceled.Add(1)
				}
				return domaingames.Game{}, false
			case <-time.After(d):
			}
		}
		id, ok := hits[index]
		if !ok {
			return domaingames.Game{}, false
		}
		return domaingames.Game{ID: id, StartTime: date + "T00:00:00Z"}, true
	}
}

func TestSearchStrategiesAgree(t *testing.T) {
	window := timeutil.DateWindow(refDay, 7)
	cases := []map[int]string{
		{},
		{0: "first"},
		{6: "last"},
		{2: "two", 4: "four"},
		{1: "one", 3: "three", 5: "five"},
	}
	strategies := map[string]windowSearch{
		"sequential":    sequentialSearch,
		"concurrent-1":  concurrentSearch(1),
		"concurrent-3":  concurrentSearch(3),
		"concurrent-10": concurrentSearch(10),
	}
	for _, hits := range cases {
		want, _ := sequentialSearch(context.Background(), window, lookupFrom(hits, nil, nil))
		for name, search := range strategies {
			got, err := search(context.Background(), window, lookupFrom(hits, nil, nil))
			if err != nil {
				t.Fatalf("%s: unexpected error %v", name, err)
			}
			if got != want {
				t.Fatalf("%s: expected %+v, got %+v for hits %v", name, want, got, hits)
			}
		}
	}
}

func TestConcurrentSearchPrefersEarlierSlowDate(t *testing.T) {
	window := timeutil.DateWindow(refDay, 5)
	hits := map[int]string{1: "slow-early", 3: "fast-late"}
	delays := map[int]time.Duration{1: 50 * time.Millisecond}

	got, err := concurrentSearch(5)(context.Background(), window, lookupFrom(hits, delays, nil))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !got.ok || got.index != 1 || got.game.ID != "slow-early" {
		t.Fatalf("expected the earlier date to win, got %+v", got)
	}
}

func TestConcurrentSearchCancelsLaterDates(t *testing.T) {
	window := timeutil.DateWindow(refDay, 4)
	hits := map[int]string{0: "first"}
	delays := map[int]time.Duration{1: time.Second, 2: time.Second, 3: time.Second}
	var canceled atomic.Int32

	start := time.Now()
	got, err := concurrentSearch(4)(context.Background(), window, lookupFrom(hits, delays, &canceled))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got.index != 0 {
		t.Fatalf("expected first date, got %+v", got)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("expected later lookups canceled, took %s", elapsed)
	}
	if n := canceled.Load(); n > 3 {
		t.Fatalf("expected at most the three later lookups canceled, got %d", n)
	}
}

func TestSearchReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	window := timeutil.DateWindow(refDay, 3)

	for name, search := range map[string]windowSearch{"sequential": sequentialSearch, "concurrent": concurrentSearch(2)} {
		if _, err := search(ctx, window, lookupFrom(map[int]string{0: "x"}, nil, nil)); err == nil {
			t.Fatalf("%s: expected context error", name)
		}
	}
}

func TestConcurrentSearchRespectsLimit(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		peak     int
	)
	lookup := func(ctx context.Context, index int, date string) (domaingames.Game, bool) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()
		return domaingames.Game{}, false
	}

	if _, err := concurrentSearch(2)(context.Background(), timeutil.DateWindow(refDay, 7), lookup); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if peak > 2 {
		t.Fatalf("expected at most 2 lookups in flight, saw %d", peak)
	}
}
