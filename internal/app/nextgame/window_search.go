package nextgame

import (
	"context"
	"iter"
	"sync"

	"golang.org/x/sync/errgroup"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
)

// dateLookup returns the qualifying game for one window date, if any. It reports failures as misses.
type dateLookup func(ctx context.Context, index int, date string) (domaingames.Game, bool)

type windowHit struct {
	game  domaingames.Game
	index int
	ok    bool
}

// windowSearch returns the hit at the earliest window date that has one.
// The only error is the caller's context ending.
type windowSearch func(ctx context.Context, window iter.Seq2[int, string], lookup dateLookup) (windowHit, error)

func sequentialSearch(ctx context.Context, window iter.Seq2[int, string], lookup dateLookup) (windowHit, error) {
	for i, date := range window {
		if err := ctx.Err(); err != nil {
			return windowHit{}, err
		}
		if game, ok := lookup(ctx, i, date); ok {
			return windowHit{game: game, index: i, ok: true}, nil
		}
	}
	return windowHit{}, ctx.Err()
}

// concurrentSearch looks dates up in parallel, at most limit at a time. Once a date matches,
// lookups for later dates are canceled; earlier dates always run to completion so the result
// matches sequentialSearch.
func concurrentSearch(limit int) windowSearch {
	return func(ctx context.Context, window iter.Seq2[int, string], lookup dateLookup) (windowHit, error) {
		var dates []string
		for _, date := range window {
			dates = append(dates, date)
		}

		var (
			mu      sync.Mutex
			best    = len(dates)
			hits    = make([]windowHit, len(dates))
			cancels = make([]context.CancelFunc, len(dates))
		)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(limit)
		for i, date := range dates {
			dateCtx, cancel := context.WithCancel(gctx)
			mu.Lock()
			cancels[i] = cancel
			skip := i > best
			mu.Unlock()
			if skip {
				cancel()
				continue
			}
			g.Go(func() error {
				defer cancel()
				game, ok := lookup(dateCtx, i, date)
				if !ok {
					return nil
				}
				mu.Lock()
				defer mu.Unlock()
				hits[i] = windowHit{game: game, index: i, ok: true}
				if i < best {
					best = i
					for j := i + 1; j < len(cancels); j++ {
						if cancels[j] != nil {
							cancels[j]()
						}
					}
				}
				return nil
			})
		}
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return windowHit{}, err
		}
		for _, hit := range hits {
			if hit.ok {
				return hit, nil
			}
		}
		return windowHit{}, nil
	}
}
