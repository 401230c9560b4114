package nextgame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/logging"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
	"github.com/preston-bernstein/nba-next-game-service/internal/timeutil"
)

const (
	// DefaultWindowDays is how many days the per-date search covers before falling back to the season.
	DefaultWindowDays = 7
	// DefaultSeasonPageSize caps the season fallback query.
	DefaultSeasonPageSize = 100
	// DefaultWindowConcurrency bounds in-flight date lookups for the concurrent search.
	DefaultWindowConcurrency = 4
)

var (
	// ErrNoGame means neither the window nor the season holds a game on or after the reference day.
	ErrNoGame = errors.New("no upcoming game")
	// ErrSeasonLookup wraps a failed season fallback query.
	ErrSeasonLookup = errors.New("season lookup failed")
)

// SearchPhase names the phase that produced a match.
type SearchPhase string

const (
	PhaseWindow SearchPhase = "window"
	PhaseSeason SearchPhase = "season"
)

// Match is the game chosen by a Finder and where it was found.
// WindowIndex is the offset of the matching date in the window, and 0 for season matches.
type Match struct {
	Game        domaingames.Game
	WindowIndex int
	Via         SearchPhase
}

// FinderConfig tunes a Finder. Zero values take the package defaults.
type FinderConfig struct {
	WindowDays     int
	SeasonPageSize int
	Concurrent     bool
	Concurrency    int
}

// Finder locates a team's next game: a per-date scan of the coming days, then one season-wide query.
type Finder struct {
	schedule       providers.ScheduleProvider
	search         windowSearch
	windowDays     int
	seasonPageSize int
	logger         *slog.Logger
}

// NewFinder builds a Finder over schedule.
func NewFinder(schedule providers.ScheduleProvider, cfg FinderConfig, logger *slog.Logger) *Finder {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultWindowDays
	}
	if cfg.SeasonPageSize <= 0 {
		cfg.SeasonPageSize = DefaultSeasonPageSize
	}
	search := sequentialSearch
	if cfg.Concurrent {
		if cfg.Concurrency <= 0 {
			cfg.Concurrency = DefaultWindowConcurrency
		}
		search = concurrentSearch(cfg.Concurrency)
	}
	return &Finder{
		schedule:       schedule,
		search:         search,
		windowDays:     cfg.WindowDays,
		seasonPageSize: cfg.SeasonPageSize,
		logger:         logger,
	}
}

// FindNextGame returns the earliest game on or after referenceDay for teamID.
// Per-date lookup failures are logged and skipped; a failed season query returns ErrSeasonLookup.
func (f *Finder) FindNextGame(ctx context.Context, teamID string, referenceDay time.Time) (Match, error) {
	referenceDay = timeutil.StartOfDayUTC(referenceDay)
	logger := logging.FromContext(ctx, f.logger)

	lookup := func(ctx context.Context, index int, date string) (domaingames.Game, bool) {
		games, err := f.schedule.FetchTeamGamesOnDate(ctx, teamID, date)
		if err != nil {
			if ctx.Err() == nil {
				logging.Warn(logger, "window date lookup failed",
					logging.FieldTeamID, teamID,
					logging.FieldDate, date,
					logging.FieldWindowIndex, index,
					"err", err,
				)
			}
			return domaingames.Game{}, false
		}
		return earliestOnOrAfter(games, referenceDay)
	}

	hit, err := f.search(ctx, timeutil.DateWindow(referenceDay, f.windowDays), lookup)
	if err != nil {
		return Match{}, err
	}
	if hit.ok {
		return Match{Game: hit.game, WindowIndex: hit.index, Via: PhaseWindow}, nil
	}

	return f.searchSeason(ctx, logger, teamID, referenceDay)
}

func (f *Finder) searchSeason(ctx context.Context, logger *slog.Logger, teamID string, referenceDay time.Time) (Match, error) {
	season := timeutil.SeasonFor(referenceDay)
	games, err := f.schedule.FetchTeamSeasonGames(ctx, teamID, season, f.seasonPageSize)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Match{}, ctxErr
		}
		return Match{}, fmt.Errorf("%w: team %s season %d: %w", ErrSeasonLookup, teamID, season, err)
	}
	game, ok := earliestOnOrAfter(games, referenceDay)
	if !ok {
		if logger != nil {
			logger.Debug("no game found in window or season",
				logging.FieldTeamID, teamID,
				logging.FieldSeason, season,
				logging.FieldCount, len(games),
			)
		}
		return Match{}, ErrNoGame
	}
	return Match{Game: game, WindowIndex: 0, Via: PhaseSeason}, nil
}

// earliestOnOrAfter picks the game with the earliest start whose UTC day is not before day.
// Unparseable starts are skipped; equal starts fall back to game id for a stable pick.
func earliestOnOrAfter(games []domaingames.Game, day time.Time) (domaingames.Game, bool) {
	var (
		best      domaingames.Game
		bestStart time.Time
		found     bool
	)
	for _, g := range games {
		start, err := g.StartInstant()
		if err != nil {
			continue
		}
		if timeutil.StartOfDayUTC(start).Before(day) {
			continue
		}
		if !found || start.Before(bestStart) || (start.Equal(bestStart) && g.ID < best.ID) {
			best, bestStart, found = g, start, true
		}
	}
	return best, found
}
