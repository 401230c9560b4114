package nextgame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/logging"
	"github.com/preston-bernstein/nba-next-game-service/internal/metrics"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
	"github.com/preston-bernstein/nba-next-game-service/internal/timeutil"
)

// ErrPlayerNotFound means the player id does not resolve to a player. No result can be produced.
var ErrPlayerNotFound = errors.New("player not found")

// Resolution outcomes reported to metrics alongside the Status values.
const (
	OutcomePlayerNotFound = "player_not_found"
	OutcomeNotFound       = "not_found"
	OutcomeError          = "error"
)

// Result is a resolved next game. PlayerStats is nil unless the game is live or final and the
// player's line could be found.
type Result struct {
	Game          domaingames.Game `json:"game"`
	Status        Status           `json:"status"`
	FormattedTime string           `json:"formattedTime"`
	PlayerStats   *stats.StatLine  `json:"playerStats"`
	WindowIndex   int              `json:"windowIndex"`
	FoundVia      SearchPhase      `json:"foundVia"`
}

// Sources are the upstream lookups a Resolver reads from.
type Sources struct {
	Players   providers.PlayerProvider
	Schedule  providers.ScheduleProvider
	BoxScores providers.BoxScoreProvider
}

// Config tunes a Resolver. Zero values take the package defaults.
type Config struct {
	Finder          FinderConfig
	LiveWindow      time.Duration
	DisplayLocation *time.Location
	Sentinel        SentinelFunc
	BoxScoreTimeout time.Duration
}

// Resolver answers "what is this player's next game" from fresh provider data on every call.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	players    providers.PlayerProvider
	finder     *Finder
	classifier Classifier
	times      *DisplayTimeResolver
	correlator *Correlator
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewResolver wires the resolution pipeline.
func NewResolver(src Sources, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Resolver {
	return &Resolver{
		players:    src.Players,
		finder:     NewFinder(src.Schedule, cfg.Finder, logger),
		classifier: NewClassifier(cfg.LiveWindow),
		times:      NewDisplayTimeResolver(cfg.DisplayLocation, cfg.Sentinel, logger),
		correlator: NewCorrelator(src.BoxScores, cfg.BoxScoreTimeout, logger, recorder),
		logger:     logger,
		metrics:    recorder,
	}
}

// ResolveNextGame resolves the next game for playerID as of reference.
//
// Errors: ErrPlayerNotFound for an unknown player, ErrNoGame when nothing qualifies, ErrSeasonLookup
// when the season fallback fails, or the wrapped player lookup or context error.
func (r *Resolver) ResolveNextGame(ctx context.Context, playerID string, reference time.Time) (Result, error) {
	started := time.Now()
	logger := logging.FromContext(ctx, r.logger)

	player, err := r.players.FetchPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, providers.ErrNotFound) {
			r.record(OutcomePlayerNotFound, "", started)
			return Result{}, fmt.Errorf("%w: %s: %w", ErrPlayerNotFound, playerID, err)
		}
		r.record(OutcomeError, "", started)
		return Result{}, fmt.Errorf("lookup player %s: %w", playerID, err)
	}
	if !player.HasTeam() {
		logging.Warn(logger, "player has no team", logging.FieldPlayerID, playerID, "player", player.FullName())
		r.record(OutcomeNotFound, "", started)
		return Result{}, ErrNoGame
	}

	teamID := player.Team.ID
	referenceDay := timeutil.StartOfDayUTC(reference)
	match, err := r.finder.FindNextGame(ctx, teamID, referenceDay)
	if err != nil {
		if errors.Is(err, ErrNoGame) {
			r.record(OutcomeNotFound, "", started)
		} else {
			r.record(OutcomeError, "", started)
		}
		return Result{}, err
	}

	status, err := r.classify(match.Game, reference)
	if err != nil {
		logging.Warn(logger, "matched game has no usable start",
			logging.FieldGameID, match.Game.ID,
			logging.FieldTeamID, teamID,
			"start", match.Game.StartTime,
			"err", err,
		)
		r.record(OutcomeError, string(match.Via), started)
		return Result{}, err
	}

	result := Result{
		Game:          match.Game,
		Status:        status,
		FormattedTime: r.times.Resolve(match.Game, match.WindowIndex),
		WindowIndex:   match.WindowIndex,
		FoundVia:      match.Via,
	}
	if status.HasStats() {
		// Box scores key players by the provider's canonical id, which may differ from the request.
		statsID := player.ID
		if statsID == "" {
			statsID = playerID
		}
		result.PlayerStats = r.correlator.Correlate(ctx, match.Game.ID, statsID)
	}

	r.record(string(status), string(match.Via), started)
	if logger != nil {
		logger.Debug("next game resolved",
			logging.FieldPlayerID, playerID,
			logging.FieldTeamID, teamID,
			logging.FieldGameID, match.Game.ID,
			"matchup", match.Game.Matchup(),
			logging.FieldGameStatus, string(status),
			logging.FieldWindowIndex, match.WindowIndex,
			"found_via", string(match.Via),
		)
	}
	return result, nil
}

// classify reads the game's raw start instant. The finder skips unparseable starts, so a failure here
// means a finder bug; it surfaces as ErrNoGame rather than a zero-time classification.
func (r *Resolver) classify(game domaingames.Game, reference time.Time) (Status, error) {
	instant, err := game.StartInstant()
	if err != nil {
		return "", fmt.Errorf("%w: game %s start %q: %w", ErrNoGame, game.ID, game.StartTime, err)
	}
	return r.classifier.Classify(instant, reference), nil
}

func (r *Resolver) record(outcome, phase string, started time.Time) {
	r.metrics.RecordResolution(outcome, phase, time.Since(started))
}
