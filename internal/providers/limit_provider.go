package providers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
)

const defaultRequestsPerMinute = 60

// RateLimitInterval is the spacing between tokens for a requests-per-minute quota.
// Non-positive quotas use the default of 60 per minute.
func RateLimitInterval(requestsPerMinute int) time.Duration {
	if requestsPerMinute <= 0 {
		requestsPerMinute = defaultRequestsPerMinute
	}
	return time.Minute / time.Duration(requestsPerMinute)
}

// rateLimitedProvider wraps a DataProvider and spaces upstream calls to stay under quota.
type rateLimitedProvider struct {
	next    DataProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that allows at most requestsPerMinute calls per minute,
// with a burst of one. Calls block until a token is available or ctx is done.
func NewRateLimitedProvider(next DataProvider, requestsPerMinute int, logger *slog.Logger) DataProvider {
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(RateLimitInterval(requestsPerMinute)), 1),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) FetchPlayer(ctx context.Context, playerID string) (players.Player, error) {
	if err := p.wait(ctx, "fetch_player"); err != nil {
		return players.Player{}, err
	}
	return p.next.FetchPlayer(ctx, playerID)
}

func (p *rateLimitedProvider) FetchTeamGamesOnDate(ctx context.Context, teamID string, date string) ([]domaingames.Game, error) {
	if err := p.wait(ctx, "fetch_team_games_on_date"); err != nil {
		return nil, err
	}
	return p.next.FetchTeamGamesOnDate(ctx, teamID, date)
}

func (p *rateLimitedProvider) FetchTeamSeasonGames(ctx context.Context, teamID string, season int, perPage int) ([]domaingames.Game, error) {
	if err := p.wait(ctx, "fetch_team_season_games"); err != nil {
		return nil, err
	}
	return p.next.FetchTeamSeasonGames(ctx, teamID, season, perPage)
}

func (p *rateLimitedProvider) FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error) {
	if err := p.wait(ctx, "fetch_box_score"); err != nil {
		return nil, err
	}
	return p.next.FetchBoxScore(ctx, gameID)
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		logWithProvider(ctx, nil, slog.LevelWarn, "rate-limited", "provider unavailable")
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", "op", op, "err", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// The limiter refuses up front when the token would arrive after ctx's deadline.
		return fmt.Errorf("%s: %w", op, ErrQuotaDeadline)
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch", "op", op)
	return nil
}
