package testutil

import (
	"context"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
)

// ErrProvider fails every lookup with Err.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchPlayer(ctx context.Context, playerID string) (players.Player, error) {
	return players.Player{}, p.Err
}

func (p ErrProvider) FetchTeamGamesOnDate(ctx context.Context, teamID string, date string) ([]domaingames.Game, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchTeamSeasonGames(ctx context.Context, teamID string, season int, perPage int) ([]domaingames.Game, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error) {
	return nil, p.Err
}

// UnavailableProvider fails every lookup with providers.ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchPlayer(ctx context.Context, playerID string) (players.Player, error) {
	return players.Player{}, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchTeamGamesOnDate(ctx context.Context, teamID string, date string) ([]domaingames.Game, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchTeamSeasonGames(ctx context.Context, teamID string, season int, perPage int) ([]domaingames.Game, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error) {
	return nil, providers.ErrProviderUnavailable
}
