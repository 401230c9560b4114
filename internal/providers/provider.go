package providers

import (
	"context"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
)

// PlayerProvider fetches a single normalized player, including the player's team.
// Providers return an error wrapping ErrNotFound when the player does not exist.
type PlayerProvider interface {
	FetchPlayer(ctx context.Context, playerID string) (players.Player, error)
}

// ScheduleProvider fetches a team's games, either for one YYYY-MM-DD date or a whole season.
type ScheduleProvider interface {
	FetchTeamGamesOnDate(ctx context.Context, teamID string, date string) ([]domaingames.Game, error)
	FetchTeamSeasonGames(ctx context.Context, teamID string, season int, perPage int) ([]domaingames.Game, error)
}

// BoxScoreProvider fetches every player line recorded for a game.
type BoxScoreProvider interface {
	FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	PlayerProvider
	ScheduleProvider
	BoxScoreProvider
}
