package testutil

import (
	"time"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/teams"
)

// SampleTeam returns a minimal team fixture with the provided id.
func SampleTeam(id string) teams.Team {
	return teams.Team{
		ID:           id,
		Name:         "Team " + id,
		FullName:     "Sample Team " + id,
		Abbreviation: "SMP",
	}
}

// SampleGame returns a scheduled home-vs-away game starting at start.
func SampleGame(id string, start time.Time) domaingames.Game {
	return domaingames.Game{
		ID:        id,
		Provider:  "test",
		HomeTeam:  SampleTeam("home"),
		AwayTeam:  SampleTeam("away"),
		StartTime: start.UTC().Format(time.RFC3339),
		Status:    domaingames.StatusScheduled,
		Meta:      domaingames.GameMeta{Season: "2023-2024", UpstreamGameID: 1},
	}
}

// SamplePlayer returns a player rostered on teamID.
func SamplePlayer(id, teamID string) players.Player {
	return players.Player{
		ID:        id,
		FirstName: "Sample",
		LastName:  id,
		Position:  "G",
		Team:      SampleTeam(teamID),
	}
}
