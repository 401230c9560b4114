package games

import (
	"time"

	"github.com/preston-bernstein/nba-next-game-service/internal/domain/teams"
)

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Season         string `json:"season"`
	UpstreamGameID int    `json:"upstreamGameId"`
	Period         int    `json:"period,omitempty"`
	Postseason     bool   `json:"postseason,omitempty"`
	Time           string `json:"time,omitempty"`
	StatusText     string `json:"statusText,omitempty"`
}

// Game is the canonical game shape exposed by the service.
// StartTime is RFC3339 in UTC; upstream values that only carry a date are stored as UTC midnight.
type Game struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	HomeTeam  teams.Team `json:"homeTeam"`
	AwayTeam  teams.Team `json:"awayTeam"`
	StartTime string     `json:"startTime"`
	Status    GameStatus `json:"status"`
	Score     Score      `json:"score"`
	Meta      GameMeta   `json:"meta"`
}

// StartInstant parses StartTime.
func (g Game) StartInstant() (time.Time, error) {
	return time.Parse(time.RFC3339, g.StartTime)
}

// Involves reports whether the team plays in the game.
func (g Game) Involves(teamID string) bool {
	return teamID != "" && (g.HomeTeam.ID == teamID || g.AwayTeam.ID == teamID)
}

// Matchup renders the game as "AWAY @ HOME".
func (g Game) Matchup() string {
	return g.AwayTeam.Label() + " @ " + g.HomeTeam.Label()
}
