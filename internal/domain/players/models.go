package players

import (
	"strings"

	"github.com/preston-bernstein/nba-next-game-service/internal/domain/teams"
)

// Player represents the normalized player shape (balldontlie-aligned).
type Player struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Position     string     `json:"position"`
	HeightFeet   int        `json:"heightFeet"`
	HeightInches int        `json:"heightInches"`
	WeightPounds int        `json:"weightPounds"`
	Team         teams.Team `json:"team"`
	Meta         PlayerMeta `json:"meta"`
}

// PlayerMeta holds upstream metadata.
type PlayerMeta struct {
	UpstreamPlayerID int    `json:"upstreamPlayerId"`
	College          string `json:"college"`
	Country          string `json:"country"`
	JerseyNumber     string `json:"jerseyNumber"`
}

// HasTeam reports whether the player is currently rostered.
func (p Player) HasTeam() bool {
	return !p.Team.IsZero()
}

// FullName joins first and last name, skipping blanks.
func (p Player) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}
