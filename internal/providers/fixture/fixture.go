package fixture

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
	"github.com/preston-bernstein/nba-next-game-service/internal/timeutil"
)

const providerName = "fixture"

var (
	celtics  = teams.Team{ID: "bos", Name: "Celtics", FullName: "Boston Celtics", Abbreviation: "BOS", City: "Boston", Conference: "East", Division: "Atlantic"}
	lakers   = teams.Team{ID: "lal", Name: "Lakers", FullName: "Los Angeles Lakers", Abbreviation: "LAL", City: "Los Angeles", Conference: "West", Division: "Pacific"}
	warriors = teams.Team{ID: "gsw", Name: "Warriors", FullName: "Golden State Warriors", Abbreviation: "GSW", City: "San Francisco", Conference: "West", Division: "Pacific"}
	heat     = teams.Team{ID: "mia", Name: "Heat", FullName: "Miami Heat", Abbreviation: "MIA", City: "Miami", Conference: "East", Division: "Southeast"}
	suns     = teams.Team{ID: "phx", Name: "Suns", FullName: "Phoenix Suns", Abbreviation: "PHX", City: "Phoenix", Conference: "West", Division: "Pacific"}
	nuggets  = teams.Team{ID: "den", Name: "Nuggets", FullName: "Denver Nuggets", Abbreviation: "DEN", City: "Denver", Conference: "West", Division: "Northwest"}
)

var roster = []players.Player{
	fixturePlayer(101, "Jane", "Doe", "G", "1", celtics),
	fixturePlayer(102, "John", "Smith", "F", "23", lakers),
	fixturePlayer(103, "Ava", "Lee", "G", "30", warriors),
	fixturePlayer(104, "Max", "Ortiz", "C", "13", heat),
	fixturePlayer(105, "Sam", "Reed", "F", "15", nuggets),
	fixturePlayer(106, "Kai", "Brooks", "G", "3", suns),
}

// Provider serves a deterministic league anchored on its clock: a game in progress, a finished game,
// a date-only game, later tip-offs inside a week, and one team whose next game is weeks away.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchPlayer returns a fixture player or ErrNotFound.
func (p *Provider) FetchPlayer(ctx context.Context, playerID string) (players.Player, error) {
	_ = ctx
	for _, pl := range roster {
		if pl.ID == playerID {
			return pl, nil
		}
	}
	return players.Player{}, fmt.Errorf("%s: player %s: %w", providerName, playerID, providers.ErrNotFound)
}

// FetchTeamGamesOnDate returns the team's games whose start falls on date (UTC).
func (p *Provider) FetchTeamGamesOnDate(ctx context.Context, teamID string, date string) ([]domaingames.Game, error) {
	_ = ctx
	out := make([]domaingames.Game, 0)
	for _, g := range p.schedule() {
		if g.Involves(teamID) && strings.HasPrefix(g.StartTime, date) {
			out = append(out, g)
		}
	}
	return out, nil
}

// FetchTeamSeasonGames returns up to perPage of the team's games in season, ordered by start.
func (p *Provider) FetchTeamSeasonGames(ctx context.Context, teamID string, season int, perPage int) ([]domaingames.Game, error) {
	_ = ctx
	out := make([]domaingames.Game, 0)
	for _, g := range p.schedule() {
		start, err := g.StartInstant()
		if err != nil || !g.Involves(teamID) || timeutil.SeasonFor(start) != season {
			continue
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	if perPage > 0 && len(out) > perPage {
		out = out[:perPage]
	}
	return out, nil
}

// FetchBoxScore returns lines for every rostered player in a game that has tipped off.
func (p *Provider) FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error) {
	_ = ctx
	now := p.now()
	for _, g := range p.schedule() {
		if g.ID != gameID {
			continue
		}
		start, err := g.StartInstant()
		if err != nil || start.After(now) {
			return []stats.BoxScoreEntry{}, nil
		}
		elapsed := now.Sub(start)
		entries := make([]stats.BoxScoreEntry, 0, 2)
		for _, pl := range roster {
			if !g.Involves(pl.Team.ID) {
				continue
			}
			entries = append(entries, stats.BoxScoreEntry{
				GameID:   g.ID,
				PlayerID: pl.ID,
				TeamID:   pl.Team.ID,
				Stats:    statLine(pl.Meta.UpstreamPlayerID, elapsed),
			})
		}
		return entries, nil
	}
	return nil, fmt.Errorf("%s: box score %s: %w", providerName, gameID, providers.ErrNotFound)
}

func (p *Provider) schedule() []domaingames.Game {
	now := p.now().UTC()
	day := timeutil.StartOfDayUTC(now)
	hour := now.Truncate(time.Hour)

	return []domaingames.Game{
		fixtureGame(1001, celtics, lakers, hour.Add(-1*time.Hour), domaingames.StatusInProgress),
		fixtureGame(1002, heat, suns, hour.Add(-5*time.Hour), domaingames.StatusFinal),
		fixtureGame(1003, warriors, heat, day.AddDate(0, 0, 2), domaingames.StatusScheduled),
		fixtureGame(1004, lakers, warriors, day.AddDate(0, 0, 3).Add(30*time.Minute), domaingames.StatusScheduled),
		fixtureGame(1005, suns, celtics, day.AddDate(0, 0, 4).Add(90*time.Minute), domaingames.StatusScheduled),
		fixtureGame(1006, nuggets, suns, day.AddDate(0, 0, 20).Add(time.Hour), domaingames.StatusScheduled),
	}
}

func fixtureGame(id int, home, away teams.Team, start time.Time, status domaingames.GameStatus) domaingames.Game {
	return domaingames.Game{
		ID:        fmt.Sprintf("%s-%d", providerName, id),
		Provider:  providerName,
		HomeTeam:  home,
		AwayTeam:  away,
		StartTime: start.UTC().Format(time.RFC3339),
		Status:    status,
		Meta: domaingames.GameMeta{
			Season:         fmt.Sprintf("%d", timeutil.SeasonFor(start)),
			UpstreamGameID: id,
		},
	}
}

func fixturePlayer(id int, first, last, position, jersey string, team teams.Team) players.Player {
	return players.Player{
		ID:        fmt.Sprintf("player-%d", id),
		FirstName: first,
		LastName:  last,
		Position:  position,
		Team:      team,
		Meta: players.PlayerMeta{
			UpstreamPlayerID: id,
			Country:          "USA",
			JerseyNumber:     jersey,
		},
	}
}

// statLine scales a fixed per-player line by how far into the game we are, capped at a full game.
func statLine(seed int, elapsed time.Duration) stats.StatLine {
	minutes := int(elapsed.Minutes() / 4)
	if minutes > 36 {
		minutes = 36
	}
	points := minutes * (seed%5 + 3) / 6
	fga := points/2 + 1
	fgm := points / 3
	return stats.StatLine{
		Minutes:        fmt.Sprintf("%02d:00", minutes),
		Points:         points,
		Rebounds:       minutes / 4,
		DefRebounds:    minutes / 4,
		Assists:        minutes / 6,
		Steals:         minutes / 18,
		FieldGoalsMade: fgm,
		FieldGoalsAtt:  fga,
		FieldGoalPct:   float64(fgm) / float64(fga),
	}
}
