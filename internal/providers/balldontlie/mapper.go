package balldontlie

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-next-game-service/internal/timeutil"
)

var errInvalidPlayer = errors.New("invalid player record")

// mapGame converts an upstream game. Records without an id or either team are dropped.
func mapGame(g gameResponse) (domaingames.Game, bool) {
	if g.ID <= 0 || g.HomeTeam.ID <= 0 || g.VisitorTeam.ID <= 0 {
		return domaingames.Game{}, false
	}
	return domaingames.Game{
		ID:        gameID(g.ID),
		Provider:  providerName,
		HomeTeam:  mapTeam(g.HomeTeam),
		AwayTeam:  mapTeam(g.VisitorTeam),
		StartTime: startTime(g),
		Status:    mapStatus(g.Status),
		Score: domaingames.Score{
			Home: g.HomeTeamScore,
			Away: g.VisitorTeamScore,
		},
		Meta: domaingames.GameMeta{
			Season:         formatSeason(g.Season),
			UpstreamGameID: g.ID,
			Period:         g.Period,
			Postseason:     g.Postseason,
			Time:           strings.TrimSpace(g.Time),
			StatusText:     strings.TrimSpace(g.Status),
		},
	}, true
}

// startTime picks the most precise instant the record carries. Date-only values become UTC midnight;
// anything unparseable is passed through untouched for downstream handling.
func startTime(g gameResponse) string {
	for _, candidate := range []string{g.Datetime, g.Status, g.Date} {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(candidate)); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	if d, err := timeutil.ParseDate(strings.TrimSpace(g.Date)); err == nil {
		return d.UTC().Format(time.RFC3339)
	}
	return g.Date
}

func mapTeam(t teamResponse) teams.Team {
	return teams.Team{
		ID:           teamID(t.ID),
		Name:         t.Name,
		FullName:     t.FullName,
		Abbreviation: t.Abbreviation,
		City:         t.City,
		Conference:   t.Conference,
		Division:     t.Division,
	}
}

func mapPlayer(p playerResponse) (players.Player, error) {
	if p.ID <= 0 {
		return players.Player{}, errInvalidPlayer
	}
	team := teams.Team{}
	if p.Team.ID > 0 {
		team = mapTeam(p.Team)
	} else if p.TeamID > 0 {
		team.ID = teamID(p.TeamID)
	}
	feet, inches := parseHeight(p.Height)
	weight, _ := strconv.Atoi(strings.TrimSpace(p.Weight))

	return players.Player{
		ID:           playerID(p.ID),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Position:     p.Position,
		HeightFeet:   feet,
		HeightInches: inches,
		WeightPounds: weight,
		Team:         team,
		Meta: players.PlayerMeta{
			UpstreamPlayerID: p.ID,
			College:          p.College,
			Country:          p.Country,
			JerseyNumber:     p.JerseyNumber,
		},
	}, nil
}

// mapStat converts an upstream stat row. Rows missing the game or player are dropped.
func mapStat(s statResponse) (stats.BoxScoreEntry, bool) {
	if s.Game.ID <= 0 || s.Player.ID <= 0 {
		return stats.BoxScoreEntry{}, false
	}
	tid := s.Team.ID
	if tid <= 0 {
		tid = s.Player.TeamID
	}
	entry := stats.BoxScoreEntry{
		GameID:   gameID(s.Game.ID),
		PlayerID: playerID(s.Player.ID),
		Stats: stats.StatLine{
			Minutes:        normalizeMinutes(s.Min),
			Points:         s.Pts,
			Rebounds:       s.Reb,
			OffRebounds:    s.Oreb,
			DefRebounds:    s.Dreb,
			Assists:        s.Ast,
			Steals:         s.Stl,
			Blocks:         s.Blk,
			Turnovers:      s.Turnover,
			Fouls:          s.Pf,
			FieldGoalsMade: s.Fgm,
			FieldGoalsAtt:  s.Fga,
			FieldGoalPct:   s.FgPct,
			ThreesMade:     s.Fg3m,
			ThreesAtt:      s.Fg3a,
			ThreePct:       s.Fg3Pct,
			FreeThrowsMade: s.Ftm,
			FreeThrowsAtt:  s.Fta,
			FreeThrowPct:   s.FtPct,
		},
	}
	if tid > 0 {
		entry.TeamID = teamID(tid)
	}
	return entry, true
}

func mapStatus(status string) domaingames.GameStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "final", "ended":
		return domaingames.StatusFinal
	case "in progress", "halftime", "end of period":
		return domaingames.StatusInProgress
	case "postponed":
		return domaingames.StatusPostponed
	case "canceled", "cancelled":
		return domaingames.StatusCanceled
	default:
		if strings.HasPrefix(strings.ToLower(status), "qtr") || strings.HasSuffix(strings.ToLower(status), "qtr") {
			return domaingames.StatusInProgress
		}
		return domaingames.StatusScheduled
	}
}

// normalizeMinutes returns minutes as MM:SS. Bare minute counts get ":00"; blanks become "00:00".
func normalizeMinutes(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "00:00"
	}
	mins, secs, hasSecs := strings.Cut(raw, ":")
	m, err := strconv.Atoi(mins)
	if err != nil || m < 0 {
		return raw
	}
	s := 0
	if hasSecs {
		if s, err = strconv.Atoi(secs); err != nil || s < 0 || s > 59 {
			return raw
		}
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// parseHeight splits heights like "6-6" into feet and inches.
func parseHeight(raw string) (int, int) {
	ft, in, ok := strings.Cut(strings.TrimSpace(raw), "-")
	if !ok {
		return 0, 0
	}
	feet, err1 := strconv.Atoi(ft)
	inches, err2 := strconv.Atoi(in)
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return feet, inches
}

func formatSeason(season int) string {
	return fmt.Sprintf("%d", season)
}

func gameID(id int) string   { return gameIDPrefix + strconv.Itoa(id) }
func teamID(id int) string   { return teamIDPrefix + strconv.Itoa(id) }
func playerID(id int) string { return playerIDPrefix + strconv.Itoa(id) }
