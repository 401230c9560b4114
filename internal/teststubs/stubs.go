package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
)

// ErrMissingPlayer is returned by StubProvider for unknown players unless MissingPlayerErr is set.
var ErrMissingPlayer = errors.New("stub: player not found")

// StubProvider is a test double for providers.DataProvider.
// Lookups are served from the configured maps; call counts are tracked for assertions.
type StubProvider struct {
	Players          map[string]players.Player
	MissingPlayerErr error

	GamesByDate map[string][]domaingames.Game
	DateErrs    map[string]error
	DateDelay   map[string]time.Duration

	SeasonGames []domaingames.Game
	SeasonErr   error

	BoxScores     map[string][]stats.BoxScoreEntry
	BoxScoreErr   error
	BoxScoreDelay time.Duration

	PlayerCalls   atomic.Int32
	SeasonCalls   atomic.Int32
	BoxScoreCalls atomic.Int32

	mu        sync.Mutex
	dateCalls []string
}

// FetchPlayer returns the configured player or the missing-player error.
func (s *StubProvider) FetchPlayer(ctx context.Context, playerID string) (players.Player, error) {
	_ = ctx
	s.PlayerCalls.Add(1)
	if p, ok := s.Players[playerID]; ok {
		return p, nil
	}
	if s.MissingPlayerErr != nil {
		return players.Player{}, s.MissingPlayerErr
	}
	return players.Player{}, ErrMissingPlayer
}

// FetchTeamGamesOnDate returns the games configured for date, honoring per-date errors and delays.
func (s *StubProvider) FetchTeamGamesOnDate(ctx context.Context, teamID string, date string) ([]domaingames.Game, error) {
	s.mu.Lock()
	s.dateCalls = append(s.dateCalls, date)
	s.mu.Unlock()

	if delay := s.DateDelay[date]; delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err := s.DateErrs[date]; err != nil {
		return nil, err
	}
	return filterTeam(s.GamesByDate[date], teamID), nil
}

// FetchTeamSeasonGames returns SeasonGames for the team or SeasonErr.
func (s *StubProvider) FetchTeamSeasonGames(ctx context.Context, teamID string, season int, perPage int) ([]domaingames.Game, error) {
	_ = ctx
	_ = season
	_ = perPage
	s.SeasonCalls.Add(1)
	if s.SeasonErr != nil {
		return nil, s.SeasonErr
	}
	return filterTeam(s.SeasonGames, teamID), nil
}

// FetchBoxScore returns the configured entries, waiting BoxScoreDelay first while honoring ctx.
func (s *StubProvider) FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error) {
	s.BoxScoreCalls.Add(1)
	if s.BoxScoreDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.BoxScoreDelay):
		}
	}
	if s.BoxScoreErr != nil {
		return nil, s.BoxScoreErr
	}
	return s.BoxScores[gameID], nil
}

// DateCalls returns the dates requested so far, in call order.
func (s *StubProvider) DateCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dateCalls...)
}

func filterTeam(items []domaingames.Game, teamID string) []domaingames.Game {
	if teamID == "" {
		return items
	}
	out := make([]domaingames.Game, 0, len(items))
	for _, g := range items {
		if g.Involves(teamID) {
			out = append(out, g)
		}
	}
	return out
}
