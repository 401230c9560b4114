package balldontlie

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/nba-next-game-service/internal/domain/games"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/players"
	"github.com/preston-bernstein/nba-next-game-service/internal/domain/stats"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
	"github.com/preston-bernstein/nba-next-game-service/internal/timeutil"
)

// Config controls how the balldontlie client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timezone   string
	MaxPages   int
}

// Client fetches players, schedules and box scores from the balldontlie API and maps them to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
	maxPages   int
}

// NewClient constructs a balldontlie client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
		maxPages:   resolveMaxPages(cfg.MaxPages),
	}
}

// FetchPlayer retrieves a single player and their current team.
func (c *Client) FetchPlayer(ctx context.Context, playerID string) (players.Player, error) {
	id, err := upstreamID(playerID, playerIDPrefix)
	if err != nil {
		return players.Player{}, err
	}

	var payload playerEnvelope
	if err := c.getJSON(ctx, "/players/"+strconv.Itoa(id), nil, &payload); err != nil {
		return players.Player{}, fmt.Errorf("player %s: %w", playerID, err)
	}
	player, err := mapPlayer(payload.Data)
	if err != nil {
		return players.Player{}, fmt.Errorf("player %s: %w", playerID, err)
	}
	return player, nil
}

// FetchTeamGamesOnDate retrieves the team's games on a YYYY-MM-DD date.
// An empty or malformed date means today in the client's timezone.
func (c *Client) FetchTeamGamesOnDate(ctx context.Context, teamID string, date string) ([]domaingames.Game, error) {
	id, err := upstreamID(teamID, teamIDPrefix)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("team_ids[]", strconv.Itoa(id))
	q.Set("dates[]", c.resolveDate(date))
	return c.fetchGames(ctx, q, defaultPerPage)
}

// FetchTeamSeasonGames retrieves up to maxPages pages of the team's games for a season.
func (c *Client) FetchTeamSeasonGames(ctx context.Context, teamID string, season int, perPage int) ([]domaingames.Game, error) {
	id, err := upstreamID(teamID, teamIDPrefix)
	if err != nil {
		return nil, err
	}
	if perPage <= 0 || perPage > defaultPerPage {
		perPage = defaultPerPage
	}
	q := url.Values{}
	q.Set("team_ids[]", strconv.Itoa(id))
	q.Set("seasons[]", strconv.Itoa(season))
	return c.fetchGames(ctx, q, perPage)
}

// FetchBoxScore retrieves every player stat line recorded for a game.
func (c *Client) FetchBoxScore(ctx context.Context, gameID string) ([]stats.BoxScoreEntry, error) {
	id, err := upstreamID(gameID, gameIDPrefix)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("game_ids[]", strconv.Itoa(id))
	q.Set("per_page", strconv.Itoa(defaultPerPage))

	entries := make([]stats.BoxScoreEntry, 0)
	err = c.paginate(ctx, q, defaultPerPage, func(q url.Values) (metaResponse, int, error) {
		var payload statsResponse
		if err := c.getJSON(ctx, "/stats", q, &payload); err != nil {
			return metaResponse{}, 0, err
		}
		for _, s := range payload.Data {
			if entry, ok := mapStat(s); ok {
				entries = append(entries, entry)
			}
		}
		return payload.Meta, len(payload.Data), nil
	})
	if err != nil {
		return nil, fmt.Errorf("box score %s: %w", gameID, err)
	}
	return entries, nil
}

func (c *Client) fetchGames(ctx context.Context, q url.Values, perPage int) ([]domaingames.Game, error) {
	q.Set("per_page", strconv.Itoa(perPage))

	allGames := make([]domaingames.Game, 0)
	err := c.paginate(ctx, q, perPage, func(q url.Values) (metaResponse, int, error) {
		var payload gamesResponse
		if err := c.getJSON(ctx, "/games", q, &payload); err != nil {
			return metaResponse{}, 0, err
		}
		for _, g := range payload.Data {
			if game, ok := mapGame(g); ok {
				allGames = append(allGames, game)
			}
		}
		return payload.Meta, len(payload.Data), nil
	})
	if err != nil {
		return nil, err
	}
	return allGames, nil
}

// paginate walks pages until the upstream reports no more, a short page arrives, or maxPages is hit.
// Cursor paging is followed when the API returns next_cursor; page numbers otherwise.
func (c *Client) paginate(ctx context.Context, q url.Values, perPage int, fetch func(url.Values) (metaResponse, int, error)) error {
	page := 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if q.Get("cursor") == "" {
			q.Set("page", strconv.Itoa(page))
		}

		meta, n, err := fetch(q)
		if err != nil {
			return err
		}

		if page >= c.maxPages {
			return nil
		}
		if cursor := meta.NextCursor.String(); cursor != "" {
			q.Del("page")
			q.Set("cursor", cursor)
			page++
			continue
		}
		if q.Get("cursor") != "" {
			return nil
		}
		if meta.TotalPages > 0 {
			if page >= meta.TotalPages {
				return nil
			}
		} else if n == 0 || n < perPage {
			return nil
		}
		page++
	}
}

func (c *Client) resolveDate(date string) string {
	if date != "" {
		if _, err := timeutil.ParseDate(date); err == nil {
			return date
		}
	}
	return timeutil.FormatDate(c.now().In(c.loc))
}

// upstreamID accepts either a bare numeric id or one carrying this provider's prefix.
func upstreamID(id string, prefix string) (int, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(id), prefix)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: invalid id %q: %w", providerName, id, providers.ErrNotFound)
	}
	return n, nil
}
