package balldontlie

import "encoding/json"

const providerName = "balldontlie"

type gamesResponse struct {
	Data []gameResponse `json:"data"`
	Meta metaResponse   `json:"meta"`
}

type gameResponse struct {
	ID               int          `json:"id"`
	Date             string       `json:"date"`
	Datetime         string       `json:"datetime"`
	Status           string       `json:"status"`
	Time             string       `json:"time"`
	Period           int          `json:"period"`
	Postseason       bool         `json:"postseason"`
	HomeTeam         teamResponse `json:"home_team"`
	VisitorTeam      teamResponse `json:"visitor_team"`
	HomeTeamScore    int          `json:"home_team_score"`
	VisitorTeamScore int          `json:"visitor_team_score"`
	Season           int          `json:"season"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
}

type playerEnvelope struct {
	Data playerResponse `json:"data"`
}

type playerResponse struct {
	ID           int          `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Position     string       `json:"position"`
	Height       string       `json:"height"`
	Weight       string       `json:"weight"`
	JerseyNumber string       `json:"jersey_number"`
	College      string       `json:"college"`
	Country      string       `json:"country"`
	TeamID       int          `json:"team_id"`
	Team         teamResponse `json:"team"`
}

type statsResponse struct {
	Data []statResponse `json:"data"`
	Meta metaResponse   `json:"meta"`
}

type statResponse struct {
	ID       int            `json:"id"`
	Player   playerResponse `json:"player"`
	Team     teamResponse   `json:"team"`
	Game     gameResponse   `json:"game"`
	Min      string         `json:"min"`
	Fgm      int            `json:"fgm"`
	Fga      int            `json:"fga"`
	FgPct    float64        `json:"fg_pct"`
	Fg3m     int            `json:"fg3m"`
	Fg3a     int            `json:"fg3a"`
	Fg3Pct   float64        `json:"fg3_pct"`
	Ftm      int            `json:"ftm"`
	Fta      int            `json:"fta"`
	FtPct    float64        `json:"ft_pct"`
	Oreb     int            `json:"oreb"`
	Dreb     int            `json:"dreb"`
	Reb      int            `json:"reb"`
	Ast      int            `json:"ast"`
	Stl      int            `json:"stl"`
	Blk      int            `json:"blk"`
	Turnover int            `json:"turnover"`
	Pf       int            `json:"pf"`
	Pts      int            `json:"pts"`
}

// metaResponse covers both paging styles the API has used: page counts and cursors.
type metaResponse struct {
	TotalPages int         `json:"total_pages"`
	NextCursor json.Number `json:"next_cursor"`
}
