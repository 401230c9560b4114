package stats

// StatLine is a player's counting and shooting line for a single game.
// Minutes keeps the upstream "MM:SS" clock text.
type StatLine struct {
	Minutes        string  `json:"minutes"`
	Points         int     `json:"points"`
	Rebounds       int     `json:"rebounds"`
	OffRebounds    int     `json:"offensiveRebounds"`
	DefRebounds    int     `json:"defensiveRebounds"`
	Assists        int     `json:"assists"`
	Steals         int     `json:"steals"`
	Blocks         int     `json:"blocks"`
	Turnovers      int     `json:"turnovers"`
	Fouls          int     `json:"fouls"`
	FieldGoalsMade int     `json:"fieldGoalsMade"`
	FieldGoalsAtt  int     `json:"fieldGoalsAttempted"`
	FieldGoalPct   float64 `json:"fieldGoalPct"`
	ThreesMade     int     `json:"threesMade"`
	ThreesAtt      int     `json:"threesAttempted"`
	ThreePct       float64 `json:"threePct"`
	FreeThrowsMade int     `json:"freeThrowsMade"`
	FreeThrowsAtt  int     `json:"freeThrowsAttempted"`
	FreeThrowPct   float64 `json:"freeThrowPct"`
}

// BoxScoreEntry ties a stat line to the game, player and team it was recorded for.
type BoxScoreEntry struct {
	GameID   string   `json:"gameId"`
	PlayerID string   `json:"playerId"`
	TeamID   string   `json:"teamId"`
	Stats    StatLine `json:"stats"`
}

// FindPlayer returns the first entry recorded for playerID.
func FindPlayer(entries []BoxScoreEntry, playerID string) (BoxScoreEntry, bool) {
	if playerID == "" {
		return BoxScoreEntry{}, false
	}
	for _, e := range entries {
		if e.PlayerID == playerID {
			return e, true
		}
	}
	return BoxScoreEntry{}, false
}
