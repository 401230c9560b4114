package testutil

import (
	"time"

	"github.com/preston-bernstein/nba-next-game-service/internal/app/nextgame"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
)

// NewResolver builds a sequential resolver over one provider, rendering times in UTC.
func NewResolver(p providers.DataProvider) *nextgame.Resolver {
	src := nextgame.Sources{Players: p, Schedule: p, BoxScores: p}
	return nextgame.NewResolver(src, nextgame.Config{DisplayLocation: time.UTC}, nil, nil)
}
