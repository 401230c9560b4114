package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-next-game-service/internal/config"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers/fixture"
)

const (
	providerFixture     = "fixture"
	providerBalldontlie = "balldontlie"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case providerFixture, "":
		return fixture.New()
	case providerBalldontlie:
		return balldontlie.NewClient(balldontlie.Config{
			BaseURL:  cfg.Balldontlie.BaseURL,
			APIKey:   cfg.Balldontlie.APIKey,
			Timezone: cfg.Balldontlie.Timezone,
			MaxPages: cfg.Balldontlie.MaxPages,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
