package http

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/nba-next-game-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-next-game-service/internal/http/requestutil"
)

const corsMaxAgeSeconds = 300

// NewRouter registers HTTP routes on a chi router. An empty allowedOrigins list allows any origin.
func NewRouter(handler *handlers.Handler, allowedOrigins []string) nethttp.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders: []string{requestutil.HeaderRequestID},
		MaxAge:         corsMaxAgeSeconds,
	}))
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/players/{"+handlers.URLParamPlayerID+"}/next-game", handler.NextGame)
	return r
}
