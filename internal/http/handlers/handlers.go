package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-next-game-service/internal/app/nextgame"
	"github.com/preston-bernstein/nba-next-game-service/internal/logging"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
)

// URLParamPlayerID names the chi route parameter carrying the player id.
const URLParamPlayerID = "playerID"

const breakerOpen = "open"

type nowFunc func() time.Time

// NextGameResolver is the resolution capability the HTTP layer depends on.
type NextGameResolver interface {
	ResolveNextGame(ctx context.Context, playerID string, reference time.Time) (nextgame.Result, error)
}

// Readiness describes upstream dependencies for the ready probe.
type Readiness struct {
	Provider        string `json:"provider"`
	BoxScoreBreaker string `json:"boxScoreBreaker,omitempty"`
}

// Handler wires HTTP routes to the next-game resolver.
type Handler struct {
	resolver  NextGameResolver
	logger    *slog.Logger
	now       nowFunc
	readiness func() Readiness
}

// NewHandler constructs a Handler with defaults. readiness may be nil.
func NewHandler(resolver NextGameResolver, logger *slog.Logger, readiness func() Readiness) *Handler {
	return &Handler{
		resolver:  resolver,
		logger:    logger,
		now:       time.Now,
		readiness: readiness,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. An open box score breaker degrades the service but does not
// take it out of rotation, since stats are best-effort.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.resolver == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "resolver not configured", h.logger)
		return
	}
	body := map[string]string{"status": "ready"}
	if h.readiness != nil {
		state := h.readiness()
		body["provider"] = state.Provider
		if state.BoxScoreBreaker != "" {
			body["boxScoreBreaker"] = state.BoxScoreBreaker
		}
		if state.BoxScoreBreaker == breakerOpen {
			body["status"] = "degraded"
		}
	}
	writeJSON(w, nethttp.StatusOK, body, h.logger)
}

// NextGame resolves the next game for the player in the path. An optional "at" query parameter
// (RFC3339) replaces the current time as the reference instant.
func (h *Handler) NextGame(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.resolver == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "resolver not configured", logger)
		return
	}

	playerID := strings.TrimSpace(chi.URLParam(r, URLParamPlayerID))
	if playerID == "" {
		writeError(w, r, nethttp.StatusBadRequest, "player id required", logger)
		return
	}

	reference := h.now()
	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid at (expected RFC3339)", logger)
			return
		}
		reference = parsed
	}

	result, err := h.resolver.ResolveNextGame(r.Context(), playerID, reference)
	if err != nil {
		status, msg := statusForError(err)
		if status >= nethttp.StatusInternalServerError && logger != nil {
			logger.Warn("next game resolution failed", logging.FieldPlayerID, playerID, "err", err)
		}
		writeError(w, r, status, msg, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, result, logger)
}

// NotFound renders unknown routes as JSON.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed renders unsupported methods as JSON.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, nextgame.ErrPlayerNotFound):
		return nethttp.StatusNotFound, "player not found"
	case errors.Is(err, nextgame.ErrNoGame):
		return nethttp.StatusNotFound, "no upcoming game"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nethttp.StatusServiceUnavailable, "request canceled"
	case errors.Is(err, nextgame.ErrSeasonLookup):
		return nethttp.StatusBadGateway, "season schedule unavailable"
	case errors.Is(err, providers.ErrProviderUnavailable):
		return nethttp.StatusServiceUnavailable, "provider unavailable"
	default:
		return nethttp.StatusBadGateway, "upstream lookup failed"
	}
}
