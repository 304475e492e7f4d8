// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/futsal/internal/domain/scoreboard"
	"github.com/okian/futsal/internal/domain/types"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 16

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RosterDependencies
	SessionDependencies
	TeamDependencies
	ScoreboardDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	playersHandler    *PlayersHandler
	sessionsHandler   *SessionsHandler
	teamsHandler      *TeamsHandler
	scoreboardHandler *ScoreboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		playersHandler:    NewPlayersHandler(deps),
		sessionsHandler:   NewSessionsHandler(deps),
		teamsHandler:      NewTeamsHandler(deps),
		scoreboardHandler: NewScoreboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /players", MetricsMiddleware(s.playersHandler.HandleList, "players"))
	mux.HandleFunc("POST /players", MetricsMiddleware(s.playersHandler.HandleCreate, "players"))
	mux.HandleFunc("GET /players/{id}", MetricsMiddleware(s.playersHandler.HandleGet, "player"))
	mux.HandleFunc("PUT /players/{id}", MetricsMiddleware(s.playersHandler.HandleUpdate, "player"))
	mux.HandleFunc("DELETE /players/{id}", MetricsMiddleware(s.playersHandler.HandleDelete, "player"))

	mux.HandleFunc("POST /sessions", MetricsMiddleware(s.sessionsHandler.HandleCreate, "sessions"))
	mux.HandleFunc("GET /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleGet, "session"))
	mux.HandleFunc("DELETE /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleDelete, "session"))
	mux.HandleFunc("PUT /sessions/{id}/attendance/{playerID}", MetricsMiddleware(s.sessionsHandler.HandleSetPresent, "attendance"))
	mux.HandleFunc("POST /sessions/{id}/attendance/all", MetricsMiddleware(s.sessionsHandler.HandleMarkAll, "attendance"))
	mux.HandleFunc("DELETE /sessions/{id}/attendance", MetricsMiddleware(s.sessionsHandler.HandleClear, "attendance"))
	mux.HandleFunc("PUT /sessions/{id}/settings", MetricsMiddleware(s.sessionsHandler.HandleSettings, "settings"))

	mux.HandleFunc("POST /sessions/{id}/teams", MetricsMiddleware(s.teamsHandler.HandleGenerate, "teams"))
	mux.HandleFunc("GET /sessions/{id}/teams", MetricsMiddleware(s.teamsHandler.HandleGet, "teams"))
	mux.HandleFunc("DELETE /sessions/{id}/teams", MetricsMiddleware(s.teamsHandler.HandleReset, "teams"))
	mux.HandleFunc("POST /sessions/{id}/swap", MetricsMiddleware(s.teamsHandler.HandleSwap, "swap"))
	mux.HandleFunc("GET /sessions/{id}/share", MetricsMiddleware(s.teamsHandler.HandleShare, "share"))

	mux.HandleFunc("GET /sessions/{id}/scoreboard", MetricsMiddleware(s.scoreboardHandler.HandleGet, "scoreboard"))
	mux.HandleFunc("POST /sessions/{id}/scoreboard/{action}", MetricsMiddleware(s.scoreboardHandler.HandleAction, "scoreboard"))
}

// Wire shapes used by handler signatures.
type (
	Player     = types.Player
	Session    = types.Session
	Allocation = types.Allocation
	SwapResult = types.SwapResult
	Share      = types.Share
	Scoreboard = scoreboard.State
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code, name := statusOf(err)
	msg := http.StatusText(code)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, code, errorResponse{Code: name, Message: msg})
}

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, op string, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return NewKind(op, ErrBadRequest)
		}
		return WrapKind(op, ErrBadRequest, fmt.Errorf("invalid JSON: %w", err))
	}
	return nil
}

// pathID parses a numeric path segment.
func pathID(r *http.Request, op, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, WrapKind(op, ErrBadRequest, fmt.Errorf("invalid %s %q", name, raw))
	}
	return id, nil
}
