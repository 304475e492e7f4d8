package api

import (
	"context"
	"net/http"
)

// ScoreboardDependencies defines the watch-referee operations.
type ScoreboardDependencies interface {
	Scoreboard(ctx context.Context, id string, action string) (Scoreboard, error)
	ScoreboardState(ctx context.Context, id string) (Scoreboard, error)
}

// ScoreboardHandler handles scoreboard requests.
type ScoreboardHandler struct {
	deps ScoreboardDependencies
}

// NewScoreboardHandler creates a new scoreboard handler.
func NewScoreboardHandler(deps ScoreboardDependencies) *ScoreboardHandler {
	return &ScoreboardHandler{deps: deps}
}

// HandleGet handles GET /sessions/{id}/scoreboard.
func (h *ScoreboardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.ScoreboardState(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, Wrap("scoreboard", err))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// HandleAction handles POST /sessions/{id}/scoreboard/{action}.
func (h *ScoreboardHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Scoreboard(r.Context(), r.PathValue("id"), r.PathValue("action"))
	if err != nil {
		writeError(w, Wrap("scoreboard "+r.PathValue("action"), err))
		return
	}
	writeJSON(w, http.StatusOK, st)
}
