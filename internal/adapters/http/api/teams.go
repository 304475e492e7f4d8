package api

import (
	"context"
	"net/http"
)

// TeamDependencies defines allocation, swap and share operations.
type TeamDependencies interface {
	Generate(ctx context.Context, id string) (Allocation, error)
	Teams(ctx context.Context, id string) (Allocation, error)
	ResetTeams(ctx context.Context, id string) error
	Swap(ctx context.Context, id string, playerID int64, teamIndex int) (SwapResult, error)
	ShareText(ctx context.Context, id string) (Share, error)
}

// TeamsHandler handles team requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

type swapRequest struct {
	PlayerID  int64 `json:"player_id"`
	TeamIndex *int  `json:"team_index"`
}

// HandleGenerate handles POST /sessions/{id}/teams.
func (h *TeamsHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	alloc, err := h.deps.Generate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, Wrap("generate teams", err))
		return
	}
	writeJSON(w, http.StatusCreated, alloc)
}

// HandleGet handles GET /sessions/{id}/teams.
func (h *TeamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	alloc, err := h.deps.Teams(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, Wrap("get teams", err))
		return
	}
	writeJSON(w, http.StatusOK, alloc)
}

// HandleReset handles DELETE /sessions/{id}/teams.
func (h *TeamsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.ResetTeams(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, Wrap("reset teams", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSwap handles POST /sessions/{id}/swap.
func (h *TeamsHandler) HandleSwap(w http.ResponseWriter, r *http.Request) {
	const op = "swap"
	var in swapRequest
	if err := decode(w, r, op, &in); err != nil {
		writeError(w, err)
		return
	}
	if in.PlayerID <= 0 || in.TeamIndex == nil {
		writeError(w, NewKind(op+": player_id and team_index are required", ErrBadRequest))
		return
	}
	res, err := h.deps.Swap(r.Context(), r.PathValue("id"), in.PlayerID, *in.TeamIndex)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleShare handles GET /sessions/{id}/share.
func (h *TeamsHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	sh, err := h.deps.ShareText(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, Wrap("share", err))
		return
	}
	writeJSON(w, http.StatusOK, sh)
}
