package api

import (
	"context"
	"net/http"
)

// RosterDependencies defines the roster operations.
type RosterDependencies interface {
	ListPlayers(ctx context.Context) ([]Player, error)
	GetPlayer(ctx context.Context, id int64) (Player, error)
	CreatePlayer(ctx context.Context, p Player) (Player, error)
	UpdatePlayer(ctx context.Context, id int64, p Player) (Player, error)
	DeletePlayer(ctx context.Context, id int64) error
}

// PlayersHandler handles roster requests.
type PlayersHandler struct {
	deps RosterDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps RosterDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleList handles GET /players.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	players, err := h.deps.ListPlayers(r.Context())
	if err != nil {
		writeError(w, Wrap("list players", err))
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleCreate handles POST /players.
func (h *PlayersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "create player"
	var in Player
	if err := decode(w, r, op, &in); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.deps.CreatePlayer(r.Context(), in)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleGet handles GET /players/{id}.
func (h *PlayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "get player"
	id, err := pathID(r, op, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.deps.GetPlayer(r.Context(), id)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleUpdate handles PUT /players/{id}.
func (h *PlayersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "update player"
	id, err := pathID(r, op, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var in Player
	if err := decode(w, r, op, &in); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.deps.UpdatePlayer(r.Context(), id, in)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /players/{id}.
func (h *PlayersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "delete player"
	id, err := pathID(r, op, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.deps.DeletePlayer(r.Context(), id); err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
