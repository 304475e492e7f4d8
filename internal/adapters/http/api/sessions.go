package api

import (
	"context"
	"net/http"
)

// SessionDependencies defines session, attendance and settings operations.
type SessionDependencies interface {
	CreateSession(ctx context.Context) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error

	SetPresent(ctx context.Context, id string, playerID int64, present bool) error
	MarkAllPresent(ctx context.Context, id string) error
	ClearAttendance(ctx context.Context, id string) error

	UpdateSettings(ctx context.Context, id string, teamCount *int, strategy, mode *string) error
}

// SessionsHandler handles session requests.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

type attendanceRequest struct {
	Present *bool `json:"present"`
}

type settingsRequest struct {
	TeamCount *int    `json:"team_count"`
	Strategy  *string `json:"strategy"`
	Mode      *string `json:"mode"`
}

// HandleCreate handles POST /sessions.
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := h.deps.CreateSession(r.Context())
	if err != nil {
		writeError(w, Wrap("create session", err))
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// HandleGet handles GET /sessions/{id}.
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "get session")
}

// HandleDelete handles DELETE /sessions/{id}.
func (h *SessionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, Wrap("delete session", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetPresent handles PUT /sessions/{id}/attendance/{playerID}.
func (h *SessionsHandler) HandleSetPresent(w http.ResponseWriter, r *http.Request) {
	const op = "set attendance"
	playerID, err := pathID(r, op, "playerID")
	if err != nil {
		writeError(w, err)
		return
	}
	var in attendanceRequest
	if err := decode(w, r, op, &in); err != nil {
		writeError(w, err)
		return
	}
	if in.Present == nil {
		writeError(w, NewKind(op+": missing present", ErrBadRequest))
		return
	}
	if err := h.deps.SetPresent(r.Context(), r.PathValue("id"), playerID, *in.Present); err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	h.respond(w, r, op)
}

// HandleMarkAll handles POST /sessions/{id}/attendance/all.
func (h *SessionsHandler) HandleMarkAll(w http.ResponseWriter, r *http.Request) {
	const op = "mark all present"
	if err := h.deps.MarkAllPresent(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	h.respond(w, r, op)
}

// HandleClear handles DELETE /sessions/{id}/attendance.
func (h *SessionsHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	const op = "clear attendance"
	if err := h.deps.ClearAttendance(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	h.respond(w, r, op)
}

// HandleSettings handles PUT /sessions/{id}/settings. Absent fields are
// left unchanged and a rejected request changes nothing.
func (h *SessionsHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	const op = "update settings"
	var in settingsRequest
	if err := decode(w, r, op, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := h.deps.UpdateSettings(r.Context(), r.PathValue("id"), in.TeamCount, in.Strategy, in.Mode); err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	h.respond(w, r, op)
}

// respond writes the current session view.
func (h *SessionsHandler) respond(w http.ResponseWriter, r *http.Request, op string) {
	sess, err := h.deps.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
