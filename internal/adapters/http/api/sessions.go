// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/libero/internal/domain/session"
)

// GenerationDependencies defines the interface for session and match
// generation.
type GenerationDependencies interface {
	GenerateSession(ctx context.Context, req SessionRequest) (session.Session, error)
	SimulateMatch(ctx context.Context, req MatchRequest) (MatchOutcome, error)
}

// SessionsHandler handles generation requests.
type SessionsHandler struct {
	deps GenerationDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps GenerationDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandlePostSession handles POST /sessions requests.
func (h *SessionsHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Players) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("missing players")))
		return
	}
	sess, err := h.deps.GenerateSession(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// HandlePostMatch handles POST /matches requests.
func (h *SessionsHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Home.Players) == 0 || len(req.Away.Players) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("both squads must have players")))
		return
	}
	outcome, err := h.deps.SimulateMatch(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, outcome)
}
