// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/libero/internal/domain/insight"
	"github.com/okian/libero/internal/domain/model"
)

// ActionDependencies defines the interface for action catalog filtering.
type ActionDependencies interface {
	Scout(ctx context.Context, id string) (model.ScoutProfile, error)
}

// ActionsHandler handles action catalog requests.
type ActionsHandler struct {
	deps ActionDependencies
}

// NewActionsHandler creates a new actions handler.
func NewActionsHandler(deps ActionDependencies) *ActionsHandler {
	return &ActionsHandler{deps: deps}
}

// HandleGetActions handles GET /actions requests. With a scout_id query
// parameter the catalog is filtered to actions that scout's
// specialization can use.
func (h *ActionsHandler) HandleGetActions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_actions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	scoutID := r.URL.Query().Get("scout_id")
	if scoutID == "" {
		writeJSON(w, http.StatusOK, insight.Catalog())
		return
	}
	profile, err := h.deps.Scout(r.Context(), scoutID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, insight.Available(profile))
}
