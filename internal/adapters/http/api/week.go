// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// WeekDependencies defines the interface for advancing the week clock.
type WeekDependencies interface {
	WeekTick(ctx context.Context) (int, error)
}

// WeekHandler handles week-tick requests.
type WeekHandler struct {
	deps WeekDependencies
}

// NewWeekHandler creates a new week handler.
func NewWeekHandler(deps WeekDependencies) *WeekHandler {
	return &WeekHandler{deps: deps}
}

type weekTickResponse struct {
	Ticked int `json:"ticked"`
}

// HandleWeekTick handles POST /weektick requests. One tick decrements
// every ledger's cooldown by a week.
func (h *WeekHandler) HandleWeekTick(w http.ResponseWriter, r *http.Request) {
	const op = "api.week_tick"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ticked, err := h.deps.WeekTick(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, weekTickResponse{Ticked: ticked})
}
