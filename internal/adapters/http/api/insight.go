// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/libero/internal/domain/insight"
)

// InsightDependencies defines the interface for insight ledger operations.
type InsightDependencies interface {
	Ledger(ctx context.Context, scoutID string) (LedgerEntry, error)
	SpendInsight(ctx context.Context, scoutID string, req SpendRequest) (SpendOutcome, error)
}

// InsightHandler handles insight ledger requests.
type InsightHandler struct {
	deps InsightDependencies
}

// NewInsightHandler creates a new insight handler.
func NewInsightHandler(deps InsightDependencies) *InsightHandler {
	return &InsightHandler{deps: deps}
}

// HandleInsight routes GET /insight/{scout_id} and
// POST /insight/{scout_id}/spend requests.
func (h *InsightHandler) HandleInsight(w http.ResponseWriter, r *http.Request) {
	const op = "api.insight"
	path := strings.TrimPrefix(r.URL.Path, "/insight/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if scoutID, ok := strings.CutSuffix(path, "/spend"); ok {
		h.handleSpend(w, r, scoutID)
		return
	}
	if strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	h.handleGetLedger(w, r, path)
}

// handleGetLedger handles GET /insight/{scout_id} requests.
func (h *InsightHandler) handleGetLedger(w http.ResponseWriter, r *http.Request, scoutID string) {
	const op = "api.get_ledger"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	entry, err := h.deps.Ledger(r.Context(), scoutID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleSpend handles POST /insight/{scout_id}/spend requests.
func (h *InsightHandler) handleSpend(w http.ResponseWriter, r *http.Request, scoutID string) {
	const op = "api.spend_insight"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if scoutID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	var req SpendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ActionID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	outcome, err := h.deps.SpendInsight(r.Context(), scoutID, req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, outcome)
	case errors.Is(err, insight.ErrUnknownAction):
		writeError(w, http.StatusNotFound, "unknown_action", err)
	case errors.Is(err, insight.ErrNotValidated):
		// The deny reason rides along in the outcome body.
		writeJSON(w, http.StatusUnprocessableEntity, outcome)
	case errors.Is(err, insight.ErrNoTarget):
		writeError(w, http.StatusBadRequest, "missing_target", err)
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
