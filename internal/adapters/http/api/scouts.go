// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/libero/internal/domain/model"
)

// Intuition and fatigue bounds enforced on registration.
const (
	minIntuition = 1
	maxIntuition = 20
	maxFatigue   = 100
)

// ScoutDependencies defines the interface for scout registry operations.
type ScoutDependencies interface {
	RegisterScout(ctx context.Context, profile model.ScoutProfile) error
	Scout(ctx context.Context, id string) (model.ScoutProfile, error)
}

// ScoutsHandler handles scout registry requests.
type ScoutsHandler struct {
	deps ScoutDependencies
}

// NewScoutsHandler creates a new scouts handler.
func NewScoutsHandler(deps ScoutDependencies) *ScoutsHandler {
	return &ScoutsHandler{deps: deps}
}

// scoutRequest mirrors the OpenAPI schema for POST /scouts.
type scoutRequest struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Specialization string          `json:"specialization"`
	Intuition      int             `json:"intuition"`
	Fatigue        int             `json:"fatigue"`
	Perks          map[string]bool `json:"perks,omitempty"`
}

func (s scoutRequest) validate() error {
	switch {
	case strings.TrimSpace(s.ID) == "":
		return errors.New("missing id")
	case strings.TrimSpace(s.Name) == "":
		return errors.New("missing name")
	case s.Intuition < minIntuition || s.Intuition > maxIntuition:
		return errors.New("intuition must be between 1 and 20")
	case s.Fatigue < 0 || s.Fatigue > maxFatigue:
		return errors.New("fatigue must be between 0 and 100")
	}
	switch model.Specialization(s.Specialization) {
	case model.SpecNone, model.SpecTechnical, model.SpecCharacter,
		model.SpecTactical, model.SpecNetwork:
		return nil
	default:
		return errors.New("unknown specialization")
	}
}

// HandleScouts handles POST /scouts requests.
func (h *ScoutsHandler) HandleScouts(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_scout"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	profile := model.ScoutProfile{
		ID:             req.ID,
		Name:           req.Name,
		Specialization: model.Specialization(req.Specialization),
		Intuition:      req.Intuition,
		Fatigue:        req.Fatigue,
		Perks:          req.Perks,
	}
	if err := h.deps.RegisterScout(r.Context(), profile); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "exists") {
			writeError(w, http.StatusConflict, "already_exists", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// HandleGetScout handles GET /scouts/{scout_id} requests.
func (h *ScoutsHandler) HandleGetScout(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_scout"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /scouts/
	id := strings.TrimPrefix(r.URL.Path, "/scouts/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	profile, err := h.deps.Scout(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
