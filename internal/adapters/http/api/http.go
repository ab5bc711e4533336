// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/libero/internal/domain/dedupe"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/session"
	"github.com/okian/libero/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes an observation event for async accrual. Returns false
	// on backpressure.
	Enqueue(ctx context.Context, e model.ObservationEvent) bool

	// Scout registry operations.
	RegisterScout(ctx context.Context, profile model.ScoutProfile) error
	Scout(ctx context.Context, id string) (model.ScoutProfile, error)

	// Insight ledger operations.
	Ledger(ctx context.Context, scoutID string) (LedgerEntry, error)
	SpendInsight(ctx context.Context, scoutID string, req SpendRequest) (SpendOutcome, error)
	WeekTick(ctx context.Context) (int, error)

	// Generation operations.
	GenerateSession(ctx context.Context, req SessionRequest) (session.Session, error)
	SimulateMatch(ctx context.Context, req MatchRequest) (MatchOutcome, error)
}

// Wire shapes shared with the application service.
type (
	LedgerEntry    = types.LedgerEntry
	SpendRequest   = types.SpendRequest
	SpendOutcome   = types.SpendOutcome
	SessionRequest = types.SessionRequest
	MatchRequest   = types.MatchRequest
	MatchOutcome   = types.MatchOutcome
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	observationsHandler *ObservationsHandler
	scoutsHandler       *ScoutsHandler
	insightHandler      *InsightHandler
	actionsHandler      *ActionsHandler
	sessionsHandler     *SessionsHandler
	weekHandler         *WeekHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		observationsHandler: NewObservationsHandler(deps),
		scoutsHandler:       NewScoutsHandler(deps),
		insightHandler:      NewInsightHandler(deps),
		actionsHandler:      NewActionsHandler(deps),
		sessionsHandler:     NewSessionsHandler(deps),
		weekHandler:         NewWeekHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, deps Dependencies) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/observations", MetricsMiddleware(s.observationsHandler.HandlePostObservation, "observations"))
	mux.HandleFunc("/scouts", MetricsMiddleware(s.scoutsHandler.HandleScouts, "scouts"))
	mux.HandleFunc("/scouts/", MetricsMiddleware(s.scoutsHandler.HandleGetScout, "scouts"))
	mux.HandleFunc("/insight/", MetricsMiddleware(s.insightHandler.HandleInsight, "insight"))
	mux.HandleFunc("/actions", MetricsMiddleware(s.actionsHandler.HandleGetActions, "actions"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandlePostSession, "sessions"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.sessionsHandler.HandlePostMatch, "matches"))
	mux.HandleFunc("/weektick", MetricsMiddleware(s.weekHandler.HandleWeekTick, "weektick"))
}

// observationRequest mirrors the OpenAPI schema for POST /observations.
type observationRequest struct {
	EventID string `json:"event_id"`
	ScoutID string `json:"scout_id"`
	Source  string `json:"source"`
	Tier    string `json:"tier"`
	Week    int    `json:"week"`
	TS      string `json:"ts"`
}

func (o observationRequest) validate() error {
	switch {
	case strings.TrimSpace(o.EventID) == "":
		return errors.New("missing event_id")
	case strings.TrimSpace(o.ScoutID) == "":
		return errors.New("missing scout_id")
	case strings.TrimSpace(o.Source) == "":
		return errors.New("missing source")
	case strings.TrimSpace(o.Tier) == "":
		return errors.New("missing tier")
	case strings.TrimSpace(o.TS) == "":
		return errors.New("missing ts")
	}
	if _, err := time.Parse(time.RFC3339, o.TS); err != nil {
		return errors.New("invalid ts; must be RFC3339")
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// This stays generic to avoid tight coupling with specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
