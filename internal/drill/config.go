package drill

import (
	"time"

	"github.com/okian/libero/internal/domain/insight"
)

// Config holds configuration for the observation drill
type Config struct {
	BaseURL        string        // Base URL of the service
	NumScouts      int           // Number of scouts to register
	EventsPerScout int           // Observations submitted per scout
	TopN           int           // Number of top ledgers to display
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	OutputFile     string        // Output file for observations
	LogFile        string        // Log file for drill output
	Verbose        bool          // Enable verbose logging
}

// Scout is the registration payload
type Scout struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Intuition      int    `json:"intuition"`
	Fatigue        int    `json:"fatigue"`
}

// Observation represents an observation event to be submitted
type Observation struct {
	EventID string `json:"event_id"`
	ScoutID string `json:"scout_id"`
	Source  string `json:"source"`
	Tier    string `json:"tier"`
	Week    int    `json:"week"`
	TS      string `json:"ts"`
}

// Ledger mirrors the insight ledger view returned by the service
type Ledger struct {
	ScoutID  string        `json:"scout_id"`
	State    insight.State `json:"state"`
	Ready    bool          `json:"ready"`
	Capacity int           `json:"capacity"`
}

// AckResponse represents the response from observation submission
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds drill statistics
type Stats struct {
	ScoutsRegistered  int
	EventsGenerated   int
	EventsSubmitted   int
	EventsSuccessful  int
	EventsDuplicate   int
	EventsFailed      int
	LedgersRetrieved  int
	LedgersVerified   int
	LedgerMismatches  int
	SessionsProbed    int
	SessionsVerified  int
	SessionMismatches int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
