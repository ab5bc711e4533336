package model

import "time"

// ObservationEvent represents one completed piece of scouting work
// submitted by clients to earn Insight. Fields mirror the OpenAPI
// schema for /observations.
type ObservationEvent struct {
	EventID string    // unique id for idempotency
	ScoutID string    // earning scout
	Source  string    // accumulation source, e.g. "venue_observation"
	Tier    string    // quality tier, e.g. "solid"
	Week    int       // game week the work was done in
	TS      time.Time // submission timestamp
}
