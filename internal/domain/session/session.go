// Package session owns the observation session aggregate: the roster
// under observation, the venue atmosphere, and the ordered phases filled
// in by the free-form and live-match generators.
package session

import (
	"github.com/okian/libero/internal/domain/atmosphere"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/moment"
)

// State is the session lifecycle tag. Generators only operate on setup
// sessions and are no-ops otherwise.
type State string

const (
	StateSetup     State = "setup"
	StatePopulated State = "populated"
	StateActive    State = "active"
	StateComplete  State = "complete"
)

// Player wraps one observed player: the id, whether the scout allocated
// focus, and the phase indices where the player surfaced while focused.
type Player struct {
	PlayerID      string `json:"player_id"`
	Focused       bool   `json:"focused"`
	FocusedPhases []int  `json:"focused_phases,omitempty"`
}

// MatchEvent is the live-match analogue of a moment. The match package
// owns the type constants and generation; the aggregate owns the shape.
type MatchEvent struct {
	Minute     int               `json:"minute"`
	Type       string            `json:"type"`
	PlayerID   string            `json:"player_id"`
	Quality    float64           `json:"quality"` // 0-10
	Attributes []model.Attribute `json:"attributes,omitempty"`
	Commentary string            `json:"commentary"`
}

// Phase is one ordered unit of a session. Created once during populate
// and immutable afterwards.
type Phase struct {
	Index           int                   `json:"index"`
	StartMinute     int                   `json:"start_minute"`
	Type            string                `json:"type"`
	Description     string                `json:"description"`
	PlayerIDs       []string              `json:"player_ids"`
	Moments         []moment.PlayerMoment `json:"moments,omitempty"`
	MatchEvents     []MatchEvent          `json:"match_events,omitempty"`
	Observable      []model.Attribute     `json:"observable,omitempty"`
	Momentum        float64               `json:"momentum"` // 0-100
	SetPieceVariant string                `json:"set_piece_variant,omitempty"`
}

// Session is the aggregate root handed to downstream report logic.
type Session struct {
	ID         string                `json:"id"`
	Venue      string                `json:"venue"`
	Mode       model.ObservationMode `json:"mode"`
	Seed       int64                 `json:"seed"`
	State      State                 `json:"state"`
	Players    []Player              `json:"players"`
	Atmosphere atmosphere.Atmosphere `json:"atmosphere"`
	Phases     []Phase               `json:"phases,omitempty"`
}

// New creates a setup-state skeleton ready for population.
func New(id, venue string, mode model.ObservationMode, seed int64, players []Player) Session {
	return Session{
		ID:      id,
		Venue:   venue,
		Mode:    mode,
		Seed:    seed,
		State:   StateSetup,
		Players: players,
	}
}

// Phase count bounds shared by both generators.
const (
	MinPhases = 12
	MaxPhases = 18
)

// sessionMinutes is the nominal span phases are scheduled across.
const sessionMinutes = 90

// PhaseStartMinutes produces count jittered but strictly monotonic start
// minutes across 1-90: each phase draws inside its own bucket, so starts
// are irregular without ever running backwards.
func PhaseStartMinutes(count int, src interface {
	IntBetween(min, max int) int
}) []int {
	if count <= 0 {
		return nil
	}
	starts := make([]int, count)
	bucket := sessionMinutes / count
	if bucket < 1 {
		bucket = 1
	}
	for i := 0; i < count; i++ {
		jitter := src.IntBetween(0, bucket-1)
		starts[i] = i*bucket + jitter + 1
	}
	return starts
}

// Participants converts the session roster to the moment generator's
// input shape, preserving order.
func (s Session) Participants() []moment.Participant {
	ps := make([]moment.Participant, len(s.Players))
	for i, p := range s.Players {
		ps[i] = moment.Participant{PlayerID: p.PlayerID, Focused: p.Focused}
	}
	return ps
}

// playerIndex maps ids to roster positions.
func (s Session) playerIndex() map[string]int {
	idx := make(map[string]int, len(s.Players))
	for i, p := range s.Players {
		idx[p.PlayerID] = i
	}
	return idx
}
