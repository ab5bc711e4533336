package model

// Specialization is one of the four scouting disciplines, or none. It
// gates insight actions and biases moment-type weightings.
type Specialization string

const (
	SpecNone      Specialization = ""
	SpecTechnical Specialization = "technical"
	SpecCharacter Specialization = "character"
	SpecTactical  Specialization = "tactical"
	SpecNetwork   Specialization = "network"
)

// Perk identifiers a scout may have unlocked. Progression systems own the
// unlocking; this core only reads the set.
const (
	PerkEfficientMind = "efficient_mind" // -1 effective insight cost
	PerkQuickRecovery = "quick_recovery" // -1 week cooldown after a spend
	PerkDeepReserves  = "deep_reserves"  // +10 fizzle fatigue threshold
	PerkKeenSenses    = "keen_senses"    // +1 insight on every accumulation
)

// ScoutProfile is the subset of a scout consumed by this core. Mutated by
// external progression systems; read-only here.
type ScoutProfile struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Specialization Specialization  `json:"specialization"`
	Intuition      int             `json:"intuition"` // 1-20, drives insight capacity
	Fatigue        int             `json:"fatigue"`   // 0-100, drives fizzle risk
	Perks          map[string]bool `json:"perks"`
}

// HasPerk reports whether the scout holds the named perk.
func (s ScoutProfile) HasPerk(name string) bool { return s.Perks[name] }

// ObservationMode says what kind of activity the scout is currently in.
// Insight actions are gated by mode.
type ObservationMode string

const (
	ModeVenue ObservationMode = "venue" // free-form observation venue
	ModeMatch ObservationMode = "match" // live match
	ModeDesk  ObservationMode = "desk"  // between sessions, office work
)

// Contact is one node of the scout's network, consumed by network insight
// actions.
type Contact struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Organization string   `json:"organization"`
	Reliability  float64  `json:"reliability"` // 0-1
	KnownPlayers []string `json:"known_players"`
}

// TacticalMatchup describes the play styles of the two sides of a live
// match; it biases phase-type weighting.
type TacticalMatchup struct {
	HomeStyle PlayStyle `json:"home_style"`
	AwayStyle PlayStyle `json:"away_style"`
}

// PlayStyle is a coarse tactical identity tag.
type PlayStyle string

const (
	StyleHighPress  PlayStyle = "high_press"
	StylePossession PlayStyle = "possession"
	StyleCounter    PlayStyle = "counter"
	StyleDirect     PlayStyle = "direct"
	StyleLowBlock   PlayStyle = "low_block"
)
