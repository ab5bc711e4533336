// Package match orchestrates live-match observation sessions: tactically
// biased phases, position-eligible events, injury chains, momentum and a
// separately sampled final score.
package match

import (
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

// Team is one side of the fixture as the orchestrator sees it.
type Team struct {
	Name    string               `json:"name"`
	Style   model.PlayStyle      `json:"style"`
	Players []model.PlayerRecord `json:"players"`
}

// Result is the outcome of the fixture, produced separately from the
// observed phases.
type Result struct {
	HomeGoals int      `json:"home_goals"`
	AwayGoals int      `json:"away_goals"`
	Scorers   []Scorer `json:"scorers,omitempty"`
}

// Scorer attributes one goal to a player at a unique minute.
type Scorer struct {
	PlayerID string `json:"player_id"`
	Minute   int    `json:"minute"`
	Home     bool   `json:"home"`
}

// Phase types for live matches.
const (
	PhaseBuildup        = "buildup"
	PhasePressing       = "pressing_sequence"
	PhaseTransition     = "transition"
	PhaseSetPiece       = "set_piece"
	PhaseDefensiveStand = "defensive_stand"
	PhaseAttackingMove  = "attacking_move"
	PhaseMidfieldBattle = "midfield_battle"
)

// basePhaseWeights is the unbiased phase-type pool.
var basePhaseWeights = map[string]float64{
	PhaseBuildup:        3,
	PhasePressing:       2,
	PhaseTransition:     2,
	PhaseSetPiece:       1.5,
	PhaseDefensiveStand: 2,
	PhaseAttackingMove:  2.5,
	PhaseMidfieldBattle: 2,
}

// phaseOrder fixes iteration order over the weight map for replayable
// weighted picks.
var phaseOrder = []string{
	PhaseBuildup, PhasePressing, PhaseTransition, PhaseSetPiece,
	PhaseDefensiveStand, PhaseAttackingMove, PhaseMidfieldBattle,
}

// stylePhaseBias injects extra weight toward phase types that suit a play
// style. Both sides' styles apply.
var stylePhaseBias = map[model.PlayStyle]map[string]float64{
	model.StyleHighPress:  {PhasePressing: 2, PhaseTransition: 1},
	model.StylePossession: {PhaseBuildup: 2, PhaseMidfieldBattle: 1},
	model.StyleCounter:    {PhaseTransition: 2, PhaseAttackingMove: 1},
	model.StyleDirect:     {PhaseAttackingMove: 1.5, PhaseSetPiece: 1},
	model.StyleLowBlock:   {PhaseDefensiveStand: 2.5, PhaseSetPiece: 0.5},
}

// Set-piece variants.
const (
	VariantCorner   = "corner"
	VariantFreeKick = "free_kick"
	VariantThrowIn  = "throw_in"
	VariantPenalty  = "penalty"
)

var setPieceVariants = []rng.Weighted[string]{
	{Item: VariantCorner, Weight: 5},
	{Item: VariantFreeKick, Weight: 4},
	{Item: VariantThrowIn, Weight: 2},
	{Item: VariantPenalty, Weight: 1},
}

// Event types.
const (
	EventGoal         = "goal"
	EventSave         = "save"
	EventPass         = "pass_combination"
	EventCross        = "cross"
	EventTackle       = "tackle"
	EventSprint       = "sprint"
	EventAerialDuel   = "aerial_duel"
	EventDribble      = "dribble"
	EventInterception = "interception"
	EventShot         = "shot"
	EventFoul         = "foul"
	EventClearance    = "clearance"
	EventInjury       = "injury"
	EventSubstitution = "substitution"
)

// eligibility buckets for attributing an event to a player.
type eligibility int

const (
	eligibleAny eligibility = iota
	eligibleOutfield
	eligibleGoalkeeper
	eligibleWideOrAttacking
	eligibleAttacking
	eligibleDefensive
)

func positionEligible(p model.Position, e eligibility) bool {
	switch e {
	case eligibleGoalkeeper:
		return p.IsGoalkeeper()
	case eligibleOutfield:
		return !p.IsGoalkeeper()
	case eligibleWideOrAttacking:
		return p.IsWide() || p.IsAttacking()
	case eligibleAttacking:
		return p.IsAttacking()
	case eligibleDefensive:
		return !p.IsGoalkeeper() && !p.IsAttacking()
	default:
		return true
	}
}

// eventSpec binds an event type to the attributes it reveals and who may
// be credited with it.
type eventSpec struct {
	attrs       []model.Attribute
	eligible    eligibility
	injuryProne bool // carries the flat injury-chain chance
}

var eventSpecs = map[string]eventSpec{
	EventGoal:         {attrs: []model.Attribute{model.AttrFinishing, model.AttrComposure}, eligible: eligibleAttacking},
	EventSave:         {attrs: []model.Attribute{model.AttrAgility, model.AttrPositioning, model.AttrConcentration}, eligible: eligibleGoalkeeper},
	EventPass:         {attrs: []model.Attribute{model.AttrPassing, model.AttrVision, model.AttrTeamwork}, eligible: eligibleOutfield},
	EventCross:        {attrs: []model.Attribute{model.AttrCrossing, model.AttrPace}, eligible: eligibleWideOrAttacking},
	EventTackle:       {attrs: []model.Attribute{model.AttrTackling, model.AttrMarking}, eligible: eligibleDefensive, injuryProne: true},
	EventSprint:       {attrs: []model.Attribute{model.AttrPace, model.AttrStamina}, eligible: eligibleOutfield, injuryProne: true},
	EventAerialDuel:   {attrs: []model.Attribute{model.AttrJumping, model.AttrStrength}, eligible: eligibleOutfield, injuryProne: true},
	EventDribble:      {attrs: []model.Attribute{model.AttrDribbling, model.AttrAgility}, eligible: eligibleOutfield},
	EventInterception: {attrs: []model.Attribute{model.AttrPositioning, model.AttrDecisions}, eligible: eligibleOutfield},
	EventShot:         {attrs: []model.Attribute{model.AttrFinishing, model.AttrComposure}, eligible: eligibleAttacking},
	EventFoul:         {attrs: []model.Attribute{model.AttrTackling, model.AttrDetermination}, eligible: eligibleOutfield, injuryProne: true},
	EventClearance:    {attrs: []model.Attribute{model.AttrPositioning, model.AttrJumping, model.AttrStrength}, eligible: eligibleDefensive},
}

// phaseEventWeights is the per-phase event-type distribution. Variant
// tables below override these for set-piece phases.
var phaseEventWeights = map[string][]rng.Weighted[string]{
	PhaseBuildup: {
		{Item: EventPass, Weight: 5}, {Item: EventDribble, Weight: 2},
		{Item: EventInterception, Weight: 2}, {Item: EventCross, Weight: 1.5},
	},
	PhasePressing: {
		{Item: EventTackle, Weight: 3}, {Item: EventInterception, Weight: 3},
		{Item: EventSprint, Weight: 3}, {Item: EventFoul, Weight: 1.5},
		{Item: EventPass, Weight: 1},
	},
	PhaseTransition: {
		{Item: EventSprint, Weight: 3.5}, {Item: EventDribble, Weight: 2.5},
		{Item: EventPass, Weight: 2}, {Item: EventShot, Weight: 2},
		{Item: EventSave, Weight: 1},
	},
	PhaseDefensiveStand: {
		{Item: EventClearance, Weight: 3.5}, {Item: EventTackle, Weight: 3},
		{Item: EventSave, Weight: 2.5}, {Item: EventAerialDuel, Weight: 2},
		{Item: EventFoul, Weight: 1},
	},
	PhaseAttackingMove: {
		{Item: EventShot, Weight: 3}, {Item: EventCross, Weight: 2.5},
		{Item: EventDribble, Weight: 2.5}, {Item: EventGoal, Weight: 1},
		{Item: EventSave, Weight: 1.5},
	},
	PhaseMidfieldBattle: {
		{Item: EventPass, Weight: 3}, {Item: EventTackle, Weight: 2.5},
		{Item: EventAerialDuel, Weight: 2}, {Item: EventInterception, Weight: 2},
		{Item: EventFoul, Weight: 1.5},
	},
}

// variantEventWeights overrides the event table for set-piece phases.
// Penalties almost always resolve to a single goal-or-save event.
var variantEventWeights = map[string][]rng.Weighted[string]{
	VariantCorner: {
		{Item: EventAerialDuel, Weight: 4}, {Item: EventClearance, Weight: 3},
		{Item: EventSave, Weight: 2}, {Item: EventGoal, Weight: 1},
	},
	VariantFreeKick: {
		{Item: EventShot, Weight: 3}, {Item: EventSave, Weight: 2.5},
		{Item: EventClearance, Weight: 2}, {Item: EventGoal, Weight: 1},
	},
	VariantThrowIn: {
		{Item: EventPass, Weight: 4}, {Item: EventAerialDuel, Weight: 2},
		{Item: EventTackle, Weight: 2},
	},
	VariantPenalty: {
		{Item: EventGoal, Weight: 7}, {Item: EventSave, Weight: 3},
	},
}

// Injury chain: certain physical events carry a flat chance of a
// follow-up injury one minute later, chained to a substitution.
const injuryChance = 0.03

// Event count bounds per phase; penalties emit exactly one.
const (
	minEventsPerPhase = 2
	maxEventsPerPhase = 4
)
