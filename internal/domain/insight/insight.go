// Package insight implements the scout's earned-resource economy: bounded
// accumulation, cooldown/specialization-gated spending, the fizzle
// partial-failure mode, and the twelve actions that bypass the
// observation noise model.
//
// Conventions:
//   - Everything is a pure function of its inputs and the random source;
//     state transitions return new values.
//   - Economy tunables are set with functional options on NewEconomy.
//   - External errors are the package sentinels in errors.go.
package insight

import (
	"github.com/okian/libero/internal/domain/model"
)

// Default economy tunables.
const (
	defaultCapacityBase     = 40
	defaultCapacityPerPoint = 2
	defaultFizzleThreshold  = 70
	defaultFizzleChance     = 0.20
	perkThresholdBonus      = 10
)

// Economy evaluates accumulation, spending and dispatch under one set of
// tunables.
type Economy struct {
	capacityBase     int
	capacityPerPoint int
	fizzleThreshold  int
	fizzleChance     float64
}

// Option applies a configuration option to the Economy.
type Option func(*Economy)

// WithCapacity overrides the capacity formula constants.
func WithCapacity(base, perIntuition int) Option {
	return func(e *Economy) {
		if base > 0 {
			e.capacityBase = base
		}
		if perIntuition > 0 {
			e.capacityPerPoint = perIntuition
		}
	}
}

// WithFizzle overrides the fatigue threshold and roll chance.
func WithFizzle(threshold int, chance float64) Option {
	return func(e *Economy) {
		if threshold > 0 {
			e.fizzleThreshold = threshold
		}
		if chance > 0 && chance <= 1 {
			e.fizzleChance = chance
		}
	}
}

// NewEconomy creates an Economy with default tunables.
func NewEconomy(opts ...Option) *Economy {
	e := &Economy{
		capacityBase:     defaultCapacityBase,
		capacityPerPoint: defaultCapacityPerPoint,
		fizzleThreshold:  defaultFizzleThreshold,
		fizzleChance:     defaultFizzleChance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Capacity derives the point cap from the scout's intuition.
func (e *Economy) Capacity(intuition int) int {
	return e.capacityBase + intuition*e.capacityPerPoint
}

// UseRecord is one append-only history entry of a spend.
type UseRecord struct {
	ID       string `json:"id"`
	ActionID string `json:"action_id"`
	Week     int    `json:"week"`
	Cost     int    `json:"cost"`
	Fizzled  bool   `json:"fizzled"`
}

// State is the per-scout resource ledger. It serializes losslessly; the
// save system persists it verbatim. Action definitions are referenced by
// id only and never stored here.
type State struct {
	ScoutID        string      `json:"scout_id"`
	Points         int         `json:"points"`
	Capacity       int         `json:"capacity"`
	CooldownWeeks  int         `json:"cooldown_weeks"`
	LifetimeEarned int         `json:"lifetime_earned"`
	LifetimeUsed   int         `json:"lifetime_used"`
	LastUsedWeek   int         `json:"last_used_week"`
	History        []UseRecord `json:"history,omitempty"`
}

// NewState creates the ledger for a scout at creation time.
func (e *Economy) NewState(scout model.ScoutProfile) State {
	return State{
		ScoutID:  scout.ID,
		Capacity: e.Capacity(scout.Intuition),
	}
}

// NewState creates a bare ledger from a scout id and a precomputed
// capacity. Prefer Economy.NewState when the full profile is at hand.
func NewState(scoutID string, capacity int) State {
	return State{ScoutID: scoutID, Capacity: capacity}
}

// Credit adds earned points, capping at capacity. The lifetime-earned
// counter always takes the full amount: overflow past the cap is still
// work that was done.
func (s State) Credit(earned int) State {
	if earned <= 0 {
		return s
	}
	s.Points += earned
	if s.Points > s.Capacity {
		s.Points = s.Capacity
	}
	s.LifetimeEarned += earned
	s.History = cloneHistory(s.History)
	return s
}

// WeekTick advances game time by one week: the cooldown decrements by
// exactly 1, floored at 0. This is the only way time moves in this core.
func (s State) WeekTick() State {
	if s.CooldownWeeks > 0 {
		s.CooldownWeeks--
	}
	s.History = cloneHistory(s.History)
	return s
}

// Ready reports whether the scout is out of cooldown.
func (s State) Ready() bool { return s.CooldownWeeks == 0 }

func cloneHistory(h []UseRecord) []UseRecord {
	if len(h) == 0 {
		return nil
	}
	out := make([]UseRecord, len(h))
	copy(out, h)
	return out
}
