package insight

import (
	"github.com/google/uuid"

	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

// DenyReason explains why a spend was refused. Validation checks run in
// a fixed order and the first failure wins.
type DenyReason string

const (
	DenyNone                DenyReason = ""
	DenyUnknownAction       DenyReason = "unknown_action"
	DenyOnCooldown          DenyReason = "on_cooldown"
	DenyWrongMode           DenyReason = "wrong_mode"
	DenyWrongSpecialization DenyReason = "wrong_specialization"
	DenyInsufficientPoints  DenyReason = "insufficient_points"
)

// EffectiveCost is the action cost after perk discounts, floored at 1:
// no action is ever free.
func (e *Economy) EffectiveCost(a Action, scout model.ScoutProfile) int {
	cost := a.Cost
	if scout.HasPerk(model.PerkEfficientMind) {
		cost--
	}
	if cost < 1 {
		cost = 1
	}
	return cost
}

// EffectiveCooldown is the cooldown after perk discounts, floored at 1
// week.
func (e *Economy) EffectiveCooldown(a Action, scout model.ScoutProfile) int {
	weeks := a.CooldownWeeks
	if scout.HasPerk(model.PerkQuickRecovery) {
		weeks--
	}
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}

// CanUse validates a spend without performing it. Checks run in order:
// action exists, not on cooldown, mode allowed, specialization allowed,
// enough points. The returned reason is the first failing check.
func (e *Economy) CanUse(state State, scout model.ScoutProfile, actionID string, mode model.ObservationMode) (Action, DenyReason) {
	a, err := Lookup(actionID)
	if err != nil {
		return Action{}, DenyUnknownAction
	}
	if state.CooldownWeeks > 0 {
		return a, DenyOnCooldown
	}
	if !a.AllowsMode(mode) {
		return a, DenyWrongMode
	}
	if a.Specialization != model.SpecNone && a.Specialization != scout.Specialization {
		return a, DenyWrongSpecialization
	}
	if state.Points < e.EffectiveCost(a, scout) {
		return a, DenyInsufficientPoints
	}
	return a, DenyNone
}

// fizzleRoll draws the partial-failure outcome. The roll only happens
// for fatigued scouts; a fresh scout never fizzles, whatever the source
// would have produced.
func (e *Economy) fizzleRoll(scout model.ScoutProfile, src rng.Source) bool {
	threshold := e.fizzleThreshold
	if scout.HasPerk(model.PerkDeepReserves) {
		threshold += perkThresholdBonus
	}
	if scout.Fatigue <= threshold {
		return false
	}
	return src.Chance(e.fizzleChance)
}

// Spend validates and executes a spend: it deducts the effective cost,
// starts the cooldown, stamps the week, rolls the fizzle, and appends
// the history record. Cost and cooldown apply in full even on a fizzle;
// the spend is never refunded. Draw order: the fizzle roll is the first
// and only draw Spend makes.
func (e *Economy) Spend(state State, scout model.ScoutProfile, actionID string, mode model.ObservationMode, week int, src rng.Source) (State, Action, bool, error) {
	a, reason := e.CanUse(state, scout, actionID, mode)
	if reason == DenyUnknownAction {
		return state, Action{}, false, ErrUnknownAction
	}
	if reason != DenyNone {
		return state, a, false, ErrNotValidated
	}

	fizzled := e.fizzleRoll(scout, src)
	cost := e.EffectiveCost(a, scout)

	next := state
	next.Points -= cost
	next.CooldownWeeks = e.EffectiveCooldown(a, scout)
	next.LastUsedWeek = week
	next.LifetimeUsed += cost
	next.History = append(cloneHistory(state.History), UseRecord{
		ID:       uuid.NewString(),
		ActionID: a.ID,
		Week:     week,
		Cost:     cost,
		Fizzled:  fizzled,
	})
	return next, a, fizzled, nil
}
