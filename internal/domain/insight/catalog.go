package insight

import (
	"sort"

	"github.com/okian/libero/internal/domain/model"
)

// Action ids. The catalog is fixed at compile time; saves reference
// actions by id only.
const (
	ActionClarityOfVision     = "clarity_of_vision"
	ActionSecondLook          = "second_look"
	ActionDiamondInTheRough   = "diamond_in_the_rough"
	ActionFlawlessRecall      = "flawless_recall"
	ActionTouchTest           = "touch_test"
	ActionGenerationalWhisper = "generational_whisper"
	ActionHiddenNature        = "hidden_nature"
	ActionPressureTest        = "pressure_test"
	ActionPatternRecognition  = "pattern_recognition"
	ActionPerfectFit          = "perfect_fit"
	ActionNetworkPulse        = "network_pulse"
	ActionMarketBlindSpot     = "market_blind_spot"
)

// Category groups actions by the shape of their result payload.
type Category string

const (
	CategoryReveal    Category = "reveal"
	CategoryDiscovery Category = "discovery"
	CategoryReport    Category = "report"
	CategoryFit       Category = "fit"
	CategoryNetwork   Category = "network"
	CategoryMarket    Category = "market"
)

// Action is one catalog entry. Specialization SpecNone marks a
// universal action; otherwise only scouts of that specialization may
// use it.
type Action struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Category       Category                `json:"category"`
	Cost           int                     `json:"cost"`
	CooldownWeeks  int                     `json:"cooldown_weeks"`
	Specialization model.Specialization    `json:"specialization,omitempty"`
	Modes          []model.ObservationMode `json:"modes"`
	NeedsTarget    bool                    `json:"needs_target"`
	Risk           string                  `json:"risk,omitempty"`
}

// AllowsMode reports whether the action can fire in the given
// observation mode.
func (a Action) AllowsMode(mode model.ObservationMode) bool {
	for _, m := range a.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

var catalog = map[string]Action{
	ActionClarityOfVision: {
		ID:            ActionClarityOfVision,
		Name:          "Clarity of Vision",
		Category:      CategoryReveal,
		Cost:          15,
		CooldownWeeks: 2,
		Modes:         []model.ObservationMode{model.ModeVenue, model.ModeMatch},
		NeedsTarget:   true,
		Risk:          "a fizzle reveals half as many attributes",
	},
	ActionSecondLook: {
		ID:            ActionSecondLook,
		Name:          "Second Look",
		Category:      CategoryReveal,
		Cost:          10,
		CooldownWeeks: 1,
		Modes:         []model.ObservationMode{model.ModeVenue, model.ModeMatch},
		Risk:          "wasted if the chosen player showed nothing",
	},
	ActionDiamondInTheRough: {
		ID:            ActionDiamondInTheRough,
		Name:          "Diamond in the Rough",
		Category:      CategoryDiscovery,
		Cost:          20,
		CooldownWeeks: 3,
		Modes:         []model.ObservationMode{model.ModeVenue, model.ModeMatch},
		Risk:          "a fizzle blurs the potential reading",
	},
	ActionFlawlessRecall: {
		ID:            ActionFlawlessRecall,
		Name:          "Flawless Recall",
		Category:      CategoryReport,
		Cost:          12,
		CooldownWeeks: 2,
		Modes:         []model.ObservationMode{model.ModeVenue, model.ModeMatch, model.ModeDesk},
		Risk:          "a fizzle halves the report bonus",
	},
	ActionTouchTest: {
		ID:             ActionTouchTest,
		Name:           "Touch Test",
		Category:       CategoryReveal,
		Cost:           18,
		CooldownWeeks:  2,
		Specialization: model.SpecTechnical,
		Modes:          []model.ObservationMode{model.ModeVenue, model.ModeMatch},
		NeedsTarget:    true,
		Risk:           "a fizzle reveals only part of the technical profile",
	},
	ActionGenerationalWhisper: {
		ID:             ActionGenerationalWhisper,
		Name:           "Generational Whisper",
		Category:       CategoryDiscovery,
		Cost:           25,
		CooldownWeeks:  4,
		Specialization: model.SpecTechnical,
		Modes:          []model.ObservationMode{model.ModeVenue, model.ModeMatch},
		Risk:           "only players aged 21 or under qualify",
	},
	ActionHiddenNature: {
		ID:             ActionHiddenNature,
		Name:           "Hidden Nature",
		Category:       CategoryReveal,
		Cost:           20,
		CooldownWeeks:  3,
		Specialization: model.SpecCharacter,
		Modes:          []model.ObservationMode{model.ModeVenue, model.ModeMatch},
		NeedsTarget:    true,
		Risk:           "a fizzle exposes only part of the hidden profile",
	},
	ActionPressureTest: {
		ID:             ActionPressureTest,
		Name:           "Pressure Test",
		Category:       CategoryReveal,
		Cost:           15,
		CooldownWeeks:  2,
		Specialization: model.SpecCharacter,
		Modes:          []model.ObservationMode{model.ModeMatch},
		NeedsTarget:    true,
		Risk:           "only readable during live matches",
	},
	ActionPatternRecognition: {
		ID:             ActionPatternRecognition,
		Name:           "Pattern Recognition",
		Category:       CategoryReveal,
		Cost:           15,
		CooldownWeeks:  2,
		Specialization: model.SpecTactical,
		Modes:          []model.ObservationMode{model.ModeVenue, model.ModeMatch},
		NeedsTarget:    true,
		Risk:           "a fizzle reveals only part of the tactical profile",
	},
	ActionPerfectFit: {
		ID:             ActionPerfectFit,
		Name:           "Perfect Fit",
		Category:       CategoryFit,
		Cost:           18,
		CooldownWeeks:  3,
		Specialization: model.SpecTactical,
		Modes:          []model.ObservationMode{model.ModeVenue, model.ModeMatch, model.ModeDesk},
		NeedsTarget:    true,
		Risk:           "a fizzle grades fewer positions",
	},
	ActionNetworkPulse: {
		ID:             ActionNetworkPulse,
		Name:           "Network Pulse",
		Category:       CategoryNetwork,
		Cost:           15,
		CooldownWeeks:  2,
		Specialization: model.SpecNetwork,
		Modes:          []model.ObservationMode{model.ModeDesk, model.ModeVenue},
		Risk:           "intel quality tracks contact reliability",
	},
	ActionMarketBlindSpot: {
		ID:             ActionMarketBlindSpot,
		Name:           "Market Blind Spot",
		Category:       CategoryMarket,
		Cost:           22,
		CooldownWeeks:  3,
		Specialization: model.SpecNetwork,
		Modes:          []model.ObservationMode{model.ModeDesk},
		Risk:           "an efficient market yields nothing",
	},
}

// Lookup resolves an action id against the catalog.
func Lookup(id string) (Action, error) {
	a, ok := catalog[id]
	if !ok {
		return Action{}, ErrUnknownAction
	}
	return a, nil
}

// Catalog returns every action sorted by id, for listing endpoints.
func Catalog() []Action {
	out := make([]Action, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Available filters the catalog to actions the scout's specialization
// permits.
func Available(scout model.ScoutProfile) []Action {
	out := make([]Action, 0, len(catalog))
	for _, a := range Catalog() {
		if a.Specialization == model.SpecNone || a.Specialization == scout.Specialization {
			out = append(out, a)
		}
	}
	return out
}
