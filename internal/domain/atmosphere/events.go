package atmosphere

import (
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

// eventChance is the flat per-phase roll for a transient event firing.
const eventChance = 0.25

// eventTemplate is one candidate transient event. The weight function
// returns 0 when the template is ineligible for the current state, which
// excludes it from the pool before the weighted pick.
type eventTemplate struct {
	kind        EffectKind
	description string
	attributes  []model.Attribute
	noiseDelta  float64
	weight      func(a Atmosphere, phase, totalPhases int) float64
}

// eventTemplates is the fixed pool. Keep order stable: the weighted pick
// walks it in order, so reordering changes replays.
var eventTemplates = []eventTemplate{
	{
		kind:        EffectDistraction,
		description: "The pitch is waterlogged in patches; passes die or skid without warning.",
		noiseDelta:  0.25,
		weight: func(a Atmosphere, _, _ int) float64 {
			if a.Weather != WeatherRain {
				return 0
			}
			return 3
		},
	},
	{
		kind:        EffectAmplify,
		description: "A fast, frantic start; the quick ones announce themselves immediately.",
		attributes:  []model.Attribute{model.AttrPace, model.AttrAgility},
		noiseDelta:  -0.05,
		weight: func(_ Atmosphere, phase, _ int) float64 {
			if phase > 1 {
				return 0
			}
			return 2
		},
	},
	{
		kind:        EffectDistraction,
		description: "A parent is bellowing instructions that contradict the coach's.",
		noiseDelta:  0.15,
		weight: func(a Atmosphere, _, _ int) float64 {
			if !IsYouthVenue(a.Venue) {
				return 0
			}
			return 2.5
		},
	},
	{
		kind:        EffectDistraction,
		description: "The crowd surges into a chant; half the pitch starts playing to it.",
		noiseDelta:  0.2,
		weight: func(a Atmosphere, _, _ int) float64 {
			return a.CrowdIntensity * 3
		},
	},
	{
		kind:        EffectDampen,
		description: "Tempers flare after a late challenge; the game tightens up.",
		attributes:  []model.Attribute{model.AttrDribbling, model.AttrVision},
		noiseDelta:  0.1,
		weight: func(_ Atmosphere, phase, totalPhases int) float64 {
			// Scuffles belong to a game that has had time to heat up.
			if phase < totalPhases/3 {
				return 0.5
			}
			return 2
		},
	},
	{
		kind:        EffectReveal,
		description: "A lull settles over the ground; for a few minutes you can see everything clearly.",
		noiseDelta:  -0.2,
		weight: func(a Atmosphere, _, _ int) float64 {
			return 1.5 * (1 - a.Chaos)
		},
	},
	{
		kind:        EffectAmplify,
		description: "The wind picks up and the long ball becomes an adventure; aerial duels decide territory.",
		attributes:  []model.Attribute{model.AttrJumping, model.AttrStrength},
		noiseDelta:  0.1,
		weight: func(a Atmosphere, _, _ int) float64 {
			if a.Weather != WeatherWind {
				return 0
			}
			return 2.5
		},
	},
	{
		kind:        EffectDistraction,
		description: "A floodlight bank stutters; play continues in half-shadow.",
		noiseDelta:  0.15,
		weight: func(a Atmosphere, _, _ int) float64 {
			if a.Venue != VenueStadium {
				return 0
			}
			return 1
		},
	},
	{
		kind:        EffectDampen,
		description: "Legs are going; the tempo drops and the fit ones stand out by default.",
		attributes:  []model.Attribute{model.AttrPace, model.AttrFinishing},
		noiseDelta:  0.05,
		weight: func(_ Atmosphere, phase, totalPhases int) float64 {
			if phase < (2*totalPhases)/3 {
				return 0
			}
			return 2
		},
	},
	{
		kind:        EffectReveal,
		description: "A coaching stoppage freezes the game mid-shape; positioning is laid bare.",
		attributes:  []model.Attribute{model.AttrPositioning, model.AttrMarking},
		noiseDelta:  -0.1,
		weight: func(a Atmosphere, _, _ int) float64 {
			if a.Venue != VenueTrainingSession && a.Venue != VenueTrialDay {
				return 0
			}
			return 2
		},
	},
}

// GenerateEvent rolls the per-phase transient event. The bool result is
// false when the flat chance fails or no template is eligible.
//
// Draw order: the 25% gate, then one weighted pick across the eligible
// pool.
func GenerateEvent(a Atmosphere, phase, totalPhases int, src rng.Source) (Event, bool) {
	if !src.Chance(eventChance) {
		return Event{}, false
	}
	pool := make([]rng.Weighted[eventTemplate], 0, len(eventTemplates))
	for _, t := range eventTemplates {
		w := t.weight(a, phase, totalPhases)
		if w <= 0 {
			continue
		}
		pool = append(pool, rng.Weighted[eventTemplate]{Item: t, Weight: w})
	}
	tpl, ok := rng.WeightedPick(src, pool)
	if !ok {
		return Event{}, false
	}
	return Event{
		Kind:        tpl.kind,
		Description: tpl.description,
		Attributes:  tpl.attributes,
		NoiseDelta:  tpl.noiseDelta,
		Phase:       phase,
	}, true
}
