// Package moment generates the revealed slices of player behavior for
// free-form observation venues.
//
// Everything here is pure: the same participants, atmosphere and random
// source produce the same moments. The random draw order per slot is
// fixed and documented on GenerateMoments.
package moment

import (
	"github.com/okian/libero/internal/domain/atmosphere"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

// Type classifies a moment. Each type hints only at attributes from its
// own pool.
type Type string

const (
	TypeTechnical Type = "technical_action"
	TypePhysical  Type = "physical_test"
	TypeMental    Type = "mental_response"
	TypeTactical  Type = "tactical_decision"
	TypeCharacter Type = "character_reveal"
)

// allTypes fixes iteration order for weighted distributions.
var allTypes = []Type{TypeTechnical, TypePhysical, TypeMental, TypeTactical, TypeCharacter}

// typeAttributePools binds each moment type to the attribute domain its
// hints are drawn from. A technical moment never hints at a physical
// attribute.
var typeAttributePools = map[Type][]model.Attribute{
	TypeTechnical: model.GroupAttributes(model.GroupTechnical),
	TypePhysical:  model.GroupAttributes(model.GroupPhysical),
	TypeMental:    model.GroupAttributes(model.GroupMental),
	TypeTactical:  model.GroupAttributes(model.GroupTactical),
	TypeCharacter: {model.AttrDetermination, model.AttrTeamwork, model.AttrProfessionalism, model.AttrBigGameTemperament},
}

// AttributeHints returns the attribute pool a moment type may hint at.
// The returned slice must not be modified.
func AttributeHints(t Type) []model.Attribute {
	return typeAttributePools[t]
}

// venueTypeWeights biases moment types per venue. Unrecognized venues use
// an equal-weight distribution.
var venueTypeWeights = map[string]map[Type]float64{
	atmosphere.VenueYouthTournament: {
		TypeTechnical: 3, TypePhysical: 2, TypeMental: 1.5, TypeTactical: 1, TypeCharacter: 2.5,
	},
	atmosphere.VenueTrainingSession: {
		TypeTechnical: 3.5, TypePhysical: 1.5, TypeMental: 1, TypeTactical: 2.5, TypeCharacter: 1.5,
	},
	atmosphere.VenueStreetGame: {
		TypeTechnical: 4, TypePhysical: 2, TypeMental: 1, TypeTactical: 0.5, TypeCharacter: 2.5,
	},
	atmosphere.VenueTrialDay: {
		TypeTechnical: 2, TypePhysical: 2, TypeMental: 2.5, TypeTactical: 1.5, TypeCharacter: 2,
	},
	atmosphere.VenueAcademyShowcase: {
		TypeTechnical: 3, TypePhysical: 1.5, TypeMental: 1.5, TypeTactical: 2, TypeCharacter: 2,
	},
}

// Involvement chance constants: the two-pass selection rule.
const (
	focusedChance   = 0.50
	unfocusedChance = 0.20
)

// Slot count bounds per phase.
const (
	minSlots = 3
	maxSlots = 6
)

// Quality draw parameters.
const (
	qualityMean   = 5.5
	qualityStddev = 2.0
	standoutFloor = 8
)

// Pressure-context probability model: ramps across the session, boosted
// by crowd intensity, capped.
const (
	pressureStart = 0.20
	pressureEnd   = 0.45
	pressureCrowd = 0.15
	pressureCap   = 0.70
)

// Participant is one roster entry as the generator sees it.
type Participant struct {
	PlayerID string
	Focused  bool
}

// PlayerMoment is one revealed slice of a player's behavior.
type PlayerMoment struct {
	PlayerID         string            `json:"player_id"`
	Type             Type              `json:"type"`
	Quality          int               `json:"quality"` // 1-10
	AttributesHinted []model.Attribute `json:"attributes_hinted"`
	Detailed         string            `json:"detailed"` // shown when the scout focused this player
	Vague            string            `json:"vague"`    // shown otherwise
	UnderPressure    bool              `json:"under_pressure"`
	Standout         bool              `json:"standout"` // quality >= 8
}

// GenerateMoments produces 3-6 moments for one phase. With a non-empty
// roster the result is never empty: when every involvement roll fails,
// the slot falls back to a uniform pick over the full roster.
//
// Draw order per slot: one involvement roll per participant in roster
// order, uniform candidate pick, moment-type pick, quality draw, hint
// count, hint sample, detailed pick, vague pick, pressure roll. The slot
// count itself is the first draw of the phase.
func GenerateMoments(players []Participant, phase, totalPhases int, atmo atmosphere.Atmosphere, src rng.Source) []PlayerMoment {
	if len(players) == 0 {
		return nil
	}
	slots := src.IntBetween(minSlots, maxSlots)
	moments := make([]PlayerMoment, 0, slots)
	for i := 0; i < slots; i++ {
		moments = append(moments, generateOne(players, phase, totalPhases, atmo, src))
	}
	return moments
}

func generateOne(players []Participant, phase, totalPhases int, atmo atmosphere.Atmosphere, src rng.Source) PlayerMoment {
	subject := selectSubject(players, src)
	mt := selectType(atmo.Venue, src)
	quality := rng.ClampedGaussianInt(src, qualityMean, qualityStddev, 1, 10)
	hints := rng.Sample(src, typeAttributePools[mt], src.IntBetween(1, 3))
	detailed := rng.Pick(src, detailedBank(mt, quality))
	vague := rng.Pick(src, vagueBank[mt])
	pressure := src.Chance(pressureChance(phase, totalPhases, atmo.CrowdIntensity))
	return PlayerMoment{
		PlayerID:         subject.PlayerID,
		Type:             mt,
		Quality:          quality,
		AttributesHinted: hints,
		Detailed:         detailed,
		Vague:            vague,
		UnderPressure:    pressure,
		Standout:         quality >= standoutFloor,
	}
}

// selectSubject applies the two-pass involvement rule: focused players
// pass at 50%, unfocused at 20%; one of the passers is chosen uniformly;
// an empty pool falls back to the whole roster.
func selectSubject(players []Participant, src rng.Source) Participant {
	candidates := make([]Participant, 0, len(players))
	for _, p := range players {
		chance := unfocusedChance
		if p.Focused {
			chance = focusedChance
		}
		if src.Chance(chance) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return rng.Pick(src, players)
	}
	return rng.Pick(src, candidates)
}

func selectType(venue string, src rng.Source) Type {
	weights, ok := venueTypeWeights[venue]
	pool := make([]rng.Weighted[Type], 0, len(allTypes))
	for _, t := range allTypes {
		w := 1.0
		if ok {
			w = weights[t]
		}
		pool = append(pool, rng.Weighted[Type]{Item: t, Weight: w})
	}
	picked, _ := rng.WeightedPick(src, pool)
	return picked
}

// pressureChance ramps linearly across the session and adds the crowd
// boost, capping the result.
func pressureChance(phase, totalPhases int, crowd float64) float64 {
	progress := 0.0
	if totalPhases > 1 {
		progress = float64(phase) / float64(totalPhases-1)
	}
	p := pressureStart + (pressureEnd-pressureStart)*progress + crowd*pressureCrowd
	if p > pressureCap {
		return pressureCap
	}
	return p
}
