// Package atmosphere generates the per-venue noise and amplification
// profile for one observation session, plus the transient events that
// accumulate over its phases.
package atmosphere

import (
	"math"

	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

// Weather is the fixed condition drawn once per session.
type Weather string

const (
	WeatherClear    Weather = "clear"
	WeatherOvercast Weather = "overcast"
	WeatherRain     Weather = "rain"
	WeatherWind     Weather = "wind"
	WeatherCold     Weather = "cold"
	WeatherHeat     Weather = "heat"
)

// weatherPool is the uniform draw set. Order is load-bearing for replay.
var weatherPool = []Weather{
	WeatherClear, WeatherOvercast, WeatherRain, WeatherWind, WeatherCold, WeatherHeat,
}

// Severity maps the weather onto the 0-1 noise contribution used by the
// match event quality model.
func (w Weather) Severity() float64 {
	switch w {
	case WeatherRain:
		return 0.8
	case WeatherWind:
		return 0.6
	case WeatherCold, WeatherHeat:
		return 0.4
	case WeatherOvercast:
		return 0.2
	default:
		return 0.0
	}
}

// EffectKind classifies a transient atmosphere event.
type EffectKind string

const (
	EffectAmplify     EffectKind = "amplify"
	EffectDampen      EffectKind = "dampen"
	EffectReveal      EffectKind = "reveal"
	EffectDistraction EffectKind = "distraction"
)

// Event is a transient, phase-scoped disturbance. Events are appended to
// the session's atmosphere and never removed; the cumulative noise
// multiplier is a pure fold over every event seen so far.
type Event struct {
	Kind        EffectKind        `json:"kind"`
	Description string            `json:"description"`
	Attributes  []model.Attribute `json:"attributes,omitempty"`
	NoiseDelta  float64           `json:"noise_delta"`
	Phase       int               `json:"phase"`
}

// Atmosphere is the static profile of one venue for one session, plus the
// accumulating event list.
type Atmosphere struct {
	Venue          string            `json:"venue"`
	Chaos          float64           `json:"chaos"` // 0-1
	Amplified      []model.Attribute `json:"amplified,omitempty"`
	Dampened       []model.Attribute `json:"dampened,omitempty"`
	Weather        Weather           `json:"weather"`
	CrowdIntensity float64           `json:"crowd_intensity"` // 0-1
	Description    string            `json:"description"`
	Events         []Event           `json:"events,omitempty"`
}

// profile is the fixed per-venue portion of an atmosphere.
type profile struct {
	chaos     float64
	crowd     float64
	amplified []model.Attribute
	dampened  []model.Attribute
	youth     bool
}

// Venue categories known to the generator. Unknown categories fall back
// to a neutral profile.
const (
	VenueYouthTournament = "youth_tournament"
	VenueTrainingSession = "training_session"
	VenueStreetGame      = "street_game"
	VenueTrialDay        = "trial_day"
	VenueAcademyShowcase = "academy_showcase"
	VenueStadium         = "stadium"
)

var venueProfiles = map[string]profile{
	VenueYouthTournament: {
		chaos: 0.55, crowd: 0.45, youth: true,
		amplified: []model.Attribute{model.AttrDetermination, model.AttrPace},
		dampened:  []model.Attribute{model.AttrPositioning, model.AttrComposure},
	},
	VenueTrainingSession: {
		chaos: 0.15, crowd: 0.1,
		amplified: []model.Attribute{model.AttrFirstTouch, model.AttrPassing},
		dampened:  []model.Attribute{model.AttrBigGameTemperament},
	},
	VenueStreetGame: {
		chaos: 0.8, crowd: 0.35, youth: true,
		amplified: []model.Attribute{model.AttrDribbling, model.AttrAgility},
		dampened:  []model.Attribute{model.AttrMarking, model.AttrTeamwork},
	},
	VenueTrialDay: {
		chaos: 0.3, crowd: 0.2,
		amplified: []model.Attribute{model.AttrWorkRate, model.AttrDetermination},
		dampened:  []model.Attribute{model.AttrConsistency},
	},
	VenueAcademyShowcase: {
		chaos: 0.4, crowd: 0.6, youth: true,
		amplified: []model.Attribute{model.AttrFinishing, model.AttrVision},
		dampened:  []model.Attribute{model.AttrConcentration},
	},
	VenueStadium: {
		chaos: 0.45, crowd: 0.85,
		amplified: []model.Attribute{model.AttrComposure, model.AttrBigGameTemperament},
		dampened:  []model.Attribute{},
	},
}

// neutralProfile backs unknown venue categories.
var neutralProfile = profile{chaos: 0.3, crowd: 0.5}

// venueDescriptions keys 3-5 narrative variants per category so repeated
// sessions at the same venue don't read identically.
var venueDescriptions = map[string][]string{
	VenueYouthTournament: {
		"Parents line the rope barrier three deep, shouting over each other.",
		"A cluster of pitches, whistles overlapping, nobody sure which game matters.",
		"The age-group banners sag in the wind; the talent doesn't care.",
		"Half the touchline is coaches with clipboards pretending not to watch each other.",
	},
	VenueTrainingSession: {
		"Cones, bibs, and the drone of a drill repeated until it's boring.",
		"A quiet morning session; every touch is audible.",
		"The coaching staff run patterns at half pace, fixing the same mistake twice.",
	},
	VenueStreetGame: {
		"Concrete pitch, chain-link fence, jumpers for one of the goals.",
		"No referee, no lines, and more invention per minute than a league game.",
		"The ball is half-flat, which only makes the good feet look better.",
		"Somebody's older brother keeps score out loud, not always accurately.",
	},
	VenueTrialDay: {
		"Forty hopefuls in borrowed bibs, each trying to do too much.",
		"The trial games rotate every twenty minutes; desperation shows early.",
		"Clipboard rows along the halfway line; everyone is auditioning.",
	},
	VenueAcademyShowcase: {
		"Polished pitch, polished players, polished parents in the stand.",
		"An academy open day tuned so the prospects look their best.",
		"The showcase game is staged, but you can't stage a first touch.",
	},
	VenueStadium: {
		"The stands fill slowly; by kick-off the noise is a physical thing.",
		"Floodlights on, pitch striped, everything a touch faster than it should be.",
		"A proper matchday; the tunnel tells you who's ready before the whistle.",
	},
}

var neutralDescriptions = []string{
	"An unremarkable ground; the football will have to speak for itself.",
	"Nothing about the setting helps or hinders; a blank page of a venue.",
	"A flat, quiet venue with no crowd to speak of.",
}

// Generate builds the session atmosphere for one venue category.
//
// Draw order: weather, then description. Callers relying on replay must
// not reorder these.
func Generate(venue string, src rng.Source) Atmosphere {
	p, known := venueProfiles[venue]
	if !known {
		p = neutralProfile
	}
	weather := rng.Pick(src, weatherPool)
	descs, ok := venueDescriptions[venue]
	if !ok {
		descs = neutralDescriptions
	}
	return Atmosphere{
		Venue:          venue,
		Chaos:          p.chaos,
		Amplified:      p.amplified,
		Dampened:       p.dampened,
		Weather:        weather,
		CrowdIntensity: p.crowd,
		Description:    rng.Pick(src, descs),
	}
}

// IsYouthVenue reports whether the category is a youth setting, which
// gates some transient events.
func IsYouthVenue(venue string) bool {
	return venueProfiles[venue].youth
}

// WithEvent returns a copy of a with e appended. The receiver is never
// mutated; the session is a value.
func (a Atmosphere) WithEvent(e Event) Atmosphere {
	events := make([]Event, 0, len(a.Events)+1)
	events = append(events, a.Events...)
	events = append(events, e)
	a.Events = events
	return a
}

// NoiseMultiplier folds chaos and every accumulated event delta into the
// session-wide noise multiplier, clamped to [0.5, 2.0].
func (a Atmosphere) NoiseMultiplier() float64 {
	m := 1.0 + a.Chaos*0.5
	for _, e := range a.Events {
		m += e.NoiseDelta
	}
	return math.Min(2.0, math.Max(0.5, m))
}
