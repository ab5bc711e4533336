package match

import (
	"math"

	"github.com/okian/libero/internal/domain/atmosphere"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
	"github.com/okian/libero/internal/domain/session"
)

// Quality noise and tactical nudge constants.
const (
	qualityNoiseBase    = 0.3
	qualityNoiseWeather = 1.5
	tacticalNudge       = 0.5
)

// momentumWindow mirrors the free-form generator: the trailing events
// that feed the running momentum score.
const momentumWindow = 8

// Simulate populates a live-match session from the fixture's two squads.
// Defensive idempotence: sessions not in setup state, or fixtures with an
// empty squad on either side, return the input unchanged. The input is
// never mutated.
//
// Draw order: atmosphere (weather, description), phase count, phase start
// minutes, then per phase: type, set-piece variant (set-piece phases
// only), description, transient-event roll, events (type, player,
// quality, injury roll each). The final score is sampled after all
// phases: home goals, away goals, then scorer and minute per goal.
func Simulate(s session.Session, home, away Team, src rng.Source) (session.Session, Result) {
	if s.State != session.StateSetup || len(home.Players) == 0 || len(away.Players) == 0 {
		return s, Result{}
	}

	out := s
	venue := s.Venue
	if venue == "" {
		venue = atmosphere.VenueStadium
		out.Venue = venue
	}
	out.Atmosphere = atmosphere.Generate(venue, src)
	out.Players = cloneSessionPlayers(s.Players)

	sim := &simulation{
		home: home, away: away,
		sidelined: map[string]bool{},
		focusIdx:  focusIndex(out.Players),
	}

	count := src.IntBetween(session.MinPhases, session.MaxPhases)
	starts := session.PhaseStartMinutes(count, src)
	phaseWeights := biasedPhaseWeights(home.Style, away.Style)

	phases := make([]session.Phase, 0, count)
	var recent []float64
	for i := 0; i < count; i++ {
		ptype, _ := rng.WeightedPick(src, phaseWeights)
		variant := ""
		if ptype == PhaseSetPiece {
			variant, _ = rng.WeightedPick(src, setPieceVariants)
		}
		desc := rng.Pick(src, phaseDescriptions[ptype])

		if ev, ok := atmosphere.GenerateEvent(out.Atmosphere, i, count, src); ok {
			out.Atmosphere = out.Atmosphere.WithEvent(ev)
		}

		events := sim.generateEvents(ptype, variant, starts[i], out.Atmosphere, src)
		for _, e := range events {
			recent = append(recent, e.Quality)
			sim.markFocus(out.Players, e.PlayerID, i)
		}
		if len(recent) > momentumWindow {
			recent = recent[len(recent)-momentumWindow:]
		}

		phases = append(phases, session.Phase{
			Index:           i,
			StartMinute:     starts[i],
			Type:            ptype,
			Description:     desc,
			PlayerIDs:       eventPlayerIDs(events),
			MatchEvents:     events,
			Observable:      eventAttributes(events),
			Momentum:        eventMomentum(recent),
			SetPieceVariant: variant,
		})
	}

	out.Phases = phases
	out.State = session.StatePopulated

	result := sampleResult(home, away, src)
	return out, result
}

// simulation carries the mutable bookkeeping of one run.
type simulation struct {
	home, away Team
	sidelined  map[string]bool // injured and substituted off
	focusIdx   map[string]int
}

// generateEvents emits the phase's discrete events, including any chained
// injury and substitution follow-ups.
func (sim *simulation) generateEvents(ptype, variant string, startMinute int, atmo atmosphere.Atmosphere, src rng.Source) []session.MatchEvent {
	weights := phaseEventWeights[ptype]
	count := src.IntBetween(minEventsPerPhase, maxEventsPerPhase)
	if variant != "" {
		weights = variantEventWeights[variant]
		if variant == VariantPenalty {
			count = 1
		}
	}

	events := make([]session.MatchEvent, 0, count)
	for j := 0; j < count; j++ {
		etype, ok := rng.WeightedPick(src, weights)
		if !ok {
			break
		}
		spec := eventSpecs[etype]
		player, isHome, found := sim.pickEligible(spec.eligible, src)
		if !found {
			continue
		}
		quality := sim.eventQuality(player, spec, ptype, isHome, atmo, src)
		minute := startMinute + j
		events = append(events, session.MatchEvent{
			Minute:     minute,
			Type:       etype,
			PlayerID:   player.ID,
			Quality:    quality,
			Attributes: spec.attrs,
			Commentary: commentaryFor(etype, src),
		})

		if spec.injuryProne && src.Chance(injuryChance) {
			events = append(events, sim.injuryChain(player, minute)...)
		}
	}
	return events
}

// injuryChain emits the synthetic injury event one minute later, chained
// to the substitution that takes the player off.
func (sim *simulation) injuryChain(player model.PlayerRecord, minute int) []session.MatchEvent {
	sim.sidelined[player.ID] = true
	return []session.MatchEvent{
		{
			Minute:     minute + 1,
			Type:       EventInjury,
			PlayerID:   player.ID,
			Attributes: []model.Attribute{model.AttrInjuryProneness},
			Commentary: "Goes down off the ball and signals to the bench immediately.",
		},
		{
			Minute:     minute + 1,
			Type:       EventSubstitution,
			PlayerID:   player.ID,
			Commentary: "Helped off and replaced; the reshuffle costs the shape a few minutes.",
		},
	}
}

// pickEligible selects a player by position compatibility across both
// squads, skipping anyone already sidelined. When the strict bucket is
// empty it widens to outfield, then to anyone, so phases stay populated
// even with odd squads.
func (sim *simulation) pickEligible(e eligibility, src rng.Source) (model.PlayerRecord, bool, bool) {
	for _, bucket := range []eligibility{e, eligibleOutfield, eligibleAny} {
		var pool []model.PlayerRecord
		var homeFlags []bool
		for _, p := range sim.home.Players {
			if !sim.sidelined[p.ID] && positionEligible(p.Position, bucket) {
				pool = append(pool, p)
				homeFlags = append(homeFlags, true)
			}
		}
		for _, p := range sim.away.Players {
			if !sim.sidelined[p.ID] && positionEligible(p.Position, bucket) {
				pool = append(pool, p)
				homeFlags = append(homeFlags, false)
			}
		}
		if len(pool) == 0 {
			continue
		}
		i := src.IntBetween(0, len(pool)-1)
		return pool[i], homeFlags[i], true
	}
	return model.PlayerRecord{}, false, false
}

// eventQuality draws a Gaussian around the mean of the revealed
// attributes scaled to 0-10, with noise proportional to weather severity
// and a nudge when the player's side's style suits the phase.
func (sim *simulation) eventQuality(player model.PlayerRecord, spec eventSpec, ptype string, isHome bool, atmo atmosphere.Atmosphere, src rng.Source) float64 {
	mean := player.AverageAttr(spec.attrs) / 2 // 1-20 scale onto 0-10
	stddev := qualityNoiseBase + atmo.Weather.Severity()*qualityNoiseWeather
	q := src.Gaussian(mean, stddev)

	style := sim.away.Style
	if isHome {
		style = sim.home.Style
	}
	if style != "" && stylePhaseBias[style][ptype] > 0 {
		q += tacticalNudge
	}
	return math.Min(10, math.Max(0, math.Round(q*10)/10))
}

func (sim *simulation) markFocus(players []session.Player, playerID string, phase int) {
	i, ok := sim.focusIdx[playerID]
	if !ok || !players[i].Focused {
		return
	}
	for _, existing := range players[i].FocusedPhases {
		if existing == phase {
			return
		}
	}
	players[i].FocusedPhases = append(players[i].FocusedPhases, phase)
}

// biasedPhaseWeights folds both sides' style bias into the base pool.
func biasedPhaseWeights(homeStyle, awayStyle model.PlayStyle) []rng.Weighted[string] {
	out := make([]rng.Weighted[string], 0, len(phaseOrder))
	for _, pt := range phaseOrder {
		w := basePhaseWeights[pt]
		w += stylePhaseBias[homeStyle][pt]
		w += stylePhaseBias[awayStyle][pt]
		out = append(out, rng.Weighted[string]{Item: pt, Weight: w})
	}
	return out
}

func eventPlayerIDs(events []session.MatchEvent) []string {
	seen := map[string]bool{}
	var ids []string
	for _, e := range events {
		if !seen[e.PlayerID] {
			seen[e.PlayerID] = true
			ids = append(ids, e.PlayerID)
		}
	}
	return ids
}

func eventAttributes(events []session.MatchEvent) []model.Attribute {
	seen := map[model.Attribute]bool{}
	var attrs []model.Attribute
	for _, e := range events {
		for _, a := range e.Attributes {
			if !seen[a] {
				seen[a] = true
				attrs = append(attrs, a)
			}
		}
	}
	return attrs
}

func eventMomentum(recent []float64) float64 {
	if len(recent) == 0 {
		return 50
	}
	sum := 0.0
	for _, q := range recent {
		sum += q
	}
	return sum / float64(len(recent)) * 10
}

func focusIndex(players []session.Player) map[string]int {
	idx := make(map[string]int, len(players))
	for i, p := range players {
		idx[p.PlayerID] = i
	}
	return idx
}

func cloneSessionPlayers(ps []session.Player) []session.Player {
	out := make([]session.Player, len(ps))
	copy(out, ps)
	for i := range out {
		if len(out[i].FocusedPhases) > 0 {
			fp := make([]int, len(out[i].FocusedPhases))
			copy(fp, out[i].FocusedPhases)
			out[i].FocusedPhases = fp
		}
	}
	return out
}
