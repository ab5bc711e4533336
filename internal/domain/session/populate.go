package session

import (
	"github.com/okian/libero/internal/domain/atmosphere"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/moment"
	"github.com/okian/libero/internal/domain/rng"
)

// Free-form phase types. Some are position-gated to the session's shape:
// warmup opens, cooldown closes, the rest are weighted.
const (
	PhaseWarmup       = "warmup"
	PhaseOpenPlay     = "open_play"
	PhaseDrillBlock   = "drill_block"
	PhaseSmallSided   = "small_sided_game"
	PhaseSetPieceWork = "set_piece_rehearsal"
	PhaseCooldown     = "cooldown"
)

var freeformPhaseWeights = []rng.Weighted[string]{
	{Item: PhaseOpenPlay, Weight: 4},
	{Item: PhaseDrillBlock, Weight: 2},
	{Item: PhaseSmallSided, Weight: 2.5},
	{Item: PhaseSetPieceWork, Weight: 1.5},
}

var freeformPhaseDescriptions = map[string][]string{
	PhaseWarmup: {
		"Loose passing circles while bodies wake up; habits show before effort does.",
		"The warmup jog and stretch; already you can see who takes it seriously.",
		"Rondos to start; touch quality is obvious even at half intensity.",
	},
	PhaseOpenPlay: {
		"The game opens up and flows end to end.",
		"A stretch of unstructured play; decisions come faster than instructions.",
		"Both sides trade possession; the pitch tilts one way, then the other.",
	},
	PhaseDrillBlock: {
		"A repeated pattern drill; the same movement, over and over, under the coach's eye.",
		"Technical stations; short queues, quick reps, nowhere to hide a weak foot.",
		"Shape work at walking pace; understanding matters more than speed here.",
	},
	PhaseSmallSided: {
		"Four-a-side in a tight box; touches per minute triple.",
		"A small-sided game where the quick thinkers dominate.",
		"Tight-area play; pressure arrives instantly and never leaves.",
	},
	PhaseSetPieceWork: {
		"Dead-ball rehearsal; delivery after delivery onto the same spot.",
		"Set-piece routines walked through, then run at full speed.",
		"Corners and free kicks; timing of the runs is everything.",
	},
	PhaseCooldown: {
		"A winding-down stretch; concentration drops and true habits leak out.",
		"The session tails off; who keeps standards up when nobody demands it?",
		"Cool-down laps; conversations tell you as much as the football did.",
	},
}

// momentumWindow is how many trailing moments feed the running momentum.
const momentumWindow = 8

// Populate fills a free-form session: atmosphere, 12-18 phases, moments,
// transient events and momentum. Defensive idempotence: a session not in
// setup state, or with an empty roster, is returned unchanged. The input
// is never mutated; the populated session is a new value.
//
// Draw order: atmosphere (weather, description), phase count, phase start
// minutes, then per phase: type, description, transient-event roll,
// moments.
func Populate(s Session, src rng.Source) Session {
	if s.State != StateSetup || len(s.Players) == 0 {
		return s
	}

	out := s
	out.Atmosphere = atmosphere.Generate(s.Venue, src)
	out.Players = clonePlayers(s.Players)

	count := src.IntBetween(MinPhases, MaxPhases)
	starts := PhaseStartMinutes(count, src)
	participants := out.Participants()
	idx := out.playerIndex()

	phases := make([]Phase, 0, count)
	var recent []int // trailing moment qualities for momentum
	for i := 0; i < count; i++ {
		ptype := freeformPhaseType(i, count, src)
		desc := rng.Pick(src, freeformPhaseDescriptions[ptype])

		if ev, ok := atmosphere.GenerateEvent(out.Atmosphere, i, count, src); ok {
			out.Atmosphere = out.Atmosphere.WithEvent(ev)
		}

		moments := moment.GenerateMoments(participants, i, count, out.Atmosphere, src)
		for _, m := range moments {
			recent = append(recent, m.Quality)
			if pi, ok := idx[m.PlayerID]; ok && out.Players[pi].Focused {
				out.Players[pi].FocusedPhases = appendUnique(out.Players[pi].FocusedPhases, i)
			}
		}
		if len(recent) > momentumWindow {
			recent = recent[len(recent)-momentumWindow:]
		}

		phases = append(phases, Phase{
			Index:       i,
			StartMinute: starts[i],
			Type:        ptype,
			Description: desc,
			PlayerIDs:   momentPlayerIDs(moments),
			Moments:     moments,
			Observable:  observableAttributes(moments, out.Atmosphere),
			Momentum:    momentum(recent),
		})
	}

	out.Phases = phases
	out.State = StatePopulated
	return out
}

func freeformPhaseType(i, count int, src rng.Source) string {
	switch i {
	case 0:
		return PhaseWarmup
	case count - 1:
		return PhaseCooldown
	default:
		t, _ := rng.WeightedPick(src, freeformPhaseWeights)
		return t
	}
}

// momentPlayerIDs collects the distinct involved player ids in first-seen
// order.
func momentPlayerIDs(moments []moment.PlayerMoment) []string {
	seen := map[string]bool{}
	ids := make([]string, 0, len(moments))
	for _, m := range moments {
		if !seen[m.PlayerID] {
			seen[m.PlayerID] = true
			ids = append(ids, m.PlayerID)
		}
	}
	return ids
}

// observableAttributes is the union of the phase's hinted attributes plus
// whatever the atmosphere currently amplifies, minus what it dampens.
func observableAttributes(moments []moment.PlayerMoment, atmo atmosphere.Atmosphere) []model.Attribute {
	dampened := map[model.Attribute]bool{}
	for _, a := range atmo.Dampened {
		dampened[a] = true
	}
	seen := map[model.Attribute]bool{}
	var out []model.Attribute
	add := func(a model.Attribute) {
		if !seen[a] && !dampened[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	for _, m := range moments {
		for _, a := range m.AttributesHinted {
			add(a)
		}
	}
	for _, a := range atmo.Amplified {
		add(a)
	}
	return out
}

// momentum scales the mean of the trailing qualities (1-10) to 0-100.
func momentum(recent []int) float64 {
	if len(recent) == 0 {
		return 50
	}
	sum := 0
	for _, q := range recent {
		sum += q
	}
	return float64(sum) / float64(len(recent)) * 10
}

func appendUnique(xs []int, v int) []int {
	for _, x := range xs {
		if x == v {
			return xs
		}
	}
	return append(xs, v)
}

func clonePlayers(ps []Player) []Player {
	out := make([]Player, len(ps))
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
