package insight

import (
	"sort"

	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

const (
	marketPicksMin        = 3
	marketPicksMax        = 5
	marketPicksFizzledMin = 1
	marketPicksFizzledMax = 2
)

// blindSpotScore is normalized potential minus normalized market value,
// both scaled against the pool's own maxima. A positive score means the
// market prices the player below their ceiling.
func blindSpotScore(p model.PlayerRecord, maxPotential, maxValue float64) float64 {
	potential := 0.0
	if maxPotential > 0 {
		potential = float64(p.PotentialAbility) / maxPotential
	}
	value := 0.0
	if maxValue > 0 {
		value = p.MarketValue / maxValue
	}
	return potential - value
}

// marketBlindSpot scans the market pool for players priced below their
// potential. A uniformly-priced pool yields nothing and wastes the
// spend. Draws: one IntBetween for the result count.
func (e *Economy) marketBlindSpot(res *Result, ctx ActionContext, fizzled bool, src rng.Source) {
	if len(ctx.Pool) == 0 {
		return
	}
	maxPotential, maxValue := 0.0, 0.0
	for _, p := range ctx.Pool {
		if float64(p.PotentialAbility) > maxPotential {
			maxPotential = float64(p.PotentialAbility)
		}
		if p.MarketValue > maxValue {
			maxValue = p.MarketValue
		}
	}

	scored := make([]UndervaluedPlayer, 0, len(ctx.Pool))
	for _, p := range ctx.Pool {
		if s := blindSpotScore(p, maxPotential, maxValue); s > 0 {
			scored = append(scored, UndervaluedPlayer{PlayerID: p.ID, Score: s})
		}
	}
	if len(scored) == 0 {
		return
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].PlayerID < scored[j].PlayerID
	})

	lo, hi := marketPicksMin, marketPicksMax
	if fizzled {
		lo, hi = marketPicksFizzledMin, marketPicksFizzledMax
	}
	keep := src.IntBetween(lo, hi)
	if len(scored) > keep {
		scored = scored[:keep]
	}
	res.Success = true
	res.Market = &MarketPayload{Undervalued: scored}
}
