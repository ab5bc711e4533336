package insight

import (
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

// Potential tier cutoffs on the 0-200 ability scale.
const (
	tierGenerationalFloor = 180
	tierWorldClassFloor   = 150
	tierQualityProFloor   = 100
	whisperAgeCeiling     = 21
)

func potentialTier(potential int) PotentialTier {
	switch {
	case potential >= tierGenerationalFloor:
		return TierGenerational
	case potential >= tierWorldClassFloor:
		return TierWorldClass
	case potential >= tierQualityProFloor:
		return TierQualityPro
	default:
		return TierJourneyman
	}
}

// bestPotential scans records in order and keeps the first maximum, so
// ties resolve deterministically by session order.
func bestPotential(records []model.PlayerRecord, eligible func(model.PlayerRecord) bool) (model.PlayerRecord, bool) {
	var best model.PlayerRecord
	found := false
	for _, rec := range records {
		if eligible != nil && !eligible(rec) {
			continue
		}
		if !found || rec.PotentialAbility > best.PotentialAbility {
			best = rec
			found = true
		}
	}
	return best, found
}

func discoveryResult(res *Result, rec model.PlayerRecord, fizzled bool) {
	res.Success = true
	res.Discovery = &DiscoveryPayload{
		PlayerID: rec.ID,
		Tier:     potentialTier(rec.PotentialAbility),
	}
	// A fizzle blurs the reading to the tier alone.
	if !fizzled {
		res.Discovery.Potential = rec.PotentialAbility
	}
}

// diamondInTheRough scans every player present and names the one with
// the highest potential. An empty session wastes the spend. No draws.
func (e *Economy) diamondInTheRough(res *Result, ctx ActionContext, fizzled bool, _ rng.Source) {
	rec, ok := bestPotential(sessionRecords(ctx), nil)
	if !ok {
		return
	}
	discoveryResult(res, rec, fizzled)
}

// generationalWhisper is the youth-only variant: it only hears players
// aged 21 and under.
func (e *Economy) generationalWhisper(res *Result, ctx ActionContext, fizzled bool, _ rng.Source) {
	rec, ok := bestPotential(sessionRecords(ctx), func(r model.PlayerRecord) bool {
		return r.Age <= whisperAgeCeiling
	})
	if !ok {
		return
	}
	discoveryResult(res, rec, fizzled)
}
