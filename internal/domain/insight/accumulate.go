package insight

import (
	"math"

	"github.com/okian/libero/internal/domain/model"
)

// Source identifies the kind of completed work that earns Insight.
type Source string

const (
	SourceVenueObservation   Source = "venue_observation"
	SourceMatchObservation   Source = "match_observation"
	SourceReportFiled        Source = "report_filed"
	SourceTechnicalDrill     Source = "technical_drill"
	SourceCharacterInterview Source = "character_interview"
	SourceTacticalReview     Source = "tactical_review"
	SourceNetworkCall        Source = "network_call"
	SourceTrialDay           Source = "trial_day"
)

// QualityTier grades how well the work went. Poor work earns nothing
// regardless of the scout's gifts.
type QualityTier string

const (
	TierPoor        QualityTier = "poor"
	TierSolid       QualityTier = "solid"
	TierImpressive  QualityTier = "impressive"
	TierExceptional QualityTier = "exceptional"
)

var tierMultipliers = map[QualityTier]float64{
	TierPoor:        0,
	TierSolid:       1,
	TierImpressive:  1.5,
	TierExceptional: 2,
}

type sourceSpec struct {
	base   int
	domain model.Specialization // SpecNone marks a universal source
}

var sources = map[Source]sourceSpec{
	SourceVenueObservation:   {base: 2, domain: model.SpecNone},
	SourceMatchObservation:   {base: 3, domain: model.SpecNone},
	SourceReportFiled:        {base: 2, domain: model.SpecNone},
	SourceTrialDay:           {base: 2, domain: model.SpecNone},
	SourceTechnicalDrill:     {base: 2, domain: model.SpecTechnical},
	SourceCharacterInterview: {base: 3, domain: model.SpecCharacter},
	SourceTacticalReview:     {base: 3, domain: model.SpecTactical},
	SourceNetworkCall:        {base: 2, domain: model.SpecNetwork},
}

const (
	specializationBonus = 1
	perkEarnBonus       = 1
	intuitionDivisor    = 5
)

// CalculateAccumulation computes the Insight earned for one completed
// piece of work:
//
//	floor(base * tierMultiplier) + specializationBonus + floor(intuition/5) + perkBonus
//
// A poor tier zeroes the whole award: low-effort work never earns
// Insight, whatever the scout's intuition. Unknown sources and unknown
// tiers earn nothing.
func (e *Economy) CalculateAccumulation(src Source, tier QualityTier, scout model.ScoutProfile) int {
	spec, ok := sources[src]
	if !ok {
		return 0
	}
	mult, ok := tierMultipliers[tier]
	if !ok || mult == 0 {
		return 0
	}
	total := int(math.Floor(float64(spec.base) * mult))
	// Universal sources reward any scout; specialized sources reward
	// only their own domain.
	if spec.domain == model.SpecNone || spec.domain == scout.Specialization {
		total += specializationBonus
	}
	total += scout.Intuition / intuitionDivisor
	if scout.HasPerk(model.PerkKeenSenses) {
		total += perkEarnBonus
	}
	return total
}
