package insight

import (
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
	"github.com/okian/libero/internal/domain/session"
)

// ActionContext carries everything an action handler may read. Handlers
// never mutate it; ground-truth records stay owned by the caller.
type ActionContext struct {
	Scout          model.ScoutProfile
	Mode           model.ObservationMode
	Session        *session.Session
	TargetPlayerID string
	Players        map[string]model.PlayerRecord
	Contacts       []model.Contact
	Pool           []model.PlayerRecord
}

// AttributeReveal is one ground-truth attribute value surfaced to the
// scout, bypassing the noise model entirely.
type AttributeReveal struct {
	Attribute model.Attribute `json:"attribute"`
	Value     int             `json:"value"`
}

// RevealPayload is the result of a truth-revealing action.
type RevealPayload struct {
	PlayerID   string            `json:"player_id"`
	Attributes []AttributeReveal `json:"attributes"`
}

// PotentialTier classifies a discovered player's ceiling.
type PotentialTier string

const (
	TierGenerational PotentialTier = "generational"
	TierWorldClass   PotentialTier = "world_class"
	TierQualityPro   PotentialTier = "quality_pro"
	TierJourneyman   PotentialTier = "journeyman"
)

// DiscoveryPayload is the result of a potential-scanning action. A
// fizzle blanks the exact potential and leaves only the tier.
type DiscoveryPayload struct {
	PlayerID  string        `json:"player_id"`
	Tier      PotentialTier `json:"tier"`
	Potential int           `json:"potential,omitempty"`
}

// ReportBonusPayload carries the quality bonus applied to the scout's
// next filed report.
type ReportBonusPayload struct {
	Bonus int `json:"bonus"`
}

// PositionFit grades one position on a 0-100 scale.
type PositionFit struct {
	Position model.Position `json:"position"`
	Score    int            `json:"score"`
}

// FitPayload is the result of positional-fit grading, best first.
type FitPayload struct {
	PlayerID string        `json:"player_id"`
	Grades   []PositionFit `json:"grades"`
}

// ContactIntel is one piece of information shaken loose from the
// scout's network.
type ContactIntel struct {
	ContactID string `json:"contact_id"`
	Kind      string `json:"kind"`
	PlayerID  string `json:"player_id,omitempty"`
	Message   string `json:"message"`
}

// NetworkPayload is the result of polling the contact network.
type NetworkPayload struct {
	Intel []ContactIntel `json:"intel"`
}

// UndervaluedPlayer is one market inefficiency, scored by how far the
// player's potential outruns their price.
type UndervaluedPlayer struct {
	PlayerID string  `json:"player_id"`
	Score    float64 `json:"score"`
}

// MarketPayload is the result of a market scan.
type MarketPayload struct {
	Undervalued []UndervaluedPlayer `json:"undervalued"`
}

// Result is the outcome of executing an action. Exactly one payload
// pointer is set on success, matching the action's category; a soft
// failure (Success false) sets none. Fizzled spends still succeed with
// a reduced payload.
type Result struct {
	ActionID    string              `json:"action_id"`
	Success     bool                `json:"success"`
	Fizzled     bool                `json:"fizzled"`
	Narrative   string              `json:"narrative"`
	Reveal      *RevealPayload      `json:"reveal,omitempty"`
	Discovery   *DiscoveryPayload   `json:"discovery,omitempty"`
	ReportBonus *ReportBonusPayload `json:"report_bonus,omitempty"`
	Fit         *FitPayload         `json:"fit,omitempty"`
	Network     *NetworkPayload     `json:"network,omitempty"`
	Market      *MarketPayload      `json:"market,omitempty"`
}

// Execute runs the handler for an already-paid action. Per handler the
// draw order is fixed: payload draws first, then the single narrative
// draw, so replays reproduce results exactly.
func (e *Economy) Execute(a Action, ctx ActionContext, fizzled bool, src rng.Source) (Result, error) {
	if a.NeedsTarget {
		if _, ok := ctx.Players[ctx.TargetPlayerID]; !ok {
			return Result{}, ErrNoTarget
		}
	}
	res := Result{ActionID: a.ID, Fizzled: fizzled}
	switch a.ID {
	case ActionClarityOfVision:
		e.clarityOfVision(&res, ctx, fizzled, src)
	case ActionSecondLook:
		e.secondLook(&res, ctx, fizzled, src)
	case ActionDiamondInTheRough:
		e.diamondInTheRough(&res, ctx, fizzled, src)
	case ActionFlawlessRecall:
		e.flawlessRecall(&res, fizzled)
	case ActionTouchTest:
		e.touchTest(&res, ctx, fizzled, src)
	case ActionGenerationalWhisper:
		e.generationalWhisper(&res, ctx, fizzled, src)
	case ActionHiddenNature:
		e.hiddenNature(&res, ctx, fizzled, src)
	case ActionPressureTest:
		e.pressureTest(&res, ctx, fizzled, src)
	case ActionPatternRecognition:
		e.patternRecognition(&res, ctx, fizzled, src)
	case ActionPerfectFit:
		e.perfectFit(&res, ctx, fizzled, src)
	case ActionNetworkPulse:
		e.networkPulse(&res, ctx, fizzled, src)
	case ActionMarketBlindSpot:
		e.marketBlindSpot(&res, ctx, fizzled, src)
	default:
		return Result{}, ErrUnknownAction
	}
	res.Narrative = narrativeFor(a.ID, ctx.Scout.Specialization, res.Success, src)
	return res, nil
}

// sessionRecords resolves the session roster against the ground-truth
// registry, preserving session order. Players with no record are
// skipped.
func sessionRecords(ctx ActionContext) []model.PlayerRecord {
	if ctx.Session == nil {
		return nil
	}
	out := make([]model.PlayerRecord, 0, len(ctx.Session.Players))
	for _, p := range ctx.Session.Players {
		if rec, ok := ctx.Players[p.PlayerID]; ok {
			out = append(out, rec)
		}
	}
	return out
}
