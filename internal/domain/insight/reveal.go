package insight

import (
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

// Reveal sizes. A fizzle drops to the reduced count but never to zero:
// a fizzled reveal is a worse reveal, not a refusal.
const (
	clarityReveals        = 4
	clarityRevealsFizzled = 2
	secondLookReveals     = 3
	secondLookFizzled     = 2
	partialProfileReveals = 3
	hiddenReveals         = 2
	recallBonus           = 2
	recallBonusFizzled    = 1
)

func observableAttributes() []model.Attribute {
	var out []model.Attribute
	for _, g := range []model.AttributeGroup{
		model.GroupTechnical, model.GroupPhysical, model.GroupMental, model.GroupTactical,
	} {
		out = append(out, model.GroupAttributes(g)...)
	}
	return out
}

func revealFrom(p model.PlayerRecord, attrs []model.Attribute) *RevealPayload {
	out := &RevealPayload{PlayerID: p.ID, Attributes: make([]AttributeReveal, 0, len(attrs))}
	for _, a := range attrs {
		out.Attributes = append(out.Attributes, AttributeReveal{Attribute: a, Value: p.Attr(a)})
	}
	return out
}

// clarityOfVision reveals a random slice of the target's observable
// profile. Draws: one Sample over the observable attribute list.
func (e *Economy) clarityOfVision(res *Result, ctx ActionContext, fizzled bool, src rng.Source) {
	target := ctx.Players[ctx.TargetPlayerID]
	n := clarityReveals
	if fizzled {
		n = clarityRevealsFizzled
	}
	attrs := rng.Sample(src, observableAttributes(), n)
	res.Success = true
	res.Reveal = revealFrom(target, attrs)
}

// secondLook revisits a player the scout was not focusing on. The spend
// is wasted when no unfocused player produced a single moment; that
// no-op is deliberate, the action gambles on peripheral vision. Draws:
// one Pick over eligible players, then one Sample over their hinted
// attributes.
func (e *Economy) secondLook(res *Result, ctx ActionContext, fizzled bool, src rng.Source) {
	if ctx.Session == nil {
		return
	}
	hinted := map[string][]model.Attribute{}
	for _, ph := range ctx.Session.Phases {
		for _, m := range ph.Moments {
			hinted[m.PlayerID] = appendNewAttrs(hinted[m.PlayerID], m.AttributesHinted)
		}
	}
	var eligible []string
	for _, p := range ctx.Session.Players {
		if !p.Focused && len(hinted[p.PlayerID]) > 0 {
			if _, ok := ctx.Players[p.PlayerID]; ok {
				eligible = append(eligible, p.PlayerID)
			}
		}
	}
	if len(eligible) == 0 {
		return
	}
	id := rng.Pick(src, eligible)
	n := secondLookReveals
	if fizzled {
		n = secondLookFizzled
	}
	attrs := rng.Sample(src, hinted[id], n)
	res.Success = true
	res.Reveal = revealFrom(ctx.Players[id], attrs)
}

// touchTest reads the full technical group; a fizzle reads a random
// partial slice of it.
func (e *Economy) touchTest(res *Result, ctx ActionContext, fizzled bool, src rng.Source) {
	e.groupReveal(res, ctx, model.GroupAttributes(model.GroupTechnical), fizzled, partialProfileReveals, src)
}

// hiddenNature reads the hidden group, the attributes no observation
// can ever surface.
func (e *Economy) hiddenNature(res *Result, ctx ActionContext, fizzled bool, src rng.Source) {
	e.groupReveal(res, ctx, model.GroupAttributes(model.GroupHidden), fizzled, hiddenReveals, src)
}

// pressureTest reads the mental group plus big-game temperament, the
// profile that only shows under real stakes.
func (e *Economy) pressureTest(res *Result, ctx ActionContext, fizzled bool, src rng.Source) {
	attrs := append([]model.Attribute{}, model.GroupAttributes(model.GroupMental)...)
	attrs = append(attrs, model.AttrBigGameTemperament)
	e.groupReveal(res, ctx, attrs, fizzled, partialProfileReveals, src)
}

// patternRecognition reads the tactical group.
func (e *Economy) patternRecognition(res *Result, ctx ActionContext, fizzled bool, src rng.Source) {
	e.groupReveal(res, ctx, model.GroupAttributes(model.GroupTactical), fizzled, partialProfileReveals, src)
}

func (e *Economy) groupReveal(res *Result, ctx ActionContext, attrs []model.Attribute, fizzled bool, fizzleCount int, src rng.Source) {
	target := ctx.Players[ctx.TargetPlayerID]
	if fizzled {
		attrs = rng.Sample(src, attrs, fizzleCount)
	}
	res.Success = true
	res.Reveal = revealFrom(target, attrs)
}

// flawlessRecall banks a bonus for the scout's next filed report. No
// draws.
func (e *Economy) flawlessRecall(res *Result, fizzled bool) {
	bonus := recallBonus
	if fizzled {
		bonus = recallBonusFizzled
	}
	res.Success = true
	res.ReportBonus = &ReportBonusPayload{Bonus: bonus}
}

func appendNewAttrs(dst []model.Attribute, add []model.Attribute) []model.Attribute {
	for _, a := range add {
		seen := false
		for _, have := range dst {
			if have == a {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, a)
		}
	}
	return dst
}
