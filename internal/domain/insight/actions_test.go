package insight

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/moment"
	"github.com/okian/libero/internal/domain/rng"
	"github.com/okian/libero/internal/domain/session"
)

func truthPlayer(id string, pos model.Position, age, potential int, value float64, attrs map[model.Attribute]int) model.PlayerRecord {
	return model.PlayerRecord{
		ID:               id,
		Name:             "P " + id,
		Age:              age,
		Position:         pos,
		CurrentAbility:   potential - 20,
		PotentialAbility: potential,
		MarketValue:      value,
		Attributes:       attrs,
	}
}

func revealCtx(target model.PlayerRecord) ActionContext {
	return ActionContext{
		Scout:          testScout(model.SpecNone, 10, 0),
		Mode:           model.ModeVenue,
		TargetPlayerID: target.ID,
		Players:        map[string]model.PlayerRecord{target.ID: target},
	}
}

func attrsOf(p *RevealPayload) map[model.Attribute]int {
	out := map[model.Attribute]int{}
	for _, r := range p.Attributes {
		out[r.Attribute] = r.Value
	}
	return out
}

func TestRevealActions(t *testing.T) {
	Convey("Given a target with a known truth record", t, func() {
		e := NewEconomy()
		target := truthPlayer("p1", model.PosStriker, 24, 140, 2.5, map[model.Attribute]int{
			model.AttrFinishing:          17,
			model.AttrPassing:            9,
			model.AttrBigGameTemperament: 16,
			model.AttrConsistency:        6,
		})
		ctx := revealCtx(target)
		src := rng.NewSeeded(7)

		Convey("Clarity of vision reveals four true observable values", func() {
			a, _ := Lookup(ActionClarityOfVision)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(res.Reveal, ShouldNotBeNil)
			So(len(res.Reveal.Attributes), ShouldEqual, 4)
			for _, r := range res.Reveal.Attributes {
				So(r.Value, ShouldEqual, target.Attr(r.Attribute))
			}
		})

		Convey("A fizzled clarity reveals half as many", func() {
			a, _ := Lookup(ActionClarityOfVision)
			res, err := e.Execute(a, ctx, true, src)
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(res.Fizzled, ShouldBeTrue)
			So(len(res.Reveal.Attributes), ShouldEqual, 2)
		})

		Convey("Touch test reads the full technical group", func() {
			a, _ := Lookup(ActionTouchTest)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			got := attrsOf(res.Reveal)
			So(len(got), ShouldEqual, 6)
			So(got[model.AttrFinishing], ShouldEqual, 17)
			So(got[model.AttrPassing], ShouldEqual, 9)
		})

		Convey("Hidden nature reads attributes no observation surfaces", func() {
			a, _ := Lookup(ActionHiddenNature)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			got := attrsOf(res.Reveal)
			So(len(got), ShouldEqual, 4)
			So(got[model.AttrBigGameTemperament], ShouldEqual, 16)
			So(got[model.AttrConsistency], ShouldEqual, 6)
		})

		Convey("Pressure test reads the mental group plus temperament", func() {
			a, _ := Lookup(ActionPressureTest)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			got := attrsOf(res.Reveal)
			So(len(got), ShouldEqual, 6)
			_, hasTemperament := got[model.AttrBigGameTemperament]
			So(hasTemperament, ShouldBeTrue)
		})

		Convey("Pattern recognition reads the tactical group", func() {
			a, _ := Lookup(ActionPatternRecognition)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			So(len(res.Reveal.Attributes), ShouldEqual, 5)
		})

		Convey("A missing target fails loudly", func() {
			a, _ := Lookup(ActionTouchTest)
			broken := ctx
			broken.TargetPlayerID = "nobody"
			_, err := e.Execute(a, broken, false, src)
			So(err, ShouldEqual, ErrNoTarget)
		})

		Convey("Execution is deterministic for a given seed", func() {
			a, _ := Lookup(ActionClarityOfVision)
			r1, err1 := e.Execute(a, ctx, false, rng.NewSeeded(99))
			r2, err2 := e.Execute(a, ctx, false, rng.NewSeeded(99))
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(r1, ShouldResemble, r2)
		})
	})
}

func TestSecondLook(t *testing.T) {
	Convey("Given a session with focused and unfocused players", t, func() {
		e := NewEconomy()
		focused := truthPlayer("f1", model.PosCentreMid, 22, 120, 1.0, map[model.Attribute]int{model.AttrPassing: 14})
		peripheral := truthPlayer("u1", model.PosWinger, 19, 150, 0.5, map[model.Attribute]int{
			model.AttrPace:      16,
			model.AttrDribbling: 15,
		})
		sess := session.Session{
			State: session.StateComplete,
			Players: []session.Player{
				{PlayerID: "f1", Focused: true},
				{PlayerID: "u1"},
			},
			Phases: []session.Phase{
				{Moments: []moment.PlayerMoment{
					{PlayerID: "f1", AttributesHinted: []model.Attribute{model.AttrPassing}},
					{PlayerID: "u1", AttributesHinted: []model.Attribute{model.AttrPace, model.AttrDribbling}},
				}},
			},
		}
		ctx := ActionContext{
			Scout:   testScout(model.SpecNone, 10, 0),
			Mode:    model.ModeVenue,
			Session: &sess,
			Players: map[string]model.PlayerRecord{"f1": focused, "u1": peripheral},
		}
		a, _ := Lookup(ActionSecondLook)

		Convey("It reveals true values for the unfocused player's hints", func() {
			res, err := e.Execute(a, ctx, false, rng.NewSeeded(3))
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(res.Reveal.PlayerID, ShouldEqual, "u1")
			for _, r := range res.Reveal.Attributes {
				So(r.Attribute, ShouldBeIn, model.AttrPace, model.AttrDribbling)
				So(r.Value, ShouldEqual, peripheral.Attr(r.Attribute))
			}
		})

		Convey("It is wasted when no unfocused player showed anything", func() {
			sess.Phases[0].Moments = sess.Phases[0].Moments[:1]
			res, err := e.Execute(a, ctx, false, rng.NewSeeded(3))
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeFalse)
			So(res.Reveal, ShouldBeNil)
			So(res.Narrative, ShouldNotBeEmpty)
		})

		Convey("It is wasted without a session", func() {
			ctx.Session = nil
			res, err := e.Execute(a, ctx, false, rng.NewSeeded(3))
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeFalse)
		})
	})
}

func TestDiscoveryActions(t *testing.T) {
	Convey("Given a session roster with mixed potential", t, func() {
		e := NewEconomy()
		veteran := truthPlayer("v1", model.PosCentreBack, 29, 155, 8.0, nil)
		prospect := truthPlayer("y1", model.PosAttackingMid, 17, 185, 0.2, nil)
		journeyman := truthPlayer("j1", model.PosFullBack, 26, 95, 0.8, nil)
		sess := session.Session{
			State: session.StateComplete,
			Players: []session.Player{
				{PlayerID: "v1"}, {PlayerID: "y1"}, {PlayerID: "j1"},
			},
		}
		ctx := ActionContext{
			Scout:   testScout(model.SpecTechnical, 10, 0),
			Mode:    model.ModeVenue,
			Session: &sess,
			Players: map[string]model.PlayerRecord{"v1": veteran, "y1": prospect, "j1": journeyman},
		}
		src := rng.NewSeeded(5)

		Convey("Diamond in the rough names the highest ceiling present", func() {
			a, _ := Lookup(ActionDiamondInTheRough)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(res.Discovery.PlayerID, ShouldEqual, "y1")
			So(res.Discovery.Tier, ShouldEqual, TierGenerational)
			So(res.Discovery.Potential, ShouldEqual, 185)
		})

		Convey("A fizzle blurs the reading to the tier alone", func() {
			a, _ := Lookup(ActionDiamondInTheRough)
			res, err := e.Execute(a, ctx, true, src)
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(res.Discovery.Tier, ShouldEqual, TierGenerational)
			So(res.Discovery.Potential, ShouldEqual, 0)
		})

		Convey("An empty session wastes the spend", func() {
			a, _ := Lookup(ActionDiamondInTheRough)
			empty := ctx
			empty.Session = &session.Session{State: session.StateComplete}
			res, err := e.Execute(a, empty, false, src)
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeFalse)
			So(res.Discovery, ShouldBeNil)
		})

		Convey("Generational whisper only hears the young", func() {
			a, _ := Lookup(ActionGenerationalWhisper)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(res.Discovery.PlayerID, ShouldEqual, "y1")

			Convey("And stays silent when only veterans are present", func() {
				old := ctx
				old.Session = &session.Session{
					State:   session.StateComplete,
					Players: []session.Player{{PlayerID: "v1"}},
				}
				res2, err2 := e.Execute(a, old, false, src)
				So(err2, ShouldBeNil)
				So(res2.Success, ShouldBeFalse)
			})
		})

		Convey("Tier cutoffs follow the ability scale", func() {
			So(potentialTier(200), ShouldEqual, TierGenerational)
			So(potentialTier(180), ShouldEqual, TierGenerational)
			So(potentialTier(179), ShouldEqual, TierWorldClass)
			So(potentialTier(150), ShouldEqual, TierWorldClass)
			So(potentialTier(100), ShouldEqual, TierQualityPro)
			So(potentialTier(99), ShouldEqual, TierJourneyman)
		})
	})
}

func TestFitAndRecall(t *testing.T) {
	Convey("Given a prolific striker", t, func() {
		e := NewEconomy()
		striker := truthPlayer("s1", model.PosStriker, 23, 150, 5.0, map[model.Attribute]int{
			model.AttrFinishing:  19,
			model.AttrOffTheBall: 17,
			model.AttrComposure:  16,
			model.AttrFirstTouch: 16,
			model.AttrTackling:   4,
			model.AttrMarking:    3,
		})
		ctx := revealCtx(striker)
		src := rng.NewSeeded(11)

		Convey("Perfect fit grades positions best first", func() {
			a, _ := Lookup(ActionPerfectFit)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(len(res.Fit.Grades), ShouldEqual, 5)
			So(res.Fit.Grades[0].Position, ShouldEqual, model.PosStriker)
			for i := 1; i < len(res.Fit.Grades); i++ {
				So(res.Fit.Grades[i-1].Score, ShouldBeGreaterThanOrEqualTo, res.Fit.Grades[i].Score)
			}
			for _, g := range res.Fit.Grades {
				So(g.Score, ShouldBeBetweenOrEqual, 0, 100)
			}
		})

		Convey("A fizzle grades fewer positions", func() {
			a, _ := Lookup(ActionPerfectFit)
			res, err := e.Execute(a, ctx, true, src)
			So(err, ShouldBeNil)
			So(len(res.Fit.Grades), ShouldEqual, 2)
		})

		Convey("Unknown positions score a neutral fifty", func() {
			So(FitScore(striker, model.Position("LIBERO")), ShouldEqual, 50)
		})

		Convey("Flawless recall banks a report bonus", func() {
			a, _ := Lookup(ActionFlawlessRecall)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			So(res.ReportBonus.Bonus, ShouldEqual, 2)

			fizzled, err2 := e.Execute(a, ctx, true, src)
			So(err2, ShouldBeNil)
			So(fizzled.ReportBonus.Bonus, ShouldEqual, 1)
		})
	})
}

func TestNetworkActions(t *testing.T) {
	Convey("Given a network scout with ranked contacts", t, func() {
		e := NewEconomy()
		ctx := ActionContext{
			Scout: testScout(model.SpecNetwork, 10, 0),
			Mode:  model.ModeDesk,
			Contacts: []model.Contact{
				{ID: "c-low", Name: "L", Reliability: 0.2, KnownPlayers: []string{"p9"}},
				{ID: "c-high", Name: "H", Reliability: 0.9, KnownPlayers: []string{"p1", "p2"}},
				{ID: "c-mid", Name: "M", Reliability: 0.5, KnownPlayers: []string{"p5"}},
				{ID: "c-mute", Name: "Q", Reliability: 0.8},
				{ID: "c-extra", Name: "E", Reliability: 0.1, KnownPlayers: []string{"p7"}},
			},
		}
		src := rng.NewSeeded(13)

		Convey("Network pulse polls the most reliable contacts first", func() {
			a, _ := Lookup(ActionNetworkPulse)
			res, err := e.Execute(a, ctx, false, src)
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(len(res.Network.Intel), ShouldEqual, 4)
			So(res.Network.Intel[0].ContactID, ShouldEqual, "c-high")
			So(res.Network.Intel[0].Kind, ShouldEqual, "recommendation")
			So(res.Network.Intel[0].PlayerID, ShouldBeIn, "p1", "p2")
			So(res.Network.Intel[0].Message, ShouldNotBeEmpty)

			Convey("And a contact with no names only trades warnings", func() {
				So(res.Network.Intel[1].ContactID, ShouldEqual, "c-mute")
				So(res.Network.Intel[1].Kind, ShouldEqual, "warning")
				So(res.Network.Intel[1].PlayerID, ShouldBeEmpty)
			})

			Convey("And reliability maps to the intel taxonomy", func() {
				So(res.Network.Intel[2].ContactID, ShouldEqual, "c-mid")
				So(res.Network.Intel[2].Kind, ShouldEqual, "tip")
				So(res.Network.Intel[3].ContactID, ShouldEqual, "c-low")
				So(res.Network.Intel[3].Kind, ShouldEqual, "warning")
			})
		})

		Convey("A fizzled pulse reaches fewer contacts", func() {
			a, _ := Lookup(ActionNetworkPulse)
			res, err := e.Execute(a, ctx, true, src)
			So(err, ShouldBeNil)
			So(len(res.Network.Intel), ShouldEqual, 2)
		})

		Convey("No contacts wastes the spend", func() {
			a, _ := Lookup(ActionNetworkPulse)
			lonely := ctx
			lonely.Contacts = nil
			res, err := e.Execute(a, lonely, false, src)
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeFalse)
			So(res.Network, ShouldBeNil)
		})
	})
}

func TestMarketBlindSpot(t *testing.T) {
	Convey("Given a market pool with mispriced players", t, func() {
		e := NewEconomy()
		ctx := ActionContext{
			Scout: testScout(model.SpecNetwork, 10, 0),
			Mode:  model.ModeDesk,
			Pool: []model.PlayerRecord{
				truthPlayer("star", model.PosStriker, 28, 170, 20.0, nil),
				truthPlayer("gem", model.PosWinger, 18, 180, 1.0, nil),
				truthPlayer("steady", model.PosCentreMid, 25, 120, 6.0, nil),
				truthPlayer("overpriced", model.PosAttackingMid, 30, 110, 40.0, nil),
			},
		}
		a, _ := Lookup(ActionMarketBlindSpot)

		Convey("It surfaces the biggest potential-to-price gaps first", func() {
			res, err := e.Execute(a, ctx, false, rng.NewSeeded(17))
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(len(res.Market.Undervalued), ShouldBeBetweenOrEqual, 3, 5)
			So(res.Market.Undervalued[0].PlayerID, ShouldEqual, "gem")
			for i := 1; i < len(res.Market.Undervalued); i++ {
				So(res.Market.Undervalued[i-1].Score, ShouldBeGreaterThanOrEqualTo, res.Market.Undervalued[i].Score)
			}
			for _, u := range res.Market.Undervalued {
				So(u.Score, ShouldBeGreaterThan, 0)
				So(u.PlayerID, ShouldNotEqual, "overpriced")
			}
		})

		Convey("A fizzle yields one or two leads", func() {
			res, err := e.Execute(a, ctx, true, rng.NewSeeded(17))
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(len(res.Market.Undervalued), ShouldBeBetweenOrEqual, 1, 2)
		})

		Convey("Scores scale against the pool's own ceilings", func() {
			small := ctx
			small.Pool = []model.PlayerRecord{
				truthPlayer("bargain", model.PosStriker, 21, 100, 5.0, nil),
				truthPlayer("pricey", model.PosWinger, 24, 90, 10.0, nil),
			}
			res, err := e.Execute(a, small, false, rng.NewSeeded(17))
			So(err, ShouldBeNil)
			// The pool-best prospect at half the top price scores
			// 1.0 - 0.5 even in a modest league.
			So(res.Success, ShouldBeTrue)
			So(len(res.Market.Undervalued), ShouldEqual, 1)
			So(res.Market.Undervalued[0].PlayerID, ShouldEqual, "bargain")
			So(res.Market.Undervalued[0].Score, ShouldAlmostEqual, 0.5)
		})

		Convey("A fairly priced market yields nothing", func() {
			fair := ctx
			fair.Pool = []model.PlayerRecord{
				truthPlayer("a", model.PosStriker, 25, 100, 10.0, nil),
				truthPlayer("b", model.PosWinger, 25, 100, 10.0, nil),
			}
			res, err := e.Execute(a, fair, false, rng.NewSeeded(17))
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeFalse)
			So(res.Market, ShouldBeNil)
			So(res.Narrative, ShouldContainSubstring, "priced everyone fairly")
		})

		Convey("An empty pool wastes the spend", func() {
			bare := ctx
			bare.Pool = nil
			res, err := e.Execute(a, bare, false, rng.NewSeeded(17))
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeFalse)
		})
	})
}

func TestNarratives(t *testing.T) {
	Convey("Narratives open with the specialization's voice", t, func() {
		src := rng.NewSeeded(23)
		line := narrativeFor(ActionNetworkPulse, model.SpecNetwork, true, src)
		So(line, ShouldStartWith, "Working the phones")

		Convey("Unknown specializations fall back to the neutral voice", func() {
			fallback := narrativeFor(ActionSecondLook, model.Specialization("wizard"), true, src)
			So(fallback, ShouldStartWith, "The scout pauses,")
		})
	})
}
