package match_test

import (
	"testing"

	"github.com/okian/libero/internal/domain/match"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
	"github.com/okian/libero/internal/domain/session"
	. "github.com/smartystreets/goconvey/convey"
)

func squad(prefix string, style model.PlayStyle) match.Team {
	positions := []model.Position{
		model.PosGoalkeeper, model.PosCentreBack, model.PosCentreBack,
		model.PosFullBack, model.PosFullBack, model.PosDefensiveMid,
		model.PosCentreMid, model.PosWideMid, model.PosAttackingMid,
		model.PosWinger, model.PosStriker,
	}
	team := match.Team{Name: prefix, Style: style}
	for i, pos := range positions {
		team.Players = append(team.Players, model.PlayerRecord{
			ID:             prefix + "-" + string(rune('a'+i)),
			Position:       pos,
			CurrentAbility: 100 + i*3,
			Attributes: map[model.Attribute]int{
				model.AttrFinishing:  8 + i,
				model.AttrOffTheBall: 10,
				model.AttrPace:       12,
			},
		})
	}
	return team
}

func matchSession(seed int64, home, away match.Team) session.Session {
	players := []session.Player{
		{PlayerID: home.Players[8].ID, Focused: true},
		{PlayerID: away.Players[10].ID, Focused: true},
	}
	return session.New("m-1", "", model.ModeMatch, seed, players)
}

func TestSimulate(t *testing.T) {
	Convey("Given a fixture between two full squads", t, func() {
		home := squad("h", model.StyleHighPress)
		away := squad("a", model.StyleLowBlock)
		s := matchSession(21, home, away)

		Convey("Simulate populates 12-18 phases with events", func() {
			out, res := match.Simulate(s, home, away, rng.NewSeeded(21))
			So(out.State, ShouldEqual, session.StatePopulated)
			So(len(out.Phases), ShouldBeBetweenOrEqual, session.MinPhases, session.MaxPhases)
			So(out.Venue, ShouldEqual, "stadium")

			Convey("Phases are monotonic in start minute with events inside 1-90ish", func() {
				for i := 1; i < len(out.Phases); i++ {
					So(out.Phases[i].StartMinute, ShouldBeGreaterThan, out.Phases[i-1].StartMinute)
				}
			})

			Convey("Momentum stays in [0,100] and observable attrs are unioned", func() {
				for _, p := range out.Phases {
					So(p.Momentum, ShouldBeBetweenOrEqual, 0, 100)
					So(p.Moments, ShouldBeEmpty)
				}
			})

			Convey("The result score is non-negative and attributed", func() {
				So(res.HomeGoals, ShouldBeGreaterThanOrEqualTo, 0)
				So(res.AwayGoals, ShouldBeGreaterThanOrEqualTo, 0)
				So(len(res.Scorers), ShouldEqual, res.HomeGoals+res.AwayGoals)
			})
		})

		Convey("Simulate is deterministic for a fixed seed", func() {
			a, ra := match.Simulate(s, home, away, rng.NewSeeded(21))
			b, rb := match.Simulate(s, home, away, rng.NewSeeded(21))
			So(a, ShouldResemble, b)
			So(ra, ShouldResemble, rb)
		})

		Convey("A populated session is a no-op", func() {
			out, _ := match.Simulate(s, home, away, rng.NewSeeded(21))
			again, res := match.Simulate(out, home, away, rng.NewSeeded(99))
			So(again, ShouldResemble, out)
			So(res, ShouldResemble, match.Result{})
		})

		Convey("An empty squad is a no-op", func() {
			out, res := match.Simulate(s, match.Team{}, away, rng.NewSeeded(21))
			So(out, ShouldResemble, s)
			So(res, ShouldResemble, match.Result{})
		})
	})
}

func TestEventEligibility(t *testing.T) {
	Convey("Given many simulated matches", t, func() {
		home := squad("h", model.StylePossession)
		away := squad("a", model.StyleCounter)

		byID := map[string]model.PlayerRecord{}
		for _, p := range home.Players {
			byID[p.ID] = p
		}
		for _, p := range away.Players {
			byID[p.ID] = p
		}

		var events []session.MatchEvent
		var phases []session.Phase
		for seed := int64(0); seed < 30; seed++ {
			s := matchSession(seed, home, away)
			out, _ := match.Simulate(s, home, away, rng.NewSeeded(seed))
			phases = append(phases, out.Phases...)
			for _, p := range out.Phases {
				events = append(events, p.MatchEvents...)
			}
		}
		So(events, ShouldNotBeEmpty)

		Convey("Saves are only credited to goalkeepers", func() {
			for _, e := range events {
				if e.Type == "save" {
					So(byID[e.PlayerID].Position.IsGoalkeeper(), ShouldBeTrue)
				}
			}
		})

		Convey("Crosses are only credited to wide or attacking players", func() {
			for _, e := range events {
				if e.Type == "cross" {
					pos := byID[e.PlayerID].Position
					So(pos.IsWide() || pos.IsAttacking(), ShouldBeTrue)
				}
			}
		})

		Convey("Penalty phases resolve to a single goal-or-save event", func() {
			for _, p := range phases {
				if p.SetPieceVariant != "penalty" {
					continue
				}
				primary := 0
				for _, e := range p.MatchEvents {
					if e.Type == "injury" || e.Type == "substitution" {
						continue
					}
					primary++
					So(e.Type, ShouldBeIn, "goal", "save")
				}
				So(primary, ShouldEqual, 1)
			}
		})

		Convey("Injury events are always chained to a substitution", func() {
			for _, p := range phases {
				for i, e := range p.MatchEvents {
					if e.Type != "injury" {
						continue
					}
					So(i+1, ShouldBeLessThan, len(p.MatchEvents))
					sub := p.MatchEvents[i+1]
					So(sub.Type, ShouldEqual, "substitution")
					So(sub.PlayerID, ShouldEqual, e.PlayerID)
					So(sub.Minute, ShouldEqual, e.Minute)
				}
			}
		})

		Convey("Goal minutes in a result are unique", func() {
			s := matchSession(7, home, away)
			_, res := match.Simulate(s, home, away, rng.NewSeeded(7))
			seen := map[int]bool{}
			for _, sc := range res.Scorers {
				So(seen[sc.Minute], ShouldBeFalse)
				seen[sc.Minute] = true
				So(byID[sc.PlayerID].Position.IsGoalkeeper(), ShouldBeFalse)
			}
		})
	})
}

func TestTacticalBias(t *testing.T) {
	Convey("Given contrasting play styles", t, func() {
		pressHome := squad("h", model.StyleHighPress)
		pressAway := squad("a", model.StyleHighPress)
		neutralHome := squad("h", "")
		neutralAway := squad("a", "")

		countPressing := func(home, away match.Team) int {
			n := 0
			for seed := int64(0); seed < 60; seed++ {
				s := matchSession(seed, home, away)
				out, _ := match.Simulate(s, home, away, rng.NewSeeded(seed))
				for _, p := range out.Phases {
					if p.Type == "pressing_sequence" {
						n++
					}
				}
			}
			return n
		}

		Convey("High-press matchups produce more pressing phases than neutral ones", func() {
			So(countPressing(pressHome, pressAway), ShouldBeGreaterThan, countPressing(neutralHome, neutralAway))
		})
	})
}
