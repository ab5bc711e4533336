package session_test

import (
	"testing"

	"github.com/okian/libero/internal/domain/atmosphere"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
	"github.com/okian/libero/internal/domain/session"
	. "github.com/smartystreets/goconvey/convey"
)

func setupSession(seed int64) session.Session {
	return session.New("s-1", atmosphere.VenueTrialDay, model.ModeVenue, seed, []session.Player{
		{PlayerID: "p1", Focused: true},
		{PlayerID: "p2"},
		{PlayerID: "p3"},
		{PlayerID: "p4"},
	})
}

func TestPopulate(t *testing.T) {
	Convey("Given a setup-state free-form session", t, func() {
		s := setupSession(42)

		Convey("Populate fills atmosphere and 12-18 phases", func() {
			out := session.Populate(s, rng.NewSeeded(42))
			So(out.State, ShouldEqual, session.StatePopulated)
			So(out.Atmosphere.Venue, ShouldEqual, atmosphere.VenueTrialDay)
			So(len(out.Phases), ShouldBeBetweenOrEqual, session.MinPhases, session.MaxPhases)

			Convey("Every phase carries moments and a description", func() {
				for _, p := range out.Phases {
					So(len(p.Moments), ShouldBeBetweenOrEqual, 3, 6)
					So(p.Description, ShouldNotBeBlank)
					So(p.Type, ShouldNotBeBlank)
					So(p.PlayerIDs, ShouldNotBeEmpty)
					So(p.Momentum, ShouldBeBetweenOrEqual, 0, 100)
				}
			})

			Convey("The first and last phases bookend the session", func() {
				So(out.Phases[0].Type, ShouldEqual, "warmup")
				So(out.Phases[len(out.Phases)-1].Type, ShouldEqual, "cooldown")
			})

			Convey("Phase start minutes are strictly monotonic", func() {
				for i := 1; i < len(out.Phases); i++ {
					So(out.Phases[i].StartMinute, ShouldBeGreaterThan, out.Phases[i-1].StartMinute)
				}
			})

			Convey("Focused-phase indices point at real phases", func() {
				for _, pl := range out.Players {
					if !pl.Focused {
						So(pl.FocusedPhases, ShouldBeEmpty)
						continue
					}
					for _, idx := range pl.FocusedPhases {
						So(idx, ShouldBeBetweenOrEqual, 0, len(out.Phases)-1)
					}
				}
			})

			Convey("The input session is untouched", func() {
				So(s.State, ShouldEqual, session.StateSetup)
				So(s.Phases, ShouldBeEmpty)
				So(s.Players[0].FocusedPhases, ShouldBeEmpty)
			})
		})

		Convey("Populate is deterministic for a fixed seed", func() {
			a := session.Populate(s, rng.NewSeeded(42))
			b := session.Populate(s, rng.NewSeeded(42))
			So(a, ShouldResemble, b)
		})

		Convey("Different seeds produce different sessions", func() {
			a := session.Populate(s, rng.NewSeeded(42))
			b := session.Populate(s, rng.NewSeeded(43))
			So(a, ShouldNotResemble, b)
		})
	})
}

func TestPopulateGuards(t *testing.T) {
	Convey("Given the lifecycle guards", t, func() {
		Convey("A populated session is returned unchanged", func() {
			s := session.Populate(setupSession(1), rng.NewSeeded(1))
			again := session.Populate(s, rng.NewSeeded(99))
			So(again, ShouldResemble, s)
		})

		Convey("An active session is returned unchanged", func() {
			s := setupSession(1)
			s.State = session.StateActive
			So(session.Populate(s, rng.NewSeeded(1)), ShouldResemble, s)
		})

		Convey("An empty roster is returned unchanged", func() {
			s := session.New("s-2", atmosphere.VenueStreetGame, model.ModeVenue, 1, nil)
			So(session.Populate(s, rng.NewSeeded(1)), ShouldResemble, s)
		})
	})
}

func TestPhaseStartMinutes(t *testing.T) {
	Convey("Given the phase scheduler", t, func() {
		src := rng.NewSeeded(8)

		Convey("Starts are monotonic and within the match span", func() {
			for trial := 0; trial < 50; trial++ {
				n := src.IntBetween(session.MinPhases, session.MaxPhases)
				starts := session.PhaseStartMinutes(n, src)
				So(len(starts), ShouldEqual, n)
				So(starts[0], ShouldBeGreaterThanOrEqualTo, 1)
				So(starts[len(starts)-1], ShouldBeLessThanOrEqualTo, 90)
				for i := 1; i < n; i++ {
					So(starts[i], ShouldBeGreaterThan, starts[i-1])
				}
			}
		})

		Convey("Zero phases yields nil", func() {
			So(session.PhaseStartMinutes(0, src), ShouldBeNil)
		})
	})
}
