package moment_test

import (
	"testing"

	"github.com/okian/libero/internal/domain/atmosphere"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/moment"
	"github.com/okian/libero/internal/domain/rng"
	. "github.com/smartystreets/goconvey/convey"
)

// neverPass fails every chance roll while keeping the other draws usable,
// to force the empty-candidate fallback path.
type neverPass struct{ inner rng.Source }

func (n *neverPass) Float(min, max float64) float64     { return n.inner.Float(min, max) }
func (n *neverPass) IntBetween(min, max int) int        { return n.inner.IntBetween(min, max) }
func (n *neverPass) Gaussian(mean, sd float64) float64  { return n.inner.Gaussian(mean, sd) }
func (n *neverPass) Chance(float64) bool                { return false }
func (n *neverPass) Shuffle(x int, swap func(i, j int)) { n.inner.Shuffle(x, swap) }

func roster() []moment.Participant {
	return []moment.Participant{
		{PlayerID: "p1", Focused: true},
		{PlayerID: "p2"},
		{PlayerID: "p3"},
		{PlayerID: "p4", Focused: true},
		{PlayerID: "p5"},
	}
}

func TestGenerateMoments(t *testing.T) {
	Convey("Given a phase at a known venue", t, func() {
		atmo := atmosphere.Generate(atmosphere.VenueTrialDay, rng.NewSeeded(1))

		Convey("A non-empty roster always yields 3-6 moments", func() {
			src := rng.NewSeeded(2)
			for i := 0; i < 100; i++ {
				ms := moment.GenerateMoments(roster(), i%14, 14, atmo, src)
				So(len(ms), ShouldBeBetweenOrEqual, 3, 6)
			}
		})

		Convey("An empty roster yields no moments", func() {
			ms := moment.GenerateMoments(nil, 0, 14, atmo, rng.NewSeeded(2))
			So(ms, ShouldBeNil)
		})

		Convey("Even when every involvement roll fails, slots are filled", func() {
			src := &neverPass{inner: rng.NewSeeded(3)}
			ms := moment.GenerateMoments(roster(), 0, 14, atmo, src)
			So(len(ms), ShouldBeGreaterThanOrEqualTo, 3)
			for _, m := range ms {
				So(m.PlayerID, ShouldNotBeBlank)
			}
		})

		Convey("The same seed reproduces the same moments", func() {
			a := moment.GenerateMoments(roster(), 4, 14, atmo, rng.NewSeeded(77))
			b := moment.GenerateMoments(roster(), 4, 14, atmo, rng.NewSeeded(77))
			So(a, ShouldResemble, b)
		})
	})
}

func TestMomentInvariants(t *testing.T) {
	Convey("Given a large batch of generated moments", t, func() {
		atmo := atmosphere.Generate(atmosphere.VenueStreetGame, rng.NewSeeded(4))
		src := rng.NewSeeded(5)

		var all []moment.PlayerMoment
		for i := 0; i < 200; i++ {
			all = append(all, moment.GenerateMoments(roster(), i%14, 14, atmo, src)...)
		}

		Convey("Quality stays in [1,10] and standout tracks quality >= 8", func() {
			for _, m := range all {
				So(m.Quality, ShouldBeBetweenOrEqual, 1, 10)
				So(m.Standout, ShouldEqual, m.Quality >= 8)
			}
		})

		Convey("Hinted attributes come only from the moment type's own pool", func() {
			for _, m := range all {
				So(len(m.AttributesHinted), ShouldBeBetweenOrEqual, 1, 3)
				pool := moment.AttributeHints(m.Type)
				for _, a := range m.AttributesHinted {
					So(pool, ShouldContain, a)
				}
			}
		})

		Convey("Hints are never duplicated within a moment", func() {
			for _, m := range all {
				seen := map[model.Attribute]bool{}
				for _, a := range m.AttributesHinted {
					So(seen[a], ShouldBeFalse)
					seen[a] = true
				}
			}
		})

		Convey("Both renderings are always present", func() {
			for _, m := range all {
				So(m.Detailed, ShouldNotBeBlank)
				So(m.Vague, ShouldNotBeBlank)
			}
		})
	})
}

func TestPressureRamp(t *testing.T) {
	Convey("Given the pressure-context model", t, func() {
		Convey("Late phases carry more pressure moments than early ones", func() {
			atmo := atmosphere.Atmosphere{Venue: atmosphere.VenueTrialDay, CrowdIntensity: 0}
			src := rng.NewSeeded(6)
			early, late := 0, 0
			for i := 0; i < 400; i++ {
				for _, m := range moment.GenerateMoments(roster(), 0, 14, atmo, src) {
					if m.UnderPressure {
						early++
					}
				}
				for _, m := range moment.GenerateMoments(roster(), 13, 14, atmo, src) {
					if m.UnderPressure {
						late++
					}
				}
			}
			So(late, ShouldBeGreaterThan, early)
		})
	})
}
