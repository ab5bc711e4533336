package rng_test

import (
	"testing"

	"github.com/okian/libero/internal/domain/rng"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeededSource_Determinism(t *testing.T) {
	Convey("Given two sources built from the same seed", t, func() {
		a := rng.NewSeeded(99)
		b := rng.NewSeeded(99)

		Convey("Then identical call sequences produce identical draws", func() {
			for i := 0; i < 200; i++ {
				So(a.Float(0, 1), ShouldEqual, b.Float(0, 1))
			}
			for i := 0; i < 200; i++ {
				So(a.IntBetween(1, 90), ShouldEqual, b.IntBetween(1, 90))
			}
			for i := 0; i < 200; i++ {
				So(a.Gaussian(5.5, 2.0), ShouldEqual, b.Gaussian(5.5, 2.0))
			}
			for i := 0; i < 200; i++ {
				So(a.Chance(0.25), ShouldEqual, b.Chance(0.25))
			}
		})

		Convey("And a different seed diverges", func() {
			c := rng.NewSeeded(100)
			diverged := false
			for i := 0; i < 50; i++ {
				if a.Float(0, 1) != c.Float(0, 1) {
					diverged = true
				}
			}
			So(diverged, ShouldBeTrue)
		})
	})
}

func TestSeededSource_Ranges(t *testing.T) {
	Convey("Given a seeded source", t, func() {
		s := rng.NewSeeded(7)

		Convey("Float stays inside [min, max)", func() {
			for i := 0; i < 1000; i++ {
				v := s.Float(2, 5)
				So(v, ShouldBeGreaterThanOrEqualTo, 2)
				So(v, ShouldBeLessThan, 5)
			}
		})

		Convey("Float with an inverted range returns min", func() {
			So(s.Float(3, 3), ShouldEqual, 3)
			So(s.Float(5, 2), ShouldEqual, 5)
		})

		Convey("IntBetween is inclusive on both ends", func() {
			seenLo, seenHi := false, false
			for i := 0; i < 2000; i++ {
				v := s.IntBetween(1, 6)
				So(v, ShouldBeBetweenOrEqual, 1, 6)
				if v == 1 {
					seenLo = true
				}
				if v == 6 {
					seenHi = true
				}
			}
			So(seenLo, ShouldBeTrue)
			So(seenHi, ShouldBeTrue)
		})

		Convey("Chance honors the degenerate probabilities", func() {
			So(s.Chance(0), ShouldBeFalse)
			So(s.Chance(-1), ShouldBeFalse)
			So(s.Chance(1), ShouldBeTrue)
			So(s.Chance(2), ShouldBeTrue)
		})
	})
}

func TestWeightedPick(t *testing.T) {
	Convey("Given a weighted table", t, func() {
		s := rng.NewSeeded(42)

		Convey("Zero-weight entries are never selected", func() {
			items := []rng.Weighted[string]{
				{Item: "never", Weight: 0},
				{Item: "always", Weight: 1},
				{Item: "excluded", Weight: -3},
			}
			for i := 0; i < 500; i++ {
				got, ok := rng.WeightedPick(s, items)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, "always")
			}
		})

		Convey("An all-zero table reports no pick", func() {
			items := []rng.Weighted[string]{{Item: "a", Weight: 0}}
			_, ok := rng.WeightedPick(s, items)
			So(ok, ShouldBeFalse)
		})

		Convey("Heavier entries win more often", func() {
			items := []rng.Weighted[string]{
				{Item: "heavy", Weight: 9},
				{Item: "light", Weight: 1},
			}
			heavy := 0
			for i := 0; i < 2000; i++ {
				got, _ := rng.WeightedPick(s, items)
				if got == "heavy" {
					heavy++
				}
			}
			So(heavy, ShouldBeGreaterThan, 1500)
		})
	})
}

func TestSample(t *testing.T) {
	Convey("Given a population", t, func() {
		s := rng.NewSeeded(3)
		pop := []int{1, 2, 3, 4, 5}

		Convey("Sample draws without replacement", func() {
			got := rng.Sample(s, pop, 3)
			So(len(got), ShouldEqual, 3)
			seen := map[int]bool{}
			for _, v := range got {
				So(seen[v], ShouldBeFalse)
				seen[v] = true
			}
		})

		Convey("Oversampling returns the whole population", func() {
			got := rng.Sample(s, pop, 50)
			So(len(got), ShouldEqual, len(pop))
		})

		Convey("Sampling zero returns nil", func() {
			So(rng.Sample(s, pop, 0), ShouldBeNil)
		})

		Convey("The input slice is left untouched", func() {
			_ = rng.Sample(s, pop, 5)
			So(pop, ShouldResemble, []int{1, 2, 3, 4, 5})
		})
	})
}

func TestClampedGaussianInt(t *testing.T) {
	Convey("Given the quality draw helper", t, func() {
		s := rng.NewSeeded(11)

		Convey("Results always land inside the clamp window", func() {
			for i := 0; i < 2000; i++ {
				v := rng.ClampedGaussianInt(s, 5.5, 2.0, 1, 10)
				So(v, ShouldBeBetweenOrEqual, 1, 10)
			}
		})
	})
}
