package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/okian/libero/internal/adapters/repository"
	"github.com/okian/libero/internal/domain/insight"
)

func newState(capacity int) insight.State {
	return insight.State{ScoutID: "s1", Capacity: capacity}
}

func TestLedgerStore(t *testing.T) {
	Convey("Given a ledger store", t, func() {
		ctx := context.Background()
		store := repository.NewLedgerStore(repository.WithShardCount(4))

		Convey("When creating a ledger", func() {
			err := store.Create(ctx, "s1", newState(60))

			Convey("Then it should be retrievable", func() {
				So(err, ShouldBeNil)
				st, getErr := store.Get(ctx, "s1")
				So(getErr, ShouldBeNil)
				So(st.Capacity, ShouldEqual, 60)
				So(st.Points, ShouldEqual, 0)
			})

			Convey("And creating it again should fail", func() {
				So(store.Create(ctx, "s1", newState(60)), ShouldEqual, repository.ErrAlreadyExists)
			})
		})

		Convey("When reading an unknown scout", func() {
			_, err := store.Get(ctx, "ghost")

			Convey("Then it should return not found", func() {
				So(err, ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When crediting points", func() {
			So(store.Create(ctx, "s1", newState(60)), ShouldBeNil)

			st, err := store.Credit(ctx, "s1", 45)
			So(err, ShouldBeNil)
			So(st.Points, ShouldEqual, 45)

			Convey("Then credits cap at capacity but bank lifetime", func() {
				st2, err2 := store.Credit(ctx, "s1", 45)
				So(err2, ShouldBeNil)
				So(st2.Points, ShouldEqual, 60)
				So(st2.LifetimeEarned, ShouldEqual, 90)
			})

			Convey("And crediting an unknown scout fails", func() {
				_, err3 := store.Credit(ctx, "ghost", 5)
				So(err3, ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When applying a transactional update", func() {
			So(store.Create(ctx, "s1", newState(60)), ShouldBeNil)
			_, _ = store.Credit(ctx, "s1", 30)

			Convey("Then the function result is stored", func() {
				st, err := store.Apply(ctx, "s1", func(st insight.State) (insight.State, error) {
					st.Points -= 10
					st.CooldownWeeks = 2
					return st, nil
				})
				So(err, ShouldBeNil)
				So(st.Points, ShouldEqual, 20)
				So(st.CooldownWeeks, ShouldEqual, 2)
			})

			Convey("And an erroring function leaves the ledger untouched", func() {
				_, err := store.Apply(ctx, "s1", func(st insight.State) (insight.State, error) {
					st.Points = -999
					return st, insight.ErrNotValidated
				})
				So(err, ShouldEqual, insight.ErrNotValidated)
				st, _ := store.Get(ctx, "s1")
				So(st.Points, ShouldEqual, 30)
			})
		})

		Convey("When ticking the week", func() {
			for i := 0; i < 5; i++ {
				id := fmt.Sprintf("s%d", i)
				st := newState(60)
				st.CooldownWeeks = 2
				So(store.Create(ctx, id, st), ShouldBeNil)
			}

			ticked := store.Tick(ctx)

			Convey("Then every ledger decrements once", func() {
				So(ticked, ShouldEqual, 5)
				for i := 0; i < 5; i++ {
					st, err := store.Get(ctx, fmt.Sprintf("s%d", i))
					So(err, ShouldBeNil)
					So(st.CooldownWeeks, ShouldEqual, 1)
				}
			})
		})

		Convey("When counting and listing", func() {
			for i := 0; i < 7; i++ {
				So(store.Create(ctx, fmt.Sprintf("s%d", i), newState(40)), ShouldBeNil)
			}

			Convey("Then count and entries agree", func() {
				So(store.Count(ctx), ShouldEqual, 7)
				So(len(store.Entries(ctx)), ShouldEqual, 7)
			})
		})

		Convey("When hammered concurrently", func() {
			So(store.Create(ctx, "s1", newState(1_000_000)), ShouldBeNil)

			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 20; j++ {
						_, _ = store.Credit(ctx, "s1", 1)
					}
				}()
			}
			wg.Wait()

			Convey("Then no credit is lost", func() {
				st, err := store.Get(ctx, "s1")
				So(err, ShouldBeNil)
				So(st.Points, ShouldEqual, 1000)
				So(st.LifetimeEarned, ShouldEqual, 1000)
			})
		})
	})
}
