package allocation

import (
	"math/rand"
	"testing"

	"github.com/okian/futsal/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGroupLinked(t *testing.T) {
	Convey("Given players with mixed link declarations", t, func() {
		players := []model.Player{
			{ID: 1, Name: "Ana", Rating: 4, LinkedTo: "Ben"},
			{ID: 2, Name: "Ben", Rating: 6},
			{ID: 3, Name: "Cid", Rating: 3, LinkedTo: "Ben"},
			{ID: 4, Name: "Dan", Rating: 5, LinkedTo: "Ghost"},
			{ID: 5, Name: "Eve", Rating: 2},
			{ID: 6, Name: "Fay", Rating: 7, LinkedTo: "Eve"},
		}

		Convey("When grouping", func() {
			groups := groupLinked(players)

			Convey("Then each player is grouped once and pairs sum their ratings", func() {
				So(len(groups), ShouldEqual, 4)
				So(groups[0].rating, ShouldEqual, 10)
				So(groups[0].players[1].Name, ShouldEqual, "Ben")
				// Ben is taken, so Cid stays alone
				So(len(groups[1].players), ShouldEqual, 1)
				So(groups[1].players[0].Name, ShouldEqual, "Cid")
				// dangling link is no link
				So(len(groups[2].players), ShouldEqual, 1)
				// link declared only by the later player still pairs
				So(groups[3].rating, ShouldEqual, 9)
			})
		})
	})
}

func TestLightest(t *testing.T) {
	Convey("Given team ratings with ties", t, func() {
		So(lightest([]int{5, 3, 3}), ShouldEqual, 1)
		So(lightest([]int{0, 0}), ShouldEqual, 0)
		So(lightest([]int{9, 8, 1}), ShouldEqual, 2)
	})
}

// placeRatings runs the greedy placement used by the tactical strategy on
// bare group ratings.
func placeRatings(ratings []int, teamCount int) []int {
	totals := make([]int, teamCount)
	for _, r := range ratings {
		low := lightest(totals)
		totals[low] += r
	}
	return totals
}

func spread(totals []int) int {
	lo, hi := totals[0], totals[0]
	for _, v := range totals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return hi - lo
}

func TestFairOrderingImprovesBalance(t *testing.T) {
	Convey("Given one heavy group among light ones", t, func() {
		base := []int{1, 1, 1, 1, 9}
		fair := []int{9, 1, 1, 1, 1}
		fairSpread := spread(placeRatings(fair, 2))

		Convey("Then no shuffled order balances better than the sorted order", func() {
			rng := rand.New(rand.NewSource(1))
			for i := 0; i < 100; i++ {
				order := append([]int(nil), base...)
				rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })
				So(fairSpread, ShouldBeLessThanOrEqualTo, spread(placeRatings(order, 2)))
			}
		})
	})

	Convey("Given a tactical run where all players reach grouping", t, func() {
		present := []model.Player{
			{ID: 1, Name: "a", Rating: 1, Position: model.Goalkeeper},
			{ID: 2, Name: "b", Rating: 1, Position: model.Goalkeeper},
			{ID: 3, Name: "c", Rating: 1, Position: model.Goalkeeper},
			{ID: 4, Name: "d", Rating: 1, Position: model.Goalkeeper},
			{ID: 5, Name: "e", Rating: 9, Position: model.Goalkeeper},
		}

		Convey("Then FAIR spread never exceeds FUN spread on the same seed", func() {
			for seed := int64(1); seed <= 40; seed++ {
				fairAlloc, err := New(WithSeed(seed), WithMinPerTeam(1)).Allocate(present, 2, model.StrategyTactical, model.ModeFair)
				So(err, ShouldBeNil)
				funAlloc, err := New(WithSeed(seed), WithMinPerTeam(1)).Allocate(present, 2, model.StrategyTactical, model.ModeFun)
				So(err, ShouldBeNil)
				So(fairAlloc.Spread(), ShouldBeLessThanOrEqualTo, funAlloc.Spread())
			}
		})
	})
}
