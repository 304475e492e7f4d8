package allocation_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/okian/futsal/internal/domain/allocation"
	"github.com/okian/futsal/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func player(id int64, name string, rating int, pos model.Position, goalie bool) model.Player {
	return model.Player{ID: id, Name: name, Rating: rating, Position: pos, IsGoalie: goalie}
}

// roster builds a mixed squad of n players with varied ratings and positions.
func roster(n int) []model.Player {
	positions := []model.Position{model.Defender, model.Midfielder, model.Forward, model.Goalkeeper}
	out := make([]model.Player, 0, n)
	for i := 0; i < n; i++ {
		pos := positions[i%len(positions)]
		out = append(out, player(int64(i+1), fmt.Sprintf("p%02d", i+1), 1+(i*7)%10, pos, pos == model.Goalkeeper))
	}
	return out
}

func sumRatings(players []model.Player) int {
	total := 0
	for _, p := range players {
		total += p.Rating
	}
	return total
}

func teamOf(alloc *model.Allocation, id int64) int {
	for i := range alloc.Teams {
		if alloc.Teams[i].IndexOf(id) >= 0 {
			return i
		}
	}
	return -1
}

func TestAllocate_Validation(t *testing.T) {
	Convey("Given an allocator requiring four players per team", t, func() {
		a := allocation.New(allocation.WithSeed(7), allocation.WithMinPerTeam(4))

		Convey("When only three players are present for two teams", func() {
			alloc, err := a.Allocate(roster(3), 2, model.StrategyEliteGoalie, model.ModeFair)

			Convey("Then it should report insufficient players and build nothing", func() {
				So(errors.Is(err, allocation.ErrInsufficientPlayers), ShouldBeTrue)
				So(alloc, ShouldBeNil)
			})
		})

		Convey("When seven players are present for two teams", func() {
			_, err := a.Allocate(roster(7), 2, model.StrategyTactical, model.ModeFair)

			Convey("Then the threshold of eight should still apply", func() {
				So(errors.Is(err, allocation.ErrInsufficientPlayers), ShouldBeTrue)
			})
		})

		Convey("When the team count is out of range", func() {
			_, err1 := a.Allocate(roster(20), 1, model.StrategyTactical, model.ModeFair)
			_, err4 := a.Allocate(roster(20), 4, model.StrategyTactical, model.ModeFair)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err1, allocation.ErrInvalidTeamCount), ShouldBeTrue)
				So(errors.Is(err4, allocation.ErrInvalidTeamCount), ShouldBeTrue)
			})
		})

		Convey("When the strategy or mode is unknown", func() {
			_, errS := a.Allocate(roster(12), 2, model.Strategy("snake"), model.ModeFair)
			_, errM := a.Allocate(roster(12), 2, model.StrategyTactical, model.Mode("chaos"))

			Convey("Then the matching sentinel should be returned", func() {
				So(errors.Is(errS, allocation.ErrUnknownStrategy), ShouldBeTrue)
				So(errors.Is(errM, allocation.ErrUnknownMode), ShouldBeTrue)
			})
		})
	})

	Convey("Given strategy and mode names as users type them", t, func() {
		Convey("When they differ only in case or spacing", func() {
			st, errS := allocation.ParseStrategy(" Elite_Goalie ")
			m, errM := allocation.ParseMode("FUN")

			Convey("Then they resolve to the canonical names", func() {
				So(errS, ShouldBeNil)
				So(errM, ShouldBeNil)
				So(st, ShouldEqual, model.StrategyEliteGoalie)
				So(m, ShouldEqual, model.ModeFun)
			})
		})

		Convey("When they are unknown", func() {
			_, errS := allocation.ParseStrategy("snake")
			_, errM := allocation.ParseMode("")

			Convey("Then the matching sentinel is returned", func() {
				So(errors.Is(errS, allocation.ErrUnknownStrategy), ShouldBeTrue)
				So(errors.Is(errM, allocation.ErrUnknownMode), ShouldBeTrue)
			})
		})
	})

	Convey("Given the relaxed threshold of two per team", t, func() {
		a := allocation.New(allocation.WithSeed(7), allocation.WithMinPerTeam(2))

		Convey("When four players are present for two teams", func() {
			alloc, err := a.Allocate(roster(4), 2, model.StrategyTactical, model.ModeFun)

			Convey("Then allocation should succeed", func() {
				So(err, ShouldBeNil)
				So(alloc.TotalPlayers(), ShouldEqual, 4)
			})
		})
	})
}

func TestAllocate_Conservation(t *testing.T) {
	Convey("Given many random seeds and roster sizes", t, func() {
		strategies := []model.Strategy{model.StrategyTactical, model.StrategyEliteGoalie}
		modes := []model.Mode{model.ModeFair, model.ModeFun}

		for seed := int64(1); seed <= 25; seed++ {
			for _, n := range []int{8, 11, 12, 17} {
				for _, teams := range []int{2, 3} {
					for _, s := range strategies {
						for _, m := range modes {
							present := roster(n)
							a := allocation.New(allocation.WithSeed(seed), allocation.WithMinPerTeam(2))
							alloc, err := a.Allocate(present, teams, s, m)
							So(err, ShouldBeNil)

							So(len(alloc.Teams), ShouldEqual, teams)
							So(alloc.TotalRating(), ShouldEqual, sumRatings(present))
							So(alloc.TotalPlayers(), ShouldEqual, len(present))

							seen := map[int64]int{}
							for _, team := range alloc.Teams {
								So(team.Rating, ShouldEqual, sumRatings(team.Players))
								for _, p := range team.Players {
									seen[p.ID]++
								}
							}
							for _, p := range present {
								So(seen[p.ID], ShouldEqual, 1)
							}
						}
					}
				}
			}
		}
	})
}

func TestAllocate_Determinism(t *testing.T) {
	Convey("Given two allocators with the same seed", t, func() {
		a1 := allocation.New(allocation.WithSeed(99), allocation.WithMinPerTeam(2))
		a2 := allocation.New(allocation.WithRand(rand.New(rand.NewSource(99))), allocation.WithMinPerTeam(2))

		Convey("When both allocate the same roster", func() {
			r1, err1 := a1.Allocate(roster(15), 3, model.StrategyTactical, model.ModeFun)
			r2, err2 := a2.Allocate(roster(15), 3, model.StrategyTactical, model.ModeFun)

			Convey("Then the teams should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				for i := range r1.Teams {
					So(r2.Teams[i].Players, ShouldResemble, r1.Teams[i].Players)
					So(r2.Teams[i].Rating, ShouldEqual, r1.Teams[i].Rating)
				}
			})
		})
	})
}

func TestAllocate_Tactical(t *testing.T) {
	Convey("Given a roster with goalies, tiers and linked partners", t, func() {
		// Flexible players carry the GK position without being goalies, so
		// they skip the tier pass and always reach the grouping step.
		present := []model.Player{
			player(1, "Gina", 7, model.Goalkeeper, true),
			player(2, "Hugo", 5, model.Defender, true),
			player(3, "Ivan", 6, model.Defender, false),
			player(4, "Jade", 4, model.Defender, false),
			player(5, "Kai", 8, model.Forward, false),
			player(6, "Lea", 3, model.Forward, false),
			{ID: 7, Name: "Mia", Rating: 9, Position: model.Goalkeeper, LinkedTo: "Noah"},
			{ID: 8, Name: "Noah", Rating: 2, Position: model.Goalkeeper},
			{ID: 9, Name: "Omar", Rating: 6, Position: model.Goalkeeper},
			{ID: 10, Name: "Pia", Rating: 5, Position: model.Goalkeeper, LinkedTo: "Omar"},
			{ID: 11, Name: "Quin", Rating: 4, Position: model.Goalkeeper, LinkedTo: "Nobody"},
			player(12, "Rex", 7, model.Midfielder, false),
		}

		Convey("When allocating across many seeds", func() {
			for seed := int64(1); seed <= 50; seed++ {
				a := allocation.New(allocation.WithSeed(seed))
				for _, m := range []model.Mode{model.ModeFair, model.ModeFun} {
					alloc, err := a.Allocate(present, 2, model.StrategyTactical, m)
					So(err, ShouldBeNil)

					// one-directional links keep partners together
					So(teamOf(alloc, 7), ShouldEqual, teamOf(alloc, 8))
					So(teamOf(alloc, 9), ShouldEqual, teamOf(alloc, 10))

					// both real goalies are seated on different teams
					So(teamOf(alloc, 1), ShouldNotEqual, teamOf(alloc, 2))
					for _, team := range alloc.Teams {
						So(team.HasGoalie, ShouldBeTrue)
					}
				}
			}
		})

		Convey("When three goalies are present for two teams", func() {
			extra := append([]model.Player{}, present...)
			extra = append(extra, player(13, "Sol", 5, model.Goalkeeper, true))
			a := allocation.New(allocation.WithSeed(3))
			alloc, err := a.Allocate(extra, 2, model.StrategyTactical, model.ModeFair)

			Convey("Then the surplus goalie is still placed exactly once", func() {
				So(err, ShouldBeNil)
				So(alloc.TotalPlayers(), ShouldEqual, len(extra))
				So(teamOf(alloc, 13), ShouldBeGreaterThanOrEqualTo, 0)
			})
		})
	})

	Convey("Given goalies, three defenders, two forwards and one heavy flexible player", t, func() {
		// Without the tier pass, FAIR ordering would seat the heavy player
		// first and stack every light outfielder, both forwards included, on
		// the other team.
		present := []model.Player{
			player(1, "Gabi", 5, model.Goalkeeper, true),
			player(2, "Hans", 5, model.Goalkeeper, true),
			player(3, "Dora", 1, model.Defender, false),
			player(4, "Dima", 1, model.Defender, false),
			player(5, "Dean", 1, model.Defender, false),
			player(6, "Fede", 1, model.Forward, false),
			player(7, "Finn", 1, model.Forward, false),
			player(8, "Tank", 10, model.Goalkeeper, false),
		}
		count := func(team model.Team, keep func(model.Player) bool) int {
			n := 0
			for _, p := range team.Players {
				if keep(p) {
					n++
				}
			}
			return n
		}
		isGoalie := func(p model.Player) bool { return p.IsGoalie }
		isDef := func(p model.Player) bool { return p.Position == model.Defender }
		isFwd := func(p model.Player) bool { return p.Position == model.Forward }

		Convey("When allocating two FAIR teams across many seeds", func() {
			for seed := int64(1); seed <= 200; seed++ {
				a := allocation.New(allocation.WithSeed(seed), allocation.WithMinPerTeam(1))
				alloc, err := a.Allocate(present, 2, model.StrategyTactical, model.ModeFair)
				So(err, ShouldBeNil)

				// each team is dealt one goalie, one defender and one forward
				for _, team := range alloc.Teams {
					So(count(team, isGoalie), ShouldEqual, 1)
					So(count(team, isDef), ShouldBeGreaterThanOrEqualTo, 1)
					So(count(team, isFwd), ShouldEqual, 1)
				}

				// the leftover defender balances the heavy player
				tank := teamOf(alloc, 8)
				So(count(alloc.Teams[tank], isDef), ShouldEqual, 1)
				So(count(alloc.Teams[1-tank], isDef), ShouldEqual, 2)
				So(alloc.Teams[0].Rating+alloc.Teams[1].Rating, ShouldEqual, sumRatings(present))
			}
		})
	})

	Convey("Given a roster with no goalies at all", t, func() {
		present := roster(12)
		for i := range present {
			present[i].IsGoalie = false
		}
		a := allocation.New(allocation.WithSeed(11))
		alloc, err := a.Allocate(present, 3, model.StrategyTactical, model.ModeFair)

		Convey("Then every team should flag the missing goalkeeper", func() {
			So(err, ShouldBeNil)
			for _, team := range alloc.Teams {
				So(team.HasGoalie, ShouldBeFalse)
			}
		})
	})
}

func TestAllocate_EliteGoalie(t *testing.T) {
	Convey("Given the worked example roster", t, func() {
		present := []model.Player{
			player(1, "A", 8, model.Goalkeeper, true),
			player(2, "B", 6, model.Defender, false),
			player(3, "C", 4, model.Defender, false),
			player(4, "D", 2, model.Forward, false),
		}
		a := allocation.New(allocation.WithSeed(5), allocation.WithMinPerTeam(1))

		Convey("When allocating two teams", func() {
			alloc, err := a.Allocate(present, 2, model.StrategyEliteGoalie, model.ModeFair)

			Convey("Then the goalie and round-robin outfielders land as traced", func() {
				So(err, ShouldBeNil)
				names := func(team model.Team) []string {
					var out []string
					for _, p := range team.Players {
						out = append(out, p.Name)
					}
					return out
				}
				So(names(alloc.Teams[0]), ShouldResemble, []string{"A", "B", "D"})
				So(names(alloc.Teams[1]), ShouldResemble, []string{"C"})
				So(alloc.Teams[0].Rating, ShouldEqual, 16)
				So(alloc.Teams[1].Rating, ShouldEqual, 4)
				So(alloc.Teams[0].HasGoalie, ShouldBeTrue)
				So(alloc.Teams[1].HasGoalie, ShouldBeFalse)
			})
		})
	})

	Convey("Given more goalies than teams", t, func() {
		present := []model.Player{
			player(1, "G1", 9, model.Goalkeeper, true),
			player(2, "G2", 3, model.Goalkeeper, true),
			player(3, "G3", 6, model.Goalkeeper, true),
			player(4, "O1", 5, model.Forward, false),
			player(5, "O2", 7, model.Defender, false),
			player(6, "O3", 1, model.Defender, false),
		}
		a := allocation.New(allocation.WithSeed(5), allocation.WithMinPerTeam(2))
		alloc, err := a.Allocate(present, 2, model.StrategyEliteGoalie, model.ModeFun)

		Convey("Then the best goalies are seated in rating order", func() {
			So(err, ShouldBeNil)
			So(alloc.Teams[0].Players[0].Name, ShouldEqual, "G1")
			So(alloc.Teams[1].Players[0].Name, ShouldEqual, "G3")
			So(teamOf(alloc, 2), ShouldBeGreaterThanOrEqualTo, 0)
			So(alloc.Teams[0].HasGoalie, ShouldBeTrue)
			So(alloc.Teams[1].HasGoalie, ShouldBeTrue)
		})
	})

	Convey("Given rosters of varying size", t, func() {
		for seed := int64(1); seed <= 20; seed++ {
			for _, n := range []int{8, 9, 10, 13, 16} {
				for _, teams := range []int{2, 3} {
					Convey(fmt.Sprintf("seed %d, %d players, %d teams", seed, n, teams), func() {
						present := roster(n)
						a := allocation.New(allocation.WithSeed(seed), allocation.WithMinPerTeam(2))
						alloc, err := a.Allocate(present, teams, model.StrategyEliteGoalie, model.ModeFair)
						So(err, ShouldBeNil)

						lo, hi := n, 0
						for _, team := range alloc.Teams {
							lo = min(lo, len(team.Players))
							hi = max(hi, len(team.Players))
						}
						So(hi-lo, ShouldBeLessThanOrEqualTo, teams)
					})
				}
			}
		}
	})

	Convey("Given one goalie per team and a divisible squad", t, func() {
		present := roster(12)
		for i := range present {
			present[i].IsGoalie = i < 3
		}
		a := allocation.New(allocation.WithSeed(8), allocation.WithMinPerTeam(2))
		alloc, err := a.Allocate(present, 3, model.StrategyEliteGoalie, model.ModeFair)

		Convey("Then team sizes differ by at most one", func() {
			So(err, ShouldBeNil)
			for _, team := range alloc.Teams {
				So(len(team.Players), ShouldEqual, 4)
			}
		})
	})
}
