package allocation

import (
	"sort"

	"github.com/okian/futsal/internal/domain/model"
)

// tierOrder is the fixed order in which position tiers are dealt.
var tierOrder = []model.Position{model.Defender, model.Midfielder, model.Forward}

// group is one or two players that must land on the same team.
type group struct {
	players []model.Player
	rating  int
}

// tactical implements the linked-pair balancing strategy.
func (a *Allocator) tactical(present []model.Player, teamCount int, mode model.Mode) []model.Team {
	teams := model.NewTeams(teamCount)
	ratings := make([]int, teamCount)
	assigned := make(map[int64]bool, len(present))

	// dealOne gives the first min(len(pool), teamCount) players of a shuffled
	// pool to teams 0..n-1.
	dealOne := func(pool []model.Player) {
		a.shuffle(pool)
		for i := 0; i < len(pool) && i < teamCount; i++ {
			p := pool[i]
			if assigned[p.ID] {
				continue
			}
			teams[i].Players = append(teams[i].Players, p)
			ratings[i] += p.Rating
			assigned[p.ID] = true
		}
	}

	var goalies []model.Player
	for _, p := range present {
		if p.IsGoalie {
			goalies = append(goalies, p)
		}
	}
	dealOne(goalies)

	for _, pos := range tierOrder {
		var tier []model.Player
		for _, p := range present {
			if p.Position == pos && !assigned[p.ID] {
				tier = append(tier, p)
			}
		}
		dealOne(tier)
	}

	var remaining []model.Player
	for _, p := range present {
		if !assigned[p.ID] {
			remaining = append(remaining, p)
		}
	}
	a.shuffle(remaining)

	groups := groupLinked(remaining)
	if mode == model.ModeFair {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].rating > groups[j].rating
		})
	}

	for _, g := range groups {
		low := lightest(ratings)
		teams[low].Players = append(teams[low].Players, g.players...)
		ratings[low] += g.rating
	}

	for i := range teams {
		teams[i].Recompute()
	}
	return teams
}

// groupLinked walks players in order and pairs each unprocessed player with
// the first other unprocessed player it is linked with, in either direction.
// Links to absent or already-grouped players are ignored.
func groupLinked(players []model.Player) []group {
	groups := make([]group, 0, len(players))
	processed := make(map[int64]bool, len(players))
	for _, p := range players {
		if processed[p.ID] {
			continue
		}
		processed[p.ID] = true

		var partner *model.Player
		for i := range players {
			c := players[i]
			if c.ID == p.ID || processed[c.ID] {
				continue
			}
			if p.LinkedWith(c) {
				partner = &players[i]
				break
			}
		}

		if partner == nil {
			groups = append(groups, group{players: []model.Player{p}, rating: p.Rating})
			continue
		}
		processed[partner.ID] = true
		groups = append(groups, group{
			players: []model.Player{p, *partner},
			rating:  p.Rating + partner.Rating,
		})
	}
	return groups
}

// lightest returns the index of the lowest rating; ties go to the lowest index.
func lightest(ratings []int) int {
	low := 0
	for i := 1; i < len(ratings); i++ {
		if ratings[i] < ratings[low] {
			low = i
		}
	}
	return low
}
