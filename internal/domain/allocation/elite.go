package allocation

import (
	"sort"

	"github.com/okian/futsal/internal/domain/model"
)

// eliteGoalie implements the rating-sorted strategy. Links and position
// tiers are ignored.
func (a *Allocator) eliteGoalie(present []model.Player, teamCount int) []model.Team {
	teams := model.NewTeams(teamCount)

	var goalies, outfield []model.Player
	for _, p := range present {
		if p.IsGoalie {
			goalies = append(goalies, p)
		} else {
			outfield = append(outfield, p)
		}
	}

	sort.SliceStable(goalies, func(i, j int) bool {
		return goalies[i].Rating > goalies[j].Rating
	})
	for i, g := range goalies {
		if i >= teamCount {
			outfield = append(outfield, g)
			continue
		}
		teams[i].Players = append(teams[i].Players, g)
		teams[i].HasGoalie = true
	}

	// Shuffle first so equal ratings land in random order.
	a.shuffle(outfield)
	sort.SliceStable(outfield, func(i, j int) bool {
		return outfield[i].Rating > outfield[j].Rating
	})
	for i, p := range outfield {
		idx := i % teamCount
		teams[idx].Players = append(teams[idx].Players, p)
	}

	for i := range teams {
		sum := 0
		for _, p := range teams[i].Players {
			sum += p.Rating
		}
		teams[i].Rating = sum
	}
	return teams
}
