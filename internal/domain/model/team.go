package model

import "time"

// Strategy names an allocation algorithm.
type Strategy string

const (
	// StrategyTactical seats goalies, fills position tiers, then balances
	// the rest by linked groups.
	StrategyTactical Strategy = "tactical"
	// StrategyEliteGoalie seats the best goalies first and deals the rest
	// round-robin by rating.
	StrategyEliteGoalie Strategy = "elite_goalie"
)

// Mode controls how the tactical strategy orders its groups.
type Mode string

const (
	// ModeFair places the strongest groups first.
	ModeFair Mode = "fair"
	// ModeFun keeps the shuffled order.
	ModeFun Mode = "fun"
)

// Team labels and colors by index.
var (
	TeamLabels = []string{"Team A", "Team B", "Team C"}
	TeamColors = []string{"RED", "BLUE", "GREEN"}
)

// Team is one side of an Allocation.
type Team struct {
	Label     string
	Color     string
	Players   []Player
	Rating    int
	HasGoalie bool
}

// Recompute refreshes Rating and HasGoalie from the current members.
func (t *Team) Recompute() {
	sum := 0
	gk := false
	for _, p := range t.Players {
		sum += p.Rating
		if p.IsGoalie {
			gk = true
		}
	}
	t.Rating = sum
	t.HasGoalie = gk
}

// IndexOf returns the slot of the player with id, or -1.
func (t *Team) IndexOf(id int64) int {
	for i, p := range t.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Allocation is the output of one allocator run.
type Allocation struct {
	Teams     []Team
	Strategy  Strategy
	Mode      Mode
	CreatedAt time.Time
}

// NewTeams returns n empty, labeled teams.
func NewTeams(n int) []Team {
	teams := make([]Team, n)
	for i := range teams {
		teams[i] = Team{Label: TeamLabels[i], Color: TeamColors[i]}
	}
	return teams
}

// TotalRating sums the aggregate ratings of all teams.
func (a *Allocation) TotalRating() int {
	total := 0
	for _, t := range a.Teams {
		total += t.Rating
	}
	return total
}

// TotalPlayers counts every seated player.
func (a *Allocation) TotalPlayers() int {
	n := 0
	for _, t := range a.Teams {
		n += len(t.Players)
	}
	return n
}

// Spread is the difference between the strongest and weakest team.
func (a *Allocation) Spread() int {
	if len(a.Teams) == 0 {
		return 0
	}
	lo, hi := a.Teams[0].Rating, a.Teams[0].Rating
	for _, t := range a.Teams[1:] {
		if t.Rating < lo {
			lo = t.Rating
		}
		if t.Rating > hi {
			hi = t.Rating
		}
	}
	return hi - lo
}
