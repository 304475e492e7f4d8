// Package swap exchanges players between teams of an existing allocation.
//
// A swap takes two picks. The first pick is remembered; the second one
// performs the exchange, recomputes every team's rating and goalie flag,
// and clears the pending pick.
package swap

import (
	"fmt"

	"github.com/okian/futsal/internal/domain/model"
)

// Selection is a pending pick of a player inside a team.
type Selection struct {
	PlayerID  int64
	TeamIndex int
}

// Status describes what a Select call did.
type Status string

const (
	// StatusPending means the pick was recorded and nothing moved yet.
	StatusPending Status = "pending"
	// StatusSwapped means two players exchanged teams.
	StatusSwapped Status = "swapped"
)

// Result reports the outcome of a Select call.
type Result struct {
	Status Status
	// NoOp is set when the same player was picked twice.
	NoOp  bool
	First Selection
	// Second is only meaningful when Status is StatusSwapped.
	Second Selection
}

// Engine holds the pending selection for one session.
type Engine struct {
	pending []Selection
}

// NewEngine returns an Engine with no pending pick.
func NewEngine() *Engine {
	return &Engine{pending: make([]Selection, 0, 2)}
}

// Pending returns the recorded pick, if any.
func (e *Engine) Pending() (Selection, bool) {
	if len(e.pending) == 0 {
		return Selection{}, false
	}
	return e.pending[0], true
}

// Reset drops any pending pick.
func (e *Engine) Reset() {
	e.pending = e.pending[:0]
}

// Select records a pick. On the second pick the two players exchange teams.
// Picking the same player twice is accepted and changes nothing. If either
// player can no longer be found in its recorded team, the pending pick is
// dropped, alloc is left untouched and ErrSwapTargetNotFound is returned.
func (e *Engine) Select(alloc *model.Allocation, playerID int64, teamIndex int) (Result, error) {
	if alloc == nil {
		e.Reset()
		return Result{}, ErrNoAllocation
	}
	sel := Selection{PlayerID: playerID, TeamIndex: teamIndex}
	if _, _, err := locate(alloc, sel); err != nil {
		e.Reset()
		return Result{}, err
	}

	e.pending = append(e.pending, sel)
	if len(e.pending) < 2 {
		return Result{Status: StatusPending, First: sel}, nil
	}

	first, second := e.pending[0], e.pending[1]
	e.Reset()

	res := Result{Status: StatusSwapped, First: first, Second: second}
	if first == second {
		res.NoOp = true
		return res, nil
	}

	// The first pick may have gone stale since it was recorded.
	t1, i1, err := locate(alloc, first)
	if err != nil {
		return Result{}, err
	}
	t2, i2, _ := locate(alloc, second)

	p1 := t1.Players[i1]
	t1.Players[i1] = t2.Players[i2]
	t2.Players[i2] = p1

	for i := range alloc.Teams {
		alloc.Teams[i].Recompute()
	}
	return res, nil
}

// locate finds the selected player inside its recorded team.
func locate(alloc *model.Allocation, sel Selection) (*model.Team, int, error) {
	if sel.TeamIndex < 0 || sel.TeamIndex >= len(alloc.Teams) {
		return nil, 0, fmt.Errorf("%w: team %d does not exist", ErrSwapTargetNotFound, sel.TeamIndex)
	}
	team := &alloc.Teams[sel.TeamIndex]
	idx := team.IndexOf(sel.PlayerID)
	if idx < 0 {
		return nil, 0, fmt.Errorf("%w: player %d not in %s", ErrSwapTargetNotFound, sel.PlayerID, team.Label)
	}
	return team, idx, nil
}
