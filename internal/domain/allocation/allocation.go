// Package allocation splits the players present at a session into balanced
// teams.
//
// Two strategies are available. Tactical seats goalies, then one player per
// position tier per team, then hands the rest out as linked groups to
// whichever team is currently lightest. EliteGoalie seats the best goalies
// first and deals the remaining players round-robin in rating order.
//
// Both strategies are heuristics. Output is deterministic for a fixed
// random source and input order.
package allocation

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/okian/futsal/internal/domain/model"
)

// Default allocator configuration constants.
const (
	DefaultMinPerTeam = 4
	MinTeams          = 2
	MaxTeams          = 3
)

// Allocator runs team allocation strategies. It is not safe for concurrent
// use because it owns a single random source.
type Allocator struct {
	minPerTeam int
	rng        *rand.Rand
}

// New creates an Allocator with configuration options.
func New(opts ...Option) *Allocator {
	a := &Allocator{
		minPerTeam: DefaultMinPerTeam,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // team shuffles are not security sensitive
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MinPerTeam returns the configured per-team minimum.
func (a *Allocator) MinPerTeam() int { return a.minPerTeam }

// ParseStrategy validates a strategy name. Case and surrounding spaces are
// ignored.
func ParseStrategy(s string) (model.Strategy, error) {
	switch st := model.Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case model.StrategyTactical, model.StrategyEliteGoalie:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// ParseMode validates a mode name. Case and surrounding spaces are ignored.
func ParseMode(s string) (model.Mode, error) {
	switch m := model.Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case model.ModeFair, model.ModeFun:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Allocate partitions present into teamCount teams using strategy. Mode only
// affects the tactical strategy. No Allocation is returned on error.
func (a *Allocator) Allocate(present []model.Player, teamCount int, strategy model.Strategy, mode model.Mode) (*model.Allocation, error) {
	if teamCount < MinTeams || teamCount > MaxTeams {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTeamCount, teamCount)
	}
	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	if need := teamCount * a.minPerTeam; len(present) < need {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientPlayers, len(present), need)
	}

	var teams []model.Team
	switch strategy {
	case model.StrategyTactical:
		teams = a.tactical(present, teamCount, mode)
	case model.StrategyEliteGoalie:
		teams = a.eliteGoalie(present, teamCount)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	return &model.Allocation{
		Teams:     teams,
		Strategy:  strategy,
		Mode:      mode,
		CreatedAt: time.Now(),
	}, nil
}

// shuffle permutes players in place with the allocator's source.
func (a *Allocator) shuffle(players []model.Player) {
	a.rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})
}
