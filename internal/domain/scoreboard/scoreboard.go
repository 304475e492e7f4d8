// Package scoreboard keeps the live score of the match on the pitch and,
// with three teams, which team sits out.
package scoreboard

import "fmt"

// Mode selects how many teams share the pitch.
type Mode string

const (
	ModeUnset      Mode = ""
	ModeTwoTeams   Mode = "two_teams"
	ModeThreeTeams Mode = "three_teams"
)

// Side is one end of the current match.
type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// waiting is shown in place of a third team in two-team mode.
const waiting = "WAIT"

// rotations lists home, away and waiting colors for three-team mode.
var rotations = [3][3]string{
	{"RED", "BLUE", "GREEN"},
	{"BLUE", "GREEN", "RED"},
	{"GREEN", "RED", "BLUE"},
}

// State is a read-only view of the scoreboard.
type State struct {
	Mode      Mode   `json:"mode"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	Waiting   string `json:"waiting"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Rotation  int    `json:"rotation"`
}

// Scoreboard is the watch-referee counter for one session.
type Scoreboard struct {
	mode      Mode
	homeScore int
	awayScore int
	rotation  int
}

// New returns a scoreboard with no mode selected.
func New() *Scoreboard {
	return &Scoreboard{}
}

// Start selects two- or three-team mode and zeroes the scores.
func (s *Scoreboard) Start(threeTeams bool) {
	s.mode = ModeTwoTeams
	if threeTeams {
		s.mode = ModeThreeTeams
	}
	s.homeScore, s.awayScore = 0, 0
}

// Exit leaves the current mode. The rotation index is kept.
func (s *Scoreboard) Exit() {
	s.mode = ModeUnset
	s.homeScore, s.awayScore = 0, 0
}

// Goal adds one to a side.
func (s *Scoreboard) Goal(side Side) error {
	if s.mode == ModeUnset {
		return ErrScoreboardNotStarted
	}
	switch side {
	case Home:
		s.homeScore++
	case Away:
		s.awayScore++
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSide, side)
	}
	return nil
}

// ResetScore zeroes both scores.
func (s *Scoreboard) ResetScore() error {
	if s.mode == ModeUnset {
		return ErrScoreboardNotStarted
	}
	s.homeScore, s.awayScore = 0, 0
	return nil
}

// NextMatch rotates the waiting team in and zeroes the scores.
func (s *Scoreboard) NextMatch() error {
	switch s.mode {
	case ModeUnset:
		return ErrScoreboardNotStarted
	case ModeTwoTeams:
		return ErrRotationUnavailable
	}
	s.rotation++
	s.homeScore, s.awayScore = 0, 0
	return nil
}

// State returns the current view.
func (s *Scoreboard) State() State {
	st := State{
		Mode:      s.mode,
		HomeScore: s.homeScore,
		AwayScore: s.awayScore,
		Rotation:  s.rotation,
	}
	switch s.mode {
	case ModeThreeTeams:
		cur := rotations[s.rotation%len(rotations)]
		st.Home, st.Away, st.Waiting = cur[0], cur[1], cur[2]
	case ModeTwoTeams:
		st.Home, st.Away, st.Waiting = "RED", "BLUE", waiting
	}
	return st
}
