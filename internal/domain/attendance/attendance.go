// Package attendance tracks which roster players are present for a session.
package attendance

import "github.com/okian/futsal/internal/domain/model"

// PresentSet holds session-local presence flags keyed by player id. It is
// never persisted. The zero value is not usable; call New.
type PresentSet struct {
	flags map[int64]bool
}

// New returns an empty PresentSet.
func New() *PresentSet {
	return &PresentSet{flags: make(map[int64]bool)}
}

// Set flags a player as present or absent.
func (s *PresentSet) Set(id int64, present bool) {
	if present {
		s.flags[id] = true
		return
	}
	delete(s.flags, id)
}

// Toggle flips a player's flag and returns the new value.
func (s *PresentSet) Toggle(id int64) bool {
	now := !s.flags[id]
	s.Set(id, now)
	return now
}

// IsPresent reports whether the player is flagged present.
func (s *PresentSet) IsPresent(id int64) bool {
	return s.flags[id]
}

// MarkAll flags every id as present.
func (s *PresentSet) MarkAll(ids []int64) {
	for _, id := range ids {
		s.flags[id] = true
	}
}

// ClearAll drops every flag.
func (s *PresentSet) ClearAll() {
	clear(s.flags)
}

// Count returns the number of flagged players. Flags for players that no
// longer exist in the roster are included.
func (s *PresentSet) Count() int {
	return len(s.flags)
}

// IDs returns the flagged ids in no particular order.
func (s *PresentSet) IDs() []int64 {
	out := make([]int64, 0, len(s.flags))
	for id := range s.flags {
		out = append(out, id)
	}
	return out
}

// Filter returns the players flagged present, keeping roster order.
func (s *PresentSet) Filter(roster []model.Player) []model.Player {
	out := make([]model.Player, 0, len(s.flags))
	for _, p := range roster {
		if s.flags[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
