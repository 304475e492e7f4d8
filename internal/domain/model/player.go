// Package model contains domain models passed between layers.
package model

import (
	"strings"
)

// Rating bounds and defaults for a Player.
const (
	MinRating     = 1
	MaxRating     = 10
	DefaultRating = 5
)

// Position is a player's preferred tactical role.
type Position string

// Known positions. Midfielder only exists in the legacy four-tier scheme
// but is still the default for new players.
const (
	Goalkeeper Position = "GK"
	Defender   Position = "DEF"
	Midfielder Position = "MID"
	Forward    Position = "FWD"
)

// DefaultPosition is used when no position is supplied.
const DefaultPosition = Midfielder

// ParsePosition maps free-form input onto a Position. Matching is lenient:
// "gk", "Goalkeeper" and "GK-ish" all become Goalkeeper. Anything unknown
// falls back to Midfielder.
func ParsePosition(s string) Position {
	up := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case strings.Contains(up, "GK") || strings.Contains(up, "GOAL"):
		return Goalkeeper
	case strings.Contains(up, "DEF"):
		return Defender
	case strings.Contains(up, "FWD") || strings.Contains(up, "FORW"):
		return Forward
	default:
		return Midfielder
	}
}

// String returns the short code.
func (p Position) String() string { return string(p) }

// Player is a registered futsal player.
type Player struct {
	ID       int64
	Name     string
	Rating   int
	Position Position
	IsGoalie bool
	// LinkedTo names a partner who must end up on the same team. Empty
	// means unlinked. The referenced player may not exist.
	LinkedTo string
}

// NewPlayer builds a Player with every optional field defaulted.
func NewPlayer(name string) Player {
	return Player{
		Name:     strings.TrimSpace(name),
		Rating:   DefaultRating,
		Position: DefaultPosition,
	}
}

// Normalize trims text fields and fills zero values with defaults.
func (p Player) Normalize() Player {
	p.Name = strings.TrimSpace(p.Name)
	p.LinkedTo = strings.TrimSpace(p.LinkedTo)
	if p.Rating == 0 {
		p.Rating = DefaultRating
	}
	if p.Position == "" {
		p.Position = DefaultPosition
	} else {
		p.Position = ParsePosition(string(p.Position))
	}
	return p
}

// LinkedWith reports whether p and o are a linked pair. A link declared on
// either side counts.
func (p Player) LinkedWith(o Player) bool {
	if p.Name == o.Name {
		return false
	}
	return (p.LinkedTo != "" && p.LinkedTo == o.Name) || (o.LinkedTo != "" && o.LinkedTo == p.Name)
}

// HasLink reports whether the player declares a partner.
func (p Player) HasLink() bool { return p.LinkedTo != "" }
