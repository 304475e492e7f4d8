// Package types contains the JSON shapes shared by the service and the API.
package types

import (
	"time"

	"github.com/okian/futsal/internal/domain/model"
	"github.com/okian/futsal/internal/domain/scoreboard"
	"github.com/okian/futsal/internal/domain/share"
)

// Player is the wire form of a roster player.
type Player struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Position string `json:"position"`
	IsGoalie bool   `json:"is_goalie"`
	LinkedTo string `json:"linked_to,omitempty"`
	Present  bool   `json:"present"`
}

// Team is the wire form of an allocated team.
type Team struct {
	Index     int      `json:"index"`
	Label     string   `json:"label"`
	Color     string   `json:"color"`
	Rating    int      `json:"rating"`
	HasGoalie bool     `json:"has_goalie"`
	Players   []Player `json:"players"`
	Roster    []string `json:"roster"`
}

// Allocation is the wire form of a full allocation.
type Allocation struct {
	Strategy  string    `json:"strategy"`
	Mode      string    `json:"mode"`
	Spread    int       `json:"spread"`
	CreatedAt time.Time `json:"created_at"`
	Teams     []Team    `json:"teams"`
}

// FromPlayer converts a domain player.
func FromPlayer(p model.Player, present bool) Player {
	return Player{
		ID:       p.ID,
		Name:     p.Name,
		Rating:   p.Rating,
		Position: p.Position.String(),
		IsGoalie: p.IsGoalie,
		LinkedTo: p.LinkedTo,
		Present:  present,
	}
}

// ToPlayer converts back to a domain player, applying defaults.
func (p Player) ToPlayer() model.Player {
	return model.Player{
		ID:       p.ID,
		Name:     p.Name,
		Rating:   p.Rating,
		Position: model.Position(p.Position),
		IsGoalie: p.IsGoalie,
		LinkedTo: p.LinkedTo,
	}.Normalize()
}

// FromAllocation converts a domain allocation. Every seated player is
// present by definition.
func FromAllocation(a *model.Allocation) Allocation {
	out := Allocation{
		Strategy:  string(a.Strategy),
		Mode:      string(a.Mode),
		Spread:    a.Spread(),
		CreatedAt: a.CreatedAt,
		Teams:     make([]Team, len(a.Teams)),
	}
	for i, t := range a.Teams {
		team := Team{
			Index:     i,
			Label:     t.Label,
			Color:     t.Color,
			Rating:    t.Rating,
			HasGoalie: t.HasGoalie,
			Players:   make([]Player, len(t.Players)),
			Roster:    make([]string, len(t.Players)),
		}
		for j, p := range t.Players {
			team.Players[j] = FromPlayer(p, true)
			team.Roster[j] = share.RosterLine(j+1, p)
		}
		out.Teams[i] = team
	}
	return out
}

// Settings is the per-session generation configuration.
type Settings struct {
	TeamCount int    `json:"team_count"`
	Strategy  string `json:"strategy"`
	Mode      string `json:"mode"`
}

// Selection is a pending or completed swap pick.
type Selection struct {
	PlayerID  int64 `json:"player_id"`
	TeamIndex int   `json:"team_index"`
}

// Session is the wire form of an organizing session.
type Session struct {
	ID           string           `json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	Settings     Settings         `json:"settings"`
	PresentCount int              `json:"present_count"`
	Required     int              `json:"required"`
	Players      []Player         `json:"players"`
	Allocation   *Allocation      `json:"allocation,omitempty"`
	PendingSwap  *Selection       `json:"pending_swap,omitempty"`
	Scoreboard   scoreboard.State `json:"scoreboard"`
}

// SwapResult reports one swap pick.
type SwapResult struct {
	Status     string      `json:"status"`
	NoOp       bool        `json:"no_op,omitempty"`
	First      Selection   `json:"first"`
	Second     *Selection  `json:"second,omitempty"`
	Allocation *Allocation `json:"allocation"`
}

// Share carries the shareable team message.
type Share struct {
	Text        string `json:"text"`
	TelegramURL string `json:"telegram_url"`
}
