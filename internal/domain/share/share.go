// Package share renders allocations and roster lines as plain text suitable
// for pasting into a chat.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/futsal/internal/domain/model"
)

const (
	goalieGlyph   = "🧤"
	outfieldGlyph = "🏃"
	linkGlyph     = "🔗"
	telegramShare = "https://t.me/share/url?url="
	guestWarning  = "⚠️ Needs a guest goalkeeper"
)

var teamGlyphs = []string{"🔴", "🔵", "🟢"}

// Glyph returns the goalie or outfield marker for a player.
func Glyph(p model.Player) string {
	if p.IsGoalie {
		return goalieGlyph
	}
	return outfieldGlyph
}

// RosterLine renders a numbered attendance-list line.
func RosterLine(n int, p model.Player) string {
	line := fmt.Sprintf("%d. %s %s (%s)", n, Glyph(p), p.Name, p.Position)
	if p.HasLink() {
		line += fmt.Sprintf(" %s(%s)", linkGlyph, p.LinkedTo)
	}
	return line
}

// TeamHeader renders the heading for the team at index i.
func TeamHeader(i int, t model.Team) string {
	glyph := ""
	if i < len(teamGlyphs) {
		glyph = teamGlyphs[i] + " "
	}
	letter := strings.ToUpper(strings.TrimPrefix(t.Label, "Team "))
	return fmt.Sprintf("%sTEAM %s (Rating: %d)", glyph, letter, t.Rating)
}

// Text renders all teams as a shareable message.
func Text(teams []model.Team) string {
	var b strings.Builder
	for i, t := range teams {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(TeamHeader(i, t))
		for j, p := range t.Players {
			fmt.Fprintf(&b, "\n%d. %s %s (%s)", j+1, Glyph(p), p.Name, p.Position)
		}
		if !t.HasGoalie {
			b.WriteString("\n" + guestWarning)
		}
	}
	return b.String()
}

// TelegramURL returns a Telegram share link carrying text.
func TelegramURL(text string) string {
	return telegramShare + url.QueryEscape(text)
}
