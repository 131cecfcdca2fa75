package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top status bar: logo, identity, feed health
// and the command hints for the active view.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "

	var parts []string
	parts = append(parts, styles.Logo.Render("trove"))

	if m.user != nil {
		identity := m.user.Name
		if m.user.IsAdmin() {
			identity += " [admin]"
		}
		parts = append(parts, styles.Text.Render(identity))
	}

	snap := m.browse.snapshot
	if snap.IsOffline() {
		parts = append(parts, styles.DangerText.Render("● OFFLINE"))
	} else if snap.Loaded {
		parts = append(parts, styles.SuccessText.Render("● LIVE"))
	}
	if !snap.LastUpdated.IsZero() {
		parts = append(parts, styles.MutedText.Render(snap.LastUpdated.Format("15:04:05")))
	}

	parts = append(parts, styles.FaintText.Render(m.theme.Name))

	line := strings.Join(parts, sep)
	header := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.width).
		Render(line)

	return header + "\n" + m.renderCommandBar()
}

// renderCommandBar renders the per-view key hints line.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var hints []string
	add := func(keyLabel, desc string) {
		hints = append(hints, fmt.Sprintf("%s %s",
			styles.AccentText.Render("<"+keyLabel+">"),
			styles.MutedText.Render(desc)))
	}

	switch m.route {
	case RouteHome:
		add("tab", "sections")
		add("r", "reply")
		add("j/k", "move")
	case RouteBrowse:
		add("/", "search")
		add("f", "filter")
		add("c", "claim")
		add("m", "message")
		add("j/k", "move")
	case RouteNewItem:
		add("tab", "fields")
		add("ctrl+s", "submit")
		add("ctrl+x", "clear image")
	case RouteAdmin:
		add("tab", "tables")
		add("x", "delete")
		add("j/k", "move")
	}
	add("H/B/R", "views")
	if m.user != nil && m.user.IsAdmin() {
		add("A", "admin")
	}
	add("Q", "sign out")
	add("?", "help")

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.width).
		Render(strings.Join(hints, "  "))
}
