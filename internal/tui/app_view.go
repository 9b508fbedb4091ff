package tui

import (
	"fmt"
	"strings"

	"bingo-cli/internal/identity"
	"bingo-cli/internal/model"
)

// Rows of chrome around the boards list: search line, status line, footer.
const chromeHeight = 4

func (m appModel) View() string {
	switch m.view {
	case viewBoard:
		return m.boardView()
	case viewCreate:
		return m.createView()
	default:
		return m.listingView()
	}
}

func sortLabel(q model.ListQuery) string {
	by := string(q.SortBy)
	arrow := "↓"
	if q.SortOrder == model.SortAsc {
		arrow = "↑"
	}
	return by + " " + arrow
}

func (m appModel) listingView() string {
	var b strings.Builder

	search := m.searchIn.View()
	if !m.searchIn.Focused() && strings.TrimSpace(m.searchIn.Value()) == "" {
		search = styleMuted().Render("/ to search")
	}
	b.WriteString(search)
	b.WriteString("\n")

	status := fmt.Sprintf("%d boards  sort: %s", len(m.ctrl.Boards()), sortLabel(m.ctrl.Query()))
	if m.ctrl.HasMore() {
		status += "  (m: load more)"
	}
	if m.loading {
		status += "  " + m.spin.View()
	}
	b.WriteString(styleMuted().Render(status))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(styleError().Render(m.notice))
		b.WriteString("\n")
	}
	switch {
	case len(m.boardsList.Items()) > 0:
		// Cached fallback rows may be present even when the live fetch failed.
		b.WriteString(m.boardsList.View())
		b.WriteString("\n")
	case m.notice == "" && !m.loading:
		b.WriteString(styleMuted().Render("No boards. Press n to create one."))
		b.WriteString("\n")
	}

	b.WriteString(m.footer("enter: open  n: new  s: sort  o: order  r: refresh  q: quit"))
	return b.String()
}

func (m appModel) footer(help string) string {
	who := identity.DisplayName(m.user)
	return styleMuted().Render(help + "   " + who + " @ " + m.server)
}
