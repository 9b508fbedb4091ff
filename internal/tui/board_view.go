package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"bingo-cli/internal/grid"
	"bingo-cli/internal/session"
)

const (
	cellW = 14
	cellH = 3
)

func truncateCell(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return xansi.Cut(s, 0, w)
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

func (m appModel) cellStyle(idx int, slot *grid.Slot) lipgloss.Style {
	st := lipgloss.NewStyle().
		Width(cellW).
		Height(cellH).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.NormalBorder())

	switch {
	case slot != nil && slot.IsFreeSpace:
		st = st.Background(colorFreeBg).Foreground(colorSelectedFg)
	case slot != nil && slot.Marked:
		st = st.Background(colorMarkedBg).Foreground(colorMarkedFg)
	}
	if idx == m.cursor {
		st = st.BorderForeground(colorAccent).Bold(true)
	} else {
		st = st.BorderForeground(colorMuted)
	}
	return st
}

func cellText(slot *grid.Slot) string {
	if slot == nil {
		return ""
	}
	if slot.IsFreeSpace {
		return "FREE"
	}
	val := truncateCell(slot.Value, cellW-2)
	if slot.Type == "image" && val != "" {
		val = "🖼 " + truncateCell(slot.Value, cellW-4)
	}
	return val
}

func (m appModel) boardView() string {
	if m.board == nil {
		if m.loading {
			return m.placeCentered(m.spin.View() + " Opening board…")
		}
		return m.placeCentered(styleError().Render(m.notice))
	}

	b := m.board
	size := b.Settings.Size

	var rows []string
	for r := 0; r < size; r++ {
		var cells []string
		for c := 0; c < size; c++ {
			idx := r*size + c
			slot := m.slots[idx]
			cells = append(cells, m.cellStyle(idx, slot).Render(cellText(slot)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	gridView := lipgloss.JoinVertical(lipgloss.Left, rows...)

	header := lipgloss.NewStyle().Bold(true).Render(b.Title) +
		styleMuted().Render(fmt.Sprintf("  by %s  %d%% complete", b.CreatorUsername, grid.CompletionPercent(b)))

	var side string
	if b.Description != nil {
		side = renderMarkdown(*b.Description, 40)
	}

	main := gridView
	if side != "" && m.width >= lipgloss.Width(gridView)+44 {
		main = lipgloss.JoinHorizontal(lipgloss.Top, gridView, "  ", side)
	}

	var status string
	switch {
	case m.boardErr != "":
		status = styleError().Render(m.boardErr)
	case m.sess.State() == session.StateSaving || m.marking:
		status = m.spin.View() + " saving…"
	case !m.caps.CanEdit:
		status = styleMuted().Render("read-only")
	}

	help := "arrows: move  enter: edit  m: mark  esc: back"
	if !m.caps.CanEdit {
		help = "arrows: move  esc: back"
	}

	out := strings.Join([]string{header, "", main, "", status, m.footer(help)}, "\n")

	if m.modal == modalEditCell {
		return m.placeCentered(m.editModalView())
	}
	return out
}

func (m appModel) editModalView() string {
	bodyW := modalBodyWidth(m.width)

	var parts []string
	parts = append(parts, renderInputLine(bodyW, m.editInput.View()))

	if err := m.sess.Err(); err != nil {
		parts = append(parts, "", styleError().Width(bodyW).Render(err.Error()))
	}
	if m.sess.State() == session.StateSaving {
		parts = append(parts, "", m.spin.View()+" saving…")
	}
	parts = append(parts, "", styleMuted().Width(bodyW).Render("enter: save   esc: cancel"))

	return renderModalBox(m.width, "Edit cell", strings.Join(parts, "\n"))
}
