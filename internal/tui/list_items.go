package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"bingo-cli/internal/grid"
	"bingo-cli/internal/model"
)

type boardRowItem struct {
	board model.Board
}

func (i boardRowItem) FilterValue() string {
	return strings.TrimSpace(i.board.Title)
}

func (i boardRowItem) Title() string {
	return strings.TrimSpace(i.board.Title)
}

// previewGlyphs renders the illustrative mini-grid as a single run of cells.
// It approximates progress; it is not the board's real layout.
func previewGlyphs(b model.Board) string {
	slots := grid.Preview(b.CellCount, b.MarkedCount)
	if len(slots) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, filled := range slots {
		if filled {
			sb.WriteString("▪")
		} else {
			sb.WriteString("·")
		}
	}
	return sb.String()
}

type boardRowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	meta     lipgloss.Style
}

func newBoardRowDelegate() boardRowDelegate {
	return boardRowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		meta: styleMuted(),
	}
}

func (d boardRowDelegate) Height() int  { return 1 }
func (d boardRowDelegate) Spacing() int { return 0 }
func (d boardRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d boardRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	row, ok := item.(boardRowItem)
	if !ok {
		fmt.Fprint(w, "")
		return
	}
	b := row.board

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	pct := grid.CompletionPercent(&b)
	meta := fmt.Sprintf("  %s  %dx%d  %d%%  %s",
		b.CreatorUsername, b.Settings.Size, b.Settings.Size, pct, previewGlyphs(b))

	line := b.Title + d.meta.Render(meta)
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW) + "\x1b[0m"
	}

	fmt.Fprint(w, style.Render(line))
}

func newBoardsList() list.Model {
	l := list.New([]list.Item{}, newBoardRowDelegate(), 0, 0)
	l.Title = "Boards"
	// We render our own chrome (search line, footer); keep the list minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Server-side search replaces the bubbles filter here.
	l.SetFilteringEnabled(false)
	// ESC is "back/cancel", never quit.
	l.KeyMap.Quit.SetKeys("q")
	return l
}

// syncBoardsList mirrors the controller's results into the bubbles list,
// keeping the cursor on the same row where possible.
func (m *appModel) syncBoardsList() {
	boards := m.ctrl.Boards()
	items := make([]list.Item, 0, len(boards))
	for _, b := range boards {
		items = append(items, boardRowItem{board: b})
	}
	idx := m.boardsList.Index()
	m.boardsList.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.boardsList.Select(idx)
	}
}
