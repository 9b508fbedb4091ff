package tui

import (
	"bingo-cli/internal/grid"
	"bingo-cli/internal/model"
	"bingo-cli/internal/session"
)

func projectBoard(b *model.Board, cells []model.Cell) []*grid.Slot {
	return grid.Project(cells, b.Settings.Size, b.Settings.FreeSpace)
}

func freshSession() *session.Session {
	return session.New()
}

func (m *appModel) resizeLists() {
	w := m.width
	h := m.height - chromeHeight
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.boardsList.SetSize(w, h)
}
