package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"bingo-cli/internal/model"
	"bingo-cli/internal/perm"
	"bingo-cli/internal/session"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.marking && m.sess.State() != session.StateSaving && !m.form.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case userLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err == nil {
			m.user = msg.user
			m.userSeen = true
			if m.board != nil {
				m.caps = perm.EvalCapabilities(m.user, m.board)
			}
		}
		return m, nil

	case boardsPageMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.ctrl.Apply(msg.fetch, msg.page, msg.err)
		if msg.err != nil {
			if msg.fetch.Reset {
				m.notice = "Couldn't load boards: " + msg.err.Error() + " (press r to retry)"
				m.syncBoardsList()
				return m, m.cachedBoardsCmd()
			}
			// Load-more failure keeps what we have; just tell the user.
			m.notice = "Couldn't load more: " + msg.err.Error()
		} else {
			m.notice = ""
		}
		m.syncBoardsList()
		return m, nil

	case cachedBoardsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		// Only fill in cached rows while the live listing is still empty.
		if len(m.ctrl.Boards()) > 0 || len(msg.boards) == 0 {
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.boards))
		for _, b := range msg.boards {
			items = append(items, boardRowItem{board: b})
		}
		m.boardsList.SetItems(items)
		m.notice += "  Showing recently viewed boards from the local cache."
		return m, nil

	case boardOpenedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.notice = "Couldn't open board: " + msg.err.Error()
			return m, nil
		}
		m.enterBoard(msg.board, msg.cells)
		return m, nil

	case cellSavedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		cell, ok := m.sess.Resolve(msg.save, msg.cell, msg.err)
		if msg.err != nil {
			// Back to Editing with the draft intact; the modal shows the error.
			return m, nil
		}
		if ok {
			m.foldCell(cell)
			m.modal = modalNone
			m.editInput.Blur()
		}
		return m, nil

	case cellMarkedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.marking = false
		if msg.err != nil {
			m.boardErr = "Couldn't update mark: " + msg.err.Error()
			return m, nil
		}
		m.boardErr = ""
		m.foldCell(msg.cell)
		return m, nil

	case boardCreatedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.form.submitting = false
		if msg.err != nil {
			m.form.applyError(msg.err)
			return m, nil
		}
		// Jump straight into the new (empty) board.
		m.enterBoard(msg.board, nil)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewListing:
		return m.updateListingKeys(msg)
	case viewBoard:
		return m.updateBoardKeys(msg)
	case viewCreate:
		return m.updateCreateKeys(msg)
	}
	return m, nil
}

func (m appModel) updateListingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the search input is focused it swallows everything except
	// enter (apply) and esc (abandon).
	if m.searchIn.Focused() {
		switch msg.String() {
		case "enter":
			m.searchIn.Blur()
			m.ctrl.SetSearch(m.searchIn.Value())
			return m, m.resetListingCmd()
		case "esc":
			m.searchIn.Blur()
			m.searchIn.SetValue(m.ctrl.Query().Search)
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchIn, cmd = m.searchIn.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchIn.Focus()
		return m, nil
	case "r":
		return m, m.resetListingCmd()
	case "s":
		q := m.ctrl.Query()
		m.ctrl.SetSort(nextSortBy(q.SortBy), q.SortOrder)
		return m, m.resetListingCmd()
	case "o":
		q := m.ctrl.Query()
		order := model.SortDesc
		if q.SortOrder == model.SortDesc {
			order = model.SortAsc
		}
		m.ctrl.SetSort(q.SortBy, order)
		return m, m.resetListingCmd()
	case "m":
		if m.ctrl.HasMore() {
			return m, m.loadMoreCmd()
		}
		return m, nil
	case "n":
		m.view = viewCreate
		m.form = newCreateForm()
		m.form.focusFirst()
		return m, nil
	case "enter":
		if it, ok := m.boardsList.SelectedItem().(boardRowItem); ok {
			m.teardownView()
			return m, m.openBoardCmd(it.board)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.boardsList, cmd = m.boardsList.Update(msg)

	// Reaching the end of the loaded rows pulls the next page in.
	if m.boardsList.Index() == len(m.boardsList.Items())-1 && m.ctrl.HasMore() && !m.ctrl.InFlight() {
		return m, tea.Batch(cmd, m.loadMoreCmd())
	}
	return m, cmd
}

func nextSortBy(by model.SortBy) model.SortBy {
	switch by {
	case model.SortByLastUpdated:
		return model.SortByCreated
	case model.SortByCreated:
		return model.SortByTitle
	default:
		return model.SortByLastUpdated
	}
}

func (m appModel) updateBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal == modalEditCell {
		return m.updateEditModalKeys(msg)
	}
	if m.board == nil {
		if msg.String() == "esc" {
			m.view = viewListing
		}
		return m, nil
	}

	size := m.board.Settings.Size
	switch msg.String() {
	case "esc", "q":
		m.teardownView()
		m.board = nil
		m.slots = nil
		m.boardErr = ""
		m.view = viewListing
		// The listing was torn down along with the board view; refetch it.
		return m, m.resetListingCmd()
	case "up", "k":
		if m.cursor-size >= 0 {
			m.cursor -= size
		}
		return m, nil
	case "down", "j":
		if m.cursor+size < size*size {
			m.cursor += size
		}
		return m, nil
	case "left", "h":
		if m.cursor%size > 0 {
			m.cursor--
		}
		return m, nil
	case "right", "l":
		if m.cursor%size < size-1 {
			m.cursor++
		}
		return m, nil
	case "enter", "e":
		slot := m.slots[m.cursor]
		if err := m.sess.StartEdit(m.caps, slot); err != nil {
			m.boardErr = editRefusalText(m.caps, err)
			return m, nil
		}
		m.boardErr = ""
		m.modal = modalEditCell
		m.editInput.SetValue(m.sess.Draft())
		m.editInput.CursorEnd()
		m.editInput.Focus()
		return m, nil
	case "m", " ":
		slot := m.slots[m.cursor]
		if slot == nil || slot.IsFreeSpace || !m.caps.CanEdit || m.marking {
			return m, nil
		}
		m.marking = true
		return m, tea.Batch(m.markCellCmd(slot.ID, !slot.Marked), m.spin.Tick)
	}
	return m, nil
}

func (m appModel) updateEditModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel is only legal while Editing; during Saving we let the
		// request finish (its result may still be discarded by navigation).
		if err := m.sess.Cancel(); err == nil {
			m.modal = modalNone
			m.editInput.Blur()
		}
		return m, nil
	case "enter":
		if err := m.sess.UpdateDraft(m.editInput.Value()); err != nil {
			return m, nil
		}
		sv, err := m.sess.StartSave()
		if err != nil {
			return m, nil
		}
		return m, tea.Batch(m.saveCellCmd(sv), m.spin.Tick)
	}

	if m.sess.State() != session.StateEditing {
		// Ignore typing while a save is in flight.
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	_ = m.sess.UpdateDraft(m.editInput.Value())
	return m, cmd
}

func editRefusalText(caps perm.Capabilities, err error) string {
	if !caps.CanEdit {
		return "You don't have edit access to this board"
	}
	return strings.TrimPrefix(err.Error(), "session: ")
}

func (m appModel) updateCreateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewListing
		return m, nil
	case "enter":
		if m.form.submitting {
			return m, nil
		}
		spec, ok := m.form.specForSubmit(m.user)
		if !ok {
			return m, nil
		}
		m.form.submitting = true
		return m, tea.Batch(m.createBoardCmd(spec), m.spin.Tick)
	case "tab", "down":
		m.form.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.form.focusPrev()
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// enterBoard swaps the app into a fresh board view. All per-board state is
// rebuilt here; nothing leaks from the previous board.
func (m *appModel) enterBoard(board model.Board, cells []model.Cell) {
	b := board
	m.board = &b
	m.slots = projectBoard(&b, cells)
	m.caps = perm.EvalCapabilities(m.user, m.board)
	m.sess = freshSession()
	m.cursor = 0
	m.boardErr = ""
	m.modal = modalNone
	m.view = viewBoard
}
