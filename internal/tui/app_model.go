package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bingo-cli/internal/api"
	"bingo-cli/internal/cache"
	"bingo-cli/internal/grid"
	"bingo-cli/internal/listing"
	"bingo-cli/internal/model"
	"bingo-cli/internal/perm"
	"bingo-cli/internal/session"
)

const requestTimeout = 15 * time.Second

type appModel struct {
	svc    api.Service
	server string

	width  int
	height int

	view  view
	modal modalKind

	// gen invalidates in-flight commands when the user navigates away; a
	// response tagged with an older gen is a no-op.
	gen int

	user     *model.User
	userSeen bool

	// Listing state. The controller is the single owner of query/results;
	// boardsList is just its presentation.
	ctrl       *listing.Controller
	boardsList list.Model
	searchIn   textinput.Model
	loading    bool
	spin       spinner.Model
	notice     string

	// Board view state, rebuilt on every open and discarded on navigation.
	board     *model.Board
	slots     []*grid.Slot
	caps      perm.Capabilities
	sess      *session.Session
	cursor    int
	boardErr  string
	marking   bool
	editInput textinput.Model

	// Create form state.
	form createForm
}

func newAppModel(svc api.Service, server string) appModel {
	m := appModel{
		svc:    svc,
		server: server,
		view:   viewListing,
		ctrl:   listing.NewController(),
		sess:   session.New(),
	}

	m.boardsList = newBoardsList()

	m.searchIn = textinput.New()
	m.searchIn.Placeholder = "Search boards"
	m.searchIn.CharLimit = 120
	m.searchIn.Width = 32

	m.editInput = textinput.New()
	m.editInput.Placeholder = "Cell text or image URL"
	m.editInput.CharLimit = 500
	m.editInput.Width = 48

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot

	m.form = newCreateForm()

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadUserCmd(), m.resetListingCmd(), m.spin.Tick)
}

func reqContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (m *appModel) loadUserCmd() tea.Cmd {
	gen := m.gen
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		u, err := svc.CurrentUser(ctx)
		return userLoadedMsg{gen: gen, user: u, err: err}
	}
}

// resetListingCmd starts a fresh page-0 fetch through the controller. The
// controller mutates only here in the update goroutine; the command just runs
// the query it was handed.
func (m *appModel) resetListingCmd() tea.Cmd {
	f, err := m.ctrl.StartReset()
	if err != nil {
		return nil
	}
	return m.fetchCmd(f)
}

func (m *appModel) loadMoreCmd() tea.Cmd {
	f, err := m.ctrl.StartLoadMore()
	if err != nil {
		return nil
	}
	return m.fetchCmd(f)
}

func (m *appModel) fetchCmd(f listing.Fetch) tea.Cmd {
	m.loading = true
	gen := m.gen
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		page, err := svc.ListBoards(ctx, f.Query)
		return boardsPageMsg{gen: gen, fetch: f, page: page, err: err}
	}
}

// cachedBoardsCmd loads the recently-viewed cache when the listing cannot be
// fetched, so the user still sees something useful offline.
func (m *appModel) cachedBoardsCmd() tea.Cmd {
	gen := m.gen
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		dir, err := cache.DefaultDir()
		if err != nil {
			return cachedBoardsMsg{gen: gen}
		}
		boards, err := (cache.Cache{Dir: dir}).Recent(ctx, listing.DefaultLimit)
		if err != nil {
			return cachedBoardsMsg{gen: gen}
		}
		return cachedBoardsMsg{gen: gen, boards: boards}
	}
}

func (m *appModel) openBoardCmd(b model.Board) tea.Cmd {
	m.loading = true
	gen := m.gen
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		// The listing row may be stale; refetch the board before its cells.
		board, err := svc.GetBoard(ctx, b.CreatorUsername, b.Slug)
		if err != nil {
			return boardOpenedMsg{gen: gen, err: err}
		}
		cells, err := svc.ListCells(ctx, board.ID)
		if err != nil {
			return boardOpenedMsg{gen: gen, err: err}
		}
		return boardOpenedMsg{gen: gen, board: board, cells: cells}
	}
}

func (m *appModel) saveCellCmd(sv session.Save) tea.Cmd {
	gen := m.gen
	svc := m.svc
	boardID := m.board.ID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		cell, err := svc.UpdateCell(ctx, boardID, sv.CellID, sv.Value)
		return cellSavedMsg{gen: gen, save: sv, cell: cell, err: err}
	}
}

func (m *appModel) markCellCmd(cellID string, marked bool) tea.Cmd {
	gen := m.gen
	svc := m.svc
	boardID := m.board.ID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		cell, err := svc.MarkCell(ctx, boardID, cellID, marked)
		return cellMarkedMsg{gen: gen, cell: cell, err: err}
	}
}

func (m *appModel) createBoardCmd(spec model.BoardSpec) tea.Cmd {
	gen := m.gen
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		board, err := svc.CreateBoard(ctx, spec)
		return boardCreatedMsg{gen: gen, board: board, err: err}
	}
}

// teardownView abandons whatever the current view had in flight.
func (m *appModel) teardownView() {
	m.gen++
	m.loading = false
	m.marking = false
	m.sess.Teardown()
	m.ctrl.Teardown()
}

// foldCell replaces the projected slot backing the given cell after a
// successful save or mark. The board's aggregate counters move with marks so
// the completion display stays honest between refetches.
func (m *appModel) foldCell(cell model.Cell) {
	if m.board == nil {
		return
	}
	size := m.board.Settings.Size
	if cell.Row < 0 || cell.Col < 0 || cell.Row >= size || cell.Col >= size {
		return
	}
	idx := cell.Row*size + cell.Col
	prev := m.slots[idx]
	if prev != nil && prev.Marked != cell.Marked {
		if cell.Marked {
			m.board.MarkedCount++
		} else if m.board.MarkedCount > 0 {
			m.board.MarkedCount--
		}
	}
	slot := &grid.Slot{
		ID:     cell.ID,
		Row:    cell.Row,
		Col:    cell.Col,
		Value:  cell.Value,
		Type:   cell.Type,
		Marked: cell.Marked,
	}
	if prev != nil && prev.IsFreeSpace {
		slot.IsFreeSpace = true
		slot.Marked = false
	}
	m.slots[idx] = slot
}
