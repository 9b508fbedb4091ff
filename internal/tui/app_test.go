package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"bingo-cli/internal/api"
	"bingo-cli/internal/model"
	"bingo-cli/internal/session"
)

type fakeSvc struct {
	user      *model.User
	boards    []model.Board
	cells     map[string][]model.Cell
	listErr   error
	updateErr error
	markErr   error
}

func (f *fakeSvc) ListBoards(_ context.Context, _ model.ListQuery) (api.BoardPage, error) {
	if f.listErr != nil {
		return api.BoardPage{}, f.listErr
	}
	no := false
	return api.BoardPage{Boards: f.boards, HasMore: &no}, nil
}

func (f *fakeSvc) GetBoard(_ context.Context, _, slug string) (model.Board, error) {
	for _, b := range f.boards {
		if b.Slug == slug {
			return b, nil
		}
	}
	return model.Board{}, &api.NotFoundError{Kind: "board", Ref: slug}
}

func (f *fakeSvc) ListCells(_ context.Context, boardID string) ([]model.Cell, error) {
	return f.cells[boardID], nil
}

func (f *fakeSvc) UpdateCell(_ context.Context, boardID, cellID, value string) (model.Cell, error) {
	if f.updateErr != nil {
		return model.Cell{}, f.updateErr
	}
	for _, c := range f.cells[boardID] {
		if c.ID == cellID {
			c.Value = value
			return c, nil
		}
	}
	return model.Cell{}, &api.NotFoundError{Kind: "cell", Ref: cellID}
}

func (f *fakeSvc) MarkCell(_ context.Context, boardID, cellID string, marked bool) (model.Cell, error) {
	if f.markErr != nil {
		return model.Cell{}, f.markErr
	}
	for _, c := range f.cells[boardID] {
		if c.ID == cellID {
			c.Marked = marked
			return c, nil
		}
	}
	return model.Cell{}, &api.NotFoundError{Kind: "cell", Ref: cellID}
}

func (f *fakeSvc) CreateBoard(_ context.Context, spec model.BoardSpec) (model.Board, error) {
	return model.Board{
		ID:       "new",
		Slug:     "new",
		Title:    spec.Title,
		Settings: model.BoardSettings{Size: spec.Size, FreeSpace: spec.FreeSpace},
	}, nil
}

func (f *fakeSvc) CurrentUser(_ context.Context) (*model.User, error) {
	return f.user, nil
}

func testSvc() *fakeSvc {
	return &fakeSvc{
		user: &model.User{UserID: "u1", Username: "pat", IsAdmin: true},
		boards: []model.Board{
			{
				ID: "b1", Slug: "movie-night", CreatorID: "u1", CreatorUsername: "pat",
				Title: "Movie night", Settings: model.BoardSettings{Size: 3, FreeSpace: true},
				CellCount: 9, MarkedCount: 3,
			},
			{
				ID: "b2", Slug: "standup", CreatorID: "u2", CreatorUsername: "kim",
				Title: "Standup", Settings: model.BoardSettings{Size: 3},
				CellCount: 9,
			},
		},
		cells: map[string][]model.Cell{
			"b1": {
				{ID: "c0", BoardID: "b1", Row: 0, Col: 0, Type: model.CellTypeText, Value: "popcorn"},
				{ID: "c1", BoardID: "b1", Row: 0, Col: 1, Type: model.CellTypeText, Value: "sequel", Marked: true},
				{ID: "c2", BoardID: "b1", Row: 2, Col: 2, Type: model.CellTypeText, Value: "plot hole"},
			},
		},
	}
}

func apply(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mm, _ := m.Update(msg)
	out, ok := mm.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", mm)
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// loadedModel drives the app through user load and the initial listing fetch.
func loadedModel(t *testing.T, svc *fakeSvc) appModel {
	t.Helper()
	m := newAppModel(svc, "http://test")
	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	userCmd := (&m).loadUserCmd()
	resetCmd := (&m).resetListingCmd()
	m = apply(t, m, userCmd())
	m = apply(t, m, resetCmd())
	return m
}

// openedBoard takes a loaded model into the first board's view.
func openedBoard(t *testing.T, svc *fakeSvc) appModel {
	t.Helper()
	m := loadedModel(t, svc)
	(&m).teardownView()
	openCmd := (&m).openBoardCmd(svc.boards[0])
	m = apply(t, m, openCmd())
	if m.view != viewBoard {
		t.Fatalf("view = %v, want viewBoard", m.view)
	}
	return m
}

func TestInitialListingLoads(t *testing.T) {
	m := loadedModel(t, testSvc())

	if got := len(m.ctrl.Boards()); got != 2 {
		t.Fatalf("boards = %d, want 2", got)
	}
	if got := len(m.boardsList.Items()); got != 2 {
		t.Fatalf("list items = %d, want 2", got)
	}
	if m.user == nil || m.user.Username != "pat" {
		t.Fatalf("user = %+v", m.user)
	}
}

func TestStalePageDiscardedAfterNavigation(t *testing.T) {
	svc := testSvc()
	m := loadedModel(t, svc)

	staleGen := m.gen
	(&m).teardownView()

	late := boardsPageMsg{gen: staleGen, err: nil}
	before := len(m.ctrl.Boards())
	m = apply(t, m, late)
	if len(m.ctrl.Boards()) != before {
		t.Fatalf("stale page mutated listing")
	}
	if m.notice != "" {
		t.Fatalf("stale page set notice %q", m.notice)
	}
}

func TestResetFailureFallsBackToCachedBoards(t *testing.T) {
	svc := testSvc()
	svc.listErr = &api.NetworkError{Op: "list boards", Err: context.DeadlineExceeded}
	m := newAppModel(svc, "http://test")
	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	resetCmd := (&m).resetListingCmd()
	m = apply(t, m, resetCmd())

	if len(m.ctrl.Boards()) != 0 {
		t.Fatalf("failed reset should leave no live boards")
	}
	if m.notice == "" {
		t.Fatalf("reset failure should set a notice")
	}

	cached := []model.Board{{ID: "b9", Slug: "offline", Title: "Offline board"}}
	m = apply(t, m, cachedBoardsMsg{gen: m.gen, boards: cached})

	if got := len(m.boardsList.Items()); got != 1 {
		t.Fatalf("cached rows = %d, want 1", got)
	}
	if !strings.Contains(m.notice, "cache") {
		t.Fatalf("notice should mention the cache: %q", m.notice)
	}
}

func TestOpenBoardProjectsGrid(t *testing.T) {
	m := openedBoard(t, testSvc())

	if len(m.slots) != 9 {
		t.Fatalf("slots = %d, want 9", len(m.slots))
	}
	free := m.slots[4]
	if free == nil || !free.IsFreeSpace {
		t.Fatalf("center slot = %+v, want free space", free)
	}
	if !m.caps.CanEdit {
		t.Fatalf("admin should have edit access")
	}
}

func TestEditModalSaveFlow(t *testing.T) {
	svc := testSvc()
	m := openedBoard(t, svc)

	m = apply(t, m, key("e"))
	if m.modal != modalEditCell {
		t.Fatalf("modal = %v, want edit", m.modal)
	}
	if got := m.editInput.Value(); got != "popcorn" {
		t.Fatalf("draft seed = %q", got)
	}

	m = apply(t, m, key("x"))
	m = apply(t, m, key("enter"))
	if m.sess.State() != session.StateSaving {
		t.Fatalf("state = %v, want saving", m.sess.State())
	}

	sv := pendingSave(m)
	cell, err := svc.UpdateCell(context.Background(), "b1", sv.CellID, sv.Value)
	if err != nil {
		t.Fatal(err)
	}
	m = apply(t, m, cellSavedMsg{gen: m.gen, save: sv, cell: cell})

	if m.modal != modalNone {
		t.Fatalf("modal still open after save")
	}
	if m.sess.State() != session.StateIdle {
		t.Fatalf("state = %v, want idle", m.sess.State())
	}
	if got := m.slots[0].Value; got != "popcornx" {
		t.Fatalf("slot value = %q", got)
	}
}

func TestSaveFailureKeepsDraftAndModal(t *testing.T) {
	svc := testSvc()
	m := openedBoard(t, svc)

	m = apply(t, m, key("e"))
	m = apply(t, m, key("enter"))

	m = apply(t, m, cellSavedMsg{gen: m.gen, save: pendingSave(m), err: &api.ConflictError{Ref: "c0"}})

	if m.modal != modalEditCell {
		t.Fatalf("modal closed on failure")
	}
	if m.sess.State() != session.StateEditing {
		t.Fatalf("state = %v, want editing", m.sess.State())
	}
	if m.sess.Draft() != "popcorn" {
		t.Fatalf("draft lost: %q", m.sess.Draft())
	}
	if m.sess.Err() == nil {
		t.Fatalf("session error not retained")
	}
}

func TestFreeSpaceRefusesEdit(t *testing.T) {
	m := openedBoard(t, testSvc())

	m.cursor = 4
	m = apply(t, m, key("e"))
	if m.modal != modalNone {
		t.Fatalf("free space opened edit modal")
	}
	if m.boardErr == "" {
		t.Fatalf("expected refusal text")
	}
}

func TestReadOnlyBoardRefusesEdit(t *testing.T) {
	svc := testSvc()
	svc.user = &model.User{UserID: "u9", Username: "sam"}
	m := openedBoard(t, svc)

	if m.caps.CanEdit {
		t.Fatalf("non-creator should not have edit access")
	}
	m = apply(t, m, key("e"))
	if m.modal != modalNone {
		t.Fatalf("edit modal opened without capability")
	}
	if !strings.Contains(m.boardErr, "edit access") {
		t.Fatalf("boardErr = %q", m.boardErr)
	}
}

func TestMarkUpdatesSlotAndCounter(t *testing.T) {
	svc := testSvc()
	m := openedBoard(t, svc)

	before := m.board.MarkedCount
	m = apply(t, m, key("m"))
	if !m.marking {
		t.Fatalf("marking flag not set")
	}

	markCmd := (&m).markCellCmd("c0", true)
	m = apply(t, m, markCmd())

	if m.marking {
		t.Fatalf("marking flag not cleared")
	}
	if !m.slots[0].Marked {
		t.Fatalf("slot not marked")
	}
	if m.board.MarkedCount != before+1 {
		t.Fatalf("MarkedCount = %d, want %d", m.board.MarkedCount, before+1)
	}
}

func TestCursorStaysInsideGrid(t *testing.T) {
	m := openedBoard(t, testSvc())

	m = apply(t, m, key("h"))
	if m.cursor != 0 {
		t.Fatalf("cursor moved off left edge")
	}
	m = apply(t, m, key("l"))
	m = apply(t, m, key("j"))
	if m.cursor != 4 {
		t.Fatalf("cursor = %d, want 4", m.cursor)
	}
	m = apply(t, m, key("j"))
	m = apply(t, m, key("j"))
	if m.cursor != 7 {
		t.Fatalf("cursor moved off bottom edge: %d", m.cursor)
	}
}

func TestSearchApplyForcesFreshFetch(t *testing.T) {
	m := loadedModel(t, testSvc())

	m = apply(t, m, key("/"))
	if !m.searchIn.Focused() {
		t.Fatalf("search input not focused")
	}
	for _, r := range "movie" {
		m = apply(t, m, key(string(r)))
	}
	mm, cmd := m.updateListingKeys(key("enter"))
	m = mm.(appModel)
	if cmd == nil {
		t.Fatalf("applying search should start a fetch")
	}
	if m.ctrl.Query().Search != "movie" {
		t.Fatalf("query search = %q", m.ctrl.Query().Search)
	}
	if m.ctrl.Query().Offset != 0 {
		t.Fatalf("search did not reset offset")
	}
}

func TestSearchEscRevertsDraft(t *testing.T) {
	m := loadedModel(t, testSvc())

	m = apply(t, m, key("/"))
	m = apply(t, m, key("x"))
	m = apply(t, m, key("esc"))
	if m.searchIn.Focused() {
		t.Fatalf("search still focused after esc")
	}
	if got := m.searchIn.Value(); got != "" {
		t.Fatalf("search draft not reverted: %q", got)
	}
}

func TestCreateFormRejectsLocally(t *testing.T) {
	m := loadedModel(t, testSvc())

	m = apply(t, m, key("n"))
	if m.view != viewCreate {
		t.Fatalf("view = %v, want create", m.view)
	}

	// Empty title: submit must stay local and flag the field.
	mm, cmd := m.updateCreateKeys(key("enter"))
	m = mm.(appModel)
	if cmd != nil {
		t.Fatalf("invalid form reached the server")
	}
	if m.form.violations["title"] == "" {
		t.Fatalf("missing title violation: %+v", m.form.violations)
	}
	if m.form.submitting {
		t.Fatalf("submitting flag set for invalid form")
	}
}

func TestCreateSuccessEntersBoard(t *testing.T) {
	svc := testSvc()
	m := loadedModel(t, svc)

	m = apply(t, m, key("n"))
	m.form.title.SetValue("Retro bingo")
	m.form.submitting = true

	board, err := svc.CreateBoard(context.Background(), model.BoardSpec{Title: "Retro bingo", Size: 5, FreeSpace: true})
	if err != nil {
		t.Fatal(err)
	}
	m = apply(t, m, boardCreatedMsg{gen: m.gen, board: board})

	if m.view != viewBoard {
		t.Fatalf("view = %v, want board", m.view)
	}
	if len(m.slots) != 25 {
		t.Fatalf("slots = %d, want 25", len(m.slots))
	}
	if m.form.submitting {
		t.Fatalf("submitting flag not cleared")
	}
}

func TestEscFromBoardReturnsToListing(t *testing.T) {
	m := openedBoard(t, testSvc())

	mm, cmd := m.updateBoardKeys(key("esc"))
	m = mm.(appModel)
	if m.view != viewListing {
		t.Fatalf("view = %v, want listing", m.view)
	}
	if m.board != nil {
		t.Fatalf("board state not cleared")
	}
	if cmd == nil {
		t.Fatalf("returning should refetch the listing")
	}
}

func pendingSave(m appModel) session.Save {
	return session.Save{CellID: m.sess.CellID(), Value: m.sess.Draft()}
}
