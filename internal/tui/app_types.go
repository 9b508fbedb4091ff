package tui

import (
	"bingo-cli/internal/api"
	"bingo-cli/internal/listing"
	"bingo-cli/internal/model"
	"bingo-cli/internal/session"
)

type view int

const (
	viewListing view = iota
	viewBoard
	viewCreate
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEditCell
	modalSearch
)

// Async results carry the app generation so anything resolving after the user
// navigated away is dropped in Update. The listing controller and edit session
// have their own generations on top of this; the app gen covers view-level
// teardown (e.g. a board load finishing after returning to the listing).

type userLoadedMsg struct {
	gen  int
	user *model.User
	err  error
}

type boardsPageMsg struct {
	gen   int
	fetch listing.Fetch
	page  api.BoardPage
	err   error
}

type boardOpenedMsg struct {
	gen   int
	board model.Board
	cells []model.Cell
	err   error
}

type cellSavedMsg struct {
	gen  int
	save session.Save
	cell model.Cell
	err  error
}

type cellMarkedMsg struct {
	gen  int
	cell model.Cell
	err  error
}

type boardCreatedMsg struct {
	gen   int
	board model.Board
	err   error
}

// cachedBoardsMsg carries the offline fallback rows loaded after a listing
// reset failure. Errors are swallowed; the cache is best-effort.
type cachedBoardsMsg struct {
	gen    int
	boards []model.Board
}
