package api

import (
	"context"

	"bingo-cli/internal/model"
)

// BoardPage is one window of listing results. HasMore is a pointer because
// older servers omit the field entirely; the listing controller applies a
// page-length heuristic when it is nil.
type BoardPage struct {
	Boards  []model.Board `json:"boards"`
	HasMore *bool         `json:"hasMore,omitempty"`
}

// Service is the board backend as seen by this client. Implementations must be
// safe for use from a single goroutine per call; the state machines above it
// already serialize their own requests.
type Service interface {
	ListBoards(ctx context.Context, q model.ListQuery) (BoardPage, error)
	GetBoard(ctx context.Context, ownerHandle, slug string) (model.Board, error)
	ListCells(ctx context.Context, boardID string) ([]model.Cell, error)
	UpdateCell(ctx context.Context, boardID, cellID, value string) (model.Cell, error)
	MarkCell(ctx context.Context, boardID, cellID string, marked bool) (model.Cell, error)
	CreateBoard(ctx context.Context, spec model.BoardSpec) (model.Board, error)

	// CurrentUser returns nil (not an error) for unauthenticated sessions.
	CurrentUser(ctx context.Context) (*model.User, error)
}
