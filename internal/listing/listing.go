package listing

import (
	"context"
	"errors"
	"strings"

	"bingo-cli/internal/api"
	"bingo-cli/internal/model"
)

const DefaultLimit = 20

// ErrFetchInFlight is returned when a second fetch is requested while one is
// outstanding. Callers must not queue; they retry after the current fetch
// resolves.
var ErrFetchInFlight = errors.New("listing: a fetch is already in flight")

// Fetch is a started-but-not-applied page request. The generation pins it to
// the controller state it was issued against; a stale Fetch applies as a no-op.
type Fetch struct {
	Query model.ListQuery
	Reset bool

	gen int
}

// Controller owns one listing view's query state and accumulated results.
// It is an explicit per-view object: two listing views get two controllers
// and never share state.
//
// Results keep server page order and are never re-sorted client-side.
type Controller struct {
	query    model.ListQuery
	boards   []model.Board
	hasMore  bool
	lastErr  error
	inFlight bool

	// needsReset is set when search/sort change so the next fetch cannot be a
	// plain load-more against a stale offset.
	needsReset bool

	// gen invalidates in-flight fetches on teardown or query changes.
	gen int
}

func NewController() *Controller {
	return &Controller{
		query: model.ListQuery{
			SortBy:    model.SortByLastUpdated,
			SortOrder: model.SortDesc,
			Limit:     DefaultLimit,
		},
	}
}

func (c *Controller) Boards() []model.Board { return c.boards }
func (c *Controller) HasMore() bool         { return c.hasMore }
func (c *Controller) Err() error            { return c.lastErr }
func (c *Controller) InFlight() bool        { return c.inFlight }
func (c *Controller) Query() model.ListQuery { return c.query }

// SetSearch changes the search text. Any in-flight fetch is invalidated and
// the next fetch is forced to reset from offset 0.
func (c *Controller) SetSearch(s string) {
	s = strings.TrimSpace(s)
	if s == c.query.Search {
		return
	}
	c.query.Search = s
	c.invalidate()
}

// SetSort changes the sort key/order, with the same reset semantics as SetSearch.
func (c *Controller) SetSort(by model.SortBy, order model.SortOrder) {
	if by == c.query.SortBy && order == c.query.SortOrder {
		return
	}
	c.query.SortBy = by
	c.query.SortOrder = order
	c.invalidate()
}

func (c *Controller) SetLimit(n int) {
	if n <= 0 {
		n = DefaultLimit
	}
	c.query.Limit = n
}

func (c *Controller) invalidate() {
	c.gen++
	c.inFlight = false
	c.needsReset = true
}

// Teardown discards any in-flight fetch's effect on this controller. Call it
// when the view goes away; a late Apply becomes a no-op.
func (c *Controller) Teardown() {
	c.gen++
	c.inFlight = false
}

// StartReset begins a fresh page-0 fetch. The caller runs the returned query
// against the service and feeds the outcome to Apply.
func (c *Controller) StartReset() (Fetch, error) {
	if c.inFlight {
		return Fetch{}, ErrFetchInFlight
	}
	c.query.Offset = 0
	c.needsReset = false
	c.inFlight = true
	return Fetch{Query: c.query, Reset: true, gen: c.gen}, nil
}

// StartLoadMore begins the next-page fetch, advancing the offset first. If the
// query changed since the last applied page, it degrades to a reset.
func (c *Controller) StartLoadMore() (Fetch, error) {
	if c.inFlight {
		return Fetch{}, ErrFetchInFlight
	}
	if c.needsReset {
		return c.StartReset()
	}
	c.query.Offset += c.query.Limit
	c.inFlight = true
	return Fetch{Query: c.query, Reset: false, gen: c.gen}, nil
}

// Apply folds a completed fetch into the controller.
//
// Reset failure leaves an empty, error-displayable state. Load-more failure
// rolls the offset back and keeps the already-loaded results; the error is
// surfaced but nothing is retried automatically.
func (c *Controller) Apply(f Fetch, page api.BoardPage, err error) {
	if f.gen != c.gen {
		// The view moved on (teardown or query change) while this fetch was
		// in flight; its result must not touch current state.
		return
	}
	c.inFlight = false

	if err != nil {
		c.lastErr = err
		if f.Reset {
			c.boards = []model.Board{}
			c.hasMore = false
		} else {
			c.query.Offset -= c.query.Limit
		}
		return
	}

	c.lastErr = nil
	if f.Reset {
		c.boards = append([]model.Board(nil), page.Boards...)
	} else {
		c.boards = append(c.boards, page.Boards...)
	}

	if page.HasMore != nil {
		c.hasMore = *page.HasMore
	} else {
		// Heuristic fallback: a full page probably has a successor. An
		// exact-multiple final page misclassifies as "more" and corrects
		// itself on the next (empty) fetch.
		c.hasMore = len(page.Boards) == f.Query.Limit
	}
}

// Refresh is the synchronous reset used by the CLI, where blocking the caller
// at the fetch is fine.
func (c *Controller) Refresh(ctx context.Context, svc api.Service) error {
	f, err := c.StartReset()
	if err != nil {
		return err
	}
	page, ferr := svc.ListBoards(ctx, f.Query)
	c.Apply(f, page, ferr)
	return ferr
}

// More is the synchronous load-more counterpart of Refresh.
func (c *Controller) More(ctx context.Context, svc api.Service) error {
	f, err := c.StartLoadMore()
	if err != nil {
		return err
	}
	page, ferr := svc.ListBoards(ctx, f.Query)
	c.Apply(f, page, ferr)
	return ferr
}
