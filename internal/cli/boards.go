package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bingo-cli/internal/api"
	"bingo-cli/internal/cache"
	"bingo-cli/internal/create"
	"bingo-cli/internal/grid"
	"bingo-cli/internal/listing"
	"bingo-cli/internal/model"
	"bingo-cli/internal/perm"
)

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Board commands",
	}
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsShowCmd(app))
	cmd.AddCommand(newBoardsCreateCmd(app))
	cmd.AddCommand(newBoardsRecentCmd(app))
	return cmd
}

func sortByFromFlag(s string) (model.SortBy, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "last_updated", "updated":
		return model.SortByLastUpdated, nil
	case "created":
		return model.SortByCreated, nil
	case "title":
		return model.SortByTitle, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want last_updated|created|title)", s)
	}
}

func sortOrderFromFlag(s string) (model.SortOrder, error) {
	switch strings.TrimSpace(strings.ToUpper(s)) {
	case "", "DESC":
		return model.SortDesc, nil
	case "ASC":
		return model.SortAsc, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want ASC|DESC)", s)
	}
}

func newBoardsListCmd(app *App) *cobra.Command {
	var (
		search string
		sortBy string
		order  string
		limit  int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List public boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			by, err := sortByFromFlag(sortBy)
			if err != nil {
				return writeErr(cmd, err)
			}
			ord, err := sortOrderFromFlag(order)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctrl := listing.NewController()
			ctrl.SetLimit(limit)
			ctrl.SetSearch(search)
			ctrl.SetSort(by, ord)

			svc := app.service()
			ctx := cmd.Context()
			if err := ctrl.Refresh(ctx, svc); err != nil {
				return writeErr(cmd, err)
			}
			for all && ctrl.HasMore() {
				if err := ctrl.More(ctx, svc); err != nil {
					return writeErr(cmd, err)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": ctrl.Boards(),
				"meta": map[string]any{"hasMore": ctrl.HasMore()},
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Search text")
	cmd.Flags().StringVar(&sortBy, "sort", "last_updated", "Sort key (last_updated|created|title)")
	cmd.Flags().StringVar(&order, "order", "DESC", "Sort order (ASC|DESC)")
	cmd.Flags().IntVar(&limit, "limit", listing.DefaultLimit, "Page size")
	cmd.Flags().BoolVar(&all, "all", false, "Follow pagination to the end")
	return cmd
}

// splitBoardRef parses "owner/slug" references.
func splitBoardRef(ref string) (owner, slug string, err error) {
	parts := strings.SplitN(strings.TrimSpace(ref), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("board reference must be owner/slug, got %q", ref)
	}
	return parts[0], parts[1], nil
}

type slotView struct {
	Row         int            `json:"row"`
	Col         int            `json:"col"`
	ID          string         `json:"id,omitempty"`
	Value       string         `json:"value,omitempty"`
	Type        model.CellType `json:"type,omitempty"`
	Marked      bool           `json:"marked"`
	IsFreeSpace bool           `json:"isFreeSpace"`
	Empty       bool           `json:"empty"`
}

func slotViews(slots []*grid.Slot, size int) []slotView {
	out := make([]slotView, 0, len(slots))
	for i, s := range slots {
		v := slotView{Row: i / size, Col: i % size, Empty: s == nil}
		if s != nil {
			v.ID = s.ID
			v.Value = s.Value
			v.Type = s.Type
			v.Marked = s.Marked
			v.IsFreeSpace = s.IsFreeSpace
		}
		out = append(out, v)
	}
	return out
}

func newBoardsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <owner/slug>",
		Short: "Show a board with its projected grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, slug, err := splitBoardRef(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			svc := app.service()
			ctx := cmd.Context()

			board, err := svc.GetBoard(ctx, owner, slug)
			if err != nil {
				return writeErr(cmd, err)
			}
			cells, err := svc.ListCells(ctx, board.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			user, err := svc.CurrentUser(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			rememberBoard(ctx, board)

			slots := grid.Project(cells, board.Settings.Size, board.Settings.FreeSpace)
			caps := perm.EvalCapabilities(user, &board)

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"board":                board,
					"grid":                 slotViews(slots, board.Settings.Size),
					"completionPercentage": grid.CompletionPercent(&board),
					"capabilities":         caps,
				},
			})
		},
	}
	return cmd
}

// rememberBoard updates the recent-boards cache. Failures are invisible: the
// cache is a convenience, never a reason to fail a command.
func rememberBoard(ctx context.Context, b model.Board) {
	dir, err := cache.DefaultDir()
	if err != nil {
		return
	}
	_ = cache.Cache{Dir: dir}.Put(ctx, b)
}

func newBoardsCreateCmd(app *App) *cobra.Command {
	var (
		title         string
		description   string
		size          int
		public        bool
		freeSpace     bool
		createdByName string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.service()
			ctx := cmd.Context()

			user, err := svc.CurrentUser(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			spec := model.BoardSpec{
				Title:     title,
				Size:      size,
				IsPublic:  public,
				FreeSpace: freeSpace,
			}
			if strings.TrimSpace(description) != "" {
				d := description
				spec.Description = &d
			}
			if strings.TrimSpace(createdByName) != "" {
				n := createdByName
				spec.CreatedByName = &n
			}

			spec, violations := create.Check(spec, user)
			if len(violations) > 0 {
				return writeErr(cmd, &api.ValidationError{Violations: violations})
			}

			board, err := svc.CreateBoard(ctx, spec)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": board})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Board title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Board description")
	cmd.Flags().IntVar(&size, "size", 5, "Grid size (3-9)")
	cmd.Flags().BoolVar(&public, "public", true, "List the board publicly")
	cmd.Flags().BoolVar(&freeSpace, "free-space", true, "Center free space (odd sizes only)")
	cmd.Flags().StringVar(&createdByName, "created-by-name", "", "Display name for anonymous authors")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newBoardsRecentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently viewed boards (local cache, works offline)",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			boards, err := (cache.Cache{Dir: dir}).Recent(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": boards})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum boards to return")
	return cmd
}
