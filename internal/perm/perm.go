package perm

import (
	"bingo-cli/internal/identity"
	"bingo-cli/internal/model"
)

// Capabilities is what the presentation layer may let the user do with a
// loaded board. View access is implied by having the board at all: the server
// refuses to serve private boards to strangers, so there is nothing left to
// check client-side.
type Capabilities struct {
	CanEdit bool `json:"canEdit"`
}

// CanEditBoard decides whether a user may edit a board's cells.
//
// Rules (evaluated in order, any match grants edit):
// - admins edit everything
// - the creator edits their own boards (exact id match)
// - an anonymous session edits anonymous-authored boards; there is no
//   stronger identity to tie an anonymous board to, so any anonymous
//   session is as good as the one that created it
//
// No user (nil) never gets edit.
func CanEditBoard(u *model.User, b *model.Board) bool {
	if u == nil || b == nil {
		return false
	}
	if u.IsAdmin {
		return true
	}
	if u.UserID != "" && u.UserID == b.CreatorID {
		return true
	}
	if identity.IsAnonymous(u) && b.CreatedBy == "anonymous" {
		return true
	}
	return false
}

// EvalCapabilities is pure and holds no state; callers recompute it whenever
// the user or the board changes.
func EvalCapabilities(u *model.User, b *model.Board) Capabilities {
	return Capabilities{CanEdit: CanEditBoard(u, b)}
}
