package session

import (
	"context"
	"errors"

	"bingo-cli/internal/api"
	"bingo-cli/internal/grid"
	"bingo-cli/internal/model"
	"bingo-cli/internal/perm"
)

type State int

const (
	StateIdle State = iota
	StateEditing
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return "unknown"
	}
}

var (
	// ErrEditInProgress: only one cell may be in editing/saving at a time.
	ErrEditInProgress = errors.New("session: another cell edit is in progress")
	ErrNotEditable    = errors.New("session: cell is not editable")
	ErrWrongState     = errors.New("session: operation not legal in current state")
)

// Save is a started-but-unresolved save. Like listing.Fetch, it carries a
// generation so a save resolving after teardown cannot corrupt a new view.
type Save struct {
	CellID string
	Value  string

	gen int
}

// Session is one board view's edit-and-save state machine:
//
//	Idle -> Editing -> Saving -> Idle        (success)
//	                        \-> Editing      (failure, draft retained)
//
// Each board view owns its own Session; there is no cross-view state.
type Session struct {
	state   State
	cellID  string
	draft   string
	lastErr error
	gen     int
}

func New() *Session { return &Session{} }

func (s *Session) State() State   { return s.state }
func (s *Session) CellID() string { return s.cellID }
func (s *Session) Draft() string  { return s.draft }
func (s *Session) Err() error     { return s.lastErr }

// StartEdit moves Idle -> Editing for the given slot. It refuses free-space
// slots and users without edit capability, and refuses while another cell is
// editing or saving.
func (s *Session) StartEdit(caps perm.Capabilities, slot *grid.Slot) error {
	if s.state != StateIdle {
		return ErrEditInProgress
	}
	if slot == nil || slot.IsFreeSpace || !caps.CanEdit {
		return ErrNotEditable
	}
	s.state = StateEditing
	s.cellID = slot.ID
	s.draft = slot.Value
	s.lastErr = nil
	return nil
}

// UpdateDraft replaces the draft text. Legal only while Editing.
func (s *Session) UpdateDraft(text string) error {
	if s.state != StateEditing {
		return ErrWrongState
	}
	s.draft = text
	return nil
}

// Cancel discards the draft and returns to Idle. Legal only while Editing;
// a save already in flight cannot be canceled, only ignored via Teardown.
func (s *Session) Cancel() error {
	if s.state != StateEditing {
		return ErrWrongState
	}
	s.reset()
	return nil
}

// StartSave moves Editing -> Saving and hands the caller the request to run.
// The outcome goes back through Resolve.
func (s *Session) StartSave() (Save, error) {
	if s.state != StateEditing {
		return Save{}, ErrWrongState
	}
	s.state = StateSaving
	s.lastErr = nil
	return Save{CellID: s.cellID, Value: s.draft, gen: s.gen}, nil
}

// Resolve folds a finished save into the session. On success the updated cell
// is returned for the caller to fold into its grid; on failure the session
// returns to Editing with the draft intact and the error attached.
//
// A save from a torn-down generation resolves as a no-op.
func (s *Session) Resolve(sv Save, cell model.Cell, err error) (model.Cell, bool) {
	if sv.gen != s.gen || s.state != StateSaving {
		return model.Cell{}, false
	}
	if err != nil {
		s.state = StateEditing
		s.lastErr = err
		return model.Cell{}, false
	}
	s.reset()
	return cell, true
}

// SaveTo runs the full save cycle synchronously against the service. The TUI
// uses StartSave/Resolve around a command instead.
func (s *Session) SaveTo(ctx context.Context, svc api.Service, boardID string) (model.Cell, error) {
	sv, err := s.StartSave()
	if err != nil {
		return model.Cell{}, err
	}
	cell, serr := svc.UpdateCell(ctx, boardID, sv.CellID, sv.Value)
	applied, ok := s.Resolve(sv, cell, serr)
	if serr != nil {
		return model.Cell{}, serr
	}
	if !ok {
		return model.Cell{}, ErrWrongState
	}
	return applied, nil
}

// Teardown abandons whatever is in progress. In-flight saves still hit the
// server (the request is not recalled) but their resolution is a no-op here.
func (s *Session) Teardown() {
	s.gen++
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.cellID = ""
	s.draft = ""
	s.lastErr = nil
}
