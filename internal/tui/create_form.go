package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bingo-cli/internal/api"
	"bingo-cli/internal/create"
	"bingo-cli/internal/identity"
	"bingo-cli/internal/model"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldSize
	fieldPublic
	fieldFreeSpace
	fieldCreatedByName
	fieldCount
)

// createForm holds the board-creation inputs and their violation messages.
// Submit failures re-render field messages without losing anything typed.
type createForm struct {
	title         textinput.Model
	description   textinput.Model
	size          textinput.Model
	createdByName textinput.Model
	public        bool
	freeSpace     bool

	focus      formField
	violations map[string]string
	submitting bool
	submitErr  string
}

func newCreateForm() createForm {
	f := createForm{
		public:     true,
		freeSpace:  true,
		violations: map[string]string{},
	}

	f.title = textinput.New()
	f.title.Placeholder = "Title"
	f.title.CharLimit = create.MaxTitleLen + 20 // let them overtype; validation explains
	f.title.Width = 48

	f.description = textinput.New()
	f.description.Placeholder = "Description (optional)"
	f.description.CharLimit = create.MaxDescriptionLen + 50
	f.description.Width = 48

	f.size = textinput.New()
	f.size.Placeholder = "5"
	f.size.CharLimit = 1
	f.size.Width = 4
	f.size.SetValue("5")

	f.createdByName = textinput.New()
	f.createdByName.Placeholder = "Shown as author (optional)"
	f.createdByName.CharLimit = 60
	f.createdByName.Width = 32

	return f
}

func (f *createForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.description, &f.size, nil, nil, &f.createdByName}
}

func (f *createForm) applyFocus() {
	for i, in := range f.inputs() {
		if in == nil {
			continue
		}
		if formField(i) == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *createForm) focusFirst() {
	f.focus = fieldTitle
	f.applyFocus()
}

func (f *createForm) focusNext() {
	f.focus = (f.focus + 1) % fieldCount
	f.applyFocus()
}

func (f *createForm) focusPrev() {
	f.focus = (f.focus + fieldCount - 1) % fieldCount
	f.applyFocus()
}

func (f createForm) update(msg tea.KeyMsg) (createForm, tea.Cmd) {
	switch f.focus {
	case fieldPublic:
		if msg.String() == " " {
			f.public = !f.public
		}
		return f, nil
	case fieldFreeSpace:
		if msg.String() == " " {
			f.freeSpace = !f.freeSpace
		}
		return f, nil
	}

	ins := f.inputs()
	in := ins[f.focus]
	if in == nil {
		return f, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return f, cmd
}

// specForSubmit validates locally first; the server is only contacted with a
// spec that already passed client-side checks.
func (f *createForm) specForSubmit(user *model.User) (model.BoardSpec, bool) {
	f.violations = map[string]string{}
	f.submitErr = ""

	size, err := strconv.Atoi(strings.TrimSpace(f.size.Value()))
	if err != nil {
		f.violations["size"] = "size must be a number"
		return model.BoardSpec{}, false
	}

	spec := model.BoardSpec{
		Title:     f.title.Value(),
		Size:      size,
		IsPublic:  f.public,
		FreeSpace: f.freeSpace,
	}
	if d := strings.TrimSpace(f.description.Value()); d != "" {
		spec.Description = &d
	}
	if identity.IsAnonymous(user) {
		if n := f.createdByName.Value(); strings.TrimSpace(n) != "" {
			spec.CreatedByName = &n
		}
	}

	spec, violations := create.Check(spec, user)
	if len(violations) > 0 {
		for _, v := range violations {
			f.violations[v.Field] = v.Msg
		}
		return model.BoardSpec{}, false
	}
	return spec, true
}

// applyError folds a submit failure back into the form. Server-side
// validation lands on the same per-field messages as local validation.
func (f *createForm) applyError(err error) {
	if v, ok := api.IsValidation(err); ok {
		for _, violation := range v.Violations {
			if violation.Field == "" {
				f.submitErr = violation.Msg
				continue
			}
			f.violations[violation.Field] = violation.Msg
		}
		return
	}
	f.submitErr = err.Error()
}
