package create

import (
	"fmt"
	"strings"

	"bingo-cli/internal/api"
	"bingo-cli/internal/identity"
	"bingo-cli/internal/model"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MinSize           = 3
	MaxSize           = 9
)

// Normalize trims the spec and applies the anonymous-author naming rule:
// CreatedByName is attached only for anonymous actors, trimmed, and dropped
// entirely when blank. It is never submitted as an empty string.
func Normalize(spec model.BoardSpec, actor *model.User) model.BoardSpec {
	spec.Title = strings.TrimSpace(spec.Title)
	if spec.Description != nil {
		d := strings.TrimSpace(*spec.Description)
		if d == "" {
			spec.Description = nil
		} else {
			spec.Description = &d
		}
	}

	if !identity.IsAnonymous(actor) {
		spec.CreatedByName = nil
		return spec
	}
	if spec.CreatedByName != nil {
		n := strings.TrimSpace(*spec.CreatedByName)
		if n == "" {
			spec.CreatedByName = nil
		} else {
			spec.CreatedByName = &n
		}
	}
	return spec
}

// Validate checks a normalized spec and reports all field violations at once
// so a form can render every message in a single pass. A nil return means the
// spec may be submitted.
//
// freeSpace is unconstrained: with an even size it has no visible effect at
// projection time, and the server accepts the combination too.
func Validate(spec model.BoardSpec) []api.FieldViolation {
	var out []api.FieldViolation

	title := strings.TrimSpace(spec.Title)
	if title == "" {
		out = append(out, api.FieldViolation{Field: "title", Msg: "title is required"})
	} else if len([]rune(title)) > MaxTitleLen {
		out = append(out, api.FieldViolation{
			Field: "title",
			Msg:   fmt.Sprintf("title must be at most %d characters", MaxTitleLen),
		})
	}

	if spec.Description != nil && len([]rune(*spec.Description)) > MaxDescriptionLen {
		out = append(out, api.FieldViolation{
			Field: "description",
			Msg:   fmt.Sprintf("description must be at most %d characters", MaxDescriptionLen),
		})
	}

	if spec.Size < MinSize || spec.Size > MaxSize {
		out = append(out, api.FieldViolation{
			Field: "size",
			Msg:   fmt.Sprintf("size must be between %d and %d", MinSize, MaxSize),
		})
	}

	return out
}

// Check normalizes and validates in one step; this is what the CLI and the
// create form call before submitting.
func Check(spec model.BoardSpec, actor *model.User) (model.BoardSpec, []api.FieldViolation) {
	n := Normalize(spec, actor)
	return n, Validate(n)
}
