package create

import (
	"strings"
	"testing"

	"bingo-cli/internal/model"
)

func strPtr(s string) *string { return &s }

func fields(spec model.BoardSpec) map[string]string {
	out := map[string]string{}
	for _, v := range Validate(spec) {
		out[v.Field] = v.Msg
	}
	return out
}

func TestValidateTitle(t *testing.T) {
	if f := fields(model.BoardSpec{Title: "", Size: 5}); f["title"] == "" {
		t.Fatalf("empty title must be rejected: %v", f)
	}
	if f := fields(model.BoardSpec{Title: "   ", Size: 5}); f["title"] == "" {
		t.Fatalf("whitespace title must be rejected: %v", f)
	}
	if f := fields(model.BoardSpec{Title: strings.Repeat("x", 101), Size: 5}); f["title"] == "" {
		t.Fatalf("overlong title must be rejected: %v", f)
	}
	if f := fields(model.BoardSpec{Title: strings.Repeat("x", 100), Size: 5}); f["title"] != "" {
		t.Fatalf("100-char title is legal: %v", f)
	}
}

func TestValidateDescription(t *testing.T) {
	long := strings.Repeat("d", 501)
	if f := fields(model.BoardSpec{Title: "t", Size: 5, Description: &long}); f["description"] == "" {
		t.Fatalf("overlong description must be rejected: %v", f)
	}
	ok := strings.Repeat("d", 500)
	if f := fields(model.BoardSpec{Title: "t", Size: 5, Description: &ok}); f["description"] != "" {
		t.Fatalf("500-char description is legal: %v", f)
	}
	if f := fields(model.BoardSpec{Title: "t", Size: 5}); f["description"] != "" {
		t.Fatalf("absent description is legal: %v", f)
	}
}

func TestValidateSizeBounds(t *testing.T) {
	for _, size := range []int{2, 0, -1, 10, 42} {
		if f := fields(model.BoardSpec{Title: "t", Size: size}); f["size"] == "" {
			t.Fatalf("size %d must be rejected", size)
		}
	}
	for size := 3; size <= 9; size++ {
		if f := fields(model.BoardSpec{Title: "t", Size: size}); f["size"] != "" {
			t.Fatalf("size %d is legal: %v", size, f)
		}
	}
}

func TestValidateFreeSpaceLeniency(t *testing.T) {
	// freeSpace on an even-sized board has no effect but is not an error.
	if f := fields(model.BoardSpec{Title: "t", Size: 4, FreeSpace: true}); len(f) != 0 {
		t.Fatalf("even size with freeSpace should validate: %v", f)
	}
}

func TestValidateReportsAllViolationsAtOnce(t *testing.T) {
	long := strings.Repeat("d", 600)
	vs := Validate(model.BoardSpec{Title: "", Size: 1, Description: &long})
	if len(vs) != 3 {
		t.Fatalf("want 3 violations, got %d: %v", len(vs), vs)
	}
}

func TestNormalizeCreatedByNameForAnonymousActor(t *testing.T) {
	anon := &model.User{Username: "Anonymous User", AuthProvider: "anonymous"}

	// Blank after trimming: omitted entirely.
	n := Normalize(model.BoardSpec{Title: "t", Size: 5, CreatedByName: strPtr("   ")}, anon)
	if n.CreatedByName != nil {
		t.Fatalf("blank createdByName must be dropped, got %q", *n.CreatedByName)
	}

	// Provided: trimmed and kept.
	n = Normalize(model.BoardSpec{Title: "t", Size: 5, CreatedByName: strPtr("  Casey  ")}, anon)
	if n.CreatedByName == nil || *n.CreatedByName != "Casey" {
		t.Fatalf("createdByName = %v, want Casey", n.CreatedByName)
	}

	// Left out: stays out.
	n = Normalize(model.BoardSpec{Title: "t", Size: 5}, anon)
	if n.CreatedByName != nil {
		t.Fatalf("absent createdByName must stay absent")
	}
}

func TestNormalizeStripsCreatedByNameForSignedInActor(t *testing.T) {
	u := &model.User{UserID: "u1", Username: "alice", AuthProvider: "github"}
	n := Normalize(model.BoardSpec{Title: "t", Size: 5, CreatedByName: strPtr("Casey")}, u)
	if n.CreatedByName != nil {
		t.Fatalf("signed-in actors never submit createdByName")
	}
}

func TestNormalizeTrimsTitleAndDescription(t *testing.T) {
	n := Normalize(model.BoardSpec{Title: "  hello  ", Size: 5, Description: strPtr("  ")}, nil)
	if n.Title != "hello" {
		t.Fatalf("title = %q", n.Title)
	}
	if n.Description != nil {
		t.Fatalf("blank description must be dropped")
	}
}

func TestCheck(t *testing.T) {
	anon := &model.User{AuthProvider: "anonymous"}
	spec, vs := Check(model.BoardSpec{Title: " ok ", Size: 5, CreatedByName: strPtr(" N ")}, anon)
	if len(vs) != 0 {
		t.Fatalf("unexpected violations: %v", vs)
	}
	if spec.Title != "ok" || spec.CreatedByName == nil || *spec.CreatedByName != "N" {
		t.Fatalf("normalized spec: %+v", spec)
	}
}
