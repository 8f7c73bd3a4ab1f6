package validator_test

import (
	"errors"
	"testing"

	"github.com/aretw0/shadenet/internal/validator"
	"github.com/aretw0/shadenet/pkg/dsl"
	"github.com/aretw0/shadenet/pkg/schema"
)

func TestValidateStage(t *testing.T) {
	// 1. Scenario A: valid network
	b := dsl.New()
	b.Shader("/Texture").ID("UsdUVTexture").Output("rgb", "color3f")
	b.Class("/classPale").Input("diffuseColor", "color3f").Connect("diffuseColor", "/Texture.outputs:rgb")
	b.Shader("/Pale").Inherits("/classPale").SourceCode("glslfx", "void main() {}")

	st, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if err := validator.ValidateStage(st); err != nil {
		t.Errorf("Scenario A (Valid) failed: %v", err)
	}

	// 2. Scenario B: every kind of finding
	broken := dsl.New()
	broken.Shader("/Texture").Output("rgb", "color3f")
	broken.Shader("/Pale").
		Inherits("/ghostClass").
		SourceAsset("osl", "").
		Input("a", "color3f").Connect("a", "/Ghost.outputs:rgb").
		Input("b", "color3f").Connect("b", "/Texture.outputs:alpha").
		Input("c", "color3f").Connect("c", "/Texture.rgb")

	st, err = broken.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	err = validator.ValidateStage(st)
	if err == nil {
		t.Fatal("Scenario B (Broken) should have failed, but got nil")
	}

	issues := schema.ValidationErrors(err)
	if len(issues) != 6 {
		t.Fatalf("expected 6 issues, got %d:\n%v", len(issues), err)
	}

	counts := map[error]int{}
	for _, issue := range issues {
		for _, sentinel := range []error{
			validator.ErrDanglingConnection,
			validator.ErrNotAPort,
			validator.ErrMissingInherit,
			validator.ErrMissingImplementation,
		} {
			if errors.Is(issue, sentinel) {
				counts[sentinel]++
			}
		}
	}
	want := map[error]int{
		validator.ErrDanglingConnection:    2,
		validator.ErrNotAPort:              1,
		validator.ErrMissingInherit:        1,
		validator.ErrMissingImplementation: 2, // /Texture has no id, /Pale has an empty asset
	}
	for sentinel, n := range want {
		if counts[sentinel] != n {
			t.Errorf("%v: got %d issues, want %d", sentinel, counts[sentinel], n)
		}
	}

	var issue *validator.Issue
	if !errors.As(err, &issue) || issue.Path == "" {
		t.Errorf("expected a located *Issue in %v", err)
	}
	if !errors.Is(err, validator.ErrMissingInherit) {
		t.Error("errors.Is should see through the aggregate")
	}
}
