package display

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestModelState_NormalisesKeysAndMessages(t *testing.T) {
	state := NewModelState()
	if !state.IsValid() {
		t.Fatalf("new model state should be valid")
	}

	state.AddModelError("/Article/Tags", " required ")
	state.AddModelError("Article.Tags", "required")
	state.AddModelError("Article[Tags]", "too many")
	state.AddModelError("__all__", "try again")
	state.AddModelError("", "try again")
	state.AddModelError("Article.Title", "   ")

	if state.IsValid() {
		t.Fatalf("expected invalid model state")
	}

	wantFields := map[string][]string{
		"Article.Tags": {"required", "too many"},
	}
	if diff := cmp.Diff(wantFields, state.FieldErrors()); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"try again"}, state.FormErrors()); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Article.Tags"}, state.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestModelState_Merge(t *testing.T) {
	state := NewModelState()
	state.Merge(map[string][]string{
		"#/WidgetStylingPart/CustomClasses": {"invalid class"},
		"form":                              {"stale"},
	})

	if got := state.Errors("WidgetStylingPart.CustomClasses"); len(got) != 1 || got[0] != "invalid class" {
		t.Fatalf("unexpected field errors: %v", got)
	}
	if got := state.FormErrors(); len(got) != 1 || got[0] != "stale" {
		t.Fatalf("unexpected form errors: %v", got)
	}
}

func TestEditView_Location(t *testing.T) {
	view := NewEditView("WidgetStylingPart_Edit", nil).At("Settings:3")
	if view.Zone() != "Settings" || view.Position() != "3" {
		t.Fatalf("unexpected location split: %q %q", view.Zone(), view.Position())
	}

	content := NewEditView("X", nil).At("Content")
	if content.Zone() != "Content" || content.Position() != "" {
		t.Fatalf("unexpected location split: %q %q", content.Zone(), content.Position())
	}
	if !lessView(content, view) {
		t.Fatalf("expected Content zone to sort before Settings")
	}
}
