package definition

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type hintSettings struct {
	Hint     string `json:"hint"`
	Required bool   `json:"required"`
}

type renamedSettings struct {
	Value string `json:"value"`
}

func (renamedSettings) SettingsName() string { return "Custom" }

func TestPartBuilder_PartSettings(t *testing.T) {
	def, err := NewPartBuilder("ContentPermissionsPart", nil).
		Attachable().
		WithDescription("Provides ability to control which roles can view content item.").
		WithDisplayName("Content Permissions").
		WithDefaultPosition("10").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got, ok, err := GetSettings[ContentPartSettings](def.Settings)
	if err != nil || !ok {
		t.Fatalf("settings missing: ok=%v err=%v", ok, err)
	}
	want := ContentPartSettings{
		Attachable:      true,
		DisplayName:     "Content Permissions",
		Description:     "Provides ability to control which roles can view content item.",
		DefaultPosition: "10",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("part settings mismatch (-want +got):\n%s", diff)
	}
}

func TestPartBuilder_DoesNotMutateExisting(t *testing.T) {
	existing := &ContentPartDefinition{Name: "Part"}
	builder := NewPartBuilder("Part", existing)
	builder.Attachable().WithField("Tags", func(fb *FieldBuilder) {
		fb.OfType("MultiValueTextField").WithSettings(hintSettings{Hint: "one per line"})
	})

	if len(existing.Settings) != 0 || len(existing.Fields) != 0 {
		t.Fatalf("existing definition mutated: %+v", existing)
	}

	def, err := builder.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	field, ok := def.Field("tags")
	if !ok {
		t.Fatalf("expected field Tags")
	}
	if field.PartName != "Part" || field.FieldType != "MultiValueTextField" {
		t.Fatalf("unexpected field: %+v", field)
	}
	settings, ok, err := GetSettings[hintSettings](field.Settings)
	if err != nil || !ok || settings.Hint != "one per line" {
		t.Fatalf("field settings: %+v ok=%v err=%v", settings, ok, err)
	}
}

func TestSettings_CustomName(t *testing.T) {
	settings, err := Settings(nil).With(renamedSettings{Value: "x"})
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if _, ok := settings["Custom"]; !ok {
		t.Fatalf("expected Custom key, got %v", settings)
	}
	var out renamedSettings
	if ok, err := settings.Get(&out); err != nil || !ok || out.Value != "x" {
		t.Fatalf("get: %+v ok=%v err=%v", out, ok, err)
	}
}

func TestTypeBuilder_WithPartAndRemove(t *testing.T) {
	def, err := NewTypeBuilder("Article", nil).
		DisplayedAs("Article").
		WithPart("TitlePart", func(pb *TypePartBuilder) { pb.WithPosition("1") }).
		WithPart("WidgetStylingPart", nil).
		WithPart("TitlePart", func(pb *TypePartBuilder) { pb.WithPosition("2") }).
		RemovePart("WidgetStylingPart").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []ContentTypePartDefinition{{Name: "TitlePart", PartName: "TitlePart", Position: "2"}}
	if diff := cmp.Diff(want, def.Parts); diff != "" {
		t.Fatalf("parts mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeBuilder_RequiresPartName(t *testing.T) {
	if _, err := NewTypeBuilder("Article", nil).WithPart("  ", nil).Build(); err == nil {
		t.Fatalf("expected error for empty part name")
	}
}
