// Package multivaluetext provides a text field holding a list of values, its
// definition settings (hint and required flag) and the editors of both.
package multivaluetext

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/goliatone/go-contentparts/pkg/definition"
	"github.com/goliatone/go-contentparts/pkg/display"
)

const (
	// FieldType is the field type name used in part definitions.
	FieldType = "MultiValueTextField"
	// EditShape is the shape of the value editor.
	EditShape = FieldType + "_Edit"
	// SettingsShape is the shape of the settings editor.
	SettingsShape = "MultiValueTextFieldSettings_Edit"
	// SettingsLocation places the settings editor in the content zone.
	SettingsLocation = "Content"
)

var (
	//go:embed templates/field_edit.tpl
	fieldTemplate string
	//go:embed templates/settings_edit.tpl
	settingsTemplate string
)

// Field is the stored value of a multi-value text field.
type Field struct {
	Values []string `json:"values" schema:"Values" prompt:"Values (one per line)"`
}

// Settings configures a multi-value text field definition.
type Settings struct {
	Hint     string `json:"hint" schema:"Hint" prompt:"Hint"`
	Required bool   `json:"required" schema:"Required" prompt:"Required?"`
}

// SettingsName keys the settings block on the field definition.
func (Settings) SettingsName() string {
	return "MultiValueTextFieldSettings"
}

// SettingsOf reads the settings stored on field. Missing settings yield the
// zero value.
func SettingsOf(field definition.ContentPartFieldDefinition) (Settings, error) {
	settings, _, err := definition.GetSettings[Settings](field.Settings)
	if err != nil {
		return Settings{}, fmt.Errorf("multivaluetext: read settings of %q: %w", field.Name, err)
	}
	return settings, nil
}

// Clean trims values and drops blanks, keeping order.
func Clean(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// FieldModel is the view model of the value editor.
type FieldModel struct {
	Values   []string `json:"values"`
	Hint     string   `json:"hint"`
	Required bool     `json:"required"`
	Name     string   `json:"name"`
}

// FieldDriver edits field values stored on content items.
type FieldDriver struct{}

var (
	_ display.FieldDriver = FieldDriver{}
	_ display.Templated   = FieldDriver{}
)

func (FieldDriver) FieldType() string {
	return FieldType
}

// Edit returns the editor of the field value. Items without the field are
// edited from an empty list.
func (FieldDriver) Edit(_ context.Context, field display.FieldContext) (*display.EditView, error) {
	var value Field
	if _, err := field.Load(&value); err != nil {
		return nil, fmt.Errorf("multivaluetext: %w", err)
	}
	settings, err := SettingsOf(field.Field)
	if err != nil {
		return nil, err
	}
	model := FieldModel{
		Values:   value.Values,
		Hint:     settings.Hint,
		Required: settings.Required,
		Name:     field.Field.Name,
	}
	return display.NewEditView(EditShape, model).
		At("Content").
		WithPrefix(field.Prefix()), nil
}

// Update binds submitted values, drops blanks, and records a model error
// when a required field ends up empty.
func (d FieldDriver) Update(ctx context.Context, field display.FieldContext, updater display.Updater) (*display.EditView, error) {
	var value Field
	if _, err := field.Load(&value); err != nil {
		return nil, fmt.Errorf("multivaluetext: %w", err)
	}
	ok, err := updater.TryUpdateModel(ctx, &value, field.Prefix())
	if err != nil {
		return nil, fmt.Errorf("multivaluetext: bind %q: %w", field.Prefix(), err)
	}
	if ok {
		value.Values = Clean(value.Values)
		if err := field.Store(value); err != nil {
			return nil, fmt.Errorf("multivaluetext: %w", err)
		}
	}

	settings, err := SettingsOf(field.Field)
	if err != nil {
		return nil, err
	}
	if settings.Required && len(Clean(value.Values)) == 0 {
		updater.ModelState().AddModelError(field.Prefix()+".Values", fmt.Sprintf("The %s field is required.", field.Field.Name))
	}
	return d.Edit(ctx, field)
}

func (FieldDriver) Templates() map[string]string {
	return map[string]string{EditShape: fieldTemplate}
}

// SettingsDriver edits the field definition settings.
type SettingsDriver struct{}

var (
	_ display.FieldSettingsDriver = SettingsDriver{}
	_ display.Templated           = SettingsDriver{}
)

func (SettingsDriver) FieldType() string {
	return FieldType
}

// Edit returns the settings editor populated from field.
func (SettingsDriver) Edit(_ context.Context, field definition.ContentPartFieldDefinition) (*display.EditView, error) {
	settings, err := SettingsOf(field)
	if err != nil {
		return nil, err
	}
	return display.NewEditView(SettingsShape, settings).
		At(SettingsLocation).
		WithPrefix(SettingsShape), nil
}

// Update binds the submitted settings, writes them through the builder and
// returns the editor of the updated definition.
func (d SettingsDriver) Update(ctx context.Context, field definition.ContentPartFieldDefinition, update display.UpdateFieldEditorContext) (*display.EditView, error) {
	if update.Updater == nil || update.Builder == nil {
		return nil, fmt.Errorf("multivaluetext: updater and builder are required")
	}

	settings, err := SettingsOf(field)
	if err != nil {
		return nil, err
	}
	ok, err := update.Updater.TryUpdateModel(ctx, &settings, SettingsShape)
	if err != nil {
		return nil, fmt.Errorf("multivaluetext: bind settings: %w", err)
	}
	if ok {
		settings.Hint = strings.TrimSpace(settings.Hint)
		update.Builder.WithSettings(settings)
	}

	updated, err := update.Builder.Build()
	if err != nil {
		return nil, fmt.Errorf("multivaluetext: build field %q: %w", field.Name, err)
	}
	return d.Edit(ctx, updated)
}

func (SettingsDriver) Templates() map[string]string {
	return map[string]string{SettingsShape: settingsTemplate}
}
