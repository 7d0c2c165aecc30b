package display

import (
	"context"
	"strings"

	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/definition"
)

// Updater binds submitted values onto a model. TryUpdateModel reports false
// when nothing was submitted under prefix; binding problems are recorded on
// ModelState rather than returned.
type Updater interface {
	TryUpdateModel(ctx context.Context, model any, prefix string) (bool, error)
	ModelState() *ModelState
}

// PartDriver builds and updates the editor of one content part.
type PartDriver interface {
	PartName() string
	Edit(ctx context.Context, item *content.ContentItem) (*EditView, error)
	Update(ctx context.Context, item *content.ContentItem, updater Updater) (*EditView, error)
}

// UpdateFieldEditorContext carries what a field settings driver needs to
// persist: the binder and the builder of the field being edited.
type UpdateFieldEditorContext struct {
	Updater Updater
	Builder *definition.FieldBuilder
}

// FieldSettingsDriver edits the settings of a field definition.
type FieldSettingsDriver interface {
	FieldType() string
	Edit(ctx context.Context, field definition.ContentPartFieldDefinition) (*EditView, error)
	Update(ctx context.Context, field definition.ContentPartFieldDefinition, update UpdateFieldEditorContext) (*EditView, error)
}

// FieldContext locates a field value on an item.
type FieldContext struct {
	Item     *content.ContentItem
	PartName string
	Field    definition.ContentPartFieldDefinition
}

// Prefix is the form prefix of the field, "Part.Field".
func (fc FieldContext) Prefix() string {
	return strings.Trim(fc.PartName+"."+fc.Field.Name, ".")
}

// Load decodes the field value into target.
func (fc FieldContext) Load(target any) (bool, error) {
	return fc.Item.GetField(fc.PartName, fc.Field.Name, target)
}

// Store writes the field value onto the item.
func (fc FieldContext) Store(value any) error {
	return fc.Item.ApplyField(fc.PartName, fc.Field.Name, value)
}

// FieldDriver builds and updates the editor of a field value.
type FieldDriver interface {
	FieldType() string
	Edit(ctx context.Context, field FieldContext) (*EditView, error)
	Update(ctx context.Context, field FieldContext, updater Updater) (*EditView, error)
}

// Templated is implemented by drivers that ship the template sources for the
// shapes they produce, keyed by shape name.
type Templated interface {
	Templates() map[string]string
}
