package definition

import (
	"errors"
	"strings"
)

// PartBuilder mutates a part definition inside an alter callback. Encoding
// failures are collected and surfaced by Build.
type PartBuilder struct {
	def  *ContentPartDefinition
	errs []error
}

// NewPartBuilder starts a builder from a copy of existing, or from an empty
// definition named name when existing is nil.
func NewPartBuilder(name string, existing *ContentPartDefinition) *PartBuilder {
	def := existing.Clone()
	if def == nil {
		def = &ContentPartDefinition{Name: name}
	}
	return &PartBuilder{def: def}
}

// Name returns the part name being built.
func (b *PartBuilder) Name() string {
	return b.def.Name
}

// Attachable marks the part as attachable to any content type.
func (b *PartBuilder) Attachable() *PartBuilder {
	return b.alterPartSettings(func(s *ContentPartSettings) { s.Attachable = true })
}

// Reusable marks the part as attachable more than once per type.
func (b *PartBuilder) Reusable() *PartBuilder {
	return b.alterPartSettings(func(s *ContentPartSettings) { s.Reusable = true })
}

// WithDescription sets the admin-facing description.
func (b *PartBuilder) WithDescription(description string) *PartBuilder {
	return b.alterPartSettings(func(s *ContentPartSettings) { s.Description = description })
}

// WithDisplayName sets the admin-facing display name.
func (b *PartBuilder) WithDisplayName(name string) *PartBuilder {
	return b.alterPartSettings(func(s *ContentPartSettings) { s.DisplayName = name })
}

// WithDefaultPosition sets the position used when the part is attached.
func (b *PartBuilder) WithDefaultPosition(position string) *PartBuilder {
	return b.alterPartSettings(func(s *ContentPartSettings) { s.DefaultPosition = position })
}

// WithSettings stores an arbitrary settings block on the part.
func (b *PartBuilder) WithSettings(value any) *PartBuilder {
	settings, err := b.def.Settings.With(value)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.def.Settings = settings
	return b
}

// WithField adds or alters a field on the part.
func (b *PartBuilder) WithField(name string, configure func(*FieldBuilder)) *PartBuilder {
	name = strings.TrimSpace(name)
	if name == "" {
		b.errs = append(b.errs, errors.New("definition: field name is required"))
		return b
	}
	idx := -1
	for i, field := range b.def.Fields {
		if field.Name == name {
			idx = i
			break
		}
	}
	var existing *ContentPartFieldDefinition
	if idx >= 0 {
		existing = &b.def.Fields[idx]
	}
	fb := NewFieldBuilder(b.def.Name, name, existing)
	if configure != nil {
		configure(fb)
	}
	field, err := fb.Build()
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	if idx >= 0 {
		b.def.Fields[idx] = field
	} else {
		b.def.Fields = append(b.def.Fields, field)
	}
	return b
}

// RemoveField drops the named field when present.
func (b *PartBuilder) RemoveField(name string) *PartBuilder {
	fields := b.def.Fields[:0]
	for _, field := range b.def.Fields {
		if field.Name != name {
			fields = append(fields, field)
		}
	}
	b.def.Fields = fields
	return b
}

// Build returns the resulting definition or the first collected error.
func (b *PartBuilder) Build() (*ContentPartDefinition, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return b.def.Clone(), nil
}

func (b *PartBuilder) alterPartSettings(fn func(*ContentPartSettings)) *PartBuilder {
	current, _, err := GetSettings[ContentPartSettings](b.def.Settings)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	fn(&current)
	return b.WithSettings(current)
}

// FieldBuilder mutates a field definition.
type FieldBuilder struct {
	def  ContentPartFieldDefinition
	errs []error
}

// NewFieldBuilder starts a builder from a copy of existing, or a fresh field.
func NewFieldBuilder(partName, name string, existing *ContentPartFieldDefinition) *FieldBuilder {
	def := ContentPartFieldDefinition{Name: name, PartName: partName}
	if existing != nil {
		def = *existing
		def.Settings = existing.Settings.Clone()
		if def.PartName == "" {
			def.PartName = partName
		}
	}
	return &FieldBuilder{def: def}
}

// OfType sets the field type name.
func (b *FieldBuilder) OfType(fieldType string) *FieldBuilder {
	b.def.FieldType = strings.TrimSpace(fieldType)
	return b
}

// WithSettings stores a settings block on the field.
func (b *FieldBuilder) WithSettings(value any) *FieldBuilder {
	settings, err := b.def.Settings.With(value)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.def.Settings = settings
	return b
}

// Current returns a copy of the field in its current state.
func (b *FieldBuilder) Current() ContentPartFieldDefinition {
	def := b.def
	def.Settings = b.def.Settings.Clone()
	return def
}

// Build returns the resulting field definition.
func (b *FieldBuilder) Build() (ContentPartFieldDefinition, error) {
	if err := errors.Join(b.errs...); err != nil {
		return ContentPartFieldDefinition{}, err
	}
	return b.Current(), nil
}

// TypeBuilder mutates a content type definition inside an alter callback.
type TypeBuilder struct {
	def  *ContentTypeDefinition
	errs []error
}

// NewTypeBuilder starts a builder from a copy of existing, or a fresh type.
func NewTypeBuilder(name string, existing *ContentTypeDefinition) *TypeBuilder {
	def := existing.Clone()
	if def == nil {
		def = &ContentTypeDefinition{Name: name}
	}
	return &TypeBuilder{def: def}
}

// Name returns the type name being built.
func (b *TypeBuilder) Name() string {
	return b.def.Name
}

// DisplayedAs sets the display name.
func (b *TypeBuilder) DisplayedAs(displayName string) *TypeBuilder {
	b.def.DisplayName = displayName
	return b
}

// WithSettings stores a settings block on the type.
func (b *TypeBuilder) WithSettings(value any) *TypeBuilder {
	settings, err := b.def.Settings.With(value)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.def.Settings = settings
	return b
}

// WithPart attaches partName (or alters the existing attachment).
func (b *TypeBuilder) WithPart(partName string, configure func(*TypePartBuilder)) *TypeBuilder {
	partName = strings.TrimSpace(partName)
	if partName == "" {
		b.errs = append(b.errs, errors.New("definition: part name is required"))
		return b
	}
	idx := -1
	for i, part := range b.def.Parts {
		if part.Name == partName {
			idx = i
			break
		}
	}
	part := ContentTypePartDefinition{Name: partName, PartName: partName}
	if idx >= 0 {
		part = b.def.Parts[idx].clone()
	}
	pb := &TypePartBuilder{def: part}
	if configure != nil {
		configure(pb)
	}
	if len(pb.errs) > 0 {
		b.errs = append(b.errs, pb.errs...)
		return b
	}
	if idx >= 0 {
		b.def.Parts[idx] = pb.def
	} else {
		b.def.Parts = append(b.def.Parts, pb.def)
	}
	return b
}

// RemovePart detaches the named part.
func (b *TypeBuilder) RemovePart(name string) *TypeBuilder {
	parts := b.def.Parts[:0]
	for _, part := range b.def.Parts {
		if part.Name != name {
			parts = append(parts, part)
		}
	}
	b.def.Parts = parts
	return b
}

// Build returns the resulting definition.
func (b *TypeBuilder) Build() (*ContentTypeDefinition, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return b.def.Clone(), nil
}

// TypePartBuilder mutates a single part attachment.
type TypePartBuilder struct {
	def  ContentTypePartDefinition
	errs []error
}

// OfPart overrides the underlying part name for named attachments.
func (b *TypePartBuilder) OfPart(partName string) *TypePartBuilder {
	b.def.PartName = strings.TrimSpace(partName)
	return b
}

// WithPosition sets the attachment position.
func (b *TypePartBuilder) WithPosition(position string) *TypePartBuilder {
	b.def.Position = position
	return b
}

// WithSettings stores a settings block on the attachment.
func (b *TypePartBuilder) WithSettings(value any) *TypePartBuilder {
	settings, err := b.def.Settings.With(value)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.def.Settings = settings
	return b
}
