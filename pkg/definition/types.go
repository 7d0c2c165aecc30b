package definition

import "strings"

// ContentTypeDefinition describes a content type and the parts attached to it.
type ContentTypeDefinition struct {
	Name        string                      `json:"name" yaml:"name"`
	DisplayName string                      `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Settings    Settings                    `json:"settings,omitempty" yaml:"-"`
	Parts       []ContentTypePartDefinition `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// Part returns the type-part definition whose part name matches partName.
func (d *ContentTypeDefinition) Part(partName string) (ContentTypePartDefinition, bool) {
	if d == nil {
		return ContentTypePartDefinition{}, false
	}
	for _, part := range d.Parts {
		if part.PartName == partName {
			return part, true
		}
	}
	return ContentTypePartDefinition{}, false
}

// Clone returns a deep copy of the definition.
func (d *ContentTypeDefinition) Clone() *ContentTypeDefinition {
	if d == nil {
		return nil
	}
	out := &ContentTypeDefinition{
		Name:        d.Name,
		DisplayName: d.DisplayName,
		Settings:    d.Settings.Clone(),
	}
	if len(d.Parts) > 0 {
		out.Parts = make([]ContentTypePartDefinition, len(d.Parts))
		for i, part := range d.Parts {
			out.Parts[i] = part.clone()
		}
	}
	return out
}

// ContentTypePartDefinition attaches a part to a type. Name is the attachment
// name; for the common case it equals PartName.
type ContentTypePartDefinition struct {
	Name     string   `json:"name" yaml:"name"`
	PartName string   `json:"partName" yaml:"partName"`
	Position string   `json:"position,omitempty" yaml:"position,omitempty"`
	Settings Settings `json:"settings,omitempty" yaml:"-"`
}

func (p ContentTypePartDefinition) clone() ContentTypePartDefinition {
	p.Settings = p.Settings.Clone()
	return p
}

// ContentPartDefinition describes a reusable part and its fields.
type ContentPartDefinition struct {
	Name     string                       `json:"name" yaml:"name"`
	Settings Settings                     `json:"settings,omitempty" yaml:"-"`
	Fields   []ContentPartFieldDefinition `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field returns the named field definition.
func (d *ContentPartDefinition) Field(name string) (ContentPartFieldDefinition, bool) {
	if d == nil {
		return ContentPartFieldDefinition{}, false
	}
	for _, field := range d.Fields {
		if strings.EqualFold(field.Name, name) {
			return field, true
		}
	}
	return ContentPartFieldDefinition{}, false
}

// Clone returns a deep copy of the definition.
func (d *ContentPartDefinition) Clone() *ContentPartDefinition {
	if d == nil {
		return nil
	}
	out := &ContentPartDefinition{
		Name:     d.Name,
		Settings: d.Settings.Clone(),
	}
	if len(d.Fields) > 0 {
		out.Fields = make([]ContentPartFieldDefinition, len(d.Fields))
		for i, field := range d.Fields {
			field.Settings = field.Settings.Clone()
			out.Fields[i] = field
		}
	}
	return out
}

// ContentPartFieldDefinition declares a field on a part.
type ContentPartFieldDefinition struct {
	Name      string   `json:"name" yaml:"name"`
	FieldType string   `json:"fieldType" yaml:"fieldType"`
	PartName  string   `json:"partName,omitempty" yaml:"-"`
	Settings  Settings `json:"settings,omitempty" yaml:"-"`
}

// ContentPartSettings is the well-known settings block every part carries.
type ContentPartSettings struct {
	Attachable      bool   `json:"attachable,omitempty"`
	Reusable        bool   `json:"reusable,omitempty"`
	DisplayName     string `json:"displayName,omitempty"`
	Description     string `json:"description,omitempty"`
	DefaultPosition string `json:"defaultPosition,omitempty"`
}
