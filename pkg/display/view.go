package display

import (
	"strings"

	"github.com/goliatone/go-contentparts/internal/position"
)

// EditView is the result of building an editor: the shape (template name)
// to render, where to place it, the form prefix, and the view model.
type EditView struct {
	Shape    string
	Location string
	Prefix   string
	Model    any
}

// NewEditView returns a view for shape bound to model.
func NewEditView(shape string, model any) *EditView {
	return &EditView{Shape: shape, Model: model}
}

// At sets the placement location, e.g. "Settings:3".
func (v *EditView) At(location string) *EditView {
	v.Location = strings.TrimSpace(location)
	return v
}

// WithPrefix sets the form prefix used to name inputs.
func (v *EditView) WithPrefix(prefix string) *EditView {
	v.Prefix = strings.TrimSpace(prefix)
	return v
}

// Zone returns the part of Location before the first colon.
func (v *EditView) Zone() string {
	zone, _ := splitLocation(v.Location)
	return zone
}

// Position returns the part of Location after the first colon.
func (v *EditView) Position() string {
	_, pos := splitLocation(v.Location)
	return pos
}

func splitLocation(location string) (string, string) {
	zone, pos, _ := strings.Cut(strings.TrimSpace(location), ":")
	return strings.TrimSpace(zone), strings.TrimSpace(pos)
}

// lessView orders views by zone name, then by position within a zone.
func lessView(a, b *EditView) bool {
	za, zb := a.Zone(), b.Zone()
	if !strings.EqualFold(za, zb) {
		return strings.ToLower(za) < strings.ToLower(zb)
	}
	return position.Less(a.Position(), b.Position())
}
