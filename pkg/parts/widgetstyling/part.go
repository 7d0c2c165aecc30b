// Package widgetstyling provides the widget styling part: free-form CSS
// classes attached to a widget content item, edited from the Settings zone.
package widgetstyling

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/display"
	"github.com/goliatone/go-contentparts/pkg/render/template/gotemplate"
)

const (
	// PartName is the name the part is attached under.
	PartName = "WidgetStylingPart"
	// EditShape is the shape of the part editor.
	EditShape = PartName + "_Edit"
	// EditLocation places the editor in the settings zone.
	EditLocation = "Settings:3"
)

//go:embed templates/edit.tpl
var editTemplate string

// Part holds the classes applied to the rendered widget.
type Part struct {
	CustomClasses string `json:"customClasses" schema:"CustomClasses" prompt:"Custom CSS classes"`
}

// Classes returns CustomClasses without duplicate or extra whitespace.
func (p Part) Classes() string {
	return gotemplate.NormalizeClassList(p.CustomClasses)
}

// Driver edits the widget styling part.
type Driver struct{}

var (
	_ display.PartDriver = Driver{}
	_ display.Templated  = Driver{}
)

// NewDriver returns the part driver.
func NewDriver() Driver {
	return Driver{}
}

func (Driver) PartName() string {
	return PartName
}

// Edit returns the editor for the attached part, or nil when the item has
// no widget styling part.
func (Driver) Edit(_ context.Context, item *content.ContentItem) (*display.EditView, error) {
	var part Part
	ok, err := item.Get(PartName, &part)
	if err != nil {
		return nil, fmt.Errorf("widgetstyling: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return display.NewEditView(EditShape, part).
		At(EditLocation).
		WithPrefix(PartName), nil
}

// Update binds submitted values onto the attached part and returns the
// editor of the stored result.
func (d Driver) Update(ctx context.Context, item *content.ContentItem, updater display.Updater) (*display.EditView, error) {
	if !item.Has(PartName) {
		return nil, nil
	}

	var part Part
	err := item.Alter(ctx, PartName, &part, func(ctx context.Context) error {
		ok, err := updater.TryUpdateModel(ctx, &part, PartName)
		if err != nil {
			return err
		}
		if !ok {
			return content.ErrUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("widgetstyling: update: %w", err)
	}
	return d.Edit(ctx, item)
}

func (Driver) Templates() map[string]string {
	return map[string]string{EditShape: editTemplate}
}
