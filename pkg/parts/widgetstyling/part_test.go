package widgetstyling_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-contentparts/pkg/binding"
	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/display"
	"github.com/goliatone/go-contentparts/pkg/parts/widgetstyling"
	"github.com/goliatone/go-contentparts/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contentparts/pkg/testsupport"
)

func TestDriver_MissingPartYieldsEmptyResult(t *testing.T) {
	driver := widgetstyling.NewDriver()
	item := content.New("Banner")

	view, err := driver.Edit(context.Background(), item)
	if view != nil || err != nil {
		t.Fatalf("edit: expected empty result, got %v %v", view, err)
	}
	view, err = driver.Update(context.Background(), item, testsupport.NewUpdater(nil))
	if view != nil || err != nil {
		t.Fatalf("update: expected empty result, got %v %v", view, err)
	}
	if item.Has(widgetstyling.PartName) {
		t.Fatalf("update must not attach the part")
	}
}

func TestDriver_EditShape(t *testing.T) {
	item := testsupport.NewItem(t, "Banner", map[string]any{
		widgetstyling.PartName: widgetstyling.Part{CustomClasses: "pa-2"},
	})

	view, err := widgetstyling.NewDriver().Edit(context.Background(), item)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if view.Shape != "WidgetStylingPart_Edit" || view.Location != "Settings:3" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if got := view.Model.(widgetstyling.Part).CustomClasses; got != "pa-2" {
		t.Fatalf("unexpected model %q", got)
	}
}

func TestDriver_UpdateThenEditRoundTrip(t *testing.T) {
	item := testsupport.NewItem(t, "Banner", map[string]any{
		widgetstyling.PartName: widgetstyling.Part{CustomClasses: "old"},
	})
	updater := binding.NewFormUpdater(url.Values{
		"WidgetStylingPart.CustomClasses": {"elevation-2  rounded"},
	})

	driver := widgetstyling.NewDriver()
	view, err := driver.Update(context.Background(), item, updater)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := view.Model.(widgetstyling.Part).CustomClasses; got != "elevation-2  rounded" {
		t.Fatalf("update view should reflect submitted value, got %q", got)
	}

	edit, err := driver.Edit(context.Background(), item)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	part := edit.Model.(widgetstyling.Part)
	if part.Classes() != "elevation-2 rounded" {
		t.Fatalf("unexpected normalised classes %q", part.Classes())
	}
}

func TestDriver_RendersEditor(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	manager := display.NewManager(display.WithRenderer(engine))
	if err := manager.RegisterPart(widgetstyling.NewDriver()); err != nil {
		t.Fatalf("register: %v", err)
	}

	item := testsupport.NewItem(t, "Banner", map[string]any{
		widgetstyling.PartName: widgetstyling.Part{CustomClasses: "a  b a"},
	})
	views, err := manager.BuildEditors(context.Background(), item)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	html, err := manager.RenderAll(context.Background(), views)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`name="WidgetStylingPart.CustomClasses"`, `value="a b"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %s in output:\n%s", want, html)
		}
	}
}

func TestDriver_FailedBindKeepsStoredPart(t *testing.T) {
	item := testsupport.NewItem(t, "Banner", map[string]any{
		widgetstyling.PartName: widgetstyling.Part{CustomClasses: "old"},
	})
	updater := testsupport.NewUpdater(map[string]any{
		widgetstyling.PartName: map[string]any{"customClasses": 42},
	})

	view, err := widgetstyling.NewDriver().Update(context.Background(), item, updater)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := view.Model.(widgetstyling.Part).CustomClasses; got != "old" {
		t.Fatalf("stored classes changed to %q", got)
	}
	if updater.ModelState().IsValid() {
		t.Fatalf("expected a model error for the invalid payload")
	}
}
