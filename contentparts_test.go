package contentparts_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	contentparts "github.com/goliatone/go-contentparts"
	"github.com/goliatone/go-contentparts/pkg/binding"
	"github.com/goliatone/go-contentparts/pkg/compat"
	"github.com/goliatone/go-contentparts/pkg/contentpermissions"
	"github.com/goliatone/go-contentparts/pkg/migrations"
	"github.com/goliatone/go-contentparts/pkg/parts/widgetstyling"
	"github.com/goliatone/go-contentparts/pkg/security"
	"github.com/goliatone/go-contentparts/pkg/testsupport"
)

func TestNew_RejectsNilHost(t *testing.T) {
	if _, err := contentparts.New(nil); err == nil {
		t.Fatalf("expected error for nil host")
	}
}

func TestInstall_RunsOnce(t *testing.T) {
	host := testsupport.NewContextHost()
	store := migrations.NewMemoryStore()
	module, err := contentparts.New(host, contentparts.WithVersionStore(store))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	results, err := module.Install(context.Background())
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if len(results) != 1 || !results[0].Applied() || results[0].To != 1 {
		t.Fatalf("unexpected results %+v", results)
	}
	if _, ok := host.Parts[contentpermissions.PartName]; !ok {
		t.Fatalf("expected permissions part to be registered")
	}

	again, err := module.Install(context.Background())
	if err != nil {
		t.Fatalf("second install: %v", err)
	}
	if len(again) != 1 || again[0].Applied() {
		t.Fatalf("expected no-op on second install, got %+v", again)
	}
	if diff := cmp.Diff(map[string]int{contentpermissions.Feature: 1}, store.Snapshot()); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
}

func TestInstall_BestEffortOnBareHost(t *testing.T) {
	host := testsupport.BareHost{}
	if _, err := contentparts.New(host); err != nil {
		t.Fatalf("new: %v", err)
	}
	strict, _ := contentparts.New(host)
	if _, err := strict.Install(context.Background()); !errors.Is(err, compat.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported in strict mode, got %v", err)
	}

	lenient, err := contentparts.New(host, contentparts.WithMode(compat.ModeBestEffort))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := lenient.Install(context.Background()); err != nil {
		t.Fatalf("expected best-effort install to succeed, got %v", err)
	}
}

func TestEditors_UpdateThenRender(t *testing.T) {
	module, err := contentparts.New(testsupport.NewContextHost(),
		contentparts.WithRoleLister(contentpermissions.StaticRoles{"Editor"}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	item := testsupport.NewItem(t, "Widget", map[string]any{
		widgetstyling.PartName:      widgetstyling.Part{},
		contentpermissions.PartName: contentpermissions.Part{},
	})

	values := url.Values{
		"WidgetStylingPart.CustomClasses": {"hero  wide"},
		"ContentPermissionsPart.Enabled":  {"false", "true"},
		"ContentPermissionsPart.Roles":    {"Editor", "Ghost"},
	}
	views, err := module.UpdateEditors(context.Background(), item, binding.NewFormUpdater(values))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected two editors, got %d", len(views))
	}
	// Content:10 sorts before Settings:3.
	if views[0].Shape != contentpermissions.EditShape || views[1].Shape != widgetstyling.EditShape {
		t.Fatalf("unexpected order: %s, %s", views[0].Shape, views[1].Shape)
	}

	html, err := module.RenderEditors(context.Background(), views)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, `value="hero wide"`) {
		t.Fatalf("expected normalized classes in html:\n%s", html)
	}

	ctx := security.WithPrincipal(context.Background(), security.User{Roles: []string{"Editor"}, Authenticated: true})
	if !module.CanAccess(ctx, item) {
		t.Fatalf("editor should access the item")
	}
	if module.CanAccess(context.Background(), item) {
		t.Fatalf("anonymous caller should be denied")
	}
}

func TestAdminMenu_IncludesVueForms(t *testing.T) {
	module, err := contentparts.New(testsupport.NewContextHost())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	items, err := module.AdminMenu(context.Background())
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	if len(items) != 1 || items[0].Text != "Content" || len(items[0].Items) != 1 || items[0].Items[0].Text != "Vue Forms" {
		t.Fatalf("unexpected menu %+v", items)
	}
}

func TestHelpers_ShortcodeTemplates(t *testing.T) {
	module, err := contentparts.New(testsupport.NewContextHost(),
		contentparts.WithShortcodeTemplates(map[string]string{"brand": "<b>{{ Args.name }}</b>"}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, err := module.Helpers.LiquidShortcodes(context.Background(), `{{ Model }} [brand name="Acme"]`, "Hi")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hi <b>Acme</b>" {
		t.Fatalf("unexpected output %q", got)
	}
}
