package contentpermissions_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-contentparts/pkg/binding"
	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/contentpermissions"
	"github.com/goliatone/go-contentparts/pkg/display"
	"github.com/goliatone/go-contentparts/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contentparts/pkg/testsupport"
)

func TestDriver_EmptyWhenPartMissing(t *testing.T) {
	driver := contentpermissions.NewDriver(nil)
	item := content.New("Page")

	if view, err := driver.Edit(context.Background(), item); view != nil || err != nil {
		t.Fatalf("edit: expected empty result, got %v %v", view, err)
	}
	if view, err := driver.Update(context.Background(), item, binding.NewFormUpdater(url.Values{})); view != nil || err != nil {
		t.Fatalf("update: expected empty result, got %v %v", view, err)
	}
}

func TestDriver_UpdateThenEdit(t *testing.T) {
	driver := contentpermissions.NewDriver(contentpermissions.StaticRoles{"Editor", "Administrator", "Anonymous"})
	item := testsupport.NewItem(t, "Page", map[string]any{
		contentpermissions.PartName: contentpermissions.Part{},
	})
	updater := binding.NewFormUpdater(url.Values{
		"ContentPermissionsPart.Enabled": {"false", "true"},
		"ContentPermissionsPart.Roles":   {"Editor", "Ghost", "Editor"},
	})

	if _, err := driver.Update(context.Background(), item, updater); err != nil {
		t.Fatalf("update: %v", err)
	}
	view, err := driver.Edit(context.Background(), item)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	want := contentpermissions.EditModel{
		Enabled:       true,
		Roles:         []string{"Editor"},
		PossibleRoles: []string{"Anonymous", "Authenticated", "Administrator", "Editor"},
	}
	if diff := cmp.Diff(want, view.Model); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	if view.Shape != "ContentPermissionsPart_Edit" {
		t.Fatalf("unexpected shape %q", view.Shape)
	}
}

func TestDriver_Renders(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	manager := display.NewManager(display.WithRenderer(engine))
	if err := manager.RegisterPart(contentpermissions.NewDriver(contentpermissions.StaticRoles{"Editor"})); err != nil {
		t.Fatalf("register: %v", err)
	}
	item := testsupport.NewItem(t, "Page", map[string]any{
		contentpermissions.PartName: contentpermissions.Part{Enabled: true, Roles: []string{"Editor"}},
	})

	views, err := manager.BuildEditors(context.Background(), item)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	html, err := manager.RenderAll(context.Background(), views)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`name="ContentPermissionsPart.Enabled" value="true" checked`,
		`name="ContentPermissionsPart.Roles" value="Editor" checked`,
		`name="ContentPermissionsPart.Roles" value="Anonymous">`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %s in output:\n%s", want, html)
		}
	}
}

func TestDriver_UpdateClearsRolesWhenNoneSubmitted(t *testing.T) {
	driver := contentpermissions.NewDriver(contentpermissions.StaticRoles{"Editor"})
	item := testsupport.NewItem(t, "Page", map[string]any{
		contentpermissions.PartName: contentpermissions.Part{Enabled: true, Roles: []string{"Editor"}},
	})
	updater := binding.NewFormUpdater(url.Values{
		"ContentPermissionsPart.Enabled": {"false", "true"},
	})

	if _, err := driver.Update(context.Background(), item, updater); err != nil {
		t.Fatalf("update: %v", err)
	}
	part, err := contentpermissions.PartOf(item)
	if err != nil {
		t.Fatalf("part: %v", err)
	}
	want := &contentpermissions.Part{Enabled: true}
	if diff := cmp.Diff(want, part, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("stored part mismatch (-want +got):\n%s", diff)
	}
}

func TestDriver_FailedBindKeepsStoredPart(t *testing.T) {
	driver := contentpermissions.NewDriver(contentpermissions.StaticRoles{"Editor"})
	stored := contentpermissions.Part{Enabled: true, Roles: []string{"Editor"}}
	item := testsupport.NewItem(t, "Page", map[string]any{
		contentpermissions.PartName: stored,
	})
	updater := binding.NewFormUpdater(url.Values{
		"ContentPermissionsPart.Enabled": {"notabool"},
		"ContentPermissionsPart.Roles":   {"Ghost", "Administrator"},
	})

	if _, err := driver.Update(context.Background(), item, updater); err != nil {
		t.Fatalf("update: %v", err)
	}
	part, err := contentpermissions.PartOf(item)
	if err != nil {
		t.Fatalf("part: %v", err)
	}
	if diff := cmp.Diff(&stored, part); diff != "" {
		t.Fatalf("stored part changed (-want +got):\n%s", diff)
	}
	if updater.ModelState().IsValid() {
		t.Fatalf("expected a model error for the invalid Enabled value")
	}
}
