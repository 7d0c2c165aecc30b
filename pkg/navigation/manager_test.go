package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contentparts/pkg/security"
)

type mapTranslator map[string]string

func (t mapTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if v, ok := t[locale+":"+key]; ok {
		return v, nil
	}
	return "", errors.New("missing")
}

func texts(items []MenuItem) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.Text)
	}
	return out
}

func TestBuildMenu_MergesSortsAndFilters(t *testing.T) {
	secret := security.Permission{Name: "ManageSecrets"}
	m := NewManager(WithAuthorizer(security.AuthorizerFunc(func(_ context.Context, p security.Permission) bool {
		return p.Name != secret.Name
	})))
	m.Register(
		ProviderFunc(func(_ context.Context, name string, b *Builder) error {
			b.Add("Content", "2", func(content *ItemBuilder) {
				content.Add("Pages", "5", func(i *ItemBuilder) { i.URL("/admin/pages") })
			})
			b.Add("Secrets", "1", func(i *ItemBuilder) {
				i.Add("Vault", "", func(i *ItemBuilder) { i.Permission(secret).URL("/admin/vault") })
			})
			return nil
		}),
		ProviderFunc(func(_ context.Context, name string, b *Builder) error {
			b.Add("Content", "", func(content *ItemBuilder) {
				content.Add("Blog", "1", func(i *ItemBuilder) { i.URL("/admin/blog") })
			})
			b.Add("Settings", "10", func(i *ItemBuilder) { i.URL("/admin/settings") })
			return nil
		}),
	)

	items, err := m.BuildMenu(context.Background(), AdminMenu)
	if err != nil {
		t.Fatalf("build menu: %v", err)
	}
	if diff := cmp.Diff([]string{"Content", "Settings"}, texts(items)); diff != "" {
		t.Fatalf("top level mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Blog", "Pages"}, texts(items[0].Items)); diff != "" {
		t.Fatalf("merged children mismatch (-want +got):\n%s", diff)
	}
	if items[0].Items[1].Href != "/admin/pages" {
		t.Fatalf("unexpected href %q", items[0].Items[1].Href)
	}
}

func TestBuildMenu_TranslatesCaptions(t *testing.T) {
	m := NewManager(WithTranslator(mapTranslator{"fr:Content": "Contenu"}))
	m.Register(ProviderFunc(func(_ context.Context, _ string, b *Builder) error {
		b.Add("Content", "", func(i *ItemBuilder) { i.Add("Untranslated", "", func(i *ItemBuilder) { i.URL("/x") }) })
		return nil
	}))

	items, err := m.BuildMenu(WithLocale(context.Background(), "fr"), AdminMenu)
	if err != nil {
		t.Fatalf("build menu: %v", err)
	}
	if items[0].Text != "Contenu" || items[0].Items[0].Text != "Untranslated" {
		t.Fatalf("unexpected captions: %q / %q", items[0].Text, items[0].Items[0].Text)
	}
}

func TestBuildMenu_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	m := NewManager()
	m.Register(ProviderFunc(func(context.Context, string, *Builder) error { return boom }))
	if _, err := m.BuildMenu(context.Background(), AdminMenu); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if _, err := m.BuildMenu(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty menu name")
	}
}

func TestDefaultLink(t *testing.T) {
	item := MenuItem{
		Action:     "List",
		Controller: "Admin",
		RouteValues: map[string]any{
			"Area":                                 "OrchardCore.Contents",
			"contentTypeId":                        "VueForm",
			"Options.CanCreateSelectedContentType": true,
		},
	}
	want := "/OrchardCore.Contents/Admin/List?Options.CanCreateSelectedContentType=true&contentTypeId=VueForm"
	if got := DefaultLink(item); got != want {
		t.Fatalf("DefaultLink = %q, want %q", got, want)
	}
	if got := DefaultLink(MenuItem{URL: "/x", Action: "List"}); got != "/x" {
		t.Fatalf("URL should win, got %q", got)
	}
}
