package navigation

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalog_Translate(t *testing.T) {
	catalog := Catalog{
		"fr":    {"Content": "Contenu", "Items %d": "Éléments %d"},
		"fr-CA": {"Vue Forms": "Formulaires Vue"},
	}

	cases := []struct {
		locale, key string
		args        []any
		want        string
		wantErr     bool
	}{
		{locale: "fr-CA", key: "Vue Forms", want: "Formulaires Vue"},
		{locale: "fr-CA", key: "Content", want: "Contenu"},
		{locale: "fr", key: "Items %d", args: []any{3}, want: "Éléments 3"},
		{locale: "de", key: "Content", wantErr: true},
		{locale: "", key: "Content", wantErr: true},
	}
	for _, tc := range cases {
		got, err := catalog.Translate(tc.locale, tc.key, tc.args...)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s/%s: expected error", tc.locale, tc.key)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%s/%s: got %q %v, want %q", tc.locale, tc.key, got, err, tc.want)
		}
	}
}

func TestCatalog_LocalizesMenu(t *testing.T) {
	m := NewManager(WithTranslator(Catalog{"fr": {"Content": "Contenu"}}))
	m.Register(ProviderFunc(func(_ context.Context, _ string, b *Builder) error {
		b.Add("Content", "", func(i *ItemBuilder) {
			i.Add("Pages", "", func(i *ItemBuilder) { i.URL("/pages") })
		})
		return nil
	}))
	items, err := m.BuildMenu(WithLocale(context.Background(), "fr-FR"), AdminMenu)
	if err != nil {
		t.Fatalf("build menu: %v", err)
	}
	if diff := cmp.Diff([]string{"Contenu"}, texts(items)); diff != "" {
		t.Fatalf("captions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Pages"}, texts(items[0].Items)); diff != "" {
		t.Fatalf("untranslated caption mismatch (-want +got):\n%s", diff)
	}
}
