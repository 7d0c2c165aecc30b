package contentpermissions_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/contentpermissions"
	"github.com/goliatone/go-contentparts/pkg/definition"
	"github.com/goliatone/go-contentparts/pkg/definition/memory"
	"github.com/goliatone/go-contentparts/pkg/security"
	"github.com/goliatone/go-contentparts/pkg/testsupport"
)

func TestGuard(t *testing.T) {
	store := memory.New()
	err := store.AlterTypeDefinitionContext(context.Background(), "Report", func(_ context.Context, b *definition.TypeBuilder) error {
		b.WithPart(contentpermissions.PartName, func(p *definition.TypePartBuilder) {
			p.WithSettings(contentpermissions.Settings{RedirectURL: "/login"})
		})
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	service := newService(t, store)

	restricted := func(contentType string) *content.ContentItem {
		return testsupport.NewItem(t, contentType, map[string]any{
			contentpermissions.PartName: contentpermissions.Part{Enabled: true, Roles: []string{"Editor"}},
		})
	}

	cases := []struct {
		name      string
		item      *content.ContentItem
		loadErr   error
		principal security.Principal
		status    int
		location  string
	}{
		{name: "public", item: content.New("Page"), status: http.StatusOK},
		{name: "no item", status: http.StatusOK},
		{name: "allowed", item: restricted("Page"), principal: security.User{Roles: []string{"Editor"}, Authenticated: true}, status: http.StatusOK},
		{name: "forbidden", item: restricted("Page"), status: http.StatusForbidden},
		{name: "redirect", item: restricted("Report"), status: http.StatusFound, location: "/login"},
		{name: "not found", loadErr: contentpermissions.StatusError{Code: http.StatusNotFound, Err: errors.New("missing")}, status: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			load := func(*http.Request) (*content.ContentItem, error) { return tc.item, tc.loadErr }
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
			handler := service.Guard(load)(next)

			req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
			if tc.principal != nil {
				req = req.WithContext(security.WithPrincipal(req.Context(), tc.principal))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
			if tc.location != "" && rec.Header().Get("Location") != tc.location {
				t.Fatalf("expected redirect to %q, got %q", tc.location, rec.Header().Get("Location"))
			}
		})
	}
}
