package template_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-contentparts/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contentparts/pkg/testsupport"
)

var templatesFS = fstest.MapFS{
	"hello.tpl":      {Data: []byte("Hello {{ name }}")},
	"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
	"use-filter.tpl": {Data: []byte("{{ name|shout }}")},
	"classes.tpl":    {Data: []byte(`<div class="{{ classes|classlist }}"></div>`)},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if result != "Hello Ada" {
		t.Fatalf("render template mismatch result: %q", result)
	}
	if written != result {
		t.Fatalf("render template mismatch writer: %q", written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output: %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!!", strings.ToUpper(fmt.Sprint(input))), nil
	}); err != nil {
		t.Fatalf("re-register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!!" {
		t.Fatalf("expected replaced filter output, got %q", result)
	}
}

func TestGoTemplateEngine_ClassListFilter(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("classes", map[string]any{"classes": "  pa-2  elevation-1 pa-2 "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<div class="pa-2 elevation-1"></div>`; result != want {
		t.Fatalf("want %q, got %q", want, result)
	}
}

func TestGoTemplateEngine_RenderStringWithoutLoader(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	for i := 0; i < 2; i++ {
		result, err := engine.RenderString("<p>{{ Model.title }}</p>", map[string]any{
			"Model": map[string]any{"title": "<b>Forms</b>"},
		})
		if err != nil {
			t.Fatalf("render string: %v", err)
		}
		if want := "<p>&lt;b&gt;Forms&lt;/b&gt;</p>"; result != want {
			t.Fatalf("expected escaped output %q, got %q", want, result)
		}
	}
}

func TestGoTemplateEngine_StructDataIsConverted(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithStringCacheSize(0))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	type model struct {
		Name string `json:"name"`
	}
	result, err := engine.RenderString("{{ name }}", model{Name: "Grace"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "Grace" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestNormalizeClassList(t *testing.T) {
	if got := gotemplate.NormalizeClassList(" a  b a\tc "); got != "a b c" {
		t.Fatalf("unexpected class list %q", got)
	}
	if got := gotemplate.NormalizeClassList("   "); got != "" {
		t.Fatalf("expected empty class list, got %q", got)
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
