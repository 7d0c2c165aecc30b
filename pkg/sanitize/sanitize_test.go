package sanitize

import (
	"context"
	"strings"
	"testing"
)

func TestPolicy_StripsScriptsKeepsClasses(t *testing.T) {
	p := New()
	got := p.Sanitize(`<div class="card" onclick="x()"><script>alert(1)</script><p>Hi <a href="javascript:alert(1)">x</a></p></div>`)
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") || strings.Contains(got, "javascript:") {
		t.Fatalf("unsafe markup survived: %s", got)
	}
	if !strings.Contains(got, `class="card"`) {
		t.Fatalf("expected class to survive, got %s", got)
	}
	if !strings.Contains(got, "<p>Hi") {
		t.Fatalf("expected paragraph to survive, got %s", got)
	}
}

func TestPolicy_BlankInput(t *testing.T) {
	if got := New().Sanitize("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestPolicy_SVGOptIn(t *testing.T) {
	icon := `<svg viewBox="0 0 24 24"><path d="M0 0h24"></path></svg>`
	if got := New().Sanitize(icon); strings.Contains(got, "<svg") {
		t.Fatalf("svg should be stripped by default, got %s", got)
	}
	got := New(WithSVG()).Sanitize(icon)
	if !strings.Contains(got, "<svg") || !strings.Contains(got, `d="M0 0h24"`) {
		t.Fatalf("expected svg to survive, got %s", got)
	}
}

func TestPolicy_ExtraAttributes(t *testing.T) {
	p := New(WithElements("details", "summary"), WithAttributes("details", "open"), WithDataAttributes())
	got := p.Sanitize(`<details open data-id="7"><summary>More</summary></details>`)
	for _, want := range []string{"<details", "open", `data-id="7"`, "<summary>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %s", want, got)
		}
	}
}

func TestContextLookup(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("expected no sanitizer on a bare context")
	}
	ctx := NewContext(context.Background(), SanitizerFunc(strings.ToLower))
	s, ok := FromContext(ctx)
	if !ok || s.Sanitize("ABC") != "abc" {
		t.Fatalf("expected request sanitizer to be found")
	}
}

func TestSanitizerFunc(t *testing.T) {
	var s Sanitizer = SanitizerFunc(strings.ToUpper)
	if s.Sanitize("a") != "A" {
		t.Fatalf("func adapter not applied")
	}
	var nilPolicy *Policy
	if nilPolicy.Sanitize("<b>x</b>") != "<b>x</b>" {
		t.Fatalf("nil policy should pass through")
	}
}
