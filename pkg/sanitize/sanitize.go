// Package sanitize strips unsafe markup from user-authored HTML before it is
// emitted raw.
package sanitize

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans an HTML fragment.
type Sanitizer interface {
	Sanitize(html string) string
}

// SanitizerFunc adapts a function into a Sanitizer.
type SanitizerFunc func(html string) string

func (fn SanitizerFunc) Sanitize(html string) string {
	return fn(html)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s for the current request.
func NewContext(ctx context.Context, s Sanitizer) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request-scoped sanitizer, if any.
func FromContext(ctx context.Context) (Sanitizer, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(contextKey{}).(Sanitizer)
	return s, ok && s != nil
}

// Option configures the policy built by New.
type Option func(*config)

type config struct {
	allowSVG      bool
	allowDataAttr bool
	elements      []string
	attrs         map[string][]string
}

// WithSVG allows inline SVG icons.
func WithSVG() Option {
	return func(c *config) {
		c.allowSVG = true
	}
}

// WithDataAttributes allows data-* attributes on any element.
func WithDataAttributes() Option {
	return func(c *config) {
		c.allowDataAttr = true
	}
}

// WithElements allows extra elements without attributes.
func WithElements(elements ...string) Option {
	return func(c *config) {
		c.elements = append(c.elements, elements...)
	}
}

// WithAttributes allows attrs on the given element.
func WithAttributes(element string, attrs ...string) Option {
	return func(c *config) {
		if c.attrs == nil {
			c.attrs = make(map[string][]string)
		}
		c.attrs[element] = append(c.attrs[element], attrs...)
	}
}

// Policy wraps a bluemonday policy.
type Policy struct {
	policy *bluemonday.Policy
}

var _ Sanitizer = (*Policy)(nil)

// New returns a user-generated-content policy that also keeps class and id
// attributes, so styled widgets survive sanitizing.
func New(options ...Option) *Policy {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "id").Globally()
	policy.AllowElements("figure", "figcaption", "section", "article", "aside", "header", "footer", "nav", "mark")
	if cfg.allowDataAttr {
		policy.AllowDataAttributes()
	}
	if cfg.allowSVG {
		allowSVG(policy)
	}
	if len(cfg.elements) > 0 {
		policy.AllowElements(cfg.elements...)
	}
	for element, attrs := range cfg.attrs {
		policy.AllowAttrs(attrs...).OnElements(element)
	}
	return &Policy{policy: policy}
}

// Sanitize returns html with disallowed markup removed.
func (p *Policy) Sanitize(html string) string {
	if p == nil || p.policy == nil {
		return html
	}
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return p.policy.Sanitize(html)
}

func allowSVG(policy *bluemonday.Policy) {
	shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}
	policy.AllowElements(append([]string{"svg", "g", "title", "desc", "defs", "use", "clipPath"}, shapes...)...)
	policy.AllowAttrs(
		"xmlns", "viewBox", "width", "height", "fill", "stroke",
		"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
		"role", "focusable",
	).OnElements("svg")
	policy.AllowAttrs("href", "xlink:href", "clip-path").OnElements("use")
	policy.AllowAttrs(
		"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
		"points", "rx", "ry", "fill", "stroke", "stroke-width",
		"stroke-linecap", "stroke-linejoin",
	).OnElements(shapes...)
	policy.AllowAttrs("clipPathUnits").OnElements("clipPath")
}
