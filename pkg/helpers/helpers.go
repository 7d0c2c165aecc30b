// Package helpers exposes the template helper functions available to views:
// base64 encoding, template strings rendered against a model, shortcode
// expansion, HTML sanitizing and shape rendering.
package helpers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-contentparts/pkg/display"
	"github.com/goliatone/go-contentparts/pkg/render/template"
	"github.com/goliatone/go-contentparts/pkg/sanitize"
	"github.com/goliatone/go-contentparts/pkg/shortcodes"
)

var (
	// ErrNoRenderer is returned when a template helper runs without a renderer.
	ErrNoRenderer = errors.New("helpers: template renderer not configured")
	// ErrNoShapeRenderer is returned by ShapeStringify without a shape renderer.
	ErrNoShapeRenderer = errors.New("helpers: shape renderer not configured")
)

// ShapeRenderer renders an editor shape to HTML. *display.Manager satisfies it.
type ShapeRenderer interface {
	Render(ctx context.Context, view *display.EditView) (string, error)
}

// Option configures a Helper.
type Option func(*Helper)

// WithRenderer sets the template renderer used by Liquid.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(h *Helper) {
		h.renderer = renderer
	}
}

// WithShortcodes sets the shortcode processor.
func WithShortcodes(processor *shortcodes.Processor) Option {
	return func(h *Helper) {
		h.shortcodes = processor
	}
}

// WithSanitizer sets the fallback sanitizer used when the request carries
// none.
func WithSanitizer(s sanitize.Sanitizer) Option {
	return func(h *Helper) {
		h.sanitizer = s
	}
}

// WithShapeRenderer sets the renderer used by ShapeStringify.
func WithShapeRenderer(shapes ShapeRenderer) Option {
	return func(h *Helper) {
		h.shapes = shapes
	}
}

// WithLogger sets the helper logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Helper) {
		h.logger = logger
	}
}

// Helper bundles the view helpers. It holds no per-request state.
type Helper struct {
	renderer   template.TemplateRenderer
	shortcodes *shortcodes.Processor
	sanitizer  sanitize.Sanitizer
	shapes     ShapeRenderer
	logger     zerolog.Logger
}

// New returns a Helper configured by options.
func New(options ...Option) *Helper {
	h := &Helper{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// B64Encode returns the standard base64 encoding of value's UTF-8 bytes.
func (h *Helper) B64Encode(value string) string {
	if value == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(value))
}

// Liquid renders src with model exposed as Model. Interpolated values are
// HTML-escaped.
func (h *Helper) Liquid(ctx context.Context, src string, model any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if h.renderer == nil {
		return "", ErrNoRenderer
	}
	out, err := h.renderer.RenderString(src, map[string]any{"Model": model})
	if err != nil {
		return "", fmt.Errorf("helpers: render template: %w", err)
	}
	return out, nil
}

// SanitizedRawHTML cleans html with the request sanitizer, or the configured
// one. Without either the input is returned unchanged.
func (h *Helper) SanitizedRawHTML(ctx context.Context, html string) string {
	return h.sanitizeWith(h.sanitizerFor(ctx), html)
}

func (h *Helper) sanitizeWith(s sanitize.Sanitizer, html string) string {
	if s == nil {
		h.logger.Debug().Msg("no sanitizer registered, passing html through")
		return html
	}
	return s.Sanitize(html)
}

// LiquidToSanitizedHTML renders src and sanitizes the result.
func (h *Helper) LiquidToSanitizedHTML(ctx context.Context, src string, model any) (string, error) {
	out, err := h.Liquid(ctx, src, model)
	if err != nil {
		return "", err
	}
	return h.SanitizedRawHTML(ctx, out), nil
}

// LiquidShortcodes renders src and expands shortcodes in the result.
func (h *Helper) LiquidShortcodes(ctx context.Context, src string, model any) (string, error) {
	out, err := h.Liquid(ctx, src, model)
	if err != nil {
		return "", err
	}
	return h.expand(ctx, out, model)
}

// Shortcodes expands shortcodes in html.
func (h *Helper) Shortcodes(ctx context.Context, html string) (string, error) {
	return h.expand(ctx, html, nil)
}

// ShapeStringify renders view to a string without further encoding.
func (h *Helper) ShapeStringify(ctx context.Context, view *display.EditView) (string, error) {
	if h.shapes == nil {
		return "", ErrNoShapeRenderer
	}
	if view == nil {
		return "", nil
	}
	return h.shapes.Render(ctx, view)
}

// RegisterFilters exposes b64encode and sanitize as template filters. Filter
// output is escaped like any value; chain |safe to emit sanitized markup.
//
// Filters are process wide and never see the request context, so the
// sanitize filter always uses the sanitizer given to New. A sanitizer set
// with sanitize.NewContext applies only to SanitizedRawHTML and the helpers
// built on it.
func (h *Helper) RegisterFilters(engine template.TemplateRenderer) error {
	if engine == nil {
		return ErrNoRenderer
	}
	if err := engine.RegisterFilter("b64encode", func(input any, _ any) (any, error) {
		return h.B64Encode(stringify(input)), nil
	}); err != nil {
		return fmt.Errorf("helpers: register b64encode: %w", err)
	}
	if err := engine.RegisterFilter("sanitize", func(input any, _ any) (any, error) {
		return h.sanitizeWith(h.sanitizer, stringify(input)), nil
	}); err != nil {
		return fmt.Errorf("helpers: register sanitize: %w", err)
	}
	return nil
}

func (h *Helper) expand(ctx context.Context, html string, model any) (string, error) {
	if h.shortcodes == nil {
		return html, nil
	}
	return h.shortcodes.Process(ctx, html, model)
}

func (h *Helper) sanitizerFor(ctx context.Context) sanitize.Sanitizer {
	if s, ok := sanitize.FromContext(ctx); ok {
		return s
	}
	return h.sanitizer
}

func stringify(input any) string {
	switch v := input.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
