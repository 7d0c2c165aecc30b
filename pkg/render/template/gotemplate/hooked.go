package gotemplate

import (
	"fmt"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-contentparts/pkg/render/template"
)

// Hooked renders through the go-template engine, which runs registered pre
// and post render hooks around every template. Template syntax and filters
// are the same as Engine.
type Hooked struct {
	*gotemplatepkg.Engine
}

var _ template.TemplateRenderer = (*Hooked)(nil)

// NewHooked builds a go-template engine from the same options as New.
// WithStringCacheSize does not apply: go-template parses template strings on
// every call.
func NewHooked(options ...Option) (*Hooked, error) {
	s := newSettings(options)

	opts := []gotemplatepkg.Option{gotemplatepkg.WithExtension(s.ext)}
	if s.dir != "" {
		opts = append(opts, gotemplatepkg.WithBaseDir(s.dir))
	}
	if s.files != nil {
		opts = append(opts, gotemplatepkg.WithFS(s.files))
	}
	if s.dir == "" && s.files == nil {
		opts = append(opts, gotemplatepkg.WithFS(noFiles{}))
	}
	if len(s.globals) > 0 {
		opts = append(opts, gotemplatepkg.WithGlobalData(s.globals))
	}
	if len(s.funcs) > 0 {
		opts = append(opts, gotemplatepkg.WithTemplateFunc(s.funcs))
	}
	opts = append(opts, s.compatOpts...)

	engine, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: go-template engine: %w", err)
	}
	registerBuiltinFilters()
	return &Hooked{Engine: engine}, nil
}

// RegisterFilter installs fn as a pongo2 filter, replacing an existing one.
// go-template itself refuses duplicates, which breaks a second module in the
// same process.
func (h *Hooked) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	return registerFilter(name, fn)
}
