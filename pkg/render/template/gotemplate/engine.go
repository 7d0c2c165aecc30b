// Package gotemplate is the default template.TemplateRenderer, backed by a
// pongo2 template set. Editor shapes, shortcode templates and the string
// helpers all render through it.
package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-contentparts/pkg/render/template"
)

const defaultStringCacheSize = 128

var errNilEngine = errors.New("gotemplate: engine is nil")

// Option configures New.
type Option func(*settings)

type settings struct {
	dir        string
	files      fs.FS
	ext        string
	cacheSize  int
	globals    map[string]any
	funcs      map[string]any
	compatOpts []gotemplatepkg.Option
}

// WithBaseDir loads named templates from dir.
func WithBaseDir(dir string) Option {
	return func(s *settings) {
		s.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads named templates from files.
func WithFS(files fs.FS) Option {
	return func(s *settings) {
		s.files = files
	}
}

// WithExtension sets the suffix appended to template names (".tpl" by
// default).
func WithExtension(ext string) Option {
	return func(s *settings) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		s.ext = "." + strings.TrimPrefix(ext, ".")
	}
}

// WithStringCacheSize bounds the parsed RenderString templates kept in
// memory. Zero disables the cache.
func WithStringCacheSize(size int) Option {
	return func(s *settings) {
		s.cacheSize = max(size, 0)
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(s *settings) {
		for key, value := range data {
			if s.globals == nil {
				s.globals = make(map[string]any, len(data))
			}
			s.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithFuncs exposes functions as globals. pongo2.FilterFunction values are
// registered as filters instead.
func WithFuncs(funcs map[string]any) Option {
	return func(s *settings) {
		for name, fn := range funcs {
			if s.funcs == nil {
				s.funcs = make(map[string]any, len(funcs))
			}
			s.funcs[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGoTemplateOptions passes extra options to the go-template engine built
// by NewHooked. They are applied after the options derived from this package
// and have no effect on New.
func WithGoTemplateOptions(opts ...gotemplatepkg.Option) Option {
	return func(s *settings) {
		s.compatOpts = append(s.compatOpts, opts...)
	}
}

// Engine renders pongo2 templates. Named templates are parsed once; template
// strings go through a bounded cache.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	ext   string
	named map[string]*pongo2.Template
	cache *stringCache
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. Without WithBaseDir or WithFS only RenderString
// works.
func New(options ...Option) (*Engine, error) {
	s := newSettings(options)

	var loaders []pongo2.TemplateLoader
	if s.dir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(s.dir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: base dir %s: %w", s.dir, err)
		}
		loaders = append(loaders, loader)
	}
	if s.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(s.files))
	}
	if len(loaders) == 0 {
		loaders = append(loaders, pongo2.NewFSLoader(noFiles{}))
	}

	e := &Engine{
		set:   pongo2.NewSet("contentparts", loaders...),
		ext:   s.ext,
		named: make(map[string]*pongo2.Template),
		cache: newStringCache(s.cacheSize),
	}
	registerBuiltinFilters()

	if err := e.GlobalContext(s.globals); err != nil {
		return nil, err
	}
	for name, fn := range s.funcs {
		if err := e.addFunc(name, fn); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Render treats name as template source when it contains template markup,
// and as a template name otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the named template, appending the configured
// extension when missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tpl, name, data, out)
}

// RenderString executes src. Interpolated values are HTML-escaped.
func (e *Engine) RenderString(src string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	tpl, ok := e.cache.get(src)
	if !ok {
		parsed, err := e.set.FromString(src)
		if err != nil {
			return "", fmt.Errorf("gotemplate: parse template string: %w", err)
		}
		e.cache.put(src, parsed)
		tpl = parsed
	}
	return e.execute(tpl, "template string", data, out)
}

// RegisterFilter installs fn as a pongo2 filter. Filters are process wide;
// an existing filter with the same name is replaced.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	return registerFilter(name, fn)
}

// GlobalContext merges data into the globals of every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errNilEngine
	}
	if data == nil {
		return nil
	}
	globals, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global data: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(globals)
	return nil
}

func (e *Engine) execute(tpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, ok := e.named[name]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl, ok := e.named[name]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %s: %w", name, err)
	}
	e.named[name] = tpl
	return tpl, nil
}

func (e *Engine) addFunc(name string, fn any) error {
	if name == "" || fn == nil {
		return nil
	}
	if filter, ok := fn.(pongo2.FilterFunction); ok {
		return installFilter(name, filter)
	}
	if !isFunc(fn) {
		return fmt.Errorf("gotemplate: %s is not a function", name)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals[name] = fn
	return nil
}

func newSettings(options []Option) *settings {
	s := &settings{ext: ".tpl", cacheSize: defaultStringCacheSize}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// noFiles backs engines that only render template strings.
type noFiles struct{}

func (noFiles) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// stringCache keeps parsed template strings, evicting the oldest entry once
// full.
type stringCache struct {
	mu    sync.Mutex
	limit int
	order []string
	items map[string]*pongo2.Template
}

func newStringCache(limit int) *stringCache {
	return &stringCache{limit: limit, items: make(map[string]*pongo2.Template)}
}

func (c *stringCache) get(src string) (*pongo2.Template, bool) {
	if c.limit == 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	tpl, ok := c.items[src]
	return tpl, ok
}

func (c *stringCache) put(src string, tpl *pongo2.Template) {
	if c.limit == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[src]; ok {
		return
	}
	if len(c.order) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
	c.order = append(c.order, src)
	c.items[src] = tpl
}

func (c *stringCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
