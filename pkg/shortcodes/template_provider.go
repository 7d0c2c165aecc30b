package shortcodes

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-contentparts/pkg/render/template"
)

// TemplateProvider renders shortcodes defined as template sources. Templates
// see Args, Content (already expanded, mark it |safe to keep markup), Name and
// Model.
type TemplateProvider struct {
	mu        sync.RWMutex
	renderer  template.TemplateRenderer
	templates map[string]string
}

// NewTemplateProvider returns a provider rendering through renderer.
func NewTemplateProvider(renderer template.TemplateRenderer) *TemplateProvider {
	return &TemplateProvider{renderer: renderer, templates: make(map[string]string)}
}

// Define registers or replaces the template for name.
func (p *TemplateProvider) Define(name, source string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return errors.New("shortcodes: template name is required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.templates[name] = source
	return nil
}

// Names lists defined shortcode names.
func (p *TemplateProvider) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.templates))
	for name := range p.templates {
		names = append(names, name)
	}
	return names
}

func (p *TemplateProvider) Evaluate(_ context.Context, code Shortcode, sc *Context) (string, bool, error) {
	p.mu.RLock()
	source, ok := p.templates[strings.ToLower(code.Name)]
	p.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if p.renderer == nil {
		return "", true, errors.New("shortcodes: template renderer not configured")
	}
	var model any
	if sc != nil {
		model = sc.Model
	}
	args := make(map[string]any, len(code.Args))
	for k, v := range code.Args {
		args[k] = v
	}
	out, err := p.renderer.RenderString(source, map[string]any{
		"Name":    code.Name,
		"Args":    args,
		"Content": code.Content,
		"Model":   model,
	})
	return out, true, err
}
