package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-contentparts/pkg/definition"
)

// ContextHost exposes only the context-aware manager shape and records every
// call it receives.
type ContextHost struct {
	mu    sync.Mutex
	Types map[string]*definition.ContentTypeDefinition
	Parts map[string]*definition.ContentPartDefinition
	Err   error
	Calls []string
}

// NewContextHost returns an empty ContextHost.
func NewContextHost() *ContextHost {
	return &ContextHost{
		Types: make(map[string]*definition.ContentTypeDefinition),
		Parts: make(map[string]*definition.ContentPartDefinition),
	}
}

func (h *ContextHost) GetTypeDefinitionContext(ctx context.Context, name string) (*definition.ContentTypeDefinition, error) {
	h.record("GetTypeDefinitionContext:" + name)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Types[name].Clone(), nil
}

func (h *ContextHost) AlterPartDefinitionContext(ctx context.Context, name string, alter definition.PartAlteration) error {
	h.record("AlterPartDefinitionContext:" + name)
	if h.Err != nil {
		return h.Err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	b := definition.NewPartBuilder(name, h.Parts[name])
	if alter != nil {
		if err := alter(ctx, b); err != nil {
			return err
		}
	}
	def, err := b.Build()
	if err != nil {
		return err
	}
	h.Parts[name] = def
	return nil
}

func (h *ContextHost) AlterTypeDefinitionContext(ctx context.Context, name string, alter definition.TypeAlteration) error {
	h.record("AlterTypeDefinitionContext:" + name)
	if h.Err != nil {
		return h.Err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	b := definition.NewTypeBuilder(name, h.Types[name])
	if alter != nil {
		if err := alter(ctx, b); err != nil {
			return err
		}
	}
	def, err := b.Build()
	if err != nil {
		return err
	}
	h.Types[name] = def
	return nil
}

func (h *ContextHost) record(call string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls = append(h.Calls, call)
}

// LegacyHost exposes only the synchronous manager shape.
type LegacyHost struct {
	mu    sync.Mutex
	Types map[string]*definition.ContentTypeDefinition
	Parts map[string]*definition.ContentPartDefinition
	Calls []string
}

// NewLegacyHost returns an empty LegacyHost.
func NewLegacyHost() *LegacyHost {
	return &LegacyHost{
		Types: make(map[string]*definition.ContentTypeDefinition),
		Parts: make(map[string]*definition.ContentPartDefinition),
	}
}

func (h *LegacyHost) GetTypeDefinition(name string) *definition.ContentTypeDefinition {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls = append(h.Calls, "GetTypeDefinition:"+name)
	return h.Types[name]
}

func (h *LegacyHost) AlterPartDefinition(name string, alter func(*definition.PartBuilder)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls = append(h.Calls, "AlterPartDefinition:"+name)
	b := definition.NewPartBuilder(name, h.Parts[name])
	if alter != nil {
		alter(b)
	}
	if def, err := b.Build(); err == nil {
		h.Parts[name] = def
	}
}

func (h *LegacyHost) AlterTypeDefinition(name string, alter func(*definition.TypeBuilder)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls = append(h.Calls, "AlterTypeDefinition:"+name)
	b := definition.NewTypeBuilder(name, h.Types[name])
	if alter != nil {
		alter(b)
	}
	if def, err := b.Build(); err == nil {
		h.Types[name] = def
	}
}

// BareHost exposes no manager capability at all.
type BareHost struct{}
