// Package memory provides an in-memory definition store. It is the reference
// host used by the CLI and tests, and exposes both manager shapes: Store
// implements the context-aware contract and Legacy wraps it in the older
// synchronous one.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-contentparts/pkg/definition"
)

// Store keeps type and part definitions in memory. Reads return copies.
type Store struct {
	mu    sync.RWMutex
	types map[string]*definition.ContentTypeDefinition
	parts map[string]*definition.ContentPartDefinition
}

var _ definition.Manager = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		types: make(map[string]*definition.ContentTypeDefinition),
		parts: make(map[string]*definition.ContentPartDefinition),
	}
}

// GetTypeDefinitionContext returns a copy of the named type or nil.
func (s *Store) GetTypeDefinitionContext(ctx context.Context, name string) (*definition.ContentTypeDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types[name].Clone(), nil
}

// GetPartDefinitionContext returns a copy of the named part or nil.
func (s *Store) GetPartDefinitionContext(ctx context.Context, name string) (*definition.ContentPartDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parts[name].Clone(), nil
}

// ListTypeDefinitions returns copies of every type sorted by name.
func (s *Store) ListTypeDefinitions(ctx context.Context) ([]*definition.ContentTypeDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*definition.ContentTypeDefinition, 0, len(s.types))
	for _, def := range s.types {
		out = append(out, def.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListPartDefinitions returns copies of every part sorted by name.
func (s *Store) ListPartDefinitions(ctx context.Context) ([]*definition.ContentPartDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*definition.ContentPartDefinition, 0, len(s.parts))
	for _, def := range s.parts {
		out = append(out, def.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AlterPartDefinitionContext creates or updates the named part. The callback
// runs under the store lock; it must not call back into the store.
func (s *Store) AlterPartDefinitionContext(ctx context.Context, name string, alter definition.PartAlteration) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("memory: part name is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	builder := definition.NewPartBuilder(name, s.parts[name])
	if alter != nil {
		if err := alter(ctx, builder); err != nil {
			return err
		}
	}
	def, err := builder.Build()
	if err != nil {
		return fmt.Errorf("memory: build part %q: %w", name, err)
	}
	s.parts[name] = def
	return nil
}

// AlterTypeDefinitionContext creates or updates the named type. Parts attached
// by the callback that are not yet defined are created empty.
func (s *Store) AlterTypeDefinitionContext(ctx context.Context, name string, alter definition.TypeAlteration) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("memory: type name is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	builder := definition.NewTypeBuilder(name, s.types[name])
	if alter != nil {
		if err := alter(ctx, builder); err != nil {
			return err
		}
	}
	def, err := builder.Build()
	if err != nil {
		return fmt.Errorf("memory: build type %q: %w", name, err)
	}
	for _, part := range def.Parts {
		if _, ok := s.parts[part.PartName]; !ok {
			s.parts[part.PartName] = &definition.ContentPartDefinition{Name: part.PartName}
		}
	}
	s.types[name] = def
	return nil
}

// Legacy exposes a Store through the synchronous manager shape only.
type Legacy struct {
	store *Store
}

var (
	_ definition.LegacyTypeDefinitionReader  = (*Legacy)(nil)
	_ definition.LegacyPartDefinitionAlterer = (*Legacy)(nil)
	_ definition.LegacyTypeDefinitionAlterer = (*Legacy)(nil)
)

// NewLegacy wraps store (or a fresh store when nil).
func NewLegacy(store *Store) *Legacy {
	if store == nil {
		store = New()
	}
	return &Legacy{store: store}
}

// Store returns the wrapped store.
func (l *Legacy) Store() *Store {
	return l.store
}

// GetTypeDefinition returns the named type or nil.
func (l *Legacy) GetTypeDefinition(name string) *definition.ContentTypeDefinition {
	def, _ := l.store.GetTypeDefinitionContext(context.Background(), name)
	return def
}

// AlterPartDefinition applies alter to the named part. Builder errors are
// dropped, matching the synchronous contract which has no error return.
func (l *Legacy) AlterPartDefinition(name string, alter func(*definition.PartBuilder)) {
	_ = l.store.AlterPartDefinitionContext(context.Background(), name, func(_ context.Context, b *definition.PartBuilder) error {
		if alter != nil {
			alter(b)
		}
		return nil
	})
}

// AlterTypeDefinition applies alter to the named type.
func (l *Legacy) AlterTypeDefinition(name string, alter func(*definition.TypeBuilder)) {
	_ = l.store.AlterTypeDefinitionContext(context.Background(), name, func(_ context.Context, b *definition.TypeBuilder) error {
		if alter != nil {
			alter(b)
		}
		return nil
	})
}
