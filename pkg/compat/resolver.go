package compat

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-contentparts/pkg/definition"
)

// Operation names used in capability reports and errors.
const (
	OpGetTypeDefinition   = "GetTypeDefinition"
	OpAlterPartDefinition = "AlterPartDefinition"
	OpAlterTypeDefinition = "AlterTypeDefinition"
)

// Shape identifies which host method an operation dispatches to.
type Shape string

const (
	ShapeNone    Shape = "none"
	ShapeContext Shape = "context"
	ShapeLegacy  Shape = "legacy"
)

// Mode controls how unsupported mutations are reported.
type Mode int

const (
	// ModeStrict returns an *UnsupportedError for every unsupported operation.
	ModeStrict Mode = iota
	// ModeBestEffort turns unsupported mutations into logged no-ops. Reads
	// still fail.
	ModeBestEffort
)

func (m Mode) String() string {
	switch m {
	case ModeBestEffort:
		return "best-effort"
	default:
		return "strict"
	}
}

// ParseMode maps "strict" and "best-effort" (or "besteffort") to a Mode.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "strict":
		return ModeStrict, nil
	case "best-effort", "besteffort", "best_effort":
		return ModeBestEffort, nil
	default:
		return ModeStrict, fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, raw)
	}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMode selects strict or best-effort handling of unsupported mutations.
func WithMode(mode Mode) Option {
	return func(r *Resolver) {
		r.mode = mode
	}
}

// WithLogger sets the logger used for resolution and no-op reports.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// Resolver dispatches definition operations to whichever shape the host
// exposes. It is safe for concurrent use if the host is.
type Resolver struct {
	host     any
	hostType string
	mode     Mode
	logger   zerolog.Logger

	readType        definition.TypeDefinitionReader
	legacyReadType  definition.LegacyTypeDefinitionReader
	alterPart       definition.PartDefinitionAlterer
	legacyAlterPart definition.LegacyPartDefinitionAlterer
	alterType       definition.TypeDefinitionAlterer
	legacyAlterType definition.LegacyTypeDefinitionAlterer
}

var _ definition.Manager = (*Resolver)(nil)

// New probes host once and returns a Resolver bound to the shapes it found.
func New(host any, options ...Option) (*Resolver, error) {
	if isNil(host) {
		return nil, fmt.Errorf("%w: host manager is nil", ErrInvalidArgument)
	}
	if resolved, ok := host.(*Resolver); ok {
		host = resolved.host
	}

	r := &Resolver{
		host:     host,
		hostType: fmt.Sprintf("%T", host),
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	r.readType, _ = host.(definition.TypeDefinitionReader)
	r.legacyReadType, _ = host.(definition.LegacyTypeDefinitionReader)
	r.alterPart, _ = host.(definition.PartDefinitionAlterer)
	r.legacyAlterPart, _ = host.(definition.LegacyPartDefinitionAlterer)
	r.alterType, _ = host.(definition.TypeDefinitionAlterer)
	r.legacyAlterType, _ = host.(definition.LegacyTypeDefinitionAlterer)

	caps := r.Capabilities()
	r.logger.Debug().
		Str("host", r.hostType).
		Str("mode", r.mode.String()).
		Str(OpGetTypeDefinition, string(caps[OpGetTypeDefinition])).
		Str(OpAlterPartDefinition, string(caps[OpAlterPartDefinition])).
		Str(OpAlterTypeDefinition, string(caps[OpAlterTypeDefinition])).
		Msg("resolved definition manager capabilities")

	return r, nil
}

// Host returns the wrapped host manager.
func (r *Resolver) Host() any {
	return r.host
}

// Mode returns the configured mutation mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Capabilities reports the shape each operation dispatches to.
func (r *Resolver) Capabilities() map[string]Shape {
	return map[string]Shape{
		OpGetTypeDefinition:   pick(r.readType != nil, r.legacyReadType != nil),
		OpAlterPartDefinition: pick(r.alterPart != nil, r.legacyAlterPart != nil),
		OpAlterTypeDefinition: pick(r.alterType != nil, r.legacyAlterType != nil),
	}
}

// GetTypeDefinitionContext returns the named type definition, or (nil, nil)
// when the host has none.
func (r *Resolver) GetTypeDefinitionContext(ctx context.Context, name string) (*definition.ContentTypeDefinition, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	switch {
	case r.readType != nil:
		def, err := r.readType.GetTypeDefinitionContext(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("compat: get type %q: %w", name, err)
		}
		return def, nil
	case r.legacyReadType != nil:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return r.legacyReadType.GetTypeDefinition(name), nil
	default:
		return nil, r.unsupported(OpGetTypeDefinition)
	}
}

// AlterPartDefinitionContext applies alter to the named part definition.
func (r *Resolver) AlterPartDefinitionContext(ctx context.Context, name string, alter definition.PartAlteration) error {
	if err := requireName(name); err != nil {
		return err
	}
	switch {
	case r.alterPart != nil:
		if err := r.alterPart.AlterPartDefinitionContext(ctx, name, alter); err != nil {
			return fmt.Errorf("compat: alter part %q: %w", name, err)
		}
		return nil
	case r.legacyAlterPart != nil:
		if err := ctx.Err(); err != nil {
			return err
		}
		var alterErr error
		r.legacyAlterPart.AlterPartDefinition(name, func(b *definition.PartBuilder) {
			if alter != nil {
				alterErr = alter(ctx, b)
			}
		})
		if alterErr != nil {
			return fmt.Errorf("compat: alter part %q: %w", name, alterErr)
		}
		return nil
	default:
		return r.unsupportedMutation(OpAlterPartDefinition, name)
	}
}

// AlterTypeDefinitionContext applies alter to the named type definition.
func (r *Resolver) AlterTypeDefinitionContext(ctx context.Context, name string, alter definition.TypeAlteration) error {
	if err := requireName(name); err != nil {
		return err
	}
	switch {
	case r.alterType != nil:
		if err := r.alterType.AlterTypeDefinitionContext(ctx, name, alter); err != nil {
			return fmt.Errorf("compat: alter type %q: %w", name, err)
		}
		return nil
	case r.legacyAlterType != nil:
		if err := ctx.Err(); err != nil {
			return err
		}
		var alterErr error
		r.legacyAlterType.AlterTypeDefinition(name, func(b *definition.TypeBuilder) {
			if alter != nil {
				alterErr = alter(ctx, b)
			}
		})
		if alterErr != nil {
			return fmt.Errorf("compat: alter type %q: %w", name, alterErr)
		}
		return nil
	default:
		return r.unsupportedMutation(OpAlterTypeDefinition, name)
	}
}

func (r *Resolver) unsupported(op string) error {
	return &UnsupportedError{Operation: op, HostType: r.hostType}
}

func (r *Resolver) unsupportedMutation(op, name string) error {
	if r.mode == ModeBestEffort {
		r.logger.Warn().
			Str("operation", op).
			Str("name", name).
			Str("host", r.hostType).
			Msg("definition mutation skipped: host exposes no supported shape")
		return nil
	}
	return r.unsupported(op)
}

func pick(hasContext, hasLegacy bool) Shape {
	switch {
	case hasContext:
		return ShapeContext
	case hasLegacy:
		return ShapeLegacy
	default:
		return ShapeNone
	}
}

func isNil(host any) bool {
	if host == nil {
		return true
	}
	v := reflect.ValueOf(host)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: definition name is required", ErrInvalidArgument)
	}
	return nil
}
