package definition

import "context"

// PartAlteration mutates a part definition for the context-aware shape.
type PartAlteration func(ctx context.Context, builder *PartBuilder) error

// TypeAlteration mutates a type definition for the context-aware shape.
type TypeAlteration func(ctx context.Context, builder *TypeBuilder) error

// TypeDefinitionReader is the context-aware read capability. A missing type
// is reported as (nil, nil).
type TypeDefinitionReader interface {
	GetTypeDefinitionContext(ctx context.Context, name string) (*ContentTypeDefinition, error)
}

// PartDefinitionAlterer is the context-aware part mutation capability.
type PartDefinitionAlterer interface {
	AlterPartDefinitionContext(ctx context.Context, name string, alter PartAlteration) error
}

// TypeDefinitionAlterer is the context-aware type mutation capability.
type TypeDefinitionAlterer interface {
	AlterTypeDefinitionContext(ctx context.Context, name string, alter TypeAlteration) error
}

// Manager groups the context-aware capabilities consumers depend on.
type Manager interface {
	TypeDefinitionReader
	PartDefinitionAlterer
	TypeDefinitionAlterer
}

// LegacyTypeDefinitionReader is the synchronous read shape older hosts expose.
type LegacyTypeDefinitionReader interface {
	GetTypeDefinition(name string) *ContentTypeDefinition
}

// LegacyPartDefinitionAlterer is the synchronous part mutation shape.
type LegacyPartDefinitionAlterer interface {
	AlterPartDefinition(name string, alter func(*PartBuilder))
}

// LegacyTypeDefinitionAlterer is the synchronous type mutation shape.
type LegacyTypeDefinitionAlterer interface {
	AlterTypeDefinition(name string, alter func(*TypeBuilder))
}
