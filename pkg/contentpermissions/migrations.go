package contentpermissions

import (
	"context"
	"fmt"

	"github.com/goliatone/go-contentparts/pkg/definition"
	"github.com/goliatone/go-contentparts/pkg/migrations"
)

const (
	// Feature is the migration feature name.
	Feature = "ContentPermissions"

	partDescription     = "Provides ability to control which roles can view content item."
	partDisplayName     = "Content Permissions"
	partDefaultPosition = "10"
)

// Migrations registers the part definition on install.
type Migrations struct {
	parts definition.PartDefinitionAlterer
}

var _ migrations.Migration = (*Migrations)(nil)

// NewMigrations returns the migration altering parts through manager. Pass a
// compat.Resolver to support either host shape.
func NewMigrations(parts definition.PartDefinitionAlterer) (*Migrations, error) {
	if parts == nil {
		return nil, fmt.Errorf("%w: part definition alterer is nil", ErrInvalidArgument)
	}
	return &Migrations{parts: parts}, nil
}

func (m *Migrations) Feature() string {
	return Feature
}

// Create makes the part attachable with its description, display name and
// default position, and returns version 1.
func (m *Migrations) Create(ctx context.Context) (int, error) {
	err := m.parts.AlterPartDefinitionContext(ctx, PartName, func(_ context.Context, b *definition.PartBuilder) error {
		b.Attachable().
			WithDescription(partDescription).
			WithDisplayName(partDisplayName).
			WithDefaultPosition(partDefaultPosition)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("contentpermissions: create part: %w", err)
	}
	return 1, nil
}
