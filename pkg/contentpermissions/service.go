package contentpermissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/definition"
	"github.com/goliatone/go-contentparts/pkg/security"
)

// ErrInvalidArgument is returned for missing required collaborators.
var ErrInvalidArgument = errors.New("contentpermissions: invalid argument")

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service evaluates content permissions.
type Service struct {
	types  definition.TypeDefinitionReader
	logger zerolog.Logger
}

// NewService returns a Service reading type definitions from types. Pass a
// compat.Resolver to support either host shape.
func NewService(types definition.TypeDefinitionReader, options ...Option) (*Service, error) {
	if types == nil {
		return nil, fmt.Errorf("%w: type definition reader is nil", ErrInvalidArgument)
	}
	s := &Service{types: types, logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// CanAccess reports whether the principal on ctx may view content guarded by
// part. Rules apply in order:
//
//  1. a nil, disabled or role-less part allows everyone
//  2. the Anonymous role allows everyone
//  3. without a principal access is denied
//  4. the Authenticated role allows any authenticated principal
//  5. otherwise the principal must be in one of the listed roles
func (s *Service) CanAccess(ctx context.Context, part *Part) bool {
	if part == nil || !part.Enabled || len(part.Roles) == 0 {
		return true
	}
	if containsRole(part.Roles, RoleAnonymous) {
		return true
	}

	principal, ok := security.PrincipalFromContext(ctx)
	if !ok {
		return false
	}
	if containsRole(part.Roles, RoleAuthenticated) && principal.IsAuthenticated() {
		return true
	}
	for _, role := range part.Roles {
		if principal.IsInRole(role) {
			return true
		}
	}
	return false
}

// CanAccessItem evaluates the part attached to item. Items without the part
// are public; a part that cannot be decoded denies access.
func (s *Service) CanAccessItem(ctx context.Context, item *content.ContentItem) bool {
	part, err := PartOf(item)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("content_item_id", item.ContentItemID).
			Msg("content permissions part unreadable, denying access")
		return false
	}
	return s.CanAccess(ctx, part)
}

// GetSettings returns the part settings configured on the item's content
// type. It returns nil without error when the type is unknown, lacks the part,
// or carries no settings.
func (s *Service) GetSettings(ctx context.Context, item *content.ContentItem) (*Settings, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: content item is nil", ErrInvalidArgument)
	}
	typeDef, err := s.types.GetTypeDefinitionContext(ctx, item.ContentType)
	if err != nil {
		return nil, fmt.Errorf("contentpermissions: load type %q: %w", item.ContentType, err)
	}
	if typeDef == nil {
		return nil, nil
	}
	typePart, ok := typeDef.Part(PartName)
	if !ok {
		return nil, nil
	}

	var settings Settings
	found, err := typePart.Settings.Get(&settings)
	if err != nil {
		return nil, fmt.Errorf("contentpermissions: settings of %q: %w", item.ContentType, err)
	}
	if !found {
		return nil, nil
	}
	return &settings, nil
}

// PartOf decodes the part attached to item, or nil when absent.
func PartOf(item *content.ContentItem) (*Part, error) {
	var part Part
	ok, err := item.Get(PartName, &part)
	if err != nil {
		return nil, fmt.Errorf("contentpermissions: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &part, nil
}
