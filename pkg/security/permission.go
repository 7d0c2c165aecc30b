package security

import (
	"context"
	"strings"
)

// Permission names a capability a caller may hold.
type Permission struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	ImpliedBy   []Permission `json:"impliedBy,omitempty"`
}

const typePlaceholder = "{0}"

// Common content permissions. Type-specific variants are derived through
// PermissionTemplates and CreateDynamicPermission.
var (
	EditContent        = Permission{Name: "EditContent", Description: "Edit content for others"}
	EditOwnContent     = Permission{Name: "EditOwnContent", Description: "Edit own content", ImpliedBy: []Permission{EditContent}}
	ViewContent        = Permission{Name: "ViewContent", Description: "View all content", ImpliedBy: []Permission{EditContent}}
	ViewOwnContent     = Permission{Name: "ViewOwnContent", Description: "View own content", ImpliedBy: []Permission{ViewContent}}
	PublishContent     = Permission{Name: "PublishContent", Description: "Publish or unpublish content for others", ImpliedBy: []Permission{EditContent}}
	PublishOwnContent  = Permission{Name: "PublishOwnContent", Description: "Publish or unpublish own content", ImpliedBy: []Permission{PublishContent}}
	DeleteContent      = Permission{Name: "DeleteContent", Description: "Delete content for others", ImpliedBy: []Permission{EditContent}}
	DeleteOwnContent   = Permission{Name: "DeleteOwnContent", Description: "Delete own content", ImpliedBy: []Permission{DeleteContent}}
	editContentTmpl    = Permission{Name: "EditContent_{0}", Description: "Edit {0} for others"}
	viewContentTmpl    = Permission{Name: "ViewContent_{0}", Description: "View {0} by others", ImpliedBy: []Permission{editContentTmpl}}
	publishContentTmpl = Permission{Name: "Publish_{0}", Description: "Publish or unpublish {0} for others", ImpliedBy: []Permission{editContentTmpl}}
	deleteContentTmpl  = Permission{Name: "Delete_{0}", Description: "Delete {0} for others", ImpliedBy: []Permission{editContentTmpl}}
)

// PermissionTemplates maps a common permission name to the template used to
// derive its per-content-type variant.
var PermissionTemplates = map[string]Permission{
	EditContent.Name:       editContentTmpl,
	EditOwnContent.Name:    {Name: "EditOwn_{0}", Description: "Edit own {0}", ImpliedBy: []Permission{editContentTmpl}},
	ViewContent.Name:       viewContentTmpl,
	ViewOwnContent.Name:    {Name: "ViewOwn_{0}", Description: "View own {0}", ImpliedBy: []Permission{viewContentTmpl}},
	PublishContent.Name:    publishContentTmpl,
	PublishOwnContent.Name: {Name: "PublishOwn_{0}", Description: "Publish or unpublish own {0}", ImpliedBy: []Permission{publishContentTmpl}},
	DeleteContent.Name:     deleteContentTmpl,
	DeleteOwnContent.Name:  {Name: "DeleteOwn_{0}", Description: "Delete own {0}", ImpliedBy: []Permission{deleteContentTmpl}},
}

// CreateDynamicPermission instantiates template for contentType, replacing
// the {0} placeholder in names and descriptions, including implied
// permissions.
func CreateDynamicPermission(template Permission, contentType string) Permission {
	contentType = strings.TrimSpace(contentType)
	out := Permission{
		Name:        strings.ReplaceAll(template.Name, typePlaceholder, contentType),
		Description: strings.ReplaceAll(template.Description, typePlaceholder, contentType),
	}
	if len(template.ImpliedBy) > 0 {
		out.ImpliedBy = make([]Permission, len(template.ImpliedBy))
		for i, implied := range template.ImpliedBy {
			out.ImpliedBy[i] = CreateDynamicPermission(implied, contentType)
		}
	}
	return out
}

// ContentTypePermission is CreateDynamicPermission keyed by the common
// permission name. It reports false when no template exists.
func ContentTypePermission(common Permission, contentType string) (Permission, bool) {
	template, ok := PermissionTemplates[common.Name]
	if !ok {
		return Permission{}, false
	}
	return CreateDynamicPermission(template, contentType), true
}

// Authorizer decides whether the caller on ctx holds permission.
type Authorizer interface {
	Authorize(ctx context.Context, permission Permission) bool
}

// AuthorizerFunc adapts a function into an Authorizer.
type AuthorizerFunc func(ctx context.Context, permission Permission) bool

// Authorize calls the underlying function.
func (fn AuthorizerFunc) Authorize(ctx context.Context, permission Permission) bool {
	return fn(ctx, permission)
}

// AllowAll grants every permission.
var AllowAll Authorizer = AuthorizerFunc(func(context.Context, Permission) bool { return true })

// RoleGrants authorizes by mapping role names to granted permission names.
// A permission is held when any role of the principal grants it or any
// permission that implies it.
type RoleGrants map[string][]string

// Authorize implements Authorizer.
func (g RoleGrants) Authorize(ctx context.Context, permission Permission) bool {
	principal, ok := PrincipalFromContext(ctx)
	for role, grants := range g {
		if !holdsRole(principal, ok, role) {
			continue
		}
		if grantsPermission(grants, permission) {
			return true
		}
	}
	return false
}

func holdsRole(principal Principal, present bool, role string) bool {
	switch {
	case role == RoleAnonymous:
		return true
	case !present:
		return false
	case role == RoleAuthenticated:
		return principal.IsAuthenticated()
	default:
		return principal.IsInRole(role)
	}
}

func grantsPermission(grants []string, permission Permission) bool {
	for _, grant := range grants {
		if strings.EqualFold(grant, permission.Name) {
			return true
		}
	}
	for _, implied := range permission.ImpliedBy {
		if grantsPermission(grants, implied) {
			return true
		}
	}
	return false
}
