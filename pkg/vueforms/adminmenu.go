// Package vueforms registers the Vue Forms entry of the admin menu.
package vueforms

import (
	"context"

	"github.com/goliatone/go-contentparts/pkg/navigation"
	"github.com/goliatone/go-contentparts/pkg/security"
)

// ContentType is the content type listed by the menu entry.
const ContentType = "VueForm"

// AdminMenu adds Content > Vue Forms, linking to the content list filtered
// on VueForm items for callers allowed to edit their own forms.
type AdminMenu struct{}

var _ navigation.Provider = AdminMenu{}

// RouteValues returns the route values of the list action.
func RouteValues() map[string]any {
	return map[string]any{
		"contentTypeId":                        ContentType,
		"Area":                                 "OrchardCore.Contents",
		"Options.SelectedContentType":          ContentType,
		"Options.CanCreateSelectedContentType": true,
	}
}

// Permission is the dynamic EditOwn permission for VueForm items.
func Permission() security.Permission {
	return security.CreateDynamicPermission(security.PermissionTemplates[security.EditOwnContent.Name], ContentType)
}

// BuildNavigation contributes to the admin menu only.
func (AdminMenu) BuildNavigation(_ context.Context, name string, builder *navigation.Builder) error {
	if name != navigation.AdminMenu {
		return nil
	}
	builder.Add("Content", "", func(content *navigation.ItemBuilder) {
		content.Add("Vue Forms", "Vue Forms", func(forms *navigation.ItemBuilder) {
			forms.Permission(Permission()).
				Action("List", "Admin", RouteValues()).
				LocalNav()
		})
	})
	return nil
}
