package contentpermissions

import "github.com/goliatone/go-contentparts/pkg/security"

const (
	// PartName is the name the part is attached under.
	PartName = "ContentPermissionsPart"
	// RoleAnonymous grants access to everyone.
	RoleAnonymous = security.RoleAnonymous
	// RoleAuthenticated grants access to any signed-in principal.
	RoleAuthenticated = security.RoleAuthenticated
)

// Part lists the roles allowed to view an item when Enabled.
type Part struct {
	Enabled bool     `json:"enabled" schema:"Enabled" prompt:"Restrict viewing to selected roles?"`
	Roles   []string `json:"roles" schema:"Roles" prompt:"Roles"`
}

// Settings configures the part on a content type.
type Settings struct {
	RedirectURL string `json:"redirectUrl" schema:"RedirectUrl"`
}

// SettingsName keys the settings block on the type-part definition.
func (Settings) SettingsName() string {
	return "ContentPermissionsPartSettings"
}

func containsRole(roles []string, role string) bool {
	for _, candidate := range roles {
		if candidate == role {
			return true
		}
	}
	return false
}
