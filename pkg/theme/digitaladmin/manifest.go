// Package digitaladmin carries the Digital admin theme: its go-theme
// manifest and the dark-mode service the admin layout consults.
package digitaladmin

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
)

const (
	// ThemeName is the registered manifest name.
	ThemeName = "digital"
	// DarkVariant is the variant selected when dark mode is on.
	DarkVariant = "dark"
)

// DigitalManifest returns the theme manifest with its dark variant.
func DigitalManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"background": "#ffffff",
			"foreground": "#1f2933",
			"brand":      "#26374a",
			"link":       "#284162",
		},
		Templates: map[string]string{
			"admin.layout": "themes/digital/layout.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/digital",
			Files: map[string]string{
				"admin.stylesheet": "digital.css",
			},
		},
		Variants: map[string]theme.Variant{
			DarkVariant: {
				Tokens: map[string]string{
					"background": "#121212",
					"foreground": "#e4e7eb",
					"brand":      "#9fb3c8",
					"link":       "#a7c5eb",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"admin.stylesheet": "digital.dark.css",
					},
				},
			},
		},
	}
}

// NewThemeProvider returns a go-theme registry holding the digital manifest.
func NewThemeProvider() (theme.ThemeProvider, error) {
	registry := theme.NewRegistry()
	if err := registry.Register(DigitalManifest()); err != nil {
		return nil, fmt.Errorf("digitaladmin: register manifest: %w", err)
	}
	return registry, nil
}
