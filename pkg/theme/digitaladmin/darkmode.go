package digitaladmin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"
)

const (
	// DefaultTenant is the tenant reported by CurrentTenant.
	DefaultTenant = "default"
	// PreferencesCookie holds the admin preferences as JSON.
	PreferencesCookie = "adminPreferences"
)

// Preferences is the admin preferences cookie payload.
type Preferences struct {
	IsDarkMode bool `json:"isDarkMode"`
}

type preferencesKey struct{}

// WithPreferences returns a copy of ctx carrying prefs.
func WithPreferences(ctx context.Context, prefs Preferences) context.Context {
	return context.WithValue(ctx, preferencesKey{}, prefs)
}

// PreferencesFromContext returns the preferences on ctx.
func PreferencesFromContext(ctx context.Context) (Preferences, bool) {
	if ctx == nil {
		return Preferences{}, false
	}
	prefs, ok := ctx.Value(preferencesKey{}).(Preferences)
	return prefs, ok
}

// ParsePreferences decodes a cookie value. Values may be URL-encoded.
func ParsePreferences(raw string) (Preferences, error) {
	var prefs Preferences
	if raw == "" {
		return prefs, nil
	}
	if decoded, err := url.QueryUnescape(raw); err == nil {
		raw = decoded
	}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// Option configures a DarkModeService.
type Option func(*DarkModeService)

// WithSelector overrides the go-theme selector.
func WithSelector(selector theme.ThemeSelector) Option {
	return func(s *DarkModeService) {
		s.selector = selector
	}
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *DarkModeService) {
		s.logger = logger
	}
}

// DarkModeService reports whether the current admin user prefers dark mode
// and resolves the matching theme variant.
type DarkModeService struct {
	selector theme.ThemeSelector
	logger   zerolog.Logger
}

// NewDarkModeService returns a service selecting from the digital manifest
// unless WithSelector is given.
func NewDarkModeService(options ...Option) *DarkModeService {
	s := &DarkModeService{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.selector == nil {
		s.selector = manifestSelector{manifest: DigitalManifest()}
	}
	return s
}

// CurrentTenant returns the tenant name.
func (s *DarkModeService) CurrentTenant() string {
	return DefaultTenant
}

// CurrentTheme returns the admin theme name.
func (s *DarkModeService) CurrentTheme() string {
	return ThemeName
}

// IsDarkMode reports the request preference. Without preferences on ctx dark
// mode is off.
func (s *DarkModeService) IsDarkMode(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	prefs, _ := PreferencesFromContext(ctx)
	return prefs.IsDarkMode, nil
}

// Selection resolves the theme variant for the current request.
func (s *DarkModeService) Selection(ctx context.Context) (*theme.Selection, error) {
	dark, err := s.IsDarkMode(ctx)
	if err != nil {
		return nil, err
	}
	variant := ""
	if dark {
		variant = DarkVariant
	}
	return s.selector.Select(s.CurrentTheme(), variant)
}

// Middleware reads the preferences cookie into the request context. A
// malformed cookie is logged and treated as absent.
func (s *DarkModeService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(PreferencesCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		prefs, err := ParsePreferences(cookie.Value)
		if err != nil {
			s.logger.Debug().Err(err).Msg("ignoring malformed admin preferences cookie")
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPreferences(r.Context(), prefs)))
	})
}

// ErrUnknownTheme is returned by the built-in selector for other themes.
var ErrUnknownTheme = errors.New("digitaladmin: unknown theme")

type manifestSelector struct {
	manifest *theme.Manifest
}

func (m manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name != m.manifest.Name {
		return nil, ErrUnknownTheme
	}
	if _, ok := m.manifest.Variants[variant]; variant != "" && !ok {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m.manifest}, nil
}
