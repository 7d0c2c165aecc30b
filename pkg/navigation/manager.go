package navigation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-contentparts/internal/position"
	"github.com/goliatone/go-contentparts/pkg/security"
)

// AdminMenu is the name of the admin menu.
const AdminMenu = "admin"

// Provider contributes items to the named menu. Providers ignore menus they
// do not serve.
type Provider interface {
	BuildNavigation(ctx context.Context, name string, builder *Builder) error
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, name string, builder *Builder) error

func (fn ProviderFunc) BuildNavigation(ctx context.Context, name string, builder *Builder) error {
	return fn(ctx, name, builder)
}

// Translator localizes captions.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// LinkResolver turns an action item into an href.
type LinkResolver func(item MenuItem) string

// Option configures a Manager.
type Option func(*Manager)

// WithAuthorizer filters items by permission. The default allows all.
func WithAuthorizer(authorizer security.Authorizer) Option {
	return func(m *Manager) {
		if authorizer != nil {
			m.authorizer = authorizer
		}
	}
}

// WithTranslator localizes captions.
func WithTranslator(translator Translator) Option {
	return func(m *Manager) {
		m.translator = translator
	}
}

// WithLinkResolver replaces the default href builder.
func WithLinkResolver(resolver LinkResolver) Option {
	return func(m *Manager) {
		if resolver != nil {
			m.links = resolver
		}
	}
}

// WithLogger sets the manager logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager builds menus from registered providers.
type Manager struct {
	mu         sync.RWMutex
	providers  []Provider
	authorizer security.Authorizer
	translator Translator
	links      LinkResolver
	logger     zerolog.Logger
}

// NewManager returns a manager with the given providers.
func NewManager(options ...Option) *Manager {
	m := &Manager{
		authorizer: security.AllowAll,
		links:      DefaultLink,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Register adds providers.
func (m *Manager) Register(providers ...Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range providers {
		if p != nil {
			m.providers = append(m.providers, p)
		}
	}
}

// BuildMenu runs every provider for name and returns the visible items.
func (m *Manager) BuildMenu(ctx context.Context, name string) ([]MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("navigation: menu name is required")
	}

	m.mu.RLock()
	providers := append([]Provider(nil), m.providers...)
	m.mu.RUnlock()

	builder := NewBuilder()
	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.BuildNavigation(ctx, name, builder); err != nil {
			return nil, fmt.Errorf("navigation: build %q: %w", name, err)
		}
	}

	items := builder.Build()
	items = m.filter(ctx, items)
	sortItems(items)
	m.finish(ctx, items)
	return items, nil
}

func (m *Manager) filter(ctx context.Context, items []MenuItem) []MenuItem {
	out := items[:0]
	for _, item := range items {
		if !m.authorized(ctx, item) {
			m.logger.Debug().Str("text", item.Text).Msg("menu item hidden by permission")
			continue
		}
		hadChildren := len(item.Items) > 0
		item.Items = m.filter(ctx, item.Items)
		if hadChildren && len(item.Items) == 0 && !item.HasLink() {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (m *Manager) authorized(ctx context.Context, item MenuItem) bool {
	if len(item.Permissions) == 0 {
		return true
	}
	for _, permission := range item.Permissions {
		if m.authorizer.Authorize(ctx, permission) {
			return true
		}
	}
	return false
}

func (m *Manager) finish(ctx context.Context, items []MenuItem) {
	locale := LocaleFromContext(ctx)
	for i := range items {
		items[i].Text = m.translate(locale, items[i].Text)
		if items[i].Href == "" {
			items[i].Href = m.links(items[i])
		}
		m.finish(ctx, items[i].Items)
	}
}

func (m *Manager) translate(locale, text string) string {
	if m.translator == nil || text == "" {
		return text
	}
	translated, err := m.translator.Translate(locale, text)
	if err != nil || strings.TrimSpace(translated) == "" {
		m.logger.Debug().Err(err).Str("locale", locale).Str("key", text).Msg("missing menu translation")
		return text
	}
	return translated
}

func sortItems(items []MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return position.Less(items[i].Position, items[j].Position)
	})
	for i := range items {
		sortItems(items[i].Items)
	}
}

// DefaultLink returns URL when set, otherwise "/{Area}/{Controller}/{Action}"
// with the remaining route values as a sorted query string.
func DefaultLink(item MenuItem) string {
	if item.URL != "" {
		return item.URL
	}
	if item.Action == "" {
		return ""
	}

	var segments []string
	query := url.Values{}
	for key, value := range item.RouteValues {
		if strings.EqualFold(key, "area") {
			segments = append(segments, fmt.Sprint(value))
			continue
		}
		query.Set(key, fmt.Sprint(value))
	}
	if item.Controller != "" {
		segments = append(segments, item.Controller)
	}
	segments = append(segments, item.Action)

	href := "/" + strings.Join(segments, "/")
	if encoded := query.Encode(); encoded != "" {
		href += "?" + encoded
	}
	return href
}

type localeKey struct{}

// WithLocale returns a context carrying the caption locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, strings.TrimSpace(locale))
}

// LocaleFromContext returns the locale set by WithLocale, or "".
func LocaleFromContext(ctx context.Context) string {
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}
