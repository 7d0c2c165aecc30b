// Package contentparts wires the content part editors, the permission
// helper, admin navigation, template helpers and install migrations around a
// host content definition manager.
package contentparts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-contentparts/pkg/compat"
	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/contentpermissions"
	"github.com/goliatone/go-contentparts/pkg/display"
	"github.com/goliatone/go-contentparts/pkg/fields/multivaluetext"
	"github.com/goliatone/go-contentparts/pkg/helpers"
	"github.com/goliatone/go-contentparts/pkg/migrations"
	"github.com/goliatone/go-contentparts/pkg/navigation"
	"github.com/goliatone/go-contentparts/pkg/parts/widgetstyling"
	"github.com/goliatone/go-contentparts/pkg/render/template"
	"github.com/goliatone/go-contentparts/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contentparts/pkg/sanitize"
	"github.com/goliatone/go-contentparts/pkg/security"
	"github.com/goliatone/go-contentparts/pkg/shortcodes"
	"github.com/goliatone/go-contentparts/pkg/theme/digitaladmin"
	"github.com/goliatone/go-contentparts/pkg/vueforms"
)

// ContentItem aliases content.ContentItem for callers of the root package.
type ContentItem = content.ContentItem

// EditView aliases display.EditView.
type EditView = display.EditView

// MenuItem aliases navigation.MenuItem.
type MenuItem = navigation.MenuItem

// Option configures New.
type Option func(*config)

type config struct {
	mode        compat.Mode
	logger      zerolog.Logger
	renderer    template.TemplateRenderer
	roles       contentpermissions.RoleLister
	authorizer  security.Authorizer
	translator  navigation.Translator
	sanitizer   sanitize.Sanitizer
	store       migrations.VersionStore
	shortcodes  map[string]string
	navProvider []navigation.Provider
}

// WithMode selects strict or best-effort handling of unsupported host
// capabilities.
func WithMode(mode compat.Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRenderer replaces the default pongo2 engine.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(c *config) {
		c.renderer = renderer
	}
}

// WithRoleLister supplies the host roles offered by the permissions editor.
func WithRoleLister(roles contentpermissions.RoleLister) Option {
	return func(c *config) {
		c.roles = roles
	}
}

// WithAuthorizer filters admin menu entries.
func WithAuthorizer(authorizer security.Authorizer) Option {
	return func(c *config) {
		c.authorizer = authorizer
	}
}

// WithTranslator localizes admin menu captions.
func WithTranslator(translator navigation.Translator) Option {
	return func(c *config) {
		c.translator = translator
	}
}

// WithSanitizer enables HTML sanitizing in the template helpers.
func WithSanitizer(s sanitize.Sanitizer) Option {
	return func(c *config) {
		c.sanitizer = s
	}
}

// WithVersionStore persists applied migration versions.
func WithVersionStore(store migrations.VersionStore) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithShortcodeTemplates defines template shortcodes by name.
func WithShortcodeTemplates(templates map[string]string) Option {
	return func(c *config) {
		if c.shortcodes == nil {
			c.shortcodes = make(map[string]string, len(templates))
		}
		for name, src := range templates {
			c.shortcodes[name] = src
		}
	}
}

// WithNavigationProviders adds admin menu providers beside Vue Forms.
func WithNavigationProviders(providers ...navigation.Provider) Option {
	return func(c *config) {
		c.navProvider = append(c.navProvider, providers...)
	}
}

// Module is the assembled set of components.
type Module struct {
	Resolver    *compat.Resolver
	Display     *display.Manager
	Navigation  *navigation.Manager
	Permissions *contentpermissions.Service
	Shortcodes  *shortcodes.Processor
	Helpers     *helpers.Helper
	DarkMode    *digitaladmin.DarkModeService
	Renderer    template.TemplateRenderer

	migrations []migrations.Migration
	runner     *migrations.Runner
	logger     zerolog.Logger
}

// New resolves host capabilities and wires every component. host is a
// definition manager exposing the context-aware methods, the legacy ones, or
// a mix.
func New(host any, options ...Option) (*Module, error) {
	cfg := &config{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	resolver, err := compat.New(host, compat.WithMode(cfg.mode), compat.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	renderer := cfg.renderer
	if renderer == nil {
		engine, err := gotemplate.New()
		if err != nil {
			return nil, fmt.Errorf("contentparts: template engine: %w", err)
		}
		renderer = engine
	}

	roles := cfg.roles
	if roles == nil {
		roles = contentpermissions.StaticRoles(nil)
	}

	manager := display.NewManager(display.WithRenderer(renderer), display.WithLogger(cfg.logger))
	if err := registerDrivers(manager, roles); err != nil {
		return nil, err
	}

	permissions, err := contentpermissions.NewService(resolver, contentpermissions.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	navOptions := []navigation.Option{navigation.WithLogger(cfg.logger)}
	if cfg.authorizer != nil {
		navOptions = append(navOptions, navigation.WithAuthorizer(cfg.authorizer))
	}
	if cfg.translator != nil {
		navOptions = append(navOptions, navigation.WithTranslator(cfg.translator))
	}
	nav := navigation.NewManager(navOptions...)
	nav.Register(vueforms.AdminMenu{})
	nav.Register(cfg.navProvider...)

	processor := shortcodes.NewProcessor(shortcodes.WithLogger(cfg.logger))
	if len(cfg.shortcodes) > 0 {
		provider := shortcodes.NewTemplateProvider(renderer)
		for name, src := range cfg.shortcodes {
			if err := provider.Define(name, src); err != nil {
				return nil, err
			}
		}
		processor.Register(provider, 0)
	}

	helper := helpers.New(
		helpers.WithRenderer(renderer),
		helpers.WithShortcodes(processor),
		helpers.WithSanitizer(cfg.sanitizer),
		helpers.WithShapeRenderer(manager),
		helpers.WithLogger(cfg.logger),
	)
	if err := helper.RegisterFilters(renderer); err != nil {
		return nil, err
	}

	install, err := contentpermissions.NewMigrations(resolver)
	if err != nil {
		return nil, err
	}

	store := cfg.store
	if store == nil {
		store = migrations.NewMemoryStore()
	}

	return &Module{
		Resolver:    resolver,
		Display:     manager,
		Navigation:  nav,
		Permissions: permissions,
		Shortcodes:  processor,
		Helpers:     helper,
		DarkMode:    digitaladmin.NewDarkModeService(digitaladmin.WithLogger(cfg.logger)),
		Renderer:    renderer,
		migrations:  []migrations.Migration{install},
		runner:      migrations.NewRunner(store, migrations.WithLogger(cfg.logger)),
		logger:      cfg.logger,
	}, nil
}

func registerDrivers(manager *display.Manager, roles contentpermissions.RoleLister) error {
	if err := manager.RegisterPart(widgetstyling.NewDriver()); err != nil {
		return err
	}
	if err := manager.RegisterPart(contentpermissions.NewDriver(roles)); err != nil {
		return err
	}
	if err := manager.RegisterField(multivaluetext.FieldDriver{}); err != nil {
		return err
	}
	return manager.RegisterFieldSettings(multivaluetext.SettingsDriver{})
}

// Install runs the install migrations that have not been applied yet.
func (m *Module) Install(ctx context.Context) ([]migrations.Result, error) {
	return m.runner.Run(ctx, m.migrations...)
}

// AdminMenu builds the admin menu for the caller on ctx.
func (m *Module) AdminMenu(ctx context.Context) ([]MenuItem, error) {
	return m.Navigation.BuildMenu(ctx, navigation.AdminMenu)
}

// BuildEditors returns the part editors for item, sorted by location.
func (m *Module) BuildEditors(ctx context.Context, item *ContentItem) ([]*EditView, error) {
	return m.Display.BuildEditors(ctx, item)
}

// UpdateEditors binds submitted values onto item and returns the refreshed
// editors.
func (m *Module) UpdateEditors(ctx context.Context, item *ContentItem, updater display.Updater) ([]*EditView, error) {
	return m.Display.UpdateEditors(ctx, item, updater)
}

// RenderEditors renders views to HTML.
func (m *Module) RenderEditors(ctx context.Context, views []*EditView) (string, error) {
	return m.Display.RenderAll(ctx, views)
}

// CanAccess reports whether the caller on ctx may view item.
func (m *Module) CanAccess(ctx context.Context, item *ContentItem) bool {
	return m.Permissions.CanAccessItem(ctx, item)
}
