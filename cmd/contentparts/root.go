package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"
	"github.com/spf13/cobra"

	contentparts "github.com/goliatone/go-contentparts"
	"github.com/goliatone/go-contentparts/internal/config"
	"github.com/goliatone/go-contentparts/internal/logging"
	"github.com/goliatone/go-contentparts/pkg/compat"
	"github.com/goliatone/go-contentparts/pkg/contentpermissions"
	"github.com/goliatone/go-contentparts/pkg/definition"
	"github.com/goliatone/go-contentparts/pkg/definition/memory"
	"github.com/goliatone/go-contentparts/pkg/navigation"
	"github.com/goliatone/go-contentparts/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contentparts/pkg/sanitize"
	"github.com/goliatone/go-contentparts/pkg/security"
)

type rootOptions struct {
	configPath string
	mode       string
	logLevel   string
	engine     string
	recipesDir string
	legacy     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "contentparts",
		Short:         "Install, render and edit content parts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "contentparts.yaml", "configuration file")
	flags.StringVar(&opts.mode, "mode", "", "strict or best-effort (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	flags.StringVar(&opts.engine, "engine", "", "pongo2 or go-template (overrides config)")
	flags.StringVar(&opts.recipesDir, "recipes", "", "directory of JSON/YAML recipes to apply first")
	flags.BoolVar(&opts.legacy, "legacy", false, "expose the store through the synchronous host methods only")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newMenuCmd(opts),
		newRenderCmd(opts),
		newEditCmd(opts),
	)
	return cmd
}

// app is the per-invocation wiring shared by subcommands.
type app struct {
	cfg    *config.Config
	log    *logging.Logger
	store  *memory.Store
	module *contentparts.Module
}

func (a *app) Close() {
	if a != nil && a.log != nil {
		_ = a.log.Close()
	}
}

func loadApp(ctx context.Context, cmd *cobra.Command, opts *rootOptions, extra ...contentparts.Option) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.mode != "" {
		cfg.Mode = opts.mode
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.recipesDir != "" {
		cfg.RecipesDir = opts.recipesDir
	}
	if opts.engine != "" {
		cfg.Engine = opts.engine
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	mode, err := compat.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	builder := logging.New().ToWriter(cmd.ErrOrStderr()).Level(cfg.Logging.Level).Format(cfg.Logging.Format)
	if cfg.Logging.File != "" {
		builder = builder.ToFile(cfg.Logging.File)
	}
	log, err := builder.Make()
	if err != nil {
		return nil, err
	}

	store := memory.New()
	var host any = store
	if opts.legacy {
		host = memory.NewLegacy(store)
	}

	options := []contentparts.Option{
		contentparts.WithMode(mode),
		contentparts.WithLogger(log.Logger),
		contentparts.WithRoleLister(contentpermissions.StaticRoles(cfg.Roles)),
		contentparts.WithShortcodeTemplates(cfg.Shortcodes),
	}
	if cfg.Engine == config.EngineGoTemplate {
		renderer, err := newHookedRenderer(log)
		if err != nil {
			log.Close()
			return nil, err
		}
		options = append(options, contentparts.WithRenderer(renderer))
	}
	if len(cfg.Captions) > 0 {
		options = append(options, contentparts.WithTranslator(navigation.Catalog(cfg.Captions)))
	}
	if cfg.Sanitizer.Enabled {
		var sanitizeOpts []sanitize.Option
		if cfg.Sanitizer.AllowSVG {
			sanitizeOpts = append(sanitizeOpts, sanitize.WithSVG())
		}
		options = append(options, contentparts.WithSanitizer(sanitize.New(sanitizeOpts...)))
	}
	module, err := contentparts.New(host, append(options, extra...)...)
	if err != nil {
		log.Close()
		return nil, err
	}

	a := &app{cfg: cfg, log: log, store: store, module: module}
	if err := a.applyRecipes(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// newHookedRenderer builds the go-template renderer, tracing each render at
// debug level.
func newHookedRenderer(log *logging.Logger) (*gotemplate.Hooked, error) {
	renderer, err := gotemplate.NewHooked()
	if err != nil {
		return nil, err
	}
	renderer.RegisterPostHook(func(hc *gotemplatepkg.HookContext) (string, error) {
		name := hc.TemplateName
		if name == "" {
			name = "inline"
		}
		log.Debug().Str("template", name).Int("bytes", len(hc.Output)).Msg("template rendered")
		return hc.Output, nil
	})
	return renderer, nil
}

func (a *app) applyRecipes(ctx context.Context) error {
	if strings.TrimSpace(a.cfg.RecipesDir) == "" {
		return nil
	}
	recipes, err := definition.LoadRecipesFS(os.DirFS(a.cfg.RecipesDir))
	if err != nil {
		return err
	}
	for _, recipe := range recipes {
		if err := recipe.Apply(ctx, a.module.Resolver); err != nil {
			return fmt.Errorf("apply recipe %s: %w", recipe.Source, err)
		}
		a.log.Debug().Str("recipe", recipe.Source).Msg("recipe applied")
	}
	return nil
}

// offeredRoles mirrors the permissions editor: sentinel roles first, then the
// configured roles sorted.
func (a *app) offeredRoles() []string {
	roles := append([]string(nil), a.cfg.Roles...)
	sort.Strings(roles)
	return append([]string{security.RoleAnonymous, security.RoleAuthenticated}, roles...)
}
