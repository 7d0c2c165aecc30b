package display

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/definition"
	"github.com/goliatone/go-contentparts/pkg/render/template"
)

var (
	// ErrDuplicateDriver is returned when a driver name is registered twice.
	ErrDuplicateDriver = errors.New("display: driver already registered")
	// ErrNoRenderer is returned by Render when no template renderer is set.
	ErrNoRenderer = errors.New("display: template renderer not configured")
)

// Option configures a Manager.
type Option func(*Manager)

// WithRenderer sets the template renderer used by Render.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(m *Manager) {
		m.renderer = renderer
	}
}

// WithLogger sets the manager logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager holds the registered drivers and runs them against items and field
// definitions.
type Manager struct {
	mu            sync.RWMutex
	parts         map[string]PartDriver
	fieldSettings map[string]FieldSettingsDriver
	fields        map[string]FieldDriver
	templates     map[string]string
	renderer      template.TemplateRenderer
	logger        zerolog.Logger
}

// NewManager creates an empty manager.
func NewManager(options ...Option) *Manager {
	m := &Manager{
		parts:         make(map[string]PartDriver),
		fieldSettings: make(map[string]FieldSettingsDriver),
		fields:        make(map[string]FieldDriver),
		templates:     make(map[string]string),
		logger:        zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// RegisterPart adds a part driver keyed by PartName.
func (m *Manager) RegisterPart(driver PartDriver) error {
	if driver == nil {
		return errors.New("display: part driver is required")
	}
	name := strings.TrimSpace(driver.PartName())
	if name == "" {
		return errors.New("display: part name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.parts[name]; exists {
		return fmt.Errorf("%w: part %q", ErrDuplicateDriver, name)
	}
	m.parts[name] = driver
	m.collectTemplates(driver)
	return nil
}

// RegisterFieldSettings adds a field settings driver keyed by FieldType.
func (m *Manager) RegisterFieldSettings(driver FieldSettingsDriver) error {
	if driver == nil {
		return errors.New("display: field settings driver is required")
	}
	name := strings.TrimSpace(driver.FieldType())
	if name == "" {
		return errors.New("display: field type is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.fieldSettings[name]; exists {
		return fmt.Errorf("%w: field settings %q", ErrDuplicateDriver, name)
	}
	m.fieldSettings[name] = driver
	m.collectTemplates(driver)
	return nil
}

// RegisterField adds a field value driver keyed by FieldType.
func (m *Manager) RegisterField(driver FieldDriver) error {
	if driver == nil {
		return errors.New("display: field driver is required")
	}
	name := strings.TrimSpace(driver.FieldType())
	if name == "" {
		return errors.New("display: field type is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.fields[name]; exists {
		return fmt.Errorf("%w: field %q", ErrDuplicateDriver, name)
	}
	m.fields[name] = driver
	m.collectTemplates(driver)
	return nil
}

// RegisterTemplate sets the template source rendered for shape.
func (m *Manager) RegisterTemplate(shape, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[shape] = source
}

// PartNames returns the registered part driver names, sorted.
func (m *Manager) PartNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.parts))
	for name := range m.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildEditors runs every part driver's Edit against item and returns the
// non-empty views ordered by location.
func (m *Manager) BuildEditors(ctx context.Context, item *content.ContentItem) ([]*EditView, error) {
	if item == nil {
		return nil, errors.New("display: content item is required")
	}

	var views []*EditView
	for _, driver := range m.partDrivers() {
		view, err := driver.Edit(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("display: edit part %q: %w", driver.PartName(), err)
		}
		views = appendView(views, view)
	}
	sortViews(views)
	return views, nil
}

// UpdateEditors runs every part driver's Update against item. The returned
// views reflect the item after the update.
func (m *Manager) UpdateEditors(ctx context.Context, item *content.ContentItem, updater Updater) ([]*EditView, error) {
	if item == nil {
		return nil, errors.New("display: content item is required")
	}
	if updater == nil {
		return nil, errors.New("display: updater is required")
	}

	var views []*EditView
	for _, driver := range m.partDrivers() {
		view, err := driver.Update(ctx, item, updater)
		if err != nil {
			return nil, fmt.Errorf("display: update part %q: %w", driver.PartName(), err)
		}
		views = appendView(views, view)
	}
	if state := updater.ModelState(); state != nil && !state.IsValid() {
		m.logger.Debug().
			Str("content_type", item.ContentType).
			Strs("invalid", state.Keys()).
			Msg("editor update produced model errors")
	}
	sortViews(views)
	return views, nil
}

// BuildFieldEditors runs the field drivers for every field of part that has
// a registered driver.
func (m *Manager) BuildFieldEditors(ctx context.Context, item *content.ContentItem, part *definition.ContentPartDefinition) ([]*EditView, error) {
	if item == nil || part == nil {
		return nil, nil
	}

	var views []*EditView
	for _, field := range part.Fields {
		driver, ok := m.fieldDriver(field.FieldType)
		if !ok {
			continue
		}
		view, err := driver.Edit(ctx, FieldContext{Item: item, PartName: part.Name, Field: field})
		if err != nil {
			return nil, fmt.Errorf("display: edit field %q: %w", field.Name, err)
		}
		views = appendView(views, view)
	}
	sortViews(views)
	return views, nil
}

// UpdateFieldEditors binds every field of part that has a registered driver.
func (m *Manager) UpdateFieldEditors(ctx context.Context, item *content.ContentItem, part *definition.ContentPartDefinition, updater Updater) ([]*EditView, error) {
	if item == nil || part == nil {
		return nil, nil
	}
	if updater == nil {
		return nil, errors.New("display: updater is required")
	}

	var views []*EditView
	for _, field := range part.Fields {
		driver, ok := m.fieldDriver(field.FieldType)
		if !ok {
			continue
		}
		view, err := driver.Update(ctx, FieldContext{Item: item, PartName: part.Name, Field: field}, updater)
		if err != nil {
			return nil, fmt.Errorf("display: update field %q: %w", field.Name, err)
		}
		views = appendView(views, view)
	}
	sortViews(views)
	return views, nil
}

// BuildFieldSettingsEditor runs the settings driver registered for the
// field's type. A field type without a driver yields nil.
func (m *Manager) BuildFieldSettingsEditor(ctx context.Context, field definition.ContentPartFieldDefinition) (*EditView, error) {
	driver, ok := m.fieldSettingsDriver(field.FieldType)
	if !ok {
		return nil, nil
	}
	view, err := driver.Edit(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("display: edit field settings %q: %w", field.Name, err)
	}
	return view, nil
}

// UpdateFieldSettingsEditor binds the settings editor of field and returns
// the resulting definition with its view.
func (m *Manager) UpdateFieldSettingsEditor(ctx context.Context, field definition.ContentPartFieldDefinition, updater Updater) (definition.ContentPartFieldDefinition, *EditView, error) {
	driver, ok := m.fieldSettingsDriver(field.FieldType)
	if !ok {
		return field, nil, nil
	}
	if updater == nil {
		return field, nil, errors.New("display: updater is required")
	}

	builder := definition.NewFieldBuilder(field.PartName, field.Name, &field)
	view, err := driver.Update(ctx, field, UpdateFieldEditorContext{Updater: updater, Builder: builder})
	if err != nil {
		return field, nil, fmt.Errorf("display: update field settings %q: %w", field.Name, err)
	}
	updated, err := builder.Build()
	if err != nil {
		return field, nil, fmt.Errorf("display: build field %q: %w", field.Name, err)
	}
	return updated, view, nil
}

// Render renders view with its registered template source, falling back to
// a named template on the renderer. The template sees Model, Prefix, Shape
// and Location.
func (m *Manager) Render(ctx context.Context, view *EditView) (string, error) {
	if view == nil {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.RLock()
	renderer := m.renderer
	source, ok := m.templates[view.Shape]
	m.mu.RUnlock()

	if renderer == nil {
		return "", ErrNoRenderer
	}

	data := map[string]any{
		"Model":    view.Model,
		"Prefix":   view.Prefix,
		"Shape":    view.Shape,
		"Location": view.Location,
	}

	var (
		out string
		err error
	)
	if ok {
		out, err = renderer.RenderString(source, data)
	} else {
		out, err = renderer.RenderTemplate(view.Shape, data)
	}
	if err != nil {
		return "", fmt.Errorf("display: render shape %q: %w", view.Shape, err)
	}
	return out, nil
}

// RenderAll renders views in order and concatenates the output.
func (m *Manager) RenderAll(ctx context.Context, views []*EditView) (string, error) {
	var b strings.Builder
	for _, view := range views {
		out, err := m.Render(ctx, view)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func (m *Manager) partDrivers() []PartDriver {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.parts))
	for name := range m.parts {
		names = append(names, name)
	}
	sort.Strings(names)

	drivers := make([]PartDriver, 0, len(names))
	for _, name := range names {
		drivers = append(drivers, m.parts[name])
	}
	return drivers
}

func (m *Manager) fieldDriver(fieldType string) (FieldDriver, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.fields[fieldType]
	return driver, ok
}

func (m *Manager) fieldSettingsDriver(fieldType string) (FieldSettingsDriver, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.fieldSettings[fieldType]
	return driver, ok
}

func (m *Manager) collectTemplates(driver any) {
	templated, ok := driver.(Templated)
	if !ok {
		return
	}
	for shape, source := range templated.Templates() {
		if _, exists := m.templates[shape]; !exists {
			m.templates[shape] = source
		}
	}
}

func appendView(views []*EditView, view *EditView) []*EditView {
	if view == nil {
		return views
	}
	return append(views, view)
}

func sortViews(views []*EditView) {
	sort.SliceStable(views, func(i, j int) bool {
		return lessView(views[i], views[j])
	})
}
