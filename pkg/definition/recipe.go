package definition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Recipe declares parts and types that should exist on the host. Recipes are
// loaded from JSON or YAML and applied through a Manager.
type Recipe struct {
	Source string
	Parts  []PartStep
	Types  []TypeStep
}

// PartStep describes a part definition inside a recipe.
type PartStep struct {
	Name            string                    `json:"name" yaml:"name"`
	DisplayName     string                    `json:"displayName" yaml:"displayName"`
	Description     string                    `json:"description" yaml:"description"`
	Attachable      bool                      `json:"attachable" yaml:"attachable"`
	Reusable        bool                      `json:"reusable" yaml:"reusable"`
	DefaultPosition string                    `json:"defaultPosition" yaml:"defaultPosition"`
	Settings        map[string]map[string]any `json:"settings" yaml:"settings"`
	Fields          []FieldStep               `json:"fields" yaml:"fields"`
}

// FieldStep describes a field on a recipe part.
type FieldStep struct {
	Name      string                    `json:"name" yaml:"name"`
	FieldType string                    `json:"fieldType" yaml:"fieldType"`
	Settings  map[string]map[string]any `json:"settings" yaml:"settings"`
}

// TypeStep describes a content type inside a recipe.
type TypeStep struct {
	Name        string                    `json:"name" yaml:"name"`
	DisplayName string                    `json:"displayName" yaml:"displayName"`
	Settings    map[string]map[string]any `json:"settings" yaml:"settings"`
	Parts       []TypePartStep            `json:"parts" yaml:"parts"`
}

// TypePartStep attaches a part inside a recipe type.
type TypePartStep struct {
	Name     string                    `json:"name" yaml:"name"`
	PartName string                    `json:"partName" yaml:"partName"`
	Position string                    `json:"position" yaml:"position"`
	Settings map[string]map[string]any `json:"settings" yaml:"settings"`
}

type recipeFile struct {
	Parts []PartStep `json:"parts" yaml:"parts"`
	Types []TypeStep `json:"types" yaml:"types"`
}

// ParseRecipe decodes a JSON or YAML recipe document.
func ParseRecipe(data []byte, source string) (Recipe, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Recipe{}, fmt.Errorf("definition: recipe %s is empty", source)
	}

	var doc recipeFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = recipeFile{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return Recipe{}, fmt.Errorf("definition: parse recipe %s: invalid JSON or YAML", source)
		}
	}

	recipe := Recipe{Source: source, Parts: doc.Parts, Types: doc.Types}
	if err := recipe.validate(); err != nil {
		return Recipe{}, err
	}
	return recipe, nil
}

// LoadRecipesFS parses every JSON/YAML recipe in fsys in lexical order.
func LoadRecipesFS(fsys fs.FS) ([]Recipe, error) {
	if fsys == nil {
		return nil, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isRecipeFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	recipes := make([]Recipe, 0, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("definition: read %s: %w", path, err)
		}
		recipe, err := ParseRecipe(data, path)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// Apply executes the recipe against manager: parts first, then types.
func (r Recipe) Apply(ctx context.Context, manager Manager) error {
	if manager == nil {
		return errors.New("definition: manager is required")
	}
	for _, step := range r.Parts {
		step := step
		err := manager.AlterPartDefinitionContext(ctx, step.Name, func(_ context.Context, b *PartBuilder) error {
			return step.apply(b)
		})
		if err != nil {
			return fmt.Errorf("definition: recipe %s part %q: %w", r.Source, step.Name, err)
		}
	}
	for _, step := range r.Types {
		step := step
		err := manager.AlterTypeDefinitionContext(ctx, step.Name, func(_ context.Context, b *TypeBuilder) error {
			return step.apply(b)
		})
		if err != nil {
			return fmt.Errorf("definition: recipe %s type %q: %w", r.Source, step.Name, err)
		}
	}
	return nil
}

func (r Recipe) validate() error {
	for i, part := range r.Parts {
		if strings.TrimSpace(part.Name) == "" {
			return fmt.Errorf("definition: recipe %s part #%d has no name", r.Source, i)
		}
		for j, field := range part.Fields {
			if strings.TrimSpace(field.Name) == "" || strings.TrimSpace(field.FieldType) == "" {
				return fmt.Errorf("definition: recipe %s part %q field #%d needs name and fieldType", r.Source, part.Name, j)
			}
		}
	}
	for i, typ := range r.Types {
		if strings.TrimSpace(typ.Name) == "" {
			return fmt.Errorf("definition: recipe %s type #%d has no name", r.Source, i)
		}
	}
	return nil
}

func (s PartStep) apply(b *PartBuilder) error {
	if s.Attachable {
		b.Attachable()
	}
	if s.Reusable {
		b.Reusable()
	}
	if s.DisplayName != "" {
		b.WithDisplayName(s.DisplayName)
	}
	if s.Description != "" {
		b.WithDescription(s.Description)
	}
	if s.DefaultPosition != "" {
		b.WithDefaultPosition(s.DefaultPosition)
	}
	for name, block := range s.Settings {
		b.WithSettings(namedSettings{name: name, values: block})
	}
	for _, field := range s.Fields {
		field := field
		b.WithField(field.Name, func(fb *FieldBuilder) {
			fb.OfType(field.FieldType)
			for name, block := range field.Settings {
				fb.WithSettings(namedSettings{name: name, values: block})
			}
		})
	}
	_, err := b.Build()
	return err
}

func (s TypeStep) apply(b *TypeBuilder) error {
	if s.DisplayName != "" {
		b.DisplayedAs(s.DisplayName)
	}
	for name, block := range s.Settings {
		b.WithSettings(namedSettings{name: name, values: block})
	}
	for _, part := range s.Parts {
		part := part
		b.WithPart(part.Name, func(pb *TypePartBuilder) {
			if part.PartName != "" {
				pb.OfPart(part.PartName)
			}
			if part.Position != "" {
				pb.WithPosition(part.Position)
			}
			for name, block := range part.Settings {
				pb.WithSettings(namedSettings{name: name, values: block})
			}
		})
	}
	_, err := b.Build()
	return err
}

// namedSettings carries an untyped recipe settings block under an explicit
// name.
type namedSettings struct {
	name   string
	values map[string]any
}

func (n namedSettings) SettingsName() string { return n.name }

func (n namedSettings) MarshalJSON() ([]byte, error) {
	if n.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(n.values)
}

func isRecipeFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
