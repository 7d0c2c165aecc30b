package contentpermissions

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-contentparts/pkg/content"
	"github.com/goliatone/go-contentparts/pkg/display"
)

const (
	// EditShape is the shape of the part editor.
	EditShape = PartName + "_Edit"
	// EditLocation places the editor in the content zone.
	EditLocation = "Content:10"
)

//go:embed templates/edit.tpl
var editTemplate string

// RoleLister returns the role names defined by the host.
type RoleLister interface {
	RoleNames(ctx context.Context) ([]string, error)
}

// StaticRoles lists a fixed set of roles.
type StaticRoles []string

func (r StaticRoles) RoleNames(context.Context) ([]string, error) {
	return append([]string(nil), r...), nil
}

// EditModel is the view model of the part editor.
type EditModel struct {
	Enabled       bool     `json:"enabled"`
	Roles         []string `json:"roles"`
	PossibleRoles []string `json:"possibleRoles"`
}

// Selected reports whether role is part of Roles.
func (m EditModel) Selected(role string) bool {
	return containsRole(m.Roles, role)
}

// Driver edits the content permissions part.
type Driver struct {
	roles RoleLister
}

var (
	_ display.PartDriver = (*Driver)(nil)
	_ display.Templated  = (*Driver)(nil)
)

// NewDriver returns a driver offering the roles from lister. A nil lister
// offers only the Anonymous and Authenticated roles.
func NewDriver(lister RoleLister) *Driver {
	return &Driver{roles: lister}
}

func (d *Driver) PartName() string {
	return PartName
}

// Edit returns the editor of the attached part, or nil when absent.
func (d *Driver) Edit(ctx context.Context, item *content.ContentItem) (*display.EditView, error) {
	part, err := PartOf(item)
	if err != nil || part == nil {
		return nil, err
	}
	possible, err := d.possibleRoles(ctx)
	if err != nil {
		return nil, err
	}
	model := EditModel{
		Enabled:       part.Enabled,
		Roles:         part.Roles,
		PossibleRoles: possible,
	}
	return display.NewEditView(EditShape, model).
		At(EditLocation).
		WithPrefix(PartName), nil
}

// Update binds the submitted part, keeping only roles that were offered.
func (d *Driver) Update(ctx context.Context, item *content.ContentItem, updater display.Updater) (*display.EditView, error) {
	if !item.Has(PartName) {
		return nil, nil
	}
	possible, err := d.possibleRoles(ctx)
	if err != nil {
		return nil, err
	}

	// Unchecked boxes are not submitted, so bind onto a fresh part rather
	// than the stored one.
	var part Part
	err = item.Alter(ctx, PartName, &part, func(ctx context.Context) error {
		var bound Part
		ok, err := updater.TryUpdateModel(ctx, &bound, PartName)
		if err != nil {
			return err
		}
		if !ok {
			return content.ErrUnchanged
		}
		part.Enabled = bound.Enabled
		part.Roles = keepRoles(bound.Roles, possible)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("contentpermissions: update: %w", err)
	}
	return d.Edit(ctx, item)
}

func (d *Driver) Templates() map[string]string {
	return map[string]string{EditShape: editTemplate}
}

// possibleRoles returns Anonymous and Authenticated followed by the host
// roles in lexical order.
func (d *Driver) possibleRoles(ctx context.Context) ([]string, error) {
	var host []string
	if d.roles != nil {
		names, err := d.roles.RoleNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("contentpermissions: list roles: %w", err)
		}
		host = names
	}

	out := []string{RoleAnonymous, RoleAuthenticated}
	seen := map[string]struct{}{RoleAnonymous: {}, RoleAuthenticated: {}}
	var rest []string
	for _, name := range host {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(out, rest...), nil
}

func keepRoles(submitted, possible []string) []string {
	out := make([]string, 0, len(submitted))
	for _, role := range submitted {
		role = strings.TrimSpace(role)
		if containsRole(possible, role) && !containsRole(out, role) {
			out = append(out, role)
		}
	}
	return out
}
