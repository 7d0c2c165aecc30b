// Package navigation builds named menus (such as "admin") from providers.
// Providers describe items with a fluent Builder; the Manager merges groups
// that share a caption, orders them by position, drops entries the caller
// may not see and translates captions.
package navigation

import (
	"strings"

	"github.com/goliatone/go-contentparts/pkg/security"
)

// MenuItem is one resolved menu entry.
type MenuItem struct {
	Text        string                `json:"text"`
	Position    string                `json:"position,omitempty"`
	ID          string                `json:"id,omitempty"`
	Href        string                `json:"href,omitempty"`
	URL         string                `json:"url,omitempty"`
	Action      string                `json:"action,omitempty"`
	Controller  string                `json:"controller,omitempty"`
	RouteValues map[string]any        `json:"routeValues,omitempty"`
	Permissions []security.Permission `json:"permissions,omitempty"`
	LocalNav    bool                  `json:"localNav,omitempty"`
	Classes     []string              `json:"classes,omitempty"`
	Items       []MenuItem            `json:"items,omitempty"`
}

// HasLink reports whether the item points somewhere by itself.
func (m MenuItem) HasLink() bool {
	return m.URL != "" || m.Action != ""
}

// Builder collects top level items.
type Builder struct {
	items []*ItemBuilder
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends an item. position may be empty; configure may be nil.
func (b *Builder) Add(text, position string, configure func(*ItemBuilder)) *Builder {
	b.items = append(b.items, newItem(text, position, configure))
	return b
}

// Build returns the collected items, merged by caption.
func (b *Builder) Build() []MenuItem {
	return merge(buildAll(b.items))
}

// ItemBuilder configures one item and its children.
type ItemBuilder struct {
	item     MenuItem
	children []*ItemBuilder
}

func newItem(text, position string, configure func(*ItemBuilder)) *ItemBuilder {
	ib := &ItemBuilder{item: MenuItem{
		Text:     strings.TrimSpace(text),
		Position: strings.TrimSpace(position),
	}}
	if configure != nil {
		configure(ib)
	}
	return ib
}

// Add appends a child item.
func (ib *ItemBuilder) Add(text, position string, configure func(*ItemBuilder)) *ItemBuilder {
	ib.children = append(ib.children, newItem(text, position, configure))
	return ib
}

// Permission requires any of the given permissions to see the item.
func (ib *ItemBuilder) Permission(permissions ...security.Permission) *ItemBuilder {
	ib.item.Permissions = append(ib.item.Permissions, permissions...)
	return ib
}

// Action links the item to a controller action with route values.
func (ib *ItemBuilder) Action(action, controller string, routeValues map[string]any) *ItemBuilder {
	ib.item.Action = strings.TrimSpace(action)
	ib.item.Controller = strings.TrimSpace(controller)
	if len(routeValues) > 0 {
		ib.item.RouteValues = make(map[string]any, len(routeValues))
		for key, value := range routeValues {
			ib.item.RouteValues[key] = value
		}
	}
	return ib
}

// URL links the item to a fixed address.
func (ib *ItemBuilder) URL(url string) *ItemBuilder {
	ib.item.URL = strings.TrimSpace(url)
	return ib
}

// LocalNav marks the item as local navigation of its section.
func (ib *ItemBuilder) LocalNav() *ItemBuilder {
	ib.item.LocalNav = true
	return ib
}

// ID sets the element id.
func (ib *ItemBuilder) ID(id string) *ItemBuilder {
	ib.item.ID = strings.TrimSpace(id)
	return ib
}

// AddClass appends CSS classes.
func (ib *ItemBuilder) AddClass(classes ...string) *ItemBuilder {
	for _, class := range classes {
		if class = strings.TrimSpace(class); class != "" {
			ib.item.Classes = append(ib.item.Classes, class)
		}
	}
	return ib
}

func (ib *ItemBuilder) build() MenuItem {
	item := ib.item
	item.Items = buildAll(ib.children)
	return item
}

func buildAll(builders []*ItemBuilder) []MenuItem {
	if len(builders) == 0 {
		return nil
	}
	out := make([]MenuItem, 0, len(builders))
	for _, ib := range builders {
		out = append(out, ib.build())
	}
	return out
}

// merge folds items sharing a caption into the first occurrence. Children
// are merged recursively; link details of later duplicates fill gaps only.
func merge(items []MenuItem) []MenuItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]MenuItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		key := strings.ToLower(item.Text)
		i, seen := index[key]
		if !seen || key == "" {
			index[key] = len(out)
			out = append(out, item)
			continue
		}
		target := &out[i]
		if target.Position == "" {
			target.Position = item.Position
		}
		if !target.HasLink() {
			target.URL = item.URL
			target.Action = item.Action
			target.Controller = item.Controller
			target.RouteValues = item.RouteValues
		}
		target.Permissions = append(target.Permissions, item.Permissions...)
		target.Classes = append(target.Classes, item.Classes...)
		target.LocalNav = target.LocalNav || item.LocalNav
		target.Items = append(target.Items, item.Items...)
	}
	for i := range out {
		out[i].Items = merge(out[i].Items)
	}
	return out
}
