package gotemplate

import (
	"errors"
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerBuiltinFilters() {
	builtin := map[string]pongo2.FilterFunction{
		"trim":      filterTrim,
		"classlist": filterClassList,
	}
	for name, fn := range builtin {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

// registerFilter adapts fn to pongo2 and installs it, replacing any filter
// already registered under name.
func registerFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	return installFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

func installFilter(name string, filter pongo2.FilterFunction) error {
	if pongo2.FilterExists(name) {
		return pongo2.ReplaceFilter(name, filter)
	}
	return pongo2.RegisterFilter(name, filter)
}

func filterTrim(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterClassList(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(NormalizeClassList(in.String())), nil
}

// NormalizeClassList collapses whitespace in a CSS class list and drops
// repeated classes, keeping the first occurrence.
func NormalizeClassList(raw string) string {
	seen := make(map[string]bool)
	var out []string
	for _, class := range strings.Fields(raw) {
		if seen[class] {
			continue
		}
		seen[class] = true
		out = append(out, class)
	}
	return strings.Join(out, " ")
}
