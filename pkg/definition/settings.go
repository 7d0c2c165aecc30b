package definition

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Settings stores typed settings blocks as raw JSON keyed by settings name.
type Settings map[string]json.RawMessage

// Namer lets a settings type pick its own key instead of its Go type name.
type Namer interface {
	SettingsName() string
}

// SettingsName returns the key used to store value in a Settings bag.
func SettingsName(value any) string {
	if namer, ok := value.(Namer); ok {
		if name := strings.TrimSpace(namer.SettingsName()); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// Get decodes the settings block matching target's type into target. It
// reports false when no block is stored.
func (s Settings) Get(target any) (bool, error) {
	name := SettingsName(target)
	if name == "" {
		return false, fmt.Errorf("definition: settings target %T has no name", target)
	}
	raw, ok := s[name]
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("definition: decode settings %q: %w", name, err)
	}
	return true, nil
}

// With returns a copy of the bag with value stored under its settings name.
func (s Settings) With(value any) (Settings, error) {
	name := SettingsName(value)
	if name == "" {
		return s, fmt.Errorf("definition: settings value %T has no name", value)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return s, fmt.Errorf("definition: encode settings %q: %w", name, err)
	}
	out := s.Clone()
	if out == nil {
		out = make(Settings, 1)
	}
	out[name] = raw
	return out, nil
}

// Clone returns an independent copy of the bag.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for key, raw := range s {
		out[key] = append(json.RawMessage(nil), raw...)
	}
	return out
}

// GetSettings is a typed shorthand for Settings.Get returning the zero value
// when the block is missing.
func GetSettings[T any](s Settings) (T, bool, error) {
	var out T
	ok, err := s.Get(&out)
	return out, ok, err
}
