package display

import (
	"sort"
	"strings"
	"sync"
)

// ModelState collects binding and validation errors raised while updating
// editors. Field errors are keyed by dotted paths ("Part.Field"); anything
// else lands in the form-level list.
type ModelState struct {
	mu     sync.RWMutex
	fields map[string][]string
	form   []string
}

// NewModelState returns an empty, valid model state.
func NewModelState() *ModelState {
	return &ModelState{fields: make(map[string][]string)}
}

// AddModelError records message under key. Form-level keys such as "" or
// "__all__" are stored as form errors.
func (m *ModelState) AddModelError(key, message string) {
	message = strings.TrimSpace(message)
	if m == nil || message == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path := normalizeKey(key)
	if path == "" {
		m.form = normalizeMessages(append(m.form, message))
		return
	}
	if m.fields == nil {
		m.fields = make(map[string][]string)
	}
	m.fields[path] = normalizeMessages(append(m.fields[path], message))
}

// Merge adds a payload of messages keyed by path, as produced by a binder or
// a remote validator. JSON pointer style keys ("/Part/Field") are accepted.
func (m *ModelState) Merge(payload map[string][]string) {
	for key, messages := range payload {
		for _, message := range messages {
			m.AddModelError(key, message)
		}
	}
}

// IsValid reports whether no errors were recorded.
func (m *ModelState) IsValid() bool {
	if m == nil {
		return true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.fields) == 0 && len(m.form) == 0
}

// Errors returns the messages recorded for key.
func (m *ModelState) Errors(key string) []string {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := normalizeKey(key)
	if path == "" {
		return append([]string(nil), m.form...)
	}
	return append([]string(nil), m.fields[path]...)
}

// Keys returns the field paths carrying errors, sorted.
func (m *ModelState) Keys() []string {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.fields))
	for key := range m.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FieldErrors returns a copy of the field-keyed errors.
func (m *ModelState) FieldErrors() map[string][]string {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.fields) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m.fields))
	for key, messages := range m.fields {
		out[key] = append([]string(nil), messages...)
	}
	return out
}

// FormErrors returns a copy of the form-level errors.
func (m *ModelState) FormErrors() []string {
	return m.Errors("")
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeKey(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return ""
	}
	return strings.Join(parsePathSegments(trimmed), ".")
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimLeft(clean, "#/.$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
