// Package content models the host-owned content item as an opaque record with
// a bag of JSON-encoded parts addressed by part name. Persistence, identity
// and concurrency control stay with the host; this package only reads and
// mutates the in-memory record.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrPartNotFound is returned by Alter when the item lacks the requested part.
	ErrPartNotFound = errors.New("content: part not found")
	// ErrUnchanged is returned by an Alter mutation to leave the stored part
	// as it was. Alter then returns nil.
	ErrUnchanged = errors.New("content: part unchanged")
)

// ContentItem is a host-managed record of typed content.
type ContentItem struct {
	ContentItemID string                     `json:"contentItemId,omitempty"`
	ContentType   string                     `json:"contentType"`
	DisplayText   string                     `json:"displayText,omitempty"`
	Owner         string                     `json:"owner,omitempty"`
	Published     bool                       `json:"published,omitempty"`
	Parts         map[string]json.RawMessage `json:"parts,omitempty"`
}

// New returns an empty item of contentType.
func New(contentType string) *ContentItem {
	return &ContentItem{
		ContentType: strings.TrimSpace(contentType),
		Parts:       make(map[string]json.RawMessage),
	}
}

// Has reports whether the named part is attached.
func (c *ContentItem) Has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.Parts[name]
	return ok
}

// PartNames returns attached part names in lexical order.
func (c *ContentItem) PartNames() []string {
	if c == nil || len(c.Parts) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.Parts))
	for name := range c.Parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get decodes the named part into target. It reports false when the part is
// not attached.
func (c *ContentItem) Get(name string, target any) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, ok := c.Parts[name]
	if !ok {
		return false, nil
	}
	if len(raw) == 0 || string(raw) == "null" {
		return true, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return true, fmt.Errorf("content: decode part %q: %w", name, err)
	}
	return true, nil
}

// Apply stores value as the named part, attaching it when missing.
func (c *ContentItem) Apply(name string, value any) error {
	if c == nil {
		return errors.New("content: item is nil")
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("content: part name is required")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("content: encode part %q: %w", name, err)
	}
	if c.Parts == nil {
		c.Parts = make(map[string]json.RawMessage)
	}
	c.Parts[name] = raw
	return nil
}

// GetField decodes the named field stored inside a part. Fields live as keys
// of the part's JSON object. It reports false when either is missing.
func (c *ContentItem) GetField(partName, fieldName string, target any) (bool, error) {
	fields, ok, err := c.partFields(partName)
	if err != nil || !ok {
		return false, err
	}
	raw, ok := fields[fieldName]
	if !ok {
		return false, nil
	}
	if len(raw) == 0 || string(raw) == "null" {
		return true, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return true, fmt.Errorf("content: decode field %q of part %q: %w", fieldName, partName, err)
	}
	return true, nil
}

// ApplyField stores value as the named field of a part, attaching the part
// when missing and keeping its other keys.
func (c *ContentItem) ApplyField(partName, fieldName string, value any) error {
	if strings.TrimSpace(fieldName) == "" {
		return errors.New("content: field name is required")
	}
	fields, _, err := c.partFields(partName)
	if err != nil {
		return err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("content: encode field %q of part %q: %w", fieldName, partName, err)
	}
	fields[fieldName] = raw
	return c.Apply(partName, fields)
}

func (c *ContentItem) partFields(partName string) (map[string]json.RawMessage, bool, error) {
	var fields map[string]json.RawMessage
	ok, err := c.Get(partName, &fields)
	if err != nil {
		return nil, ok, err
	}
	return fields, ok, nil
}

// Remove detaches the named part.
func (c *ContentItem) Remove(name string) {
	if c == nil {
		return
	}
	delete(c.Parts, name)
}

// Alter loads the named part into target, runs mutate, and stores the result.
// The part is left untouched when mutate fails or returns ErrUnchanged.
func (c *ContentItem) Alter(ctx context.Context, name string, target any, mutate func(ctx context.Context) error) error {
	ok, err := c.Get(name, target)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	if mutate != nil {
		if err := mutate(ctx); err != nil {
			if errors.Is(err, ErrUnchanged) {
				return nil
			}
			return err
		}
	}
	return c.Apply(name, target)
}

// Clone returns a deep copy of the item.
func (c *ContentItem) Clone() *ContentItem {
	if c == nil {
		return nil
	}
	out := *c
	if c.Parts != nil {
		out.Parts = make(map[string]json.RawMessage, len(c.Parts))
		for name, raw := range c.Parts {
			out.Parts[name] = append(json.RawMessage(nil), raw...)
		}
	}
	return &out
}
