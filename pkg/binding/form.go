// Package binding provides display.Updater implementations that bind
// submitted form values onto editor models.
package binding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/goliatone/go-contentparts/pkg/display"
)

// Option configures a FormUpdater.
type Option func(*FormUpdater)

// WithDecoder replaces the default schema decoder.
func WithDecoder(decoder *schema.Decoder) Option {
	return func(u *FormUpdater) {
		if decoder != nil {
			u.decoder = decoder
		}
	}
}

// WithModelState shares a model state across updaters.
func WithModelState(state *display.ModelState) Option {
	return func(u *FormUpdater) {
		if state != nil {
			u.state = state
		}
	}
}

// FormUpdater binds url.Values using "Prefix.Field" input names. Models use
// `schema` struct tags to name their inputs.
type FormUpdater struct {
	values  url.Values
	decoder *schema.Decoder
	state   *display.ModelState
}

var _ display.Updater = (*FormUpdater)(nil)

// NewDecoder returns the decoder used by default: unknown keys are ignored and
// empty inputs reset fields to their zero value.
func NewDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	decoder.ZeroEmpty(true)
	return decoder
}

// NewFormUpdater binds values.
func NewFormUpdater(values url.Values, options ...Option) *FormUpdater {
	u := &FormUpdater{
		values:  values,
		decoder: NewDecoder(),
		state:   display.NewModelState(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(u)
		}
	}
	return u
}

// FromRequest parses the request form and binds its values.
func FromRequest(r *http.Request, options ...Option) (*FormUpdater, error) {
	if r == nil {
		return nil, errors.New("binding: request is nil")
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("binding: parse form: %w", err)
	}
	return NewFormUpdater(r.Form, options...), nil
}

// TryUpdateModel decodes the values under prefix onto model, which must be a
// pointer to a struct. Conversion failures are recorded on ModelState and
// reported as false.
func (u *FormUpdater) TryUpdateModel(ctx context.Context, model any, prefix string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	scoped := Scope(u.values, prefix)
	if len(scoped) == 0 {
		return false, nil
	}

	err := u.decoder.Decode(model, scoped)
	if err == nil {
		return true, nil
	}

	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return false, fmt.Errorf("binding: decode %q: %w", prefix, err)
	}
	for key, keyErr := range multi {
		u.state.AddModelError(joinKey(prefix, key), describe(keyErr))
	}
	return false, nil
}

// ModelState returns the errors collected so far.
func (u *FormUpdater) ModelState() *display.ModelState {
	return u.state
}

// Scope returns the values whose names start with prefix followed by a dot,
// with the prefix removed. An empty prefix returns every value.
func Scope(values url.Values, prefix string) url.Values {
	prefix = strings.TrimSpace(prefix)
	out := make(url.Values)
	for key, vals := range values {
		if prefix == "" {
			out[key] = vals
			continue
		}
		rest, ok := strings.CutPrefix(key, prefix+".")
		if !ok || rest == "" {
			continue
		}
		out[rest] = vals
	}
	return out
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func describe(err error) string {
	var conversion schema.ConversionError
	if errors.As(err, &conversion) {
		return fmt.Sprintf("invalid value for %s", conversion.Key)
	}
	var empty schema.EmptyFieldError
	if errors.As(err, &empty) {
		return fmt.Sprintf("%s is required", empty.Key)
	}
	return err.Error()
}
