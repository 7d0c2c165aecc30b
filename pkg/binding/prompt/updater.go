package prompt

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-contentparts/pkg/display"
)

// Updater is a display.Updater that asks one question per exported field of
// the model. Field names come from the `schema` tag, so the same models bind
// from forms and terminals; a `prompt` tag overrides the message. Supported
// kinds: string, bool, integers, and []string.
type Updater struct {
	driver  Driver
	choices map[string][]string
	skip    map[string]bool
	state   *display.ModelState
}

var _ display.Updater = (*Updater)(nil)

// Option configures an Updater.
type Option func(*Updater)

// WithChoices offers a fixed option list for the []string field at key
// ("Prefix.Field"), prompting with a multi-select instead of free text.
func WithChoices(key string, options ...string) Option {
	return func(u *Updater) {
		u.choices[key] = append([]string(nil), options...)
	}
}

// WithSkip leaves the prefix untouched, reporting it as not submitted.
func WithSkip(prefixes ...string) Option {
	return func(u *Updater) {
		for _, prefix := range prefixes {
			u.skip[prefix] = true
		}
	}
}

// NewUpdater returns an Updater prompting through driver.
func NewUpdater(driver Driver, options ...Option) *Updater {
	if driver == nil {
		driver = SurveyDriver{}
	}
	u := &Updater{
		driver:  driver,
		choices: make(map[string][]string),
		skip:    make(map[string]bool),
		state:   display.NewModelState(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(u)
		}
	}
	return u
}

// TryUpdateModel prompts for every supported field of model, using the
// current values as defaults.
func (u *Updater) TryUpdateModel(ctx context.Context, model any, prefix string) (bool, error) {
	if u.skip[prefix] {
		return false, nil
	}

	rv := reflect.ValueOf(model)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return false, fmt.Errorf("prompt: model for %q must be a pointer to struct", prefix)
	}
	rv = rv.Elem()
	rt := rv.Type()

	asked := false
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field)
		if name == "-" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		q := Question{
			Name:    key,
			Message: message(field, key),
		}

		ok, err := u.ask(ctx, rv.Field(i), q)
		if err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return false, err
			}
			u.state.AddModelError(key, err.Error())
			continue
		}
		asked = asked || ok
	}
	return asked, nil
}

// ModelState returns the collected errors.
func (u *Updater) ModelState() *display.ModelState {
	return u.state
}

func (u *Updater) ask(ctx context.Context, value reflect.Value, q Question) (bool, error) {
	switch value.Kind() {
	case reflect.String:
		q.Default = value.String()
		out, err := u.driver.Input(ctx, q)
		if err != nil {
			return false, err
		}
		value.SetString(strings.TrimSpace(out))
		return true, nil
	case reflect.Bool:
		out, err := u.driver.Confirm(ctx, q, value.Bool())
		if err != nil {
			return false, err
		}
		value.SetBool(out)
		return true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		q.Default = strconv.FormatInt(value.Int(), 10)
		q.Validator = func(s string) error {
			_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			return err
		}
		out, err := u.driver.Input(ctx, q)
		if err != nil {
			return false, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid number %q", out)
		}
		value.SetInt(n)
		return true, nil
	case reflect.Slice:
		if value.Type().Elem().Kind() != reflect.String {
			return false, nil
		}
		current := make([]string, value.Len())
		for i := range current {
			current[i] = value.Index(i).String()
		}
		var out []string
		if options, ok := u.choices[q.Name]; ok {
			q.Options = options
			q.Defaults = current
			selected, err := u.driver.MultiSelect(ctx, q)
			if err != nil {
				return false, err
			}
			out = selected
		} else {
			q.Default = strings.Join(current, "\n")
			text, err := u.driver.TextArea(ctx, q)
			if err != nil {
				return false, err
			}
			out = strings.Split(text, "\n")
		}
		slice := reflect.MakeSlice(value.Type(), 0, len(out))
		for _, item := range out {
			slice = reflect.Append(slice, reflect.ValueOf(item).Convert(value.Type().Elem()))
		}
		value.Set(slice)
		return true, nil
	default:
		return false, nil
	}
}

func fieldName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("schema"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return field.Name
}

func message(field reflect.StructField, key string) string {
	if tag := strings.TrimSpace(field.Tag.Get("prompt")); tag != "" {
		return tag
	}
	return key
}
