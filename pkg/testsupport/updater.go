package testsupport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-contentparts/pkg/display"
)

// Updater is a display.Updater that binds JSON-compatible payloads keyed by
// prefix. Prefixes without a payload are reported as not submitted.
type Updater struct {
	Payloads map[string]any
	Err      error
	Bound    []string
	state    *display.ModelState
}

var _ display.Updater = (*Updater)(nil)

// NewUpdater returns an updater serving payloads.
func NewUpdater(payloads map[string]any) *Updater {
	return &Updater{Payloads: payloads, state: display.NewModelState()}
}

// TryUpdateModel decodes the payload stored under prefix onto model.
func (u *Updater) TryUpdateModel(_ context.Context, model any, prefix string) (bool, error) {
	if u.Err != nil {
		return false, u.Err
	}
	payload, ok := u.Payloads[prefix]
	if !ok {
		return false, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("testsupport: encode payload %q: %w", prefix, err)
	}
	if err := json.Unmarshal(raw, model); err != nil {
		u.ModelState().AddModelError(prefix, err.Error())
		return false, nil
	}
	u.Bound = append(u.Bound, prefix)
	return true, nil
}

// ModelState returns the collected errors.
func (u *Updater) ModelState() *display.ModelState {
	if u.state == nil {
		u.state = display.NewModelState()
	}
	return u.state
}
