// Package migrations runs versioned data migrations for content features.
// Each feature's Create runs once on install; later versions are reached by
// repeated UpdateFrom calls until the migration reports no progress.
package migrations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Migration installs a feature and returns the resulting schema version.
type Migration interface {
	Feature() string
	Create(ctx context.Context) (int, error)
}

// Upgrader is implemented by migrations that evolve past their initial
// version. UpdateFrom returns the new version, or the same version when
// there is nothing left to apply.
type Upgrader interface {
	UpdateFrom(ctx context.Context, version int) (int, error)
}

// VersionStore records the applied version per feature. A missing feature
// reports 0 and false.
type VersionStore interface {
	Version(ctx context.Context, feature string) (int, bool, error)
	SetVersion(ctx context.Context, feature string, version int) error
}

// MemoryStore keeps versions in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	versions map[string]int
}

var _ VersionStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{versions: make(map[string]int)}
}

func (s *MemoryStore) Version(ctx context.Context, feature string) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	version, ok := s.versions[feature]
	return version, ok, nil
}

func (s *MemoryStore) SetVersion(ctx context.Context, feature string, version int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[feature] = version
	return nil
}

// Snapshot returns a copy of the recorded versions.
func (s *MemoryStore) Snapshot() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.versions))
	for feature, version := range s.versions {
		out[feature] = version
	}
	return out
}

// Result reports what a run did for one feature.
type Result struct {
	Feature string
	From    int
	To      int
}

// Applied reports whether the run changed the feature's version.
func (r Result) Applied() bool {
	return r.From != r.To
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// maxUpgradeSteps bounds UpdateFrom loops for migrations that never settle.
const maxUpgradeSteps = 64

// Runner applies migrations against a VersionStore.
type Runner struct {
	store  VersionStore
	logger zerolog.Logger
}

// NewRunner returns a runner recording versions in store. A nil store uses a
// fresh MemoryStore.
func NewRunner(store VersionStore, options ...Option) *Runner {
	if store == nil {
		store = NewMemoryStore()
	}
	r := &Runner{store: store, logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run applies each migration, in feature order, stopping at the first
// failure. Features already at their latest version are left untouched.
func (r *Runner) Run(ctx context.Context, migrations ...Migration) ([]Result, error) {
	ordered := make([]Migration, 0, len(migrations))
	seen := make(map[string]struct{}, len(migrations))
	for _, m := range migrations {
		if m == nil {
			continue
		}
		feature := strings.TrimSpace(m.Feature())
		if feature == "" {
			return nil, errors.New("migrations: feature name is required")
		}
		if _, dup := seen[feature]; dup {
			return nil, fmt.Errorf("migrations: feature %q registered twice", feature)
		}
		seen[feature] = struct{}{}
		ordered = append(ordered, m)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Feature() < ordered[j].Feature()
	})

	results := make([]Result, 0, len(ordered))
	for _, m := range ordered {
		result, err := r.apply(ctx, m)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (r *Runner) apply(ctx context.Context, m Migration) (Result, error) {
	feature := strings.TrimSpace(m.Feature())
	current, installed, err := r.store.Version(ctx, feature)
	if err != nil {
		return Result{}, fmt.Errorf("migrations: read version of %q: %w", feature, err)
	}
	result := Result{Feature: feature, From: current, To: current}

	if !installed {
		version, err := m.Create(ctx)
		if err != nil {
			return result, fmt.Errorf("migrations: create %q: %w", feature, err)
		}
		current = version
		if err := r.store.SetVersion(ctx, feature, current); err != nil {
			return result, fmt.Errorf("migrations: record %q: %w", feature, err)
		}
		r.logger.Info().Str("feature", feature).Int("version", current).Msg("feature installed")
	}

	if upgrader, ok := m.(Upgrader); ok {
		for step := 0; step < maxUpgradeSteps; step++ {
			next, err := upgrader.UpdateFrom(ctx, current)
			if err != nil {
				return result, fmt.Errorf("migrations: update %q from %d: %w", feature, current, err)
			}
			if next <= current {
				break
			}
			if err := r.store.SetVersion(ctx, feature, next); err != nil {
				return result, fmt.Errorf("migrations: record %q: %w", feature, err)
			}
			r.logger.Info().Str("feature", feature).Int("from", current).Int("to", next).Msg("feature upgraded")
			current = next
		}
	}

	result.To = current
	return result, nil
}
