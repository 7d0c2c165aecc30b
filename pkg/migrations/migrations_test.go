package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubMigration struct {
	feature string
	created int
	creates int
	steps   map[int]int
	err     error
}

func (m *stubMigration) Feature() string { return m.feature }

func (m *stubMigration) Create(context.Context) (int, error) {
	m.creates++
	return m.created, m.err
}

type upgradingMigration struct {
	*stubMigration
}

func (m upgradingMigration) UpdateFrom(_ context.Context, version int) (int, error) {
	if next, ok := m.steps[version]; ok {
		return next, nil
	}
	return version, nil
}

func TestRunner_CreatesOnce(t *testing.T) {
	store := NewMemoryStore()
	runner := NewRunner(store)
	m := &stubMigration{feature: "ContentPermissions", created: 1}

	results, err := runner.Run(context.Background(), m)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]Result{{Feature: "ContentPermissions", From: 0, To: 1}}, results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	results, err = runner.Run(context.Background(), m)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if m.creates != 1 {
		t.Fatalf("expected Create once, got %d", m.creates)
	}
	if results[0].Applied() {
		t.Fatalf("second run should not apply anything: %+v", results[0])
	}
}

func TestRunner_UpgradesUntilSettled(t *testing.T) {
	store := NewMemoryStore()
	m := upgradingMigration{&stubMigration{feature: "Forms", created: 1, steps: map[int]int{1: 2, 2: 3}}}

	results, err := NewRunner(store).Run(context.Background(), m)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results[0].To != 3 {
		t.Fatalf("expected version 3, got %+v", results[0])
	}
	if diff := cmp.Diff(map[string]int{"Forms": 3}, store.Snapshot()); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	store := NewMemoryStore()
	_, err := NewRunner(store).Run(context.Background(),
		&stubMigration{feature: "A", err: boom},
		&stubMigration{feature: "B", created: 1},
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(store.Snapshot()) != 0 {
		t.Fatalf("nothing should be recorded: %v", store.Snapshot())
	}
}

func TestRunner_RejectsDuplicateFeatures(t *testing.T) {
	_, err := NewRunner(nil).Run(context.Background(),
		&stubMigration{feature: "A", created: 1},
		&stubMigration{feature: "A", created: 1},
	)
	if err == nil {
		t.Fatalf("expected duplicate feature error")
	}
}
