package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
)

func TestInitGraphOrder(t *testing.T) {
	steps := InitGraph()
	want := []string{
		"config:load",
		"logging:init-provider",
		"storage:init-database",
		"storage:init-uploads",
		"mail:init-notifier",
	}
	if len(steps) != len(want) {
		t.Fatalf("unexpected step count: got %d want %d", len(steps), len(want))
	}
	for i, step := range steps {
		if step.ID != want[i] {
			t.Fatalf("step %d mismatch: got %s want %s", i, step.ID, want[i])
		}
	}
}

func TestExecuteInitGraph(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(tmp, "gallery.db"))
	t.Setenv("UPLOAD_DIR", filepath.Join(tmp, "uploads"))
	t.Setenv("CONFIG_PATH", filepath.Join(tmp, "missing.yaml"))
	t.Setenv("STORAGE_PROVIDER", "local")
	t.Setenv("EMAIL_PROVIDER", "none")

	state := &appState{}
	if err := executeInitSteps(context.Background(), InitGraph(), state); err != nil {
		t.Fatalf("executeInitSteps failed: %v", err)
	}
	if state.config == nil {
		t.Fatal("config is nil after init")
	}
	if state.logger == nil {
		t.Fatal("logger is nil after init")
	}
	if state.db == nil {
		t.Fatal("database is nil after init")
	}
	if state.uploads == nil || state.uploads.Name() != "local" {
		t.Fatalf("unexpected storage provider: %+v", state.uploads)
	}
	if state.notifier == nil || state.notifier.Name() != "none" {
		t.Fatalf("unexpected notifier: %+v", state.notifier)
	}
	state.logger.Close()
}

func TestExecuteInitStepsRejectsUnmetDependency(t *testing.T) {
	steps := []initStep{
		{
			ID:        "b",
			DependsOn: []string{"a"},
			Execute:   func(context.Context, *appState) error { return nil },
		},
	}
	if err := executeInitSteps(context.Background(), steps, &appState{}); err == nil {
		t.Fatal("expected unmet dependency error")
	}
}
