package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "api.shim.yaml")
	if err := os.WriteFile(target, []byte("package: a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{target})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.Debounce = 20 * time.Millisecond
	w.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	calls := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) error {
			calls <- changed
			return nil
		})
	}()

	// Give the watcher a moment to start delivering events.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		if err := os.WriteFile(target, []byte("package: b\n# "+string(rune('0'+i))+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case changed := <-calls:
		if len(changed) != 1 || changed[0] != target {
			t.Errorf("changed = %v, want [%s]", changed, target)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for change")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) expected error")
	}
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "a.shim.yaml")
	if _, err := New([]string{missing}); err == nil {
		t.Error("New() with missing directory expected error")
	}
}
