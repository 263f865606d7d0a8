package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, dir string) (*Watcher, <-chan Change) {
	t.Helper()
	watcher := New(Config{Dir: dir, Interval: 20 * time.Millisecond})
	changes := make(chan Change, 16)
	watcher.OnChange(func(c Change) {
		changes <- c
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go watcher.Start(ctx)

	// Wait for the initial scan
	deadline := time.Now().Add(time.Second)
	for !watcher.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	return watcher, changes
}

func waitChange(t *testing.T, changes <-chan Change) Change {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
		return Change{}
	}
}

func TestWatcherReportsLifecycle(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.yaml")
	if err := os.WriteFile(existing, []byte("steps: []"), 0644); err != nil {
		t.Fatal(err)
	}

	watcher, changes := startWatcher(t, dir)
	defer watcher.Stop()

	path := filepath.Join(dir, "todo.yml")
	if err := os.WriteFile(path, []byte("name: a"), 0644); err != nil {
		t.Fatal(err)
	}
	c := waitChange(t, changes)
	if c.Op != Created || c.Name != "todo" || c.Path != path {
		t.Errorf("got %v %s (%s), want created todo", c.Op, c.Name, c.Path)
	}

	if err := os.WriteFile(path, []byte("name: a longer name"), 0644); err != nil {
		t.Fatal(err)
	}
	if c := waitChange(t, changes); c.Op != Modified || c.Name != "todo" {
		t.Errorf("got %v %s, want modified todo", c.Op, c.Name)
	}

	if err := os.Remove(existing); err != nil {
		t.Fatal(err)
	}
	if c := waitChange(t, changes); c.Op != Removed || c.Name != "existing" {
		t.Errorf("got %v %s, want removed existing", c.Op, c.Name)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watcher, changes := startWatcher(t, dir)
	defer watcher.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "deep.yaml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-changes:
		t.Errorf("unexpected change %v %s", c.Op, c.Path)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherStop(t *testing.T) {
	watcher := New(Config{Dir: t.TempDir(), Interval: 10 * time.Millisecond})
	if watcher.IsRunning() {
		t.Error("watcher should not be running before Start")
	}

	done := make(chan error, 1)
	go func() { done <- watcher.Start(context.Background()) }()
	for !watcher.IsRunning() {
		time.Sleep(time.Millisecond)
	}
	watcher.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() = %v, want nil after Stop", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
	if watcher.IsRunning() {
		t.Error("watcher should not be running after Stop")
	}
}

func TestOpString(t *testing.T) {
	tests := map[Op]string{Created: "created", Modified: "modified", Removed: "removed", Op(9): "unknown"}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", op, got, want)
		}
	}
}
