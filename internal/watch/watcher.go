package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Op is the kind of change detected.
type Op int

const (
	Created Op = iota
	Modified
	Removed
)

// String returns the lower-case name of the op.
func (o Op) String() string {
	switch o {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is a detected file change.
type Change struct {
	Path string
	Name string // file name without extension
	Op   Op
}

// Config configures the watcher.
type Config struct {
	// Dir is the directory to watch. Subdirectories are not descended.
	Dir string

	// Extensions selects the files to watch (default: .yaml and .yml).
	Extensions []string

	// Interval is the polling period (default: 250ms).
	Interval time.Duration
}

type stamp struct {
	mod  time.Time
	size int64
}

// Watcher polls a directory for changes.
type Watcher struct {
	config   Config
	mu       sync.Mutex
	onChange func(Change)
	running  bool
	stopCh   chan struct{}
	files    map[string]stamp
}

// New creates a watcher.
func New(config Config) *Watcher {
	if config.Interval <= 0 {
		config.Interval = 250 * time.Millisecond
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".yaml", ".yml"}
	}
	return &Watcher{
		config: config,
		files:  make(map[string]stamp),
	}
}

// OnChange sets the callback for changes. It runs on the watcher's
// goroutine.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls until ctx is done or Stop is called. Files present when Start
// is called are not reported.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	w.files = w.scan()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			w.poll()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning reports whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// poll diffs the directory against the last scan and reports changes in
// path order.
func (w *Watcher) poll() {
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()

	current := w.scan()
	var changes []Change
	for path, st := range current {
		prev, ok := w.files[path]
		switch {
		case !ok:
			changes = append(changes, w.change(path, Created))
		case !st.mod.Equal(prev.mod) || st.size != prev.size:
			changes = append(changes, w.change(path, Modified))
		}
	}
	for path := range w.files {
		if _, ok := current[path]; !ok {
			changes = append(changes, w.change(path, Removed))
		}
	}
	w.files = current

	if callback == nil {
		return
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	for _, c := range changes {
		callback(c)
	}
}

func (w *Watcher) scan() map[string]stamp {
	files := make(map[string]stamp)
	entries, err := os.ReadDir(w.config.Dir)
	if err != nil {
		return files
	}
	for _, entry := range entries {
		if entry.IsDir() || !w.matches(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files[filepath.Join(w.config.Dir, entry.Name())] = stamp{mod: info.ModTime(), size: info.Size()}
	}
	return files
}

func (w *Watcher) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range w.config.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (w *Watcher) change(path string, op Op) Change {
	base := filepath.Base(path)
	return Change{
		Path: path,
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Op:   op,
	}
}
