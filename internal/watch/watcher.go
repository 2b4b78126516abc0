// Package watch reports changes to the input files of a generation cycle.
//
// Parent directories are watched rather than the files themselves, so editors that save by
// writing a temp file and renaming it over the original are still seen.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when adding to a closed watcher
var ErrWatcherClosed = errors.New("watcher is closed")

// DefaultDelay coalesces the burst of events a single save produces
const DefaultDelay = 150 * time.Millisecond

// Watcher batches change events for a set of files
type Watcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	delay   time.Duration

	files map[string]bool
	dirs  map[string]bool

	changes chan []string
	errors  chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New starts a watcher; delay <= 0 selects DefaultDelay
func New(delay time.Duration) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher: fsw,
		delay:   delay,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		changes: make(chan []string, 1),
		errors:  make(chan error, 10),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Add watches a file; empty paths are ignored
func (w *Watcher) Add(path string) error {
	if path == "" {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	dir := filepath.Dir(absPath)
	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[absPath] = true
	return nil
}

// Files returns the watched files, sorted
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Changes delivers the sorted set of files changed during each quiet period
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Errors delivers watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Run calls onChange for every batch until ctx is done or the watcher closes
func (w *Watcher) Run(ctx context.Context, onChange func(files []string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case files, ok := <-w.changes:
			if !ok {
				return nil
			}
			onChange(files)
		case err, ok := <-w.errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch failed: %w", err)
		}
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.changes)
	close(w.errors)

	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	pending := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.interesting(event) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			batch := make([]string, 0, len(pending))
			for f := range pending {
				batch = append(batch, f)
			}
			sort.Strings(batch)
			pending = make(map[string]bool)

			select {
			case w.changes <- batch:
			case <-w.closeCh:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) interesting(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}

	absPath, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[absPath]
}
