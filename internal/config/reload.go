package config

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/actionbind/internal/config/watcher"
)

// DefaultDebounce is how long a Watcher waits for a burst of writes to
// settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherStopped is returned when starting a Watcher that was stopped.
var ErrWatcherStopped = errors.New("watcher stopped")

// Watcher reloads a bindings file whenever it changes and delivers the
// result on Updates. Files that fail to load or validate are logged and
// skipped; the previous bindings stay in effect.
//
// Updates holds at most one pending value. A newer reload replaces one
// that was not yet received, so a slow receiver always sees the latest
// file. Receive on the goroutine that owns the input manager and call
// Apply there.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	load     func(path string) (*Bindings, error)

	files    *watcher.Watcher
	updates  chan *Bindings
	stopped  atomic.Bool
	stopOnce sync.Once

	reloads  atomic.Uint64
	failures atomic.Uint64
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for reloads and reload failures.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithWatcherDebounce sets the debounce interval.
func WithWatcherDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLoadFunc replaces Load as the function that reads the file.
func WithLoadFunc(fn func(path string) (*Bindings, error)) WatcherOption {
	return func(w *Watcher) {
		if fn != nil {
			w.load = fn
		}
	}
}

// NewWatcher creates a Watcher for the bindings file at path.
func NewWatcher(path string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		load:     Load,
		updates:  make(chan *Bindings, 1),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.files = watcher.New(watcher.WithDebounce(w.debounce), watcher.WithLogger(w.logger))
	w.files.OnChange(w.reload)
	return w
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Updates delivers reloaded bindings. It is closed by Stop.
func (w *Watcher) Updates() <-chan *Bindings {
	return w.updates
}

// Start begins watching. The file's directory must exist.
func (w *Watcher) Start() error {
	if w.stopped.Load() {
		return ErrWatcherStopped
	}
	if err := w.files.Watch(w.path); err != nil {
		return err
	}
	if err := w.files.Start(); err != nil {
		return err
	}
	w.logger.Debug("watching bindings", "path", w.path)
	return nil
}

// Stop ends watching and closes Updates. A stopped Watcher cannot be
// restarted.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.stopped.Store(true)
		w.files.Stop()
		close(w.updates)
	})
}

// Reloads returns the number of successful reloads.
func (w *Watcher) Reloads() uint64 {
	return w.reloads.Load()
}

// Failures returns the number of reloads rejected for load or validation
// errors.
func (w *Watcher) Failures() uint64 {
	return w.failures.Load()
}

func (w *Watcher) reload(ev watcher.Event) {
	// Editors that save by rename produce a create for the new file.
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		w.logger.Debug("bindings file went away", "path", ev.Path, "op", ev.Op.String())
		return
	}

	b, err := w.load(w.path)
	if err != nil {
		w.failures.Add(1)
		w.logger.Warn("reloading bindings failed", "path", w.path, "error", err)
		return
	}
	w.reloads.Add(1)
	w.logger.Debug("bindings reloaded", "path", w.path, "actions", len(b.Actions))
	w.deliver(b)
}

// deliver replaces any undelivered update with b. Only the watcher's
// event goroutine sends.
func (w *Watcher) deliver(b *Bindings) {
	for {
		select {
		case w.updates <- b:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
