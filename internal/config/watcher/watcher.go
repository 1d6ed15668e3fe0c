// Package watcher reports changes to individual files through fsnotify.
//
// The parent directory of every watched file is subscribed rather than the
// file itself, so a file that does not exist yet can be watched and editors
// that save by renaming a temporary file over the original are still seen.
// Bursts of events for one file are coalesced into a single Event once the
// file has been quiet for the debounce interval.
package watcher

import (
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Operation is the kind of change reported for a file.
type Operation int

const (
	OpWrite Operation = iota
	OpCreate
	OpRemove
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event is a change to a watched file.
type Event struct {
	// Path is the cleaned absolute path of the file.
	Path string
	Op   Operation
	Time time.Time
}

// Handler is called with each change, on the watcher's goroutines.
type Handler func(Event)

// Watcher monitors a set of files.
type Watcher struct {
	debounce time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	files    map[string]struct{}
	handlers []Handler
	fsw      *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
	pending  map[string]*pending
}

// pending is a change waiting out the debounce interval.
type pending struct {
	op    Operation
	timer *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero reports every event as it
// arrives; negative values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors and handler panics.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a stopped watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		files:    make(map[string]struct{}),
		pending:  make(map[string]*pending),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch adds a file. The file need not exist, but its directory must once
// the watcher is running.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw != nil {
		if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}
	w.files[abs] = struct{}{}
	return nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// OnChange adds a handler.
func (w *Watcher) OnChange(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Start subscribes to the watched directories. Starting a running watcher
// is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	var dirs []string
	for f := range w.files {
		if d := filepath.Dir(f); !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			_ = fsw.Close()
			return err
		}
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	w.wg.Add(1)
	go w.loop(fsw, w.done)
	return nil
}

// Stop ends watching and drops changes still waiting out the debounce.
// No handler runs after Stop returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.fsw == nil {
		w.mu.Unlock()
		return
	}
	fsw := w.fsw
	w.fsw = nil
	close(w.done)
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
	_ = fsw.Close()
}

// Running reports whether the watcher was started and not stopped.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fsw != nil
}

func (w *Watcher) loop(fsw *fsnotify.Watcher, done <-chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	op, ok := operation(ev.Op)
	if !ok {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	if _, watched := w.files[path]; !watched || w.fsw == nil {
		w.mu.Unlock()
		return
	}
	if w.debounce == 0 {
		w.mu.Unlock()
		w.emit(Event{Path: path, Op: op, Time: time.Now()})
		return
	}

	if p, ok := w.pending[path]; ok {
		p.op = coalesce(p.op, op)
		p.timer.Reset(w.debounce)
	} else {
		w.pending[path] = &pending{
			op:    op,
			timer: time.AfterFunc(w.debounce, func() { w.flush(path) }),
		}
	}
	w.mu.Unlock()
}

// flush reports the pending change for path once its timer fires.
func (w *Watcher) flush(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if !ok || w.fsw == nil {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.wg.Add(1)
	w.mu.Unlock()

	defer w.wg.Done()
	w.emit(Event{Path: path, Op: p.op, Time: time.Now()})
}

func (w *Watcher) emit(ev Event) {
	w.mu.Lock()
	handlers := slices.Clone(w.handlers)
	w.mu.Unlock()
	for _, h := range handlers {
		w.call(h, ev)
	}
}

func (w *Watcher) call(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Warn("watch handler panicked", "path", ev.Path, "panic", r)
		}
	}()
	h(ev)
}

// operation maps an fsnotify op. Chmod-only events are dropped.
func operation(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}

// coalesce merges a new operation into one that is still pending. A write
// never hides a create or removal; anything else replaces what was there.
func coalesce(prev, next Operation) Operation {
	if next == OpWrite {
		return prev
	}
	return next
}
