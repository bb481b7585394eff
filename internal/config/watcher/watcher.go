// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors configuration files through fsnotify and triggers
// reload callbacks when modifications are detected. Events for the same
// file arriving within the debounce window are coalesced into one.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by operations on a closed watcher.
var ErrClosed = errors.New("watcher closed")

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
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

// Handler is called when a file change is detected.
type Handler func(event Event)

// ErrorHandler is called when the underlying watcher reports an error.
type ErrorHandler func(err error)

// Stats counts watcher activity.
type Stats struct {
	WatchedFiles int
	Events       int64
	Emitted      int64
	Errors       int64
}

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.RWMutex

	fsw *fsnotify.Watcher

	// Watched files, and the directories holding them with a reference
	// count. Directories are watched so that editors replacing a file by
	// rename are still seen.
	files map[string]bool
	dirs  map[string]int

	handlers    []Handler
	errHandlers []ErrorHandler

	debounce     time.Duration
	pendingMu    sync.Mutex
	pendingFiles map[string]pendingEvent
	flushTimer   *time.Timer

	running bool
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup

	events  atomic.Int64
	emitted atomic.Int64
	errs    atomic.Int64
}

// pendingEvent stores a pending event with its operation for debouncing.
type pendingEvent struct {
	Op   Operation
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes. Zero delivers
// every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a new file watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:          fsw,
		files:        make(map[string]bool),
		dirs:         make(map[string]int),
		debounce:     100 * time.Millisecond,
		pendingFiles: make(map[string]pendingEvent),
		closeCh:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Watch adds a file to the watch list. The file need not exist yet, but
// its directory must.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.files[absPath] {
		return nil
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if _, err := os.Stat(dir); err != nil {
			return err
		}
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[absPath] = true
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if !w.files[absPath] {
		return nil
	}
	delete(w.files, absPath)

	dir := filepath.Dir(absPath)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// OnError registers a handler for watcher errors.
func (w *Watcher) OnError(handler ErrorHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errHandlers = append(w.errHandlers, handler)
}

// Start begins delivering events. Calling Start on a running watcher is a
// no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.running {
		return nil
	}
	w.running = true
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Close stops the watcher and releases its resources. Pending debounced
// events are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.running = false
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()

	w.pendingMu.Lock()
	if w.flushTimer != nil {
		w.flushTimer.Stop()
	}
	w.pendingMu.Unlock()

	return w.fsw.Close()
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// WatchedFiles returns the list of watched files.
func (w *Watcher) WatchedFiles() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	return files
}

// Stats returns a snapshot of watcher counters.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	n := len(w.files)
	w.mu.RUnlock()
	return Stats{
		WatchedFiles: n,
		Events:       w.events.Load(),
		Emitted:      w.emitted.Load(),
		Errors:       w.errs.Load(),
	}
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.errs.Add(1)
			w.emitError(err)
		}
	}
}

// handleFSEvent filters an fsnotify event down to watched files.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op, ok := convertOp(fsEvent.Op)
	if !ok {
		return
	}
	path := filepath.Clean(fsEvent.Name)

	w.mu.RLock()
	watched := w.files[path]
	w.mu.RUnlock()
	if !watched {
		return
	}

	w.events.Add(1)
	event := Event{Path: path, Op: op, Time: time.Now()}
	if w.debounce > 0 {
		w.queueEvent(event)
	} else {
		w.emitEvent(event)
	}
}

// convertOp maps an fsnotify operation. Chmod-only events are dropped.
func convertOp(fsOp fsnotify.Op) (Operation, bool) {
	switch {
	case fsOp.Has(fsnotify.Remove):
		return OpRemove, true
	case fsOp.Has(fsnotify.Rename):
		return OpRename, true
	case fsOp.Has(fsnotify.Create):
		return OpCreate, true
	case fsOp.Has(fsnotify.Write):
		return OpWrite, true
	}
	return 0, false
}

// queueEvent queues an event for debounced delivery and restarts the quiet
// period. Events coalesce as follows:
// - create + write => create
// - write + write => write
// - any + remove => remove
// - remove + create => write (the file was replaced)
func (w *Watcher) queueEvent(event Event) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	next := pendingEvent{Op: event.Op, Time: event.Time}
	if existing, exists := w.pendingFiles[event.Path]; exists {
		switch {
		case event.Op == OpRemove:
		case existing.Op == OpRemove && event.Op == OpCreate:
			next.Op = OpWrite
		case event.Op == OpWrite:
			next.Op = existing.Op
		}
	}
	w.pendingFiles[event.Path] = next

	if w.flushTimer == nil {
		w.flushTimer = time.AfterFunc(w.debounce, w.flushPending)
	} else {
		w.flushTimer.Reset(w.debounce)
	}
}

// flushPending emits every queued event.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	toEmit := make([]Event, 0, len(w.pendingFiles))
	for path, pending := range w.pendingFiles {
		toEmit = append(toEmit, Event{Path: path, Op: pending.Op, Time: pending.Time})
		delete(w.pendingFiles, path)
	}
	w.pendingMu.Unlock()

	select {
	case <-w.closeCh:
		return
	default:
	}
	for _, event := range toEmit {
		w.emitEvent(event)
	}
}

// emitEvent calls all handlers with the event.
// Handlers are called with panic recovery to prevent a panicking handler
// from crashing the watcher goroutine.
func (w *Watcher) emitEvent(event Event) {
	w.mu.RLock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	w.emitted.Add(1)
	for _, handler := range handlers {
		safeCall(func() { handler(event) })
	}
}

func (w *Watcher) emitError(err error) {
	w.mu.RLock()
	handlers := make([]ErrorHandler, len(w.errHandlers))
	copy(handlers, w.errHandlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		safeCall(func() { handler(err) })
	}
}

func safeCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
