package config

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/ecmastr/internal/config/watcher"
)

// ChangeHandler receives the configuration before and after a reload.
type ChangeHandler func(old, new *Config)

// Manager holds the current configuration for a file and reloads it on
// request or on change.
type Manager struct {
	path string
	opts []LoadOption

	current atomic.Pointer[Config]

	mu       sync.Mutex
	handlers []ChangeHandler
	errFns   []func(error)
	watcher  *watcher.Watcher
	reloads  atomic.Int64
	failures atomic.Int64
}

// NewManager loads the configuration at path. An empty path uses defaults
// and the environment only.
func NewManager(path string, opts ...LoadOption) (*Manager, error) {
	cfg, err := Load(path, opts...)
	if err != nil {
		return nil, err
	}
	m := &Manager{path: path, opts: opts}
	m.current.Store(cfg)
	return m, nil
}

// Path returns the watched file.
func (m *Manager) Path() string {
	return m.path
}

// Current returns the active configuration. Callers must not modify it.
func (m *Manager) Current() *Config {
	return m.current.Load()
}

// Subscribe registers fn to run after every successful reload.
func (m *Manager) Subscribe(fn ChangeHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, fn)
}

// OnError registers fn to run when a reload fails.
func (m *Manager) OnError(fn func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errFns = append(m.errFns, fn)
}

// Reload re-reads the configuration. On failure the previous configuration
// stays active and the error is returned and reported to OnError handlers.
func (m *Manager) Reload() error {
	cfg, err := Load(m.path, m.opts...)

	m.mu.Lock()
	handlers := slices.Clone(m.handlers)
	errFns := slices.Clone(m.errFns)
	m.mu.Unlock()

	if err != nil {
		m.failures.Add(1)
		for _, fn := range errFns {
			fn(err)
		}
		return err
	}

	old := m.current.Swap(cfg)
	m.reloads.Add(1)
	for _, fn := range handlers {
		fn(old, cfg)
	}
	return nil
}

// Reloads returns the number of successful and failed reloads.
func (m *Manager) Reloads() (ok, failed int64) {
	return m.reloads.Load(), m.failures.Load()
}

// Watch starts reloading whenever the file changes. It is a no-op when the
// manager has no path or is already watching.
func (m *Manager) Watch(debounce time.Duration) error {
	if m.path == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watcher != nil {
		return nil
	}

	w, err := watcher.New(watcher.WithDebounce(debounce))
	if err != nil {
		return err
	}
	if err := w.Watch(m.path); err != nil {
		w.Close()
		return err
	}
	w.OnChange(func(e watcher.Event) {
		if e.Op == watcher.OpRemove || e.Op == watcher.OpRename {
			return
		}
		_ = m.Reload()
	})
	w.OnError(func(err error) {
		m.mu.Lock()
		errFns := slices.Clone(m.errFns)
		m.mu.Unlock()
		for _, fn := range errFns {
			fn(err)
		}
	})
	if err := w.Start(); err != nil {
		w.Close()
		return err
	}
	m.watcher = w
	return nil
}

// Close stops watching.
func (m *Manager) Close() error {
	m.mu.Lock()
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}
