// Package watch notifies about changes to timeline files so a running engine
// can pick up appended timings.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hekevintran/kinetophone/internal/logger"
)

const (
	defaultDebounce     = 250 * time.Millisecond
	defaultPollInterval = time.Second
)

// Handler is called with the path of a file that changed and has been quiet
// for the debounce window
type Handler func(path string)

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets how long a file must go unmodified before its handler runs
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithPollInterval sets the scan interval used when fsnotify is unavailable
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithPolling disables fsnotify and always scans modification times
func WithPolling() Option {
	return func(w *Watcher) {
		w.forcePolling = true
	}
}

// Watcher watches a fixed set of files. Parent directories are watched rather
// than the files so editors that replace files on save are still seen.
type Watcher struct {
	paths        map[string]struct{}
	handler      Handler
	debounce     time.Duration
	pollInterval time.Duration
	forcePolling bool

	fsnotifyWatcher *fsnotify.Watcher
	stopChan        chan struct{}
	watchDone       chan struct{}

	mu      sync.Mutex
	pending map[string]time.Time // path -> last event time
	started bool
	stopped bool
}

// New creates a watcher for paths. Nothing is watched until Start.
func New(paths []string, handler Handler, opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one path is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}

	w := &Watcher{
		paths:        make(map[string]struct{}, len(paths)),
		handler:      handler,
		debounce:     defaultDebounce,
		pollInterval: defaultPollInterval,
		stopChan:     make(chan struct{}),
		watchDone:    make(chan struct{}),
		pending:      make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.paths[abs] = struct{}{}
	}
	return w, nil
}

// Start begins watching. It falls back to polling when fsnotify cannot be set up.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return fmt.Errorf("watcher has been stopped")
	}
	if w.started {
		return nil
	}
	w.started = true

	if !w.forcePolling {
		w.fsnotifyWatcher = w.newFSWatcher()
	}

	go w.run()

	logger.Log.Info().
		Int("files", len(w.paths)).
		Bool("using_fsnotify", w.fsnotifyWatcher != nil).
		Dur("debounce", w.debounce).
		Msg("Timeline watcher started")

	return nil
}

func (w *Watcher) newFSWatcher() *fsnotify.Watcher {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Msg("Failed to create fsnotify watcher, falling back to polling")
		return nil
	}

	dirs := make(map[string]struct{})
	for p := range w.paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			logger.Log.Warn().
				Err(err).
				Str("dir", dir).
				Msg("Failed to add directory to fsnotify watcher, falling back to polling")
			_ = fsw.Close()
			return nil
		}
	}
	return fsw
}

// Stop stops watching and waits for the watch goroutine to exit
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	close(w.stopChan)

	if w.fsnotifyWatcher != nil {
		if err := w.fsnotifyWatcher.Close(); err != nil {
			logger.Log.Warn().
				Err(err).
				Msg("Error closing fsnotify watcher")
		}
	}

	if started {
		<-w.watchDone
	}

	logger.Log.Debug().Msg("Timeline watcher stopped")
	return nil
}

func (w *Watcher) run() {
	defer close(w.watchDone)

	if w.fsnotifyWatcher != nil {
		w.watchEvents()
	} else {
		w.poll()
	}
}

// watchEvents consumes fsnotify events and flushes quiet files every debounce window
func (w *Watcher) watchEvents() {
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.fsnotifyWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				w.markChanged(event.Name)
			}
		case err, ok := <-w.fsnotifyWatcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn().
				Err(err).
				Msg("fsnotify error, continuing")
		case <-ticker.C:
			w.processPending()
		}
	}
}

type fileState struct {
	modTime time.Time
	size    int64
}

// poll compares modification time and size of every path each interval
func (w *Watcher) poll() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	seen := make(map[string]fileState, len(w.paths))
	for p := range w.paths {
		if info, err := os.Stat(p); err == nil {
			seen[p] = fileState{modTime: info.ModTime(), size: info.Size()}
		}
	}

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			for p := range w.paths {
				info, err := os.Stat(p)
				if err != nil {
					continue
				}
				state := fileState{modTime: info.ModTime(), size: info.Size()}
				if prev, ok := seen[p]; !ok || prev != state {
					seen[p] = state
					w.markChanged(p)
				}
			}
			w.processPending()
		}
	}
}

// markChanged records an event for a watched path, ignoring other files in
// the watched directories
func (w *Watcher) markChanged(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	if _, ok := w.paths[abs]; !ok {
		return
	}

	w.mu.Lock()
	w.pending[abs] = time.Now()
	w.mu.Unlock()
}

// processPending runs the handler for every path that has been quiet for the
// debounce window. Polling already spaces checks by the poll interval.
func (w *Watcher) processPending() {
	now := time.Now()

	w.mu.Lock()
	var ready []string
	for p, last := range w.pending {
		if w.fsnotifyWatcher != nil && now.Sub(last) < w.debounce {
			continue
		}
		ready = append(ready, p)
		delete(w.pending, p)
	}
	w.mu.Unlock()

	for _, p := range ready {
		// Skip files that disappeared between the event and the flush
		if _, err := os.Stat(p); err != nil {
			continue
		}
		logger.Log.Debug().
			Str("path", p).
			Msg("Timeline file changed")
		w.handler(p)
	}
}
