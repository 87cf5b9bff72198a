// Package watch re-runs a callback when prompt files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the burst of events editors emit on save
const DefaultDebounce = 300 * time.Millisecond

// Watcher tracks a fixed set of files. Editors often replace a file on save
// (write to temp, rename over), so the parent directories are watched and
// events are filtered by path.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]string
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]time.Time
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets how long a file must be quiet before it is reported
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for watch events
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New watches paths. The caller must call Close.
func New(paths []string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]string, len(paths)),
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		pending:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is done, calling onChange with the original path of
// each file that changed once it has been quiet for the debounce interval.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	tick := w.debounce / 3
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			for _, path := range w.due(now) {
				onChange(path)
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	path, ok := w.files[abs]
	if !ok {
		return
	}

	w.logger.Debug("prompt changed", zap.String("path", path), zap.String("op", event.Op.String()))
	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

// due returns and clears the pending paths that have been quiet long enough
func (w *Watcher) due(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	return ready
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
