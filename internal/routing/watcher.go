package routing

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vyrodovalexey/avaroute/internal/config"
	"github.com/vyrodovalexey/avaroute/internal/observability"
)

// TableCallback is called with each successfully reloaded table.
type TableCallback func(*Table)

// ErrorCallback is called when a reload fails.
type ErrorCallback func(error)

// Watcher reloads the routing document when its file changes. A failed
// reload is reported and otherwise ignored, so the last good table
// stays in effect.
type Watcher struct {
	path          string
	watcher       *fsnotify.Watcher
	callback      TableCallback
	errorCallback ErrorCallback
	logger        observability.Logger
	metrics       *observability.Metrics
	loaderOpts    []config.LoaderOption
	debounceDelay time.Duration
	lastTable     *Table
	mu            sync.RWMutex
	stopCh        chan struct{}
	stoppedCh     chan struct{}
	running       bool
}

// WatcherOption is a functional option for configuring the watcher.
type WatcherOption func(*Watcher)

// WithDebounceDelay sets the debounce delay for file changes.
func WithDebounceDelay(delay time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounceDelay = delay
	}
}

// WithLogger sets the logger for the watcher.
func WithLogger(logger observability.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithMetrics records the outcome and duration of every reload.
func WithMetrics(metrics *observability.Metrics) WatcherOption {
	return func(w *Watcher) {
		w.metrics = metrics
	}
}

// WithLoaderOptions sets the options used to read the document, such
// as a format that overrides extension detection.
func WithLoaderOptions(opts ...config.LoaderOption) WatcherOption {
	return func(w *Watcher) {
		w.loaderOpts = append(w.loaderOpts, opts...)
	}
}

// WithErrorCallback sets the error callback for the watcher.
func WithErrorCallback(callback ErrorCallback) WatcherOption {
	return func(w *Watcher) {
		w.errorCallback = callback
	}
}

// NewWatcher creates a watcher for the routing document at path.
func NewWatcher(path string, callback TableCallback, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:          absPath,
		watcher:       fsWatcher,
		callback:      callback,
		debounceDelay: 100 * time.Millisecond,
		logger:        observability.NopLogger(),
		stopCh:        make(chan struct{}),
		stoppedCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Start loads the initial table and begins watching. An initial load
// failure is returned and nothing is watched. The directory is watched
// rather than the file so that editors replacing the file by rename are
// noticed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	table, err := w.load()
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.lastTable = table
	w.running = true

	w.logger.Info("started watching routing configuration",
		observability.String("path", w.path),
		observability.Int("rules", table.Len()),
	)

	go w.watch(ctx)

	return nil
}

// Stop stops watching and releases the file system watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.stoppedCh

	return w.watcher.Close()
}

// LastTable returns the table from the last successful reload, or nil.
func (w *Watcher) LastTable() *Table {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastTable
}

// watch is the main watch loop.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.stoppedCh)

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("routing watcher stopped due to context cancellation")
			return

		case <-w.stopCh:
			w.logger.Info("routing watcher stopped")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			debounceTimer, debounceCh = w.handleFileEvent(event, debounceTimer, debounceCh)

		case <-debounceCh:
			debounceCh = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.handleWatchError(err)
		}
	}
}

// handleFileEvent processes a file system event and returns the
// updated debounce timer.
func (w *Watcher) handleFileEvent(
	event fsnotify.Event,
	debounceTimer *time.Timer,
	debounceCh <-chan time.Time,
) (timer *time.Timer, ch <-chan time.Time) {
	if filepath.Clean(event.Name) != w.path {
		return debounceTimer, debounceCh
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return debounceTimer, debounceCh
	}

	w.logger.Debug("routing configuration changed",
		observability.String("path", event.Name),
		observability.String("op", event.Op.String()),
	)

	if debounceTimer != nil {
		debounceTimer.Stop()
	}
	debounceTimer = time.NewTimer(w.debounceDelay)
	return debounceTimer, debounceTimer.C
}

// handleWatchError handles watcher errors.
func (w *Watcher) handleWatchError(err error) {
	w.logger.Error("routing watcher error",
		observability.Error(err),
	)
	if w.errorCallback != nil {
		w.errorCallback(err)
	}
}

// reload builds a new table from the file. On failure the previous
// table is kept.
func (w *Watcher) reload() {
	w.logger.Info("reloading routing configuration",
		observability.String("path", w.path),
	)

	if err := w.ForceReload(); err != nil {
		w.logger.Error("routing configuration reload failed, keeping previous table",
			observability.Error(err),
		)
		if w.errorCallback != nil {
			w.errorCallback(err)
		}
		return
	}

	w.logger.Info("routing configuration reloaded",
		observability.Int("rules", w.LastTable().Len()),
	)
}

// ForceReload reloads immediately, bypassing file events. On failure
// the previous table is kept and the error returned.
func (w *Watcher) ForceReload() error {
	start := time.Now()
	table, err := w.load()
	if w.metrics != nil {
		w.metrics.RecordLoad(err == nil, time.Since(start))
	}
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.lastTable = table
	w.mu.Unlock()

	if w.callback != nil {
		w.callback(table)
	}

	return nil
}

// load builds a table from the document and logs its lint warnings.
func (w *Watcher) load() (*Table, error) {
	cfg, err := config.NewLoader(w.loaderOpts...).Load(w.path)
	if err != nil {
		return nil, err
	}

	table, err := NewTable(cfg)
	if err != nil {
		return nil, err
	}

	for _, warning := range config.Lint(cfg) {
		w.logger.Warn("routing configuration warning",
			observability.String("path", warning.Path),
			observability.String("message", warning.Message),
		)
	}

	return table, nil
}
