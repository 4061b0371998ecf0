package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/castxml/errors"
	"github.com/teranos/castxml/logger"
)

// ChangeCallback is called with the path of a changed input document
type ChangeCallback func(path string) error

// InputWatcher watches AST documents and reports changes after a quiet
// period, so one editor save triggers one regeneration.
type InputWatcher struct {
	watcher        *fsnotify.Watcher
	inputs         map[string]bool // cleaned absolute paths
	callbacks      []ChangeCallback
	mu             sync.Mutex
	pending        map[string]bool
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	logger         *zap.SugaredLogger
	done           chan struct{}
}

// NewInputWatcher creates a watcher for the given documents. Their parent
// directories are watched so files replaced by rename are still seen.
func NewInputWatcher(paths ...string) (*InputWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	iw := &InputWatcher{
		watcher:        watcher,
		inputs:         make(map[string]bool),
		pending:        make(map[string]bool),
		debouncePeriod: 500 * time.Millisecond,
		logger:         logger.ComponentLogger("watch"),
		done:           make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		iw.inputs[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return iw, nil
}

// SetDebounce changes the quiet period (default 500ms)
func (iw *InputWatcher) SetDebounce(d time.Duration) {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	iw.debouncePeriod = d
}

// OnChange registers a callback to be called when an input changes
func (iw *InputWatcher) OnChange(callback ChangeCallback) {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	iw.callbacks = append(iw.callbacks, callback)
}

// Start begins watching for input changes
func (iw *InputWatcher) Start() {
	go iw.watchLoop()
}

// Done is closed once the watcher stops
func (iw *InputWatcher) Done() <-chan struct{} {
	return iw.done
}

func (iw *InputWatcher) watchLoop() {
	defer close(iw.done)
	for {
		select {
		case event, ok := <-iw.watcher.Events:
			if !ok {
				return
			}
			if !iw.inputs[filepath.Clean(event.Name)] {
				continue
			}
			// Only react to Write, Create or Rename-into-place
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			iw.logger.Debugw("input changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			iw.schedule(filepath.Clean(event.Name))

		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
			iw.logger.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

// schedule debounces rapid changes and notifies callbacks once
func (iw *InputWatcher) schedule(path string) {
	iw.mu.Lock()
	defer iw.mu.Unlock()

	iw.pending[path] = true
	if iw.debounceTimer != nil {
		iw.debounceTimer.Stop()
	}
	iw.debounceTimer = time.AfterFunc(iw.debouncePeriod, iw.fire)
}

func (iw *InputWatcher) fire() {
	iw.mu.Lock()
	changed := make([]string, 0, len(iw.pending))
	for p := range iw.pending {
		changed = append(changed, p)
	}
	iw.pending = make(map[string]bool)
	callbacks := make([]ChangeCallback, len(iw.callbacks))
	copy(callbacks, iw.callbacks)
	iw.mu.Unlock()

	for _, path := range changed {
		for _, callback := range callbacks {
			// Keep notifying the remaining callbacks when one fails
			if err := callback(path); err != nil {
				iw.logger.Warnw("change callback failed",
					logger.FieldFile, path,
					logger.FieldError, err)
			}
		}
	}
}

// Stop stops watching for changes
func (iw *InputWatcher) Stop() error {
	iw.mu.Lock()
	if iw.debounceTimer != nil {
		iw.debounceTimer.Stop()
	}
	iw.mu.Unlock()
	return iw.watcher.Close()
}
