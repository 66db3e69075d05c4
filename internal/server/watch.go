package server

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/usecase"
	"github.com/Elgenzay/kava.elg.gg/internal/service"
)

const configDebounce = 500 * time.Millisecond

// ConfigWatcher reloads the state cache when the configuration document
// changes on disk. A document that fails to load is reported and the
// running snapshot is kept.
type ConfigWatcher struct {
	path       string
	stateCache *usecase.StateCache
	reporter   service.Reporter
	debounce   time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewConfigWatcher creates a watcher for path
func NewConfigWatcher(path string, stateCache *usecase.StateCache, reporter service.Reporter) *ConfigWatcher {
	return &ConfigWatcher{
		path:       path,
		stateCache: stateCache,
		reporter:   reporter,
		debounce:   configDebounce,
	}
}

// Run watches until ctx is cancelled. The directory is watched so editors
// that replace the file by rename are seen.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	fmt.Printf("[Watch] Watching %s\n", w.path)

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.schedule(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("[Watch] Watcher error: %v\n", err)
		}
	}
}

func (w *ConfigWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(w.path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *ConfigWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.Reload(ctx)
	})
}

func (w *ConfigWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Reload reloads the document into the state cache, keeping the cached day
func (w *ConfigWatcher) Reload(ctx context.Context) {
	state, err := w.stateCache.Reload(ctx)
	if err != nil {
		w.reporter.LogError(ctx, fmt.Sprintf("Config change rejected, keeping previous config: %v", err))
		return
	}
	w.reporter.LogMessage(ctx, fmt.Sprintf("Config reloaded: %d reaction role groups", len(state.Config.Groups)))
}
