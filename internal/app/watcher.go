package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceInterval collapses rapid event bursts; editors often trigger
// multiple writes per save.
const debounceInterval = 100 * time.Millisecond

// DocumentWatcher monitors one open Markdown document and invokes a
// callback with the file path after each save.
type DocumentWatcher struct {
	fw      *fsnotify.Watcher
	log     *zap.Logger
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewDocumentWatcher creates a watcher; call Watch to start it.
func NewDocumentWatcher(log *zap.Logger) (*DocumentWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &DocumentWatcher{
		fw:   fw,
		log:  log,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring documentPath. The parent directory is watched
// rather than the file itself: many editors replace the file on save, which
// would otherwise drop the watch.
func (w *DocumentWatcher) Watch(documentPath string, onChange func(path string)) error {
	absPath, err := filepath.Abs(documentPath)
	if err != nil {
		return err
	}
	if err := w.fw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", absPath, err)
	}

	var dmu sync.Mutex
	lastEvent := time.Time{}

	go func() {
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if event.Name != absPath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				dmu.Lock()
				now := time.Now()
				if now.Sub(lastEvent) < debounceInterval {
					dmu.Unlock()
					continue
				}
				lastEvent = now
				dmu.Unlock()

				w.log.Debug("document changed", zap.String("path", absPath))
				onChange(absPath)
			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				w.log.Warn("watch error", zap.Error(err))
			}
		}
	}()
	return nil
}

// Stop terminates the watcher. Safe to call multiple times.
func (w *DocumentWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.done)
	w.fw.Close()
}
