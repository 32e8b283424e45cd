package shelldisplay

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher watches a configuration file and re-applies the theme
// context to a controller whenever the file changes. Reload errors are
// logged and otherwise ignored; the render path is never interrupted by a
// bad config write.
type ConfigWatcher struct {
	path       string
	controller *Controller
	watcher    *fsnotify.Watcher
	done       chan struct{}
	closeOnce  sync.Once
}

// WatchConfig starts watching path for writes. The parent directory is
// watched rather than the file itself, so editors that replace the file
// (write-temp-then-rename) keep triggering reloads.
func WatchConfig(path string, c *Controller) (*ConfigWatcher, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil controller", ErrInvalidParameter)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shelldisplay: watch config: %w", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("shelldisplay: watch config: %w", err)
	}

	w := &ConfigWatcher{
		path:       path,
		controller: c,
		watcher:    fsw,
		done:       make(chan struct{}),
	}

	go w.loop()
	return w, nil
}

// loop consumes watcher events until Close is called.
func (w *ConfigWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.controller.logger.Warn("config watch error", "err", err)
		}
	}
}

// reload re-reads the config file and applies the theme context.
func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.controller.logger.Warn("config reload failed", "path", w.path, "err", err)
		return
	}

	if err := w.controller.SetThemeContext(cfg.Theme, cfg.symbolMode()); err != nil {
		w.controller.logger.Warn("theme update failed", "theme", cfg.Theme, "err", err)
		return
	}

	w.controller.logger.Debug("config reloaded", "path", w.path, "theme", cfg.Theme)
}

// Close stops the watcher and releases its resources. Safe to call more
// than once.
func (w *ConfigWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
