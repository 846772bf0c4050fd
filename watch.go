package flog

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Quiet period after the last file event before reloading
const watchDebounce = 100 * time.Millisecond

// WatchConfigFile re-applies the TOML file at path whenever it changes, until
// ctx is cancelled. The directory is watched rather than the file so that
// editors replacing the file by rename are seen. onReload, if non-nil, is
// called after each reload attempt with its result.
func (l *Logger) WatchConfigFile(ctx context.Context, path string, onReload func(error)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmtErrorf("failed to resolve config path '%s': %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmtErrorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(absPath)
	if err := fsWatcher.Add(dir); err != nil {
		return errors.Join(fmtErrorf("failed to watch directory %s: %w", dir, err), fsWatcher.Close())
	}

	go l.watchLoop(ctx, fsWatcher, absPath, onReload)
	return nil
}

func (l *Logger) watchLoop(ctx context.Context, fsWatcher *fsnotify.Watcher, path string, onReload func(error)) {
	var mu sync.Mutex
	var timer *time.Timer

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		_ = fsWatcher.Close()
	}()

	reload := func() {
		if ctx.Err() != nil {
			return
		}
		err := l.reloadConfigFile(path)
		if err != nil {
			l.internalLog("config reload from '%s' failed: %v\n", path, err)
		}
		if onReload != nil {
			onReload(err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, reload)
			mu.Unlock()

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			l.internalLog("config watch error: %v\n", err)
		}
	}
}

func (l *Logger) reloadConfigFile(path string) error {
	cfg, err := NewConfigFromFile(path)
	if err != nil {
		return err
	}
	return l.ApplyConfig(cfg)
}
