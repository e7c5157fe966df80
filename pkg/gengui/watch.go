package gengui

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/gengui/pkg/errors"
	"github.com/odvcencio/gengui/pkg/observability"
)

// ReloadFunc is called after the watched document changes. Its error is
// logged and counted; watching continues either way.
type ReloadFunc func(ctx context.Context, path string) error

// Watch calls fn each time the document at path is written, created or
// renamed into place. Bursts of events within debounce collapse into one
// call. Watch blocks until ctx ends and then returns nil.
//
// The directory is watched rather than the file so that editors that save
// by rename keep triggering reloads.
func Watch(ctx context.Context, path string, debounce time.Duration, logger *observability.Logger, fn ReloadFunc) error {
	if logger == nil {
		logger = observability.Nop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot resolve document path").WithContext("path", path)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "cannot create file watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot watch document directory").WithContext("path", path)
	}
	logger = logger.WithDocument(abs)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)
		case <-timer.C:
			err := fn(ctx, abs)
			result := observability.ResultSuccess
			if err != nil {
				result = observability.ResultError
			}
			observability.Reloads.WithLabelValues(result).Inc()
			logger.DocumentReloaded(abs, err)
		}
	}
}
