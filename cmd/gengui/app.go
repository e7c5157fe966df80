package main

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/odvcencio/gengui/pkg/config"
	"github.com/odvcencio/gengui/pkg/gengui"
	"github.com/odvcencio/gengui/pkg/observability"
)

// app runs one document. Every reload builds a fresh session and window;
// the previous tree is discarded, never patched.
type app struct {
	cfg    *config.Config
	logger *observability.Logger
	path   string
	title  string

	mu        sync.Mutex
	sessionID string
	builds    atomic.Int64
}

func newApp(cfg *config.Config, logger *observability.Logger, path, title string) *app {
	return &app{cfg: cfg, logger: logger, path: path, title: title}
}

// status feeds the /healthz payload.
func (a *app) status() map[string]any {
	a.mu.Lock()
	id := a.sessionID
	a.mu.Unlock()
	return map[string]any{
		"document": a.path,
		"session":  id,
		"builds":   a.builds.Load(),
		"version":  version,
	}
}

func (a *app) run(ctx context.Context) error {
	reloads := make(chan struct{}, 1)
	if a.cfg.Watch.Enabled {
		go func() {
			err := gengui.Watch(ctx, a.path, a.cfg.Watch.Debounce, a.logger, func(_ context.Context, path string) error {
				if err := validate(path); err != nil {
					return err
				}
				select {
				case reloads <- struct{}{}:
				default:
				}
				return nil
			})
			if err != nil {
				a.logger.Error("document watch stopped", "error", err)
			}
		}()
	}

	session, err := a.build(ctx)
	if err != nil {
		return err
	}
	for {
		reloaded, err := a.loop(ctx, session, reloads)
		if err != nil || !reloaded {
			return err
		}
		// A document that parses can still fail to build. Keep waiting for
		// a save that works instead of exiting the watch.
		for {
			session, err = a.build(ctx)
			if err == nil {
				break
			}
			a.logger.Warn("rebuild failed, waiting for the next change", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-reloads:
			}
		}
	}
}

func (a *app) build(ctx context.Context) (*gengui.Session, error) {
	session := gengui.NewSession(a.cfg, gengui.WithSessionLogger(a.logger))
	if _, err := session.Initialize(ctx, a.path, a.title); err != nil {
		return nil, err
	}
	a.builds.Add(1)
	a.mu.Lock()
	a.sessionID = session.ID()
	a.mu.Unlock()
	return session, nil
}

// loop runs the session's window until the user quits, ctx ends or a reload
// arrives. It reports whether a reload ended it.
func (a *app) loop(ctx context.Context, session *gengui.Session, reloads <-chan struct{}) (bool, error) {
	b, err := newBackendFn(a.cfg)
	if err != nil {
		return false, err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- session.Mainloop(loopCtx, b) }()

	select {
	case err := <-done:
		return false, quietCancel(ctx, err)
	case <-reloads:
		cancel()
		<-done
		return true, nil
	}
}

// quietCancel treats the end of ctx as a normal exit.
func quietCancel(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// validate parses the document so a broken save does not tear down the
// running window.
func validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = gengui.Parse(f, gengui.FormatForPath(path))
	return err
}
