package dev

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/pkg/docs"
)

// SiteSwapper receives reloaded sites. *server.Server implements it.
type SiteSwapper interface {
	SetSite(ctx context.Context, site *docs.Site)
}

// Reloader reopens the site whenever its content changes.
type Reloader struct {
	cfg     *config.Config
	target  SiteSwapper
	watcher *Watcher
	open    func() (*docs.Site, error)

	mu        sync.Mutex
	reloads   int
	lastError error

	onReload func(*docs.Site, error)
	logger   *slog.Logger
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithInterval sets how often the content is polled.
func WithInterval(d time.Duration) ReloaderOption {
	return func(r *Reloader) {
		if d > 0 {
			r.watcher.config.Interval = d
		}
	}
}

// WithOpener replaces how the site is loaded.
func WithOpener(open func() (*docs.Site, error)) ReloaderOption {
	return func(r *Reloader) { r.open = open }
}

// WithReloadHook sets a function called after every reload attempt.
func WithReloadHook(fn func(*docs.Site, error)) ReloaderOption {
	return func(r *Reloader) { r.onReload = fn }
}

// WithReloaderLogger sets the logger.
func WithReloaderLogger(l *slog.Logger) ReloaderOption {
	return func(r *Reloader) { r.logger = l }
}

// NewReloader creates a reloader that swaps sites into target.
func NewReloader(cfg *config.Config, target SiteSwapper, opts ...ReloaderOption) *Reloader {
	r := &Reloader{
		cfg:     cfg,
		target:  target,
		watcher: NewWatcher(WatcherConfig{Paths: WatchPaths(cfg)}),
		logger:  slog.Default().With("component", "dev"),
	}
	r.open = func() (*docs.Site, error) {
		return docs.Open(cfg.ContentPath(), cfg.Content.Manifest, docs.WithLogger(r.logger))
	}
	for _, opt := range opts {
		opt(r)
	}
	r.watcher.OnChange(func(changes []Change) { r.handle(context.Background(), changes) })
	return r
}

// Run watches until ctx is done.
func (r *Reloader) Run(ctx context.Context) error {
	r.logger.Info("watching content", "paths", r.watcher.config.Paths)
	err := r.watcher.Start(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

// Stop stops watching.
func (r *Reloader) Stop() { r.watcher.Stop() }

// Reloads returns how many sites have been swapped in.
func (r *Reloader) Reloads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reloads
}

// LastError returns the error of the most recent reload attempt, or nil.
func (r *Reloader) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}

// Reload opens the site and swaps it in. On error the current site stays.
func (r *Reloader) Reload(ctx context.Context) error {
	site, err := r.open()

	r.mu.Lock()
	r.lastError = err
	if err == nil {
		r.reloads++
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("reload failed, keeping previous site", "error", err)
	} else {
		r.target.SetSite(ctx, site)
	}
	if r.onReload != nil {
		r.onReload(site, err)
	}
	return err
}

func (r *Reloader) handle(ctx context.Context, changes []Change) {
	reload := false
	for _, c := range changes {
		r.logger.Debug("file changed", "path", c.Path, "type", c.Type.String(), "removed", c.Removed)
		switch c.Type {
		case ChangeConfig:
			r.logger.Warn("config changed, restart to apply", "path", c.Path)
		default:
			reload = true
		}
	}
	if reload {
		_ = r.Reload(ctx)
	}
}

// WatchPaths returns the content directory and, when the config came from
// a file, that file.
func WatchPaths(cfg *config.Config) []string {
	paths := []string{filepath.Clean(cfg.ContentPath())}
	if p := cfg.Path(); p != "" {
		paths = append(paths, filepath.Clean(p))
	}
	return paths
}

