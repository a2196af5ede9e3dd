package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/internal/dev"
	"github.com/a11ykit/a11ydocs/internal/errors"
	"github.com/a11ykit/a11ydocs/pkg/cache"
	"github.com/a11ykit/a11ydocs/pkg/docs"
	"github.com/a11ykit/a11ydocs/pkg/middleware"
	"github.com/a11ykit/a11ydocs/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		noCache bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site with live widgets",
		Long: `Serve the documentation site over HTTP.

Each page opens a WebSocket session; widget clicks are applied on the
server and the new widget content is sent back to the browser.

Examples:
  a11ydocs serve
  a11ydocs serve --addr :8080
  a11ydocs serve --watch
  A11YDOCS_REDIS_ADDR=localhost:6379 a11ydocs serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, noCache, watch)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from a11ydocs.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the page cache")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload content when files change")

	return cmd
}

func runServe(addr string, noCache, watch bool) error {
	cfg, site, err := loadProject()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Address = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pages := pageCache(ctx, cfg, noCache)

	srv := server.New(cfg, site,
		server.WithCache(pages),
		server.WithMiddleware(
			middleware.OpenTelemetry(),
			middleware.Prometheus(),
		),
	)

	if watch {
		reloader := dev.NewReloader(cfg, srv, dev.WithReloadHook(reportReload))
		go func() {
			if err := reloader.Run(ctx); err != nil {
				slog.Error("content watcher stopped", "error", err)
			}
		}()
		info("Watching %s", cfg.ContentPath())
	}

	success("Serving %d pages", len(site.Paths()))
	info("http://%s/", cfg.Server.Address)
	return srv.Run(ctx)
}

func reportReload(site *docs.Site, err error) {
	if err != nil {
		warn("Reload failed, still serving the previous content")
		errors.Fprint(os.Stderr, err)
		return
	}
	success("Reloaded %d pages", len(site.Paths()))
}

// pageCache picks Redis when configured and reachable, otherwise memory.
func pageCache(ctx context.Context, cfg *config.Config, disabled bool) cache.PageCache {
	if disabled || !cfg.Cache.Enabled {
		return cache.Nop{}
	}
	if cfg.Cache.RedisAddr == "" {
		return cache.NewMemoryCache(cfg.CacheTTL())
	}

	client, err := cache.Connect(ctx, cfg.Cache.RedisAddr)
	if err != nil {
		warn("Redis unavailable, using in-memory page cache")
		slog.Warn("redis connect failed", "addr", cfg.Cache.RedisAddr, "error", err)
		return cache.NewMemoryCache(cfg.CacheTTL())
	}
	return cache.NewRedisCache(client, cfg.CacheTTL())
}
