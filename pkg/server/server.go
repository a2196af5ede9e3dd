package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/pkg/cache"
	"github.com/a11ykit/a11ydocs/pkg/docs"
	"github.com/a11ykit/a11ydocs/pkg/middleware"
)

// Server is the HTTP and WebSocket server for a documentation site.
type Server struct {
	config *config.Config
	cache  cache.PageCache

	siteMu sync.RWMutex
	site   *docs.Site

	// generation counts SetSite calls and prefixes page cache keys.
	generation uint64

	router   chi.Router
	upgrader websocket.Upgrader

	// Event middleware, outermost first.
	middleware []middleware.Middleware
	gatherer   prometheus.Gatherer

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithCache sets the page cache. The default caches nothing.
func WithCache(c cache.PageCache) Option {
	return func(s *Server) { s.cache = c }
}

// WithMiddleware appends event middleware. The first one added is the
// outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(s *Server) { s.middleware = append(s.middleware, mws...) }
}

// WithGatherer sets the registry exposed on /metrics. The default is the
// global Prometheus registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// New creates a server for site. A nil cfg uses config defaults.
func New(cfg *config.Config, site *docs.Site, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.New()
	}
	s := &Server{
		config:   cfg,
		site:     site,
		cache:    cache.Nop{},
		gatherer: prometheus.DefaultGatherer,
		sessions: make(map[string]*Session),
		logger:   slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every live session and then stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout())
	defer cancel()

	s.mu.Lock()
	s.closed = true
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Site returns the site currently being served.
func (s *Server) Site() *docs.Site {
	site, _ := s.currentSite()
	return site
}

func (s *Server) currentSite() (*docs.Site, uint64) {
	s.siteMu.RLock()
	defer s.siteMu.RUnlock()
	return s.site, s.generation
}

// SetSite swaps the served site and drops every cached page. Pages rendered
// from the previous site after the swap are cached under the old generation
// and never served. Open live sessions keep the widgets they mounted.
func (s *Server) SetSite(ctx context.Context, site *docs.Site) {
	s.siteMu.Lock()
	s.site = site
	s.generation++
	s.siteMu.Unlock()

	s.cache.InvalidateAll(ctx)
	s.logger.Info("site replaced", "pages", len(site.Paths()))
}

// SessionCount returns the number of open live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) addSession(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.sessions[sess.ID()] = sess
	middleware.RecordSessionStart()
	return true
}

func (s *Server) removeSession(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID()]; ok {
		delete(s.sessions, sess.ID())
		middleware.RecordSessionEnd()
	}
}

// checkOrigin allows same-origin requests, requests without an Origin
// header and the configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
