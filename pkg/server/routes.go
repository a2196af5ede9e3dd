package server

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/a11ykit/a11ydocs/internal/errors"
	"github.com/a11ykit/a11ydocs/pkg/docs"
)

//go:embed assets/client.js
var clientJS []byte

// ClientJS returns the thin client script served at docs.ClientScriptPath.
// Static builds write the same bytes.
func ClientJS() []byte {
	out := make([]byte, len(clientJS))
	copy(out, clientJS)
	return out
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/docs/*", s.handlePage)
	r.Get(docs.LivePath, s.handleLive)
	r.Get(docs.ClientScriptPath, handleClientJS)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", s.handleHealth)
	return r
}

// handlePage serves a rendered page, from the cache when possible.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	site, gen := s.currentSite()
	page, err := site.Page(r.URL.Path)
	if err != nil {
		if errors.HasCode(err, "E202") {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("page lookup failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	key := cacheKey(gen, page.Path)
	body, ok := s.cache.Get(ctx, key)
	if ok {
		w.Header().Set("X-Cache", "HIT")
	} else {
		doc, err := site.RenderPage(page.Path)
		if err != nil {
			s.logger.Error("render failed", "path", page.Path, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		body = []byte(doc.HTML)
		s.cache.Set(ctx, key, body)
		w.Header().Set("X-Cache", "MISS")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// cacheKey ties a cached page to the site generation that rendered it.
func cacheKey(gen uint64, path string) string {
	return strconv.FormatUint(gen, 10) + ":" + path
}

func handleClientJS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(clientJS)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.SessionCount(),
	})
}

// requestLogger logs each request once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		level := slog.LevelDebug
		if ww.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		s.logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
