package docs

import (
	"log/slog"
	"path"
	"strings"

	"github.com/a11ykit/a11ydocs/internal/errors"
	"github.com/a11ykit/a11ydocs/pkg/render"
	"github.com/a11ykit/a11ydocs/pkg/webcomponents"
	"github.com/a11ykit/a11ydocs/pkg/widget"
)

// Site is a loaded documentation site. It is safe for concurrent use:
// pages are read-only after Open and every render mounts fresh widgets.
type Site struct {
	dir      string
	manifest *Manifest
	pages    []*Page
	byPath   map[string]*Page
	logger   *slog.Logger
}

// Document is a fully rendered page.
type Document struct {
	Path    string
	Title   string
	HTML    string
	Widgets []*widget.Widget
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger used while loading.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) { s.logger = l }
}

// Open loads the manifest and every page under dir. The component library
// is registered here since every page renders its primitives.
func Open(dir, manifestName string, opts ...Option) (*Site, error) {
	s := &Site{
		dir:    dir,
		byPath: make(map[string]*Page),
		logger: slog.Default().With("component", "docs"),
	}
	for _, opt := range opts {
		opt(s)
	}

	webcomponents.RegisterAll()

	m, err := LoadManifest(dir, manifestName)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(dir); err != nil {
		return nil, err
	}
	s.manifest = m

	for i, e := range m.Pages {
		p, err := LoadPage(dir, e)
		if err != nil {
			return nil, err
		}
		m.Pages[i].Title = p.Title
		s.pages = append(s.pages, p)
		s.byPath[p.Path] = p
	}

	s.logger.Info("site loaded", "dir", dir, "pages", len(s.pages))
	return s, nil
}

// Manifest returns the site manifest.
func (s *Site) Manifest() *Manifest { return s.manifest }

// Paths returns every page path in navigation order.
func (s *Site) Paths() []string {
	paths := make([]string, len(s.pages))
	for i, p := range s.pages {
		paths[i] = p.Path
	}
	return paths
}

// Page returns the page served at urlPath.
func (s *Site) Page(urlPath string) (*Page, error) {
	p, ok := s.byPath[normalize(urlPath)]
	if !ok {
		return nil, errors.New("E202").WithDetailf("No page is served at %q.", urlPath)
	}
	return p, nil
}

// RenderPage renders the full HTML document for urlPath for a live server.
func (s *Site) RenderPage(urlPath string) (*Document, error) {
	return s.render(urlPath, true)
}

// RenderStatic renders urlPath for a static export. Widgets carry both of
// their state snapshots and the page does not open a live session.
func (s *Site) RenderStatic(urlPath string) (*Document, error) {
	return s.render(urlPath, false)
}

func (s *Site) render(urlPath string, live bool) (*Document, error) {
	p, err := s.Page(urlPath)
	if err != nil {
		return nil, err
	}

	body, widgets, err := Mount(p.Body, MountOptions{Snapshots: !live})
	if err != nil {
		return nil, errors.New("E203").Wrap(err).WithDetailf("Mounting widgets on %s failed.", p.File)
	}

	return &Document{
		Path:    p.Path,
		Title:   p.Title,
		HTML:    render.String(layout(s.manifest, p, body, live)),
		Widgets: widgets,
	}, nil
}

// Widgets mounts a fresh set of widgets for urlPath. Ids match the ones in
// the rendered document.
func (s *Site) Widgets(urlPath string) ([]*widget.Widget, error) {
	p, err := s.Page(urlPath)
	if err != nil {
		return nil, err
	}
	_, widgets, err := Mount(p.Body, MountOptions{})
	if err != nil {
		return nil, errors.New("E203").Wrap(err)
	}
	return widgets, nil
}

// normalize maps request paths onto manifest paths.
func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = strings.TrimSuffix(path.Clean(p), "/index.html")
	if p == "" {
		return "/"
	}
	return p
}
