package build

import (
	"context"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/internal/errors"
	"github.com/a11ykit/a11ydocs/pkg/docs"
	"github.com/a11ykit/a11ydocs/pkg/server"
)

// ManifestFile is the name of the page manifest written to the output root.
const ManifestFile = "manifest.json"

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Output is the output directory.
	Output string

	// Pages lists the written page files relative to Output.
	Pages []string

	// Widgets is the number of widgets mounted across all pages.
	Widgets int

	// Manifest maps page paths to page files.
	Manifest map[string]string

	// ClientSize is the size of the thin client in bytes.
	ClientSize int64
}

// Options configures the builder.
type Options struct {
	// Output overrides the configured output directory.
	Output string

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder renders a site into a directory.
type Builder struct {
	config  *config.Config
	site    *docs.Site
	options Options
}

// New creates a new builder.
func New(cfg *config.Config, site *docs.Site, options Options) *Builder {
	if options.Output == "" {
		options.Output = cfg.OutputPath()
	}
	return &Builder{
		config:  cfg,
		site:    site,
		options: options,
	}
}

// Output returns the output directory.
func (b *Builder) Output() string {
	return b.options.Output
}

// Build renders every page. The output directory is emptied first.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	outputDir := b.options.Output
	result := &Result{
		Output:   outputDir,
		Manifest: make(map[string]string),
	}

	b.progress("Cleaning output directory...")
	if err := os.RemoveAll(outputDir); err != nil {
		return nil, outputError(outputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, outputError(outputDir, err)
	}

	b.progress("Rendering pages...")
	for _, p := range b.site.Paths() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := b.site.RenderStatic(p)
		if err != nil {
			return nil, err
		}
		rel := PageFile(p)
		if err := writeFile(outputDir, rel, []byte(doc.HTML)); err != nil {
			return nil, err
		}
		result.Pages = append(result.Pages, rel)
		result.Widgets += len(doc.Widgets)
		result.Manifest[p] = rel
	}

	b.progress("Writing thin client...")
	client := server.ClientJS()
	if err := writeFile(outputDir, strings.TrimPrefix(docs.ClientScriptPath, "/"), client); err != nil {
		return nil, err
	}
	result.ClientSize = int64(len(client))

	b.progress("Writing manifest...")
	if err := b.writeManifest(outputDir, result.Manifest); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// PageFile returns the file, relative to the output root, that serves the
// page at urlPath.
func PageFile(urlPath string) string {
	p := strings.Trim(path.Clean("/"+urlPath), "/")
	if p == "" {
		return "index.html"
	}
	return p + "/index.html"
}

func writeFile(root, rel string, data []byte) error {
	dst := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return outputError(root, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return outputError(root, err)
	}
	return nil
}

// writeManifest writes the page manifest.
func (b *Builder) writeManifest(outputDir string, manifest map[string]string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(outputDir, ManifestFile, data)
}

// progress reports build progress.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// Clean removes the build output directory.
func (b *Builder) Clean() error {
	return os.RemoveAll(b.options.Output)
}

func outputError(dir string, err error) error {
	return errors.New("E402").Wrap(err).WithDetailf("Cannot write to %s.", dir)
}
