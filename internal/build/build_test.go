package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/internal/errors"
	"github.com/a11ykit/a11ydocs/pkg/docs"
)

func testSite(t *testing.T) *docs.Site {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"site.yaml": `title: A11y docs
pages:
  - title: Home
    path: /
    file: index.md
  - title: Visibility
    path: /docs/visibility
    file: visibility.md
`,
		"index.md":      "# Welcome\n",
		"visibility.md": "# Visibility\n\n<visibility-widget option-name=\"Visibility\" classes-to-toggle=\"invisible\"></visibility-widget>\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	site, err := docs.Open(dir, "site.yaml")
	if err != nil {
		t.Fatalf("docs.Open() error = %v", err)
	}
	return site
}

func TestNewUsesConfiguredOutput(t *testing.T) {
	cfg := config.New()
	cfg.Build.Output = "public"

	b := New(cfg, nil, Options{})
	if got := filepath.Base(b.Output()); got != "public" {
		t.Errorf("Output() = %q, want .../public", b.Output())
	}

	b = New(cfg, nil, Options{Output: "/tmp/override"})
	if b.Output() != "/tmp/override" {
		t.Errorf("Output() = %q, want /tmp/override", b.Output())
	}
}

func TestPageFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "index.html"},
		{"", "index.html"},
		{"/docs/visibility", "docs/visibility/index.html"},
		{"/docs/visibility/", "docs/visibility/index.html"},
		{"/docs/../about", "about/index.html"},
	}
	for _, tt := range tests {
		if got := PageFile(tt.path); got != tt.want {
			t.Errorf("PageFile(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestBuild(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dist")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(out, "stale.html")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	var steps []string
	b := New(config.New(), testSite(t), Options{
		Output:     out,
		OnProgress: func(step string) { steps = append(steps, step) },
	})
	result, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(result.Pages) != 2 || result.Widgets != 1 {
		t.Errorf("Pages = %v, Widgets = %d", result.Pages, result.Widgets)
	}
	if result.ClientSize == 0 {
		t.Error("ClientSize = 0")
	}
	if len(steps) == 0 {
		t.Error("OnProgress never called")
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file survived the build")
	}

	page, err := os.ReadFile(filepath.Join(out, "docs", "visibility", "index.html"))
	if err != nil {
		t.Fatalf("page not written: %v", err)
	}
	for _, want := range []string{`data-static="true"`, `<template data-state="on">`, "Turn `Visibility` off"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("static page lacks %q", want)
		}
	}

	if _, err := os.Stat(filepath.Join(out, "assets", "client.js")); err != nil {
		t.Errorf("client script not written: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, ManifestFile))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	var manifest map[string]string
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if manifest["/"] != "index.html" || manifest["/docs/visibility"] != "docs/visibility/index.html" {
		t.Errorf("manifest = %v", manifest)
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New(config.New(), testSite(t), Options{Output: t.TempDir()})
	if _, err := b.Build(ctx); err != context.Canceled {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestBuildUnwritableOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	b := New(config.New(), testSite(t), Options{Output: filepath.Join(file, "dist")})
	_, err := b.Build(context.Background())
	if !errors.HasCode(err, "E402") {
		t.Errorf("Build() error = %v, want E402", err)
	}
}

func TestClean(t *testing.T) {
	out := t.TempDir()
	b := New(config.New(), testSite(t), Options{Output: out})
	if _, err := b.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := b.Clean(); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output directory still exists")
	}
}
