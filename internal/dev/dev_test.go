package dev

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/pkg/docs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// touch moves the modification time forward so coarse file system clocks
// still see a change.
func touch(t *testing.T, path string) {
	t.Helper()
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
}

func startWatcher(t *testing.T, w *Watcher) <-chan []Change {
	t.Helper()
	changes := make(chan []Change, 10)
	w.OnChange(func(c []Change) { changes <- c })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Start(ctx)

	deadline := time.Now().Add(time.Second)
	for !w.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	// Let the initial scan finish.
	time.Sleep(50 * time.Millisecond)
	return changes
}

func waitChanges(t *testing.T, changes <-chan []Change) []Change {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
		return nil
	}
}

func TestWatcherModifiedPage(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.md")
	writeFile(t, page, "# Home\n")

	w := NewWatcher(WatcherConfig{Paths: []string{dir}, Interval: 20 * time.Millisecond})
	changes := startWatcher(t, w)

	writeFile(t, page, "# Home, edited\n")
	touch(t, page)

	got := waitChanges(t, changes)
	if len(got) != 1 {
		t.Fatalf("changes = %+v, want one", got)
	}
	if got[0].Path != page || got[0].Type != ChangePage || got[0].Removed {
		t.Errorf("change = %+v", got[0])
	}
	w.Stop()
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
}

func TestWatcherNewAndRemovedFiles(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.md")
	writeFile(t, old, "# Old\n")

	w := NewWatcher(WatcherConfig{Paths: []string{dir}, Interval: 20 * time.Millisecond})
	changes := startWatcher(t, w)

	if err := os.Remove(old); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "site.yaml"), "pages: []\n")

	seen := map[string]Change{}
	deadline := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case batch := <-changes:
			for _, c := range batch {
				seen[filepath.Base(c.Path)] = c
			}
		case <-deadline:
			t.Fatalf("timeout, saw %+v", seen)
		}
	}

	if c := seen["old.md"]; !c.Removed || c.Type != ChangePage {
		t.Errorf("old.md change = %+v, want removed page", c)
	}
	if c := seen["site.yaml"]; c.Removed || c.Type != ChangeManifest {
		t.Errorf("site.yaml change = %+v, want manifest", c)
	}
}

func TestWatcherIgnore(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(WatcherConfig{
		Paths:  []string{dir},
		Ignore: []string{"*.swp", "drafts", "assets/generated"},
	})

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(dir, "index.md.swp"), true},
		{filepath.Join(dir, "drafts", "next.md"), true},
		{filepath.Join(dir, "assets", "generated", "x.png"), true},
		{filepath.Join(dir, "assets", "logo.png"), false},
		{filepath.Join(dir, "overdrafts.md"), false},
		{filepath.Join(dir, "index.md"), false},
	}
	for _, tt := range tests {
		if got := w.shouldIgnore(tt.path); got != tt.want {
			t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherDefaultIgnore(t *testing.T) {
	w := NewWatcher(WatcherConfig{})
	if !w.shouldIgnore(filepath.Join("content", ".git", "HEAD")) {
		t.Error("should ignore .git")
	}
	if !w.shouldIgnore(filepath.Join("content", "page.md~")) {
		t.Error("should ignore editor backups")
	}
}

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		path string
		want ChangeType
	}{
		{"content/index.md", ChangePage},
		{"content/Guide.MARKDOWN", ChangePage},
		{"content/site.yaml", ChangeManifest},
		{"content/site.yml", ChangeManifest},
		{"a11ydocs.json", ChangeConfig},
		{"content/logo.png", ChangeOther},
	}
	for _, tt := range tests {
		if got := classifyChange(tt.path); got != tt.want {
			t.Errorf("classifyChange(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
	if ChangeManifest.String() != "manifest" || ChangeOther.String() != "other" {
		t.Error("unexpected ChangeType names")
	}
}

type swapper struct {
	mu    sync.Mutex
	sites []*docs.Site
	ch    chan *docs.Site
}

func newSwapper() *swapper {
	return &swapper{ch: make(chan *docs.Site, 10)}
}

func (s *swapper) SetSite(_ context.Context, site *docs.Site) {
	s.mu.Lock()
	s.sites = append(s.sites, site)
	s.mu.Unlock()
	s.ch <- site
}

func (s *swapper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sites)
}

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	content := filepath.Join(t.TempDir(), "content")
	writeFile(t, filepath.Join(content, "site.yaml"), "pages:\n  - title: Home\n    path: /\n    file: index.md\n")
	writeFile(t, filepath.Join(content, "index.md"), "# Home\n")

	cfg := config.New()
	cfg.Content.Dir = content
	return cfg, content
}

func TestReloadSwapsSite(t *testing.T) {
	cfg, content := testConfig(t)
	target := newSwapper()
	r := NewReloader(cfg, target)

	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if target.count() != 1 || r.Reloads() != 1 {
		t.Fatalf("swaps = %d, reloads = %d; want 1, 1", target.count(), r.Reloads())
	}

	// A manifest pointing at a missing file keeps the previous site.
	writeFile(t, filepath.Join(content, "site.yaml"), "pages:\n  - path: /gone\n    file: gone.md\n")
	if err := r.Reload(context.Background()); err == nil {
		t.Fatal("Reload() should fail for a broken manifest")
	}
	if target.count() != 1 {
		t.Errorf("swaps = %d after failed reload, want 1", target.count())
	}
	if r.LastError() == nil {
		t.Error("LastError() = nil after failed reload")
	}
}

func TestReloaderRunReloadsOnChange(t *testing.T) {
	cfg, content := testConfig(t)
	target := newSwapper()

	var hookCalls int
	var hookMu sync.Mutex
	r := NewReloader(cfg, target,
		WithInterval(20*time.Millisecond),
		WithReloadHook(func(*docs.Site, error) {
			hookMu.Lock()
			hookCalls++
			hookMu.Unlock()
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	time.Sleep(80 * time.Millisecond)

	page := filepath.Join(content, "guide.md")
	writeFile(t, page, "# Guide\n")

	select {
	case site := <-target.ch:
		if len(site.Paths()) != 1 {
			t.Errorf("reloaded site has %d pages, want 1 (manifest lists one)", len(site.Paths()))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
	hookMu.Lock()
	defer hookMu.Unlock()
	if hookCalls == 0 {
		t.Error("reload hook not called")
	}
}

func TestConfigChangeDoesNotReload(t *testing.T) {
	cfg, _ := testConfig(t)
	target := newSwapper()
	r := NewReloader(cfg, target)

	r.handle(context.Background(), []Change{{Path: "a11ydocs.json", Type: ChangeConfig}})
	if target.count() != 0 {
		t.Errorf("config change swapped %d sites, want 0", target.count())
	}
}

func TestWithOpener(t *testing.T) {
	cfg, _ := testConfig(t)
	target := newSwapper()
	opened := 0
	r := NewReloader(cfg, target, WithOpener(func() (*docs.Site, error) {
		opened++
		return docs.Open(cfg.ContentPath(), cfg.Content.Manifest)
	}))

	r.handle(context.Background(), []Change{{Path: "index.md", Type: ChangePage}, {Path: "site.yaml", Type: ChangeManifest}})
	if opened != 1 {
		t.Errorf("opener called %d times for one batch, want 1", opened)
	}
}

func TestWatchPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.ConfigFileName), `{"name": "Docs"}`)
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	got := WatchPaths(cfg)
	want := []string{filepath.Join(dir, "content"), filepath.Join(dir, config.ConfigFileName)}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("WatchPaths() = %v, want %v", got, want)
	}

	if got := WatchPaths(config.New()); len(got) != 1 {
		t.Errorf("WatchPaths(defaults) = %v, want content dir only", got)
	}
}
