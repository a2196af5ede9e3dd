package templates

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// SiteName is the title shown in the page header.
	SiteName string

	// Description is a short site description.
	Description string

	// Bucket, when set, is written to the publish section.
	Bucket string
}

// Template represents a starter site.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of slash-separated relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"hiding":  hidingTemplate(),
}

var funcs = template.FuncMap{
	"json": func(s string) (string, error) {
		b, err := json.Marshal(s)
		return string(b), err
	},
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E501").
			WithDetailf("Template %q not found.", name).
			WithSuggestion("Available templates: " + strings.Join(List(), ", "))
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the template's file paths, sorted.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create writes the site into dir and returns the files written. It refuses
// a directory that already holds a11ydocs.json.
func (t *Template) Create(dir string, cfg Config) ([]string, error) {
	if cfg.SiteName == "" {
		cfg.SiteName = filepath.Base(filepath.Clean(dir))
	}
	if config.Exists(dir) {
		return nil, errors.New("E502").
			WithDetailf("%s already exists in %s.", config.ConfigFileName, dir).
			WithSuggestion("Pick an empty directory or edit the existing site")
	}

	var written []string
	for _, relPath := range t.Paths() {
		tmpl, err := template.New(relPath).Funcs(funcs).Parse(t.Files[relPath])
		if err != nil {
			return written, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return written, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return written, errors.New("E402").Wrap(err)
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
			return written, errors.New("E402").Wrap(err)
		}
		written = append(written, fullPath)
	}
	return written, nil
}

const configFile = `{
  "name": {{json .SiteName}},
  "server": {
    "address": "localhost:3000"
  },
  "cache": {
    "enabled": true,
    "ttl": "10m"
  }{{if .Bucket}},
  "publish": {
    "bucket": {{json .Bucket}}
  }{{end}}
}
`

const gitignore = `dist/
`

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "One page with a single visibility widget",
		Files: map[string]string{
			"a11ydocs.json": configFile,
			".gitignore":    gitignore,
			"content/site.yaml": `title: {{json .SiteName}}
{{- if .Description}}
description: {{json .Description}}
{{- end}}
pages:
  - path: /
    file: index.md
`,
			"content/index.md": `---
title: Home
---
# {{.SiteName}}

Click the button to hide the target element from sighted users while it
stays in the accessibility tree.

<visibility-widget option-name="Visibility" classes-to-toggle="invisible"></visibility-widget>
`,
		},
	}
}

// hidingTemplate returns a tour of the hiding techniques.
func hidingTemplate() *Template {
	return &Template{
		Name:        "hiding",
		Description: "A page per hiding technique, each with a live widget",
		Files: map[string]string{
			"a11ydocs.json": configFile,
			".gitignore":    gitignore,
			"content/site.yaml": `title: {{json .SiteName}}
{{- if .Description}}
description: {{json .Description}}
{{- end}}
pages:
  - path: /
    file: index.md
  - path: /docs/visual
    file: visual.md
  - path: /docs/screen-readers
    file: screen-readers.md
`,
			"content/index.md": `---
title: Hiding content
---
# Hiding content accessibly

Hiding something on screen and hiding it from assistive technology are
different things. Each page in this guide pairs one technique with a
widget you can toggle.

- [Visual hiding](/docs/visual): invisible, opacity-0, hidden
- [Screen readers](/docs/screen-readers): sr-only, aria-hidden
`,
			"content/visual.md": `---
title: Visual hiding
---
# Visual hiding

## invisible

The element keeps its space and leaves the accessibility tree.

<visibility-widget option-name="Visibility" classes-to-toggle="invisible"></visibility-widget>

## opacity-0

The element keeps its space and is still announced.

<visibility-widget option-name="Opacity" classes-to-toggle="opacity-0"></visibility-widget>

## hidden

The element is removed from layout and from the accessibility tree.

<visibility-widget option-name="Display" classes-to-toggle="hidden"></visibility-widget>
`,
			"content/screen-readers.md": `---
title: Screen readers
---
# Screen readers

## sr-only

Hidden on screen, still announced.

<visibility-widget option-name="Screen reader only" classes-to-toggle="sr-only"></visibility-widget>

## aria-hidden

Visible on screen, never announced.

<visibility-widget option-name="ARIA hidden" attribute-to-toggle="aria-hidden"></visibility-widget>

## hidden attribute

Removed for everyone, like display: none.

<visibility-widget option-name="Hidden attribute" attribute-to-toggle="hidden"></visibility-widget>
`,
		},
	}
}
