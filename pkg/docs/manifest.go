package docs

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/a11ykit/a11ydocs/internal/errors"
)

// Manifest is the parsed site.yaml.
type Manifest struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description,omitempty"`
	Pages       []Entry `yaml:"pages"`

	file string
}

// Entry is one page in the navigation.
type Entry struct {
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
	File  string `yaml:"file"`

	line int
}

// LoadManifest reads the manifest file in dir. When the file does not exist
// the manifest is derived from the markdown files in dir.
func LoadManifest(dir, name string) (*Manifest, error) {
	file := filepath.Join(dir, name)
	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return ScanManifest(dir)
	}
	if err != nil {
		return nil, errors.New("E200").Wrap(err)
	}
	return ParseManifest(file, data)
}

// ParseManifest parses manifest data read from file.
func ParseManifest(file string, data []byte) (*Manifest, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		e := errors.New("E200").Wrap(err)
		if line := yamlErrorLine(err); line > 0 {
			e.WithLocation(file, line, 0)
		}
		return nil, e
	}

	m := &Manifest{file: file}
	if len(root.Content) == 0 {
		return m, nil
	}
	if err := root.Content[0].Decode(m); err != nil {
		return nil, errors.New("E200").Wrap(err)
	}
	for i, node := range pageNodes(root.Content[0]) {
		if i < len(m.Pages) {
			m.Pages[i].line = node.Line
		}
	}
	for i := range m.Pages {
		m.Pages[i].Path = cleanPath(m.Pages[i].Path)
	}
	return m, nil
}

// pageNodes returns the sequence items under the top-level pages key.
func pageNodes(doc *yaml.Node) []*yaml.Node {
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == "pages" && doc.Content[i+1].Kind == yaml.SequenceNode {
			return doc.Content[i+1].Content
		}
	}
	return nil
}

// yamlErrorLine extracts N from yaml.v3 messages of the form "yaml: line N: ...".
func yamlErrorLine(err error) int {
	_, rest, ok := strings.Cut(err.Error(), "line ")
	if !ok {
		return 0
	}
	digits, _, _ := strings.Cut(rest, ":")
	n, _ := strconv.Atoi(digits)
	return n
}

// ScanManifest builds a manifest from the markdown files in dir. index.md
// is served at "/", every other file at /docs/<name>.
func ScanManifest(dir string) (*Manifest, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, errors.New("E200").Wrap(err)
	}
	sort.Strings(matches)

	m := &Manifest{}
	for _, match := range matches {
		name := filepath.Base(match)
		stem := strings.TrimSuffix(name, ".md")
		p := "/docs/" + stem
		if stem == "index" {
			p = "/"
		}
		m.Pages = append(m.Pages, Entry{Path: p, File: name})
	}
	return m, nil
}

// Validate checks page paths and that every page file exists in dir.
func (m *Manifest) Validate(dir string) error {
	seen := make(map[string]bool, len(m.Pages))
	for _, e := range m.Pages {
		if !validPath(e.Path) {
			return m.locate(errors.New("E205").WithDetailf("Page path %q is not valid.", e.Path), e)
		}
		if seen[e.Path] {
			return m.locate(errors.New("E204").WithDetailf("More than one page is served at %q.", e.Path), e)
		}
		seen[e.Path] = true

		if e.File == "" {
			return m.locate(errors.New("E201").WithDetailf("Page %q has no file.", e.Path), e)
		}
		if _, err := os.Stat(filepath.Join(dir, e.File)); err != nil {
			return m.locate(errors.New("E201").
				WithDetailf("Page %q points at %s, which does not exist.", e.Path, e.File).
				WithSuggestion(fmt.Sprintf("Create %s or fix the file entry", filepath.Join(dir, e.File))), e)
		}
	}
	return nil
}

func (m *Manifest) locate(err *errors.Error, e Entry) *errors.Error {
	if m.file != "" && e.line > 0 {
		err.WithLocation(m.file, e.line, 0)
	}
	return err
}

// cleanPath normalises a page path. Trailing slashes are dropped except
// for the root.
func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") {
		return p
	}
	return path.Clean(p)
}

func validPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.ContainsAny(p, "?# \t")
}
