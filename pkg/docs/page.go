package docs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/a11ykit/a11ydocs/internal/errors"
)

// markdown is shared by all pages. Raw HTML passes through so pages can
// embed widget tags.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		meta.Meta,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// Page is a converted markdown page. Body still holds the widget tags as
// authored; Mount turns them into widgets.
type Page struct {
	Entry
	Description string
	Body        string
}

// ParsePage converts markdown source to HTML and returns its front matter.
func ParsePage(source []byte) (string, map[string]any, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := markdown.Convert(source, &buf, parser.WithContext(ctx)); err != nil {
		return "", nil, err
	}
	return buf.String(), meta.Get(ctx), nil
}

// LoadPage reads and converts the page file of e from dir. The entry title
// wins over the front matter title; a page with neither is titled by path.
func LoadPage(dir string, e Entry) (*Page, error) {
	file := filepath.Join(dir, e.File)
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.New("E201").Wrap(err)
	}

	body, front, err := ParsePage(source)
	if err != nil {
		return nil, errors.New("E203").Wrap(err).WithDetailf("Converting %s failed.", file)
	}

	p := &Page{Entry: e, Body: body}
	if p.Title == "" {
		p.Title = stringValue(front, "title")
	}
	if p.Title == "" {
		p.Title = e.Path
	}
	p.Description = stringValue(front, "description")
	return p, nil
}

func stringValue(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
