package docs

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/a11ykit/a11ydocs/pkg/render"
	"github.com/a11ykit/a11ydocs/pkg/vdom"
	"github.com/a11ykit/a11ydocs/pkg/widget"
)

// MountOptions control how widget tags are rewritten.
type MountOptions struct {
	// Snapshots embeds the rendered content of both states next to the
	// shadow root so a page without a live server can still toggle.
	Snapshots bool
}

// Mount replaces every widget tag in body with its rendered host element.
// It returns the rewritten body and the mounted widgets in document order.
// Whatever the author placed between the opening and closing tag is dropped.
func Mount(body string, opts MountOptions) (string, []*widget.Widget, error) {
	var (
		out     strings.Builder
		widgets []*widget.Widget
	)
	z := html.NewTokenizer(strings.NewReader(body))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", nil, err
			}
			return out.String(), widgets, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			tok := z.Token()
			if tok.Data != widget.TagName {
				out.WriteString(raw)
				continue
			}

			w := widget.New(fmt.Sprintf("w%d", len(widgets)))
			w.Configure(attributes(tok.Attr))
			w.Mount()
			widgets = append(widgets, w)
			out.WriteString(render.String(hostElement(w, opts)))

			if tt == html.StartTagToken {
				skipElement(z, widget.TagName)
			}

		default:
			out.Write(z.Raw())
		}
	}
}

// attributes keeps the first value of each attribute, as browsers do.
func attributes(attrs []html.Attribute) widget.Attributes {
	out := make(widget.Attributes, len(attrs))
	for _, a := range attrs {
		if _, seen := out[a.Key]; !seen {
			out[a.Key] = a.Val
		}
	}
	return out
}

// skipElement consumes tokens up to and including the end tag closing the
// element whose start tag was just read.
func skipElement(z *html.Tokenizer, tag string) {
	depth := 1
	for depth > 0 {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == tag {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == tag {
				depth--
			}
		}
	}
}

func hostElement(w *widget.Widget, opts MountOptions) *vdom.VNode {
	host := w.Host()
	if !opts.Snapshots {
		return host
	}

	snapshots := map[widget.State]string{w.State(): w.HTML()}
	w.OnRender(func(w *widget.Widget) { snapshots[w.State()] = w.HTML() })
	w.Toggle()
	w.Toggle()
	w.OnRender(nil)

	for _, s := range []widget.State{widget.Off, widget.On} {
		host.Children = append(host.Children,
			vdom.Template(vdom.Data("state", s.String()), vdom.Raw(snapshots[s])))
	}
	return host
}
