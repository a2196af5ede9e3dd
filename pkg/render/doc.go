// Package render serializes vdom trees to HTML.
//
// The renderer is deterministic. Attributes are sorted, event handlers are
// replaced by data-on-<event> markers, and empty string attributes are
// omitted, so a tree built from the same state always renders to the same
// bytes. Widgets rely on that to make re-rendering idempotent.
//
//	html := render.String(vdom.Div(vdom.Class("playground"), vdom.Text("hi")))
//	// <div class="playground">hi</div>
package render
