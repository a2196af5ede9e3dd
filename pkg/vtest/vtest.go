package vtest

import (
	"strings"
	"testing"

	"github.com/a11ykit/a11ydocs/pkg/render"
	"github.com/a11ykit/a11ydocs/pkg/vdom"
)

// RenderToString renders a VNode and returns the HTML string.
// It returns "" if the tree cannot be rendered.
//
// Example:
//
//	html := vtest.RenderToString(w.Render())
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that node carries attr with the given value.
//
// Example:
//
//	vtest.ExpectAttribute(t, h.Target(), "aria-hidden", "true")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	if node == nil {
		t.Errorf("expected attribute %s=%q on nil node", attr, value)
		return
	}
	got, ok := node.Attr(attr)
	if !ok || got != value {
		t.Errorf("expected attribute %s=%q, got %q (present=%v)", attr, value, got, ok)
	}
}

// ExpectNoAttribute asserts that node does not carry attr.
func ExpectNoAttribute(t testing.TB, node *vdom.VNode, attr string) {
	t.Helper()
	if node == nil {
		return
	}
	if got, ok := node.Attr(attr); ok {
		t.Errorf("expected no %s attribute, got %q", attr, got)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
