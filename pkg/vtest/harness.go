package vtest

import (
	"strings"
	"testing"

	"github.com/a11ykit/a11ydocs/pkg/vdom"
	"github.com/a11ykit/a11ydocs/pkg/widget"
)

// Harness drives one mounted widget the way a user would.
type Harness struct {
	t      testing.TB
	widget *widget.Widget
}

// Mount configures and mounts a widget from attrs.
//
// Example:
//
//	h := vtest.Mount(t, widget.Attributes{"option-name": "Visibility"})
func Mount(t testing.TB, attrs widget.Attributes) *Harness {
	t.Helper()
	w := widget.New("test")
	w.Configure(attrs)
	w.Mount()
	if !w.Mounted() {
		t.Fatal("widget did not mount")
	}
	return &Harness{t: t, widget: w}
}

// Widget returns the widget under test.
func (h *Harness) Widget() *widget.Widget { return h.widget }

// Click activates the rendered toggle button. It fails the test if no
// button is bound.
func (h *Harness) Click() {
	h.t.Helper()
	if !h.widget.Activate() {
		h.t.Fatal("no clickable toggle button in rendered content")
	}
}

// ClickN clicks n times.
func (h *Harness) ClickN(n int) {
	h.t.Helper()
	for i := 0; i < n; i++ {
		h.Click()
	}
}

// HTML returns the latest rendered HTML.
func (h *Harness) HTML() string { return h.widget.HTML() }

// Target returns the target container of the latest render.
func (h *Harness) Target() *vdom.VNode {
	h.t.Helper()
	target := widget.Target(h.widget.Content())
	if target == nil {
		h.t.Fatal("target container not found")
	}
	return target
}

// ButtonLabel returns the text of the toggle button.
func (h *Harness) ButtonLabel() string {
	h.t.Helper()
	button := widget.ToggleButton(h.widget.Content())
	if button == nil {
		h.t.Fatal("toggle button not found")
	}
	return button.TextContent()
}

// ExpectContains asserts that the latest render contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if html := h.HTML(); !strings.Contains(html, expected) {
		h.t.Errorf("expected widget output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the latest render does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if html := h.HTML(); strings.Contains(html, unexpected) {
		h.t.Errorf("expected widget output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}
