package vtest_test

import (
	"testing"

	"github.com/a11ykit/a11ydocs/pkg/vdom"
	"github.com/a11ykit/a11ydocs/pkg/vtest"
	"github.com/a11ykit/a11ydocs/pkg/widget"
)

func TestRenderToString(t *testing.T) {
	node := vdom.Div(vdom.Class("x"), vdom.Text("hi"))
	if got := vtest.RenderToString(node); got != `<div class="x">hi</div>` {
		t.Errorf("RenderToString() = %q", got)
	}
}

func TestRenderToStringInvalidTree(t *testing.T) {
	if got := vtest.RenderToString(&vdom.VNode{Kind: vdom.KindElement}); got != "" {
		t.Errorf("RenderToString() = %q, want empty", got)
	}
}

func TestExpectContains(t *testing.T) {
	node := vdom.P(vdom.Text("Content after target element"))
	vtest.ExpectContains(t, node, "after target")
	vtest.ExpectNotContains(t, node, "hidden")
}

func TestExpectAttribute(t *testing.T) {
	node := vdom.Div(vdom.Attribute("aria-hidden", "true"))
	vtest.ExpectAttribute(t, node, "aria-hidden", "true")
	vtest.ExpectNoAttribute(t, node, "hidden")
}

func TestHarnessScreenReaderOnly(t *testing.T) {
	h := vtest.Mount(t, widget.Attributes{
		widget.AttrOptionName:      "Screen reader only",
		widget.AttrClassesToToggle: "sr-only",
	})

	if got := h.ButtonLabel(); got != "Turn `Screen reader only` on" {
		t.Errorf("ButtonLabel() = %q", got)
	}
	if h.Target().HasClass("sr-only") {
		t.Error("target hidden before click")
	}

	h.Click()
	if got := h.ButtonLabel(); got != "Turn `Screen reader only` off" {
		t.Errorf("ButtonLabel() = %q", got)
	}
	if !h.Target().HasClass("sr-only") {
		t.Error("target not hidden after click")
	}
	h.ExpectContains(`class="sr-only"`)
}

func TestHarnessAriaHidden(t *testing.T) {
	h := vtest.Mount(t, widget.Attributes{widget.AttrAttributeToToggle: "aria-hidden"})

	vtest.ExpectNoAttribute(t, h.Target(), "aria-hidden")
	h.Click()
	vtest.ExpectAttribute(t, h.Target(), "aria-hidden", "true")
	h.Click()
	vtest.ExpectNoAttribute(t, h.Target(), "aria-hidden")
}

func TestHarnessEvenClicksRestore(t *testing.T) {
	h := vtest.Mount(t, widget.Attributes{widget.AttrClassesToToggle: "hidden opacity-0"})
	initial := h.HTML()

	h.ClickN(4)
	if h.HTML() != initial {
		t.Errorf("four clicks changed output:\n%s\n%s", h.HTML(), initial)
	}
	if h.Widget().Renders() != 5 {
		t.Errorf("Renders() = %d, want 5", h.Widget().Renders())
	}
	h.ExpectNotContains("opacity-0\"")
}
