// Package vtest provides testing helpers for widgets and rendered trees.
//
// # Quick Start
//
//	func TestOpacityDemo(t *testing.T) {
//	    h := vtest.Mount(t, widget.Attributes{"classes-to-toggle": "opacity-0"})
//	    h.ExpectContains("Turn `Feature` on")
//	    h.Click()
//	    if !h.Target().HasClass("opacity-0") {
//	        t.Error("target should be faded out")
//	    }
//	}
//
// # Render Assertions
//
// Assert on any rendered node:
//
//	vtest.ExpectContains(t, page, "visibility-widget")
//	vtest.ExpectNotContains(t, page, "onclick")
package vtest
