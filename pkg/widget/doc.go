// Package widget implements the visibility toggle demo used on the
// accessibility pages.
//
// A widget renders a button and two sibling containers. The first
// container is the target: while the widget is toggled on it carries the
// configured classes (for example sr-only, invisible, hidden, opacity-0)
// and the configured boolean attribute (for example aria-hidden="true").
// The second container never changes and shows how surrounding content
// reacts.
//
// Lifecycle is explicit and two-phase:
//
//	w := widget.New("w0")
//	w.Configure(widget.Attributes{"option-name": "Visibility", "classes-to-toggle": "invisible"})
//	w.Mount()    // first render
//	w.Activate() // click: toggles and re-renders
//
// Attributes are read once, in Configure. Missing attributes fall back to
// defaults; the widget never reports an error to its host.
package widget
