// Package vdom provides the virtual DOM used to describe rendered output.
//
// Widgets and page layouts build VNode trees with variadic factory
// functions; the render package serializes them to HTML. There is no
// diffing: every state change produces a fresh tree that replaces the
// previous output wholesale.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments, components, and raw HTML. Props holds attributes and event
// handlers. Attr and EventHandler are used to build Props.
//
// # Element API
//
//	Div(Class("playground"),
//	    Div(ClassList(classes), When(on, Attribute(name, "true"))),
//	    Button(Text("Toggle"), OnClick(handler)),
//	)
//
// A nil argument or an Attr with an empty key is ignored, which makes
// conditional attributes a one-liner.
package vdom
