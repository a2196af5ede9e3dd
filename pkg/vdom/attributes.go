package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Attribute sets an arbitrary attribute. An empty key yields an empty Attr,
// which element factories ignore.
func Attribute(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassList sets the class attribute from a whitespace-separated list,
// normalising runs of whitespace to single spaces.
func ClassList(list string) Attr { return attr("class", strings.Join(strings.Fields(list), " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with the style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// Part sets the part attribute used to expose shadow tree elements for styling.
func Part(name string) Attr { return attr("part", name) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// AriaCurrent sets the aria-current attribute.
func AriaCurrent(value string) Attr { return attr("aria-current", value) }

// Visibility attributes

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// Document attributes

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Content sets the content attribute.
func Content(content string) Attr { return attr("content", content) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Script attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Defer sets the defer attribute.
func Defer() Attr { return attr("defer", true) }

// ShadowRootMode sets the shadowrootmode attribute on a template, making it a
// declarative shadow root of its parent element.
func ShadowRootMode(mode string) Attr { return attr("shadowrootmode", mode) }
