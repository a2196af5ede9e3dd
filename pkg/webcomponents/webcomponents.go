// Package webcomponents describes the third-party visual primitives the
// documentation pages use (a themed button and a badge).
//
// The primitives are custom elements defined by a browser-side component
// library. Defining them is process-wide, init-once state, so the host calls
// RegisterAll explicitly before mounting anything that renders them.
package webcomponents

import (
	"sort"
	"strings"
	"sync"

	"github.com/a11ykit/a11ydocs/pkg/vdom"
)

// Tag names of the primitives.
const (
	ButtonTag = "tapsi-button"
	BadgeTag  = "tapsi-badge"
)

// DefaultLoaderURL is where the component library bundle is served from.
const DefaultLoaderURL = "https://cdn.jsdelivr.net/npm/@tapsioss/web-components/dist/index.js"

var (
	registerOnce sync.Once
	mu           sync.RWMutex
	registered   map[string]bool
	loaderURL    = DefaultLoaderURL
)

// RegisterAll registers every primitive. Calling it again is a no-op.
func RegisterAll() {
	registerOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		registered = map[string]bool{
			ButtonTag: true,
			BadgeTag:  true,
		}
	})
}

// Registered reports whether RegisterAll has run.
func Registered() bool {
	mu.RLock()
	defer mu.RUnlock()
	return registered != nil
}

// Tags returns the registered tag names in sorted order.
func Tags() []string {
	mu.RLock()
	defer mu.RUnlock()
	return tagsLocked()
}

func tagsLocked() []string {
	tags := make([]string, 0, len(registered))
	for tag := range registered {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// SetLoaderURL overrides the bundle URL emitted by Script.
func SetLoaderURL(url string) {
	mu.Lock()
	defer mu.Unlock()
	if url == "" {
		url = DefaultLoaderURL
	}
	loaderURL = url
}

// Script returns the module script tag that loads and defines the
// primitives in the browser, listing the registered tags in data-defines.
// It returns nil before RegisterAll.
func Script() *vdom.VNode {
	mu.RLock()
	defer mu.RUnlock()
	if registered == nil {
		return nil
	}
	return vdom.Script(
		vdom.Type("module"),
		vdom.Src(loaderURL),
		vdom.Data("defines", strings.Join(tagsLocked(), " ")),
	)
}

// Button renders a button primitive with the given style variant.
func Button(variant string, args ...any) *vdom.VNode {
	return vdom.CustomElement(ButtonTag, append([]any{vdom.Attribute("variant", variant)}, args...)...)
}

// Badge renders a badge primitive with the given color token and value.
func Badge(color, value string, args ...any) *vdom.VNode {
	return vdom.CustomElement(BadgeTag, append([]any{
		vdom.Attribute("color", color),
		vdom.Attribute("value", value),
	}, args...)...)
}
