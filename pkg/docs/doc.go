// Package docs loads the accessibility documentation site: a site.yaml
// manifest, markdown pages with front matter, and the visibility widgets
// embedded in them.
//
// A page places a widget with its tag:
//
//	<visibility-widget option-name="Visibility" classes-to-toggle="invisible"></visibility-widget>
//
// Mounting replaces each tag with a rendered host element. Widgets are
// numbered w0, w1, ... in document order, so a live session can rebuild the
// same set for a page and address them by id.
package docs
