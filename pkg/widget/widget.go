package widget

import (
	"github.com/a11ykit/a11ydocs/pkg/render"
	"github.com/a11ykit/a11ydocs/pkg/vdom"
	"github.com/a11ykit/a11ydocs/pkg/webcomponents"
)

// State is the widget's toggle state.
type State bool

const (
	Off State = false
	On  State = true
)

// String returns "on" or "off".
func (s State) String() string {
	if s {
		return "on"
	}
	return "off"
}

// Widget demonstrates a hiding technique on a target element next to an
// always-visible sibling. Each activation of its button flips the state and
// re-renders the whole content.
//
// A Widget is not safe for concurrent use. Its owner serialises calls.
type Widget struct {
	id         string
	config     Config
	configured bool
	toggled    bool

	content  *vdom.VNode
	html     string
	renders  int
	onRender func(*Widget)
}

// New creates an unconfigured widget with the given id.
func New(id string) *Widget {
	return &Widget{id: id}
}

// ID returns the widget id.
func (w *Widget) ID() string { return w.id }

// Config returns the widget configuration.
func (w *Widget) Config() Config { return w.config }

// State returns the current toggle state.
func (w *Widget) State() State { return State(w.toggled) }

// IsToggled reports whether the technique is currently applied.
func (w *Widget) IsToggled() bool { return w.toggled }

// Mounted reports whether the first render has happened.
func (w *Widget) Mounted() bool { return w.content != nil }

// Renders returns how many times the widget has rendered.
func (w *Widget) Renders() int { return w.renders }

// OnRender sets a function called after every render.
func (w *Widget) OnRender(fn func(*Widget)) { w.onRender = fn }

// Configure reads the mount attributes. Only the first call has an effect.
func (w *Widget) Configure(attrs Attributes) {
	if w.configured {
		return
	}
	w.config = ConfigFromAttributes(attrs)
	w.configured = true
}

// Mount performs the first render. A widget that was never configured is
// configured from an empty attribute set. Mounting twice is a no-op.
func (w *Widget) Mount() {
	if !w.configured {
		w.Configure(nil)
	}
	if w.Mounted() {
		return
	}
	w.rerender()
}

// Toggle inverts the state and re-renders immediately.
func (w *Widget) Toggle() {
	w.toggled = !w.toggled
	w.rerender()
}

// Activate fires the click handler bound to the currently rendered button.
// It reports false when the widget is not mounted.
func (w *Widget) Activate() bool {
	button := vdom.FindByTag(w.content, webcomponents.ButtonTag)
	fn, ok := vdom.Handler(button, "click")
	if !ok {
		return false
	}
	fn()
	return true
}

// Content returns the most recently rendered content, or nil before Mount.
func (w *Widget) Content() *vdom.VNode { return w.content }

// HTML returns the most recently rendered content as HTML.
func (w *Widget) HTML() string { return w.html }

// rerender replaces the previous content wholesale. The click handler lives
// on the new button node, so it is re-bound on every render.
func (w *Widget) rerender() {
	w.content = w.Render()
	w.html = render.String(w.content)
	w.renders++
	if w.onRender != nil {
		w.onRender(w)
	}
}

// Render builds the widget content for the current state. It has no side
// effects; calling it twice without a state change yields equal trees.
func (w *Widget) Render() *vdom.VNode {
	cfg := w.config
	if !w.configured {
		cfg = ConfigFromAttributes(nil)
	}

	return vdom.Fragment(
		vdom.StyleEl(vdom.Text(stylesheet)),
		vdom.Figure(
			webcomponents.Button("brand",
				vdom.Part("toggle"),
				vdom.StyleAttr("margin-bottom: 1rem;"),
				vdom.OnClick(w.Toggle),
				vdom.Text(Label(cfg.OptionName, w.State())),
			),
			vdom.Br(),
			vdom.Div(vdom.Class("playground"),
				vdom.Div(
					vdom.When(w.toggled && cfg.ClassesToToggle != "", vdom.ClassList(cfg.ClassesToToggle)),
					vdom.When(w.toggled && cfg.AttributeToToggle != "", vdom.Attribute(cfg.AttributeToToggle, "true")),
					webcomponents.Badge("info", "Target Element"),
				),
				vdom.Div(
					webcomponents.Badge("info", "Content after target element", vdom.Class("ml-2")),
				),
			),
		),
	)
}

// Label returns the button text for a widget in state s. It names the
// action a click performs, which is the opposite of s.
func Label(optionName string, s State) string {
	next := On
	if s == On {
		next = Off
	}
	return "Turn `" + optionName + "` " + next.String()
}

// Host wraps the current content in the widget's host element. The content
// sits in a declarative shadow root so the scoped styles and the host page's
// styles cannot reach each other.
func (w *Widget) Host() *vdom.VNode {
	if !w.Mounted() {
		w.Mount()
	}
	args := []any{vdom.Data("widget-id", w.id)}
	for name, value := range w.config.Attributes() {
		args = append(args, vdom.Attribute(name, value))
	}
	args = append(args, vdom.Template(vdom.ShadowRootMode("open"), w.content))
	return vdom.CustomElement(TagName, args...)
}

// Target returns the target container of a rendered content tree.
func Target(content *vdom.VNode) *vdom.VNode {
	playground := vdom.Find(content, func(n *vdom.VNode) bool {
		return n.Kind == vdom.KindElement && n.HasClass("playground")
	})
	if playground == nil || len(playground.Children) == 0 {
		return nil
	}
	return playground.Children[0]
}

// ToggleButton returns the toggle button of a rendered content tree.
func ToggleButton(content *vdom.VNode) *vdom.VNode {
	return vdom.FindByTag(content, webcomponents.ButtonTag)
}
