package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// Handler returns the handler bound to event ("click" or "onclick") on node.
func Handler(node *VNode, event string) (func(), bool) {
	if node == nil || node.Props == nil {
		return nil, false
	}
	if len(event) < 2 || event[:2] != "on" {
		event = "on" + event
	}
	switch h := node.Props[event].(type) {
	case func():
		return h, true
	case func(any):
		return func() { h(nil) }, true
	default:
		return nil, false
	}
}
