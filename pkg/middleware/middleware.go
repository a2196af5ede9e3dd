package middleware

import (
	"context"

	"github.com/a11ykit/a11ydocs/pkg/widget"
)

// Event is one widget event as seen by middleware.
type Event struct {
	ctx context.Context

	// SessionID identifies the live session that received the event.
	SessionID string

	// Page is the documentation path the session is showing.
	Page string

	// Type is the event name, for example "click".
	Type string

	// WidgetID is the id the client sent.
	WidgetID string

	// Widget is the addressed widget, or nil when the id is unknown.
	Widget *widget.Widget
}

// NewEvent creates an event bound to ctx.
func NewEvent(ctx context.Context, sessionID, page, typ, widgetID string) *Event {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Event{ctx: ctx, SessionID: sessionID, Page: page, Type: typ, WidgetID: widgetID}
}

// Context returns the event's context. It is never nil.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// WithContext replaces the event's context.
func (e *Event) WithContext(ctx context.Context) {
	if ctx != nil {
		e.ctx = ctx
	}
}

// OptionName returns the addressed widget's option name, or "unknown".
func (e *Event) OptionName() string {
	if e.Widget == nil {
		return "unknown"
	}
	return e.Widget.Config().OptionName
}

// Handler processes an event.
type Handler func(ev *Event) error

// Middleware wraps event handling. Implementations call next to continue
// the chain and may inspect the returned error.
type Middleware func(ev *Event, next func() error) error

// Chain returns h wrapped by mws. The first middleware is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		mw, inner := mws[i], h
		if mw == nil {
			continue
		}
		h = func(ev *Event) error {
			return mw(ev, func() error { return inner(ev) })
		}
	}
	return h
}
