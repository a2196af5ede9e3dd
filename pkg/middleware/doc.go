// Package middleware wraps live widget events with metrics and tracing.
//
// The live server runs every click through a chain of middleware before
// the widget toggles:
//
//	handler := middleware.Chain(dispatch,
//	    middleware.OpenTelemetry(),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	)
//
// # Prometheus Metrics
//
// Prometheus collects, under the "a11ydocs" namespace:
//   - a11ydocs_events_total: events by widget option name and status
//   - a11ydocs_event_duration_seconds: event handling time
//   - a11ydocs_toggles_total: successful toggles by hiding technique
//   - a11ydocs_active_sessions: open live sessions
//   - a11ydocs_websocket_errors_total: connection failures by type
//
// Session and connection counters are fed by RecordSessionStart,
// RecordSessionEnd and RecordWebSocketError.
//
// # OpenTelemetry
//
// OpenTelemetry starts one span per event carrying the session id, page,
// widget id and option name. Handlers further down the chain reach the
// span through SpanFromEvent.
package middleware
