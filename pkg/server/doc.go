// Package server serves a documentation site and its live widgets.
//
// Pages are plain HTTP responses rendered from the site and kept in a page
// cache. Each page opens one WebSocket session on /live; the session owns a
// fresh set of widgets for the page and runs their clicks on a single event
// loop, answering every click with a Render frame carrying the widget's new
// content.
//
// # Routes
//
//	GET /                  home page
//	GET /docs/*            documentation pages
//	GET /live              WebSocket live sessions
//	GET /assets/client.js  thin client
//	GET /metrics           Prometheus metrics
//	GET /healthz           liveness check
//
// # Session Protocol
//
// The client sends Hello with the page path first. After that it sends
// Event frames for clicks and Control pings. The server answers with
// Render, Error and Control pong frames. Events are queued per session;
// when the queue is full the event is rejected with a RateLimited error
// instead of blocking the connection.
package server
