package server

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/pkg/middleware"
	"github.com/a11ykit/a11ydocs/pkg/protocol"
)

func click(t *testing.T, c *websocket.Conn, seq uint64, id string) {
	t.Helper()
	data, err := protocol.Marshal(&protocol.Event{Seq: seq, Type: protocol.EventClick, WidgetID: id})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLiveToggleRoundTrip(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts)
	hello(t, c, "/docs/hiding")

	click(t, c, 1, "w0")
	r, ok := read(t, c).(*protocol.Render)
	if !ok {
		t.Fatal("expected Render after click")
	}
	if r.Seq != 1 || r.WidgetID != "w0" {
		t.Errorf("Render = seq %d id %q, want 1 w0", r.Seq, r.WidgetID)
	}
	if !strings.Contains(r.HTML, "Turn `Screen reader only` off") {
		t.Errorf("toggled render lacks off label: %s", r.HTML)
	}
	if !strings.Contains(r.HTML, `class="sr-only"`) {
		t.Errorf("toggled render lacks sr-only target: %s", r.HTML)
	}

	click(t, c, 2, "w0")
	r = read(t, c).(*protocol.Render)
	if !strings.Contains(r.HTML, "Turn `Screen reader only` on") || strings.Contains(r.HTML, `class="sr-only"`) {
		t.Errorf("second click did not restore the initial state: %s", r.HTML)
	}
}

func TestLiveWidgetsAreIndependent(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts)
	hello(t, c, "/docs/hiding")

	click(t, c, 1, "w1")
	r := read(t, c).(*protocol.Render)
	if !strings.Contains(r.HTML, `aria-hidden="true"`) {
		t.Errorf("w1 render lacks aria-hidden: %s", r.HTML)
	}

	click(t, c, 2, "w0")
	r = read(t, c).(*protocol.Render)
	if strings.Contains(r.HTML, "aria-hidden") {
		t.Errorf("w0 picked up w1's attribute: %s", r.HTML)
	}
}

func TestLiveSessionsAreIsolated(t *testing.T) {
	_, ts := newTestServer(t)
	a := dial(t, ts)
	hello(t, a, "/docs/hiding")
	b := dial(t, ts)
	hello(t, b, "/docs/hiding")

	click(t, a, 1, "w0")
	_ = read(t, a)

	click(t, b, 1, "w0")
	r := read(t, b).(*protocol.Render)
	if !strings.Contains(r.HTML, "Turn `Screen reader only` off") {
		t.Errorf("second session should start from off: %s", r.HTML)
	}
}

func TestLiveUnknownWidget(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts)
	hello(t, c, "/docs/hiding")

	click(t, c, 1, "w9")
	em, ok := read(t, c).(*protocol.ErrorMessage)
	if !ok {
		t.Fatal("expected ErrorMessage")
	}
	if em.Code != protocol.ErrWidgetNotFound || em.Fatal {
		t.Errorf("error = %+v, want non-fatal WidgetNotFound", em)
	}

	send(t, c, &protocol.Control{Type: protocol.ControlPing, Timestamp: 42})
	pong, ok := read(t, c).(*protocol.Control)
	if !ok || pong.Type != protocol.ControlPong || pong.Timestamp != 42 {
		t.Errorf("expected pong 42 after error, got %#v", pong)
	}
}

func TestLiveRejectsUnexpectedFrames(t *testing.T) {
	_, ts := newTestServer(t)
	c := dial(t, ts)
	hello(t, c, "/docs/hiding")

	send(t, c, &protocol.Render{Seq: 1, WidgetID: "w0", HTML: "<p>"})
	em, ok := read(t, c).(*protocol.ErrorMessage)
	if !ok || em.Code != protocol.ErrInvalidFrame {
		t.Errorf("expected InvalidFrame, got %#v", em)
	}

	data, _ := protocol.Marshal(&protocol.Event{Seq: 1, Type: protocol.EventType(9), WidgetID: "w0"})
	if err := c.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatal(err)
	}
	em, ok = read(t, c).(*protocol.ErrorMessage)
	if !ok || em.Code != protocol.ErrInvalidEvent {
		t.Errorf("expected InvalidEvent, got %#v", em)
	}

	if err := c.WriteMessage(websocket.BinaryMessage, []byte{0x01}); err != nil {
		t.Fatal(err)
	}
	em, ok = read(t, c).(*protocol.ErrorMessage)
	if !ok || em.Code != protocol.ErrInvalidFrame {
		t.Errorf("expected InvalidFrame for a truncated frame, got %#v", em)
	}
}

func TestLiveHandshakeFailures(t *testing.T) {
	tests := []struct {
		name string
		msg  any
		code protocol.ErrorCode
	}{
		{"event before hello", &protocol.Event{Seq: 1, Type: protocol.EventClick, WidgetID: "w0"}, protocol.ErrInvalidFrame},
		{"version mismatch", &protocol.Hello{Version: protocol.Version + 1, Path: "/docs/hiding"}, protocol.ErrInvalidFrame},
		{"unknown page", &protocol.Hello{Version: protocol.Version, Path: "/docs/missing"}, protocol.ErrPageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t)
			c := dial(t, ts)
			send(t, c, tt.msg)

			em, ok := read(t, c).(*protocol.ErrorMessage)
			if !ok {
				t.Fatal("expected ErrorMessage")
			}
			if em.Code != tt.code || !em.Fatal {
				t.Errorf("error = %+v, want fatal %s", em, tt.code)
			}
		})
	}
}

func TestLiveMiddlewareSeesEvents(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	record := func(ev *middleware.Event, next func() error) error {
		err := next()
		mu.Lock()
		seen = append(seen, ev.Page+" "+ev.WidgetID+" "+ev.OptionName()+" "+ev.Widget.State().String())
		mu.Unlock()
		return err
	}

	_, ts := newTestServer(t, WithMiddleware(record))
	c := dial(t, ts)
	hello(t, c, "/docs/hiding")
	click(t, c, 1, "w1")
	_ = read(t, c)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != "/docs/hiding w1 ARIA hidden on" {
		t.Errorf("middleware saw %q", seen)
	}
}

func TestLiveHandlerPanicIsReported(t *testing.T) {
	boom := func(ev *middleware.Event, next func() error) error {
		if ev.WidgetID == "w0" {
			panic("boom")
		}
		return next()
	}
	_, ts := newTestServer(t, WithMiddleware(boom))
	c := dial(t, ts)
	hello(t, c, "/docs/hiding")

	click(t, c, 1, "w0")
	em, ok := read(t, c).(*protocol.ErrorMessage)
	if !ok || em.Code != protocol.ErrHandlerPanic || em.Fatal {
		t.Fatalf("expected non-fatal HandlerPanic, got %#v", em)
	}

	click(t, c, 2, "w1")
	if _, ok := read(t, c).(*protocol.Render); !ok {
		t.Error("session should keep working after a panic")
	}
}

func TestLiveQueueOverflow(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	block := func(ev *middleware.Event, next func() error) error {
		if ev.WidgetID == "w0" {
			started <- struct{}{}
			<-release
		}
		return next()
	}

	cfg := config.New()
	cfg.Server.MaxQueuedEvents = 1
	_, ts := newTestServerConfig(t, cfg, WithMiddleware(block))
	c := dial(t, ts)
	hello(t, c, "/docs/hiding")

	click(t, c, 1, "w0")
	<-started
	click(t, c, 2, "w1")
	click(t, c, 3, "w1")

	em, ok := read(t, c).(*protocol.ErrorMessage)
	if !ok || em.Code != protocol.ErrRateLimited || em.Fatal {
		t.Fatalf("expected non-fatal RateLimited, got %#v", em)
	}

	close(release)
	for _, want := range []uint64{1, 2} {
		r, ok := read(t, c).(*protocol.Render)
		if !ok || r.Seq != want {
			t.Fatalf("expected Render seq %d, got %#v", want, r)
		}
	}
}

func TestLiveOversizedRenderIsUndone(t *testing.T) {
	type result struct {
		err     error
		toggled bool
	}
	results := make(chan result, 4)
	observe := func(ev *middleware.Event, next func() error) error {
		err := next()
		results <- result{err: err, toggled: ev.Widget != nil && ev.Widget.IsToggled()}
		return err
	}

	srv, ts := newTestServer(t, WithMiddleware(observe))
	name := strings.Repeat("x", 70000)
	srv.SetSite(context.Background(), writeTestSite(t, map[string]string{
		"index.md": `<visibility-widget option-name="` + name + `" classes-to-toggle="invisible"></visibility-widget>` + "\n",
	}))

	c := dial(t, ts)
	hello(t, c, "/")

	for seq := uint64(1); seq <= 2; seq++ {
		click(t, c, seq, "w0")
		e, ok := read(t, c).(*protocol.ErrorMessage)
		if !ok {
			t.Fatalf("click %d: expected Error frame", seq)
		}
		if e.Code != protocol.ErrServerError || e.Fatal {
			t.Errorf("click %d: Error = code %v fatal %v, want non-fatal ServerError", seq, e.Code, e.Fatal)
		}
		if !strings.Contains(e.Message, "E305") {
			t.Errorf("click %d: message = %q, want E305", seq, e.Message)
		}

		r := <-results
		if r.err == nil {
			t.Errorf("click %d: middleware saw no error", seq)
		}
		if r.toggled {
			t.Errorf("click %d: widget left toggled after an unsent render", seq)
		}
	}

	// The session survives and still answers pings.
	send(t, c, &protocol.Control{Type: protocol.ControlPing, Timestamp: 7})
	if p, ok := read(t, c).(*protocol.Control); !ok || p.Type != protocol.ControlPong {
		t.Error("expected Pong after the failed renders")
	}
}
