package server

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/a11ykit/a11ydocs/internal/errors"
	"github.com/a11ykit/a11ydocs/pkg/middleware"
	"github.com/a11ykit/a11ydocs/pkg/protocol"
	"github.com/a11ykit/a11ydocs/pkg/widget"
)

// writeTimeout bounds a single frame write.
const writeTimeout = 10 * time.Second

// SessionConfig holds the per-session limits.
type SessionConfig struct {
	// ReadTimeout closes a session that sends nothing for this long.
	ReadTimeout time.Duration

	// MaxQueuedEvents bounds the event queue.
	MaxQueuedEvents int
}

// Session is one live page. It owns the page's widgets; only the event
// loop touches them.
type Session struct {
	id      string
	page    string
	conn    *websocket.Conn
	config  SessionConfig
	widgets map[string]*widget.Widget
	mws     []middleware.Middleware

	events chan *protocol.Event

	ctx    context.Context
	cancel context.CancelFunc

	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once

	logger *slog.Logger
}

func newSession(conn *websocket.Conn, page string, widgets []*widget.Widget, config SessionConfig, mws []middleware.Middleware, logger *slog.Logger) *Session {
	if config.MaxQueuedEvents <= 0 {
		config.MaxQueuedEvents = 32
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = 60 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:      uuid.NewString(),
		page:    page,
		conn:    conn,
		config:  config,
		widgets: make(map[string]*widget.Widget, len(widgets)),
		events:  make(chan *protocol.Event, config.MaxQueuedEvents),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.logger = logger.With("session_id", s.id, "page", page)
	for _, w := range widgets {
		w.Mount()
		s.widgets[w.ID()] = w
	}
	s.mws = mws
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Page returns the page path the session serves.
func (s *Session) Page() string { return s.page }

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} { return s.done }

// Run processes the connection until it closes.
func (s *Session) Run() {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.EventLoop()
	}()

	s.ReadLoop()
	wg.Wait()
}

// ReadLoop reads frames until the connection fails or the session closes.
// Events are queued for the event loop; pings are answered directly.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Warn("read error", "error", err)
				middleware.RecordWebSocketError("read")
			} else {
				s.logger.Debug("read loop ended", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Debug("frame decode error", "error", err)
			s.sendError(protocol.ErrInvalidFrame, err.Error(), false)
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)

		case protocol.FrameControl:
			s.handleControlFrame(frame.Payload)

		default:
			s.sendError(protocol.ErrInvalidFrame, fmt.Sprintf("unexpected %s frame", frame.Type), false)
		}
	}
}

func (s *Session) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.sendError(protocol.ErrInvalidEvent, "invalid event format", false)
		return
	}
	if ev.Type != protocol.EventClick {
		s.sendError(protocol.ErrInvalidEvent, fmt.Sprintf("unsupported event type %d", ev.Type), false)
		return
	}

	select {
	case s.events <- ev:
	default:
		s.logger.Warn("event queue full", "widget_id", ev.WidgetID)
		s.sendError(protocol.ErrRateLimited, errors.New("E303").Error(), false)
	}
}

func (s *Session) handleControlFrame(payload []byte) {
	c, err := protocol.DecodeControl(payload)
	if err != nil {
		s.sendError(protocol.ErrInvalidFrame, "invalid control message", false)
		return
	}
	switch c.Type {
	case protocol.ControlPing:
		s.send(&protocol.Control{Type: protocol.ControlPong, Timestamp: c.Timestamp})
	case protocol.ControlPong:
		s.logger.Debug("received pong")
	}
}

// EventLoop applies queued events one at a time, in arrival order.
func (s *Session) EventLoop() {
	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)
		case <-s.done:
			return
		}
	}
}

// handleEvent runs ev through the middleware chain and reports the result.
func (s *Session) handleEvent(pe *protocol.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event handler panic",
				"widget_id", pe.WidgetID,
				"panic", r,
				"stack", string(debug.Stack()))
			s.sendError(protocol.ErrHandlerPanic, "widget handler failed", false)
		}
	}()

	ev := middleware.NewEvent(s.ctx, s.id, s.page, pe.Type.String(), pe.WidgetID)
	ev.Widget = s.widgets[pe.WidgetID]

	var frame []byte
	handler := middleware.Chain(func(ev *middleware.Event) error {
		data, err := s.dispatch(ev, pe.Seq)
		frame = data
		return err
	}, s.mws...)

	if err := handler(ev); err != nil {
		code := protocol.ErrServerError
		if errors.HasCode(err, "E302") {
			code = protocol.ErrWidgetNotFound
		}
		s.sendError(code, err.Error(), false)
		return
	}
	s.write(frame)
}

// dispatch is the innermost handler: it clicks the widget's button and
// encodes the new content. A render that does not fit in a frame is undone,
// so the widget stays in the state the client last saw.
func (s *Session) dispatch(ev *middleware.Event, seq uint64) ([]byte, error) {
	if ev.Widget == nil || !ev.Widget.Activate() {
		return nil, errors.New("E302").WithDetailf("No widget %q on %s.", ev.WidgetID, s.page)
	}

	data, err := protocol.Marshal(&protocol.Render{
		Seq:      seq,
		WidgetID: ev.WidgetID,
		HTML:     ev.Widget.HTML(),
	})
	if err != nil {
		ev.Widget.Toggle()
		s.logger.Error("render not sent, toggle undone", "widget_id", ev.WidgetID, "bytes", len(ev.Widget.HTML()), "error", err)
		return nil, errors.New("E305").
			WithDetailf("Widget %q renders %d bytes, more than one frame carries.", ev.WidgetID, len(ev.Widget.HTML())).
			Wrap(err)
	}

	s.logger.Debug("widget toggled", "widget_id", ev.WidgetID, "state", ev.Widget.State())
	return data, nil
}

// send encodes msg and writes it as one binary message.
func (s *Session) send(msg any) {
	data, err := protocol.Marshal(msg)
	if err != nil {
		s.logger.Error("encode failed", "type", fmt.Sprintf("%T", msg), "error", err)
		return
	}
	s.write(data)
}

// write sends one encoded frame.
func (s *Session) write(data []byte) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		s.logger.Debug("write failed", "error", err)
		middleware.RecordWebSocketError("write")
	}
}

func (s *Session) sendError(code protocol.ErrorCode, message string, fatal bool) {
	s.send(&protocol.ErrorMessage{Code: code, Message: message, Fatal: fatal})
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.cancel()

		s.writeMu.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()

		_ = s.conn.Close()
	})
}
