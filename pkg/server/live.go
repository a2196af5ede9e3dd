package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/a11ykit/a11ydocs/internal/errors"
	"github.com/a11ykit/a11ydocs/pkg/middleware"
	"github.com/a11ykit/a11ydocs/pkg/protocol"
)

// handleLive upgrades the request and runs a session until it closes.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an HTTP error.
		s.logger.Debug("websocket upgrade failed", "error", err)
		middleware.RecordWebSocketError("upgrade")
		return
	}

	sess, err := s.handshake(conn)
	if err != nil {
		s.logger.Debug("handshake failed", "error", err)
		middleware.RecordWebSocketError("handshake")
		closeConn(conn)
		return
	}

	if !s.addSession(sess) {
		sess.sendError(protocol.ErrServerError, "server shutting down", true)
		sess.Close()
		return
	}
	defer s.removeSession(sess)

	sess.logger.Info("session started", "widgets", len(sess.widgets))
	sess.Run()
	sess.logger.Info("session ended")
}

// handshake reads the client Hello and creates the session for its page.
// Failures are reported to the client with a fatal Error frame.
func (s *Server) handshake(conn *websocket.Conn) (*Session, error) {
	_ = conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout()))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		rejectHandshake(conn, protocol.ErrInvalidFrame, err.Error())
		return nil, errors.New("E300").Wrap(err)
	}
	if frame.Type != protocol.FrameHello {
		reason := fmt.Sprintf("expected Hello, got %s", frame.Type)
		rejectHandshake(conn, protocol.ErrInvalidFrame, reason)
		return nil, errors.New("E304").WithDetail(reason)
	}

	hello, err := protocol.DecodeHello(frame.Payload)
	if err != nil {
		rejectHandshake(conn, protocol.ErrInvalidFrame, err.Error())
		return nil, errors.New("E300").Wrap(err)
	}
	if hello.Version != protocol.Version {
		reason := fmt.Sprintf("version %d not supported, want %d", hello.Version, protocol.Version)
		rejectHandshake(conn, protocol.ErrInvalidFrame, reason)
		return nil, errors.New("E301").WithDetail(reason)
	}

	site := s.Site()
	page, err := site.Page(hello.Path)
	if err != nil {
		rejectHandshake(conn, protocol.ErrPageNotFound, fmt.Sprintf("no page at %q", hello.Path))
		return nil, err
	}
	widgets, err := site.Widgets(page.Path)
	if err != nil {
		rejectHandshake(conn, protocol.ErrServerError, "page could not be mounted")
		return nil, err
	}

	sess := newSession(conn, page.Path, widgets, SessionConfig{
		ReadTimeout:     s.config.ReadTimeout(),
		MaxQueuedEvents: s.config.Server.MaxQueuedEvents,
	}, s.middleware, s.logger)

	sess.send(&protocol.Hello{Version: protocol.Version, Path: page.Path})
	return sess, nil
}

func rejectHandshake(conn *websocket.Conn, code protocol.ErrorCode, message string) {
	data, err := protocol.Marshal(&protocol.ErrorMessage{Code: code, Message: message, Fatal: true})
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = conn.WriteMessage(websocket.BinaryMessage, data)
}

func closeConn(conn *websocket.Conn) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, ""),
		time.Now().Add(time.Second))
	_ = conn.Close()
}
