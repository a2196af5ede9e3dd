package protocol

import (
	"errors"
	"fmt"
)

// Version is the protocol version a client announces in its Hello.
const Version uint8 = 1

// ErrVersionMismatch is returned when a Hello carries an unsupported version.
var ErrVersionMismatch = errors.New("protocol: unsupported version")

// Hello opens a live session for one docs page.
type Hello struct {
	Version uint8
	Path    string // page path, e.g. "/docs/visibility"
}

// EventType identifies a widget event.
type EventType uint8

const (
	EventClick EventType = 0x01
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	if et == EventClick {
		return "click"
	}
	return "unknown"
}

// Event reports user activity on a widget.
type Event struct {
	Seq      uint64
	Type     EventType
	WidgetID string
}

// Render carries a widget's complete content after a state change. The
// client replaces the widget's shadow root children with HTML.
type Render struct {
	Seq      uint64 // Seq of the event that caused the render
	WidgetID string
	HTML     string
}

// ErrorCode identifies why the server rejected an event.
type ErrorCode uint16

const (
	ErrUnknown        ErrorCode = 0x0000
	ErrInvalidFrame   ErrorCode = 0x0001
	ErrInvalidEvent   ErrorCode = 0x0002
	ErrWidgetNotFound ErrorCode = 0x0003
	ErrHandlerPanic   ErrorCode = 0x0004
	ErrRateLimited    ErrorCode = 0x0006
	ErrPageNotFound   ErrorCode = 0x0102
	ErrServerError    ErrorCode = 0x0100
)

// String returns the string representation of the error code.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrInvalidFrame:
		return "InvalidFrame"
	case ErrInvalidEvent:
		return "InvalidEvent"
	case ErrWidgetNotFound:
		return "WidgetNotFound"
	case ErrHandlerPanic:
		return "HandlerPanic"
	case ErrRateLimited:
		return "RateLimited"
	case ErrPageNotFound:
		return "PageNotFound"
	case ErrServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// ErrorMessage is sent when an event cannot be applied.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
	Fatal   bool // the server closes the connection after a fatal error
}

// Error implements error.
func (em *ErrorMessage) Error() string {
	return fmt.Sprintf("%s: %s", em.Code, em.Message)
}

// ControlType identifies a control message.
type ControlType uint8

const (
	ControlPing ControlType = 0x01
	ControlPong ControlType = 0x02
)

// String returns the string representation of the control type.
func (ct ControlType) String() string {
	switch ct {
	case ControlPing:
		return "Ping"
	case ControlPong:
		return "Pong"
	default:
		return "Unknown"
	}
}

// Control is a ping or pong carrying a millisecond timestamp.
type Control struct {
	Type      ControlType
	Timestamp uint64
}

// EncodeHello encodes a Hello payload.
func EncodeHello(h *Hello) []byte {
	e := NewEncoder()
	e.WriteByte(h.Version)
	e.WriteString(h.Path)
	return e.Bytes()
}

// DecodeHello decodes a Hello payload. It does not check the version.
func DecodeHello(data []byte) (*Hello, error) {
	d := NewDecoder(data)
	v, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	path, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	if err := d.done(); err != nil {
		return nil, err
	}
	return &Hello{Version: v, Path: path}, nil
}

// EncodeEvent encodes an Event payload.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	e.WriteUvarint(ev.Seq)
	e.WriteByte(byte(ev.Type))
	e.WriteString(ev.WidgetID)
	return e.Bytes()
}

// DecodeEvent decodes an Event payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	t, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	id, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	if err := d.done(); err != nil {
		return nil, err
	}
	return &Event{Seq: seq, Type: EventType(t), WidgetID: id}, nil
}

// EncodeRender encodes a Render payload.
func EncodeRender(r *Render) []byte {
	e := NewEncoder()
	e.WriteUvarint(r.Seq)
	e.WriteString(r.WidgetID)
	e.WriteString(r.HTML)
	return e.Bytes()
}

// DecodeRender decodes a Render payload.
func DecodeRender(data []byte) (*Render, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	id, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	html, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	if err := d.done(); err != nil {
		return nil, err
	}
	return &Render{Seq: seq, WidgetID: id, HTML: html}, nil
}

// EncodeErrorMessage encodes an ErrorMessage payload.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage payload.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	if err := d.done(); err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: ErrorCode(code), Message: msg, Fatal: fatal}, nil
}

// EncodeControl encodes a Control payload.
func EncodeControl(c *Control) []byte {
	e := NewEncoder()
	e.WriteByte(byte(c.Type))
	e.WriteUint64(c.Timestamp)
	return e.Bytes()
}

// DecodeControl decodes a Control payload.
func DecodeControl(data []byte) (*Control, error) {
	d := NewDecoder(data)
	t, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	ts, err := d.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := d.done(); err != nil {
		return nil, err
	}
	return &Control{Type: ControlType(t), Timestamp: ts}, nil
}

// Message returns the frame for one of the message types in this package.
func Message(msg any) (*Frame, error) {
	switch m := msg.(type) {
	case *Hello:
		return NewFrame(FrameHello, EncodeHello(m)), nil
	case *Event:
		return NewFrame(FrameEvent, EncodeEvent(m)), nil
	case *Render:
		return &Frame{Type: FrameRender, Flags: FlagFinal, Payload: EncodeRender(m)}, nil
	case *ErrorMessage:
		return NewFrame(FrameError, EncodeErrorMessage(m)), nil
	case *Control:
		return NewFrame(FrameControl, EncodeControl(m)), nil
	default:
		return nil, fmt.Errorf("protocol: cannot encode %T", msg)
	}
}

// Marshal encodes msg as a complete frame.
func Marshal(msg any) ([]byte, error) {
	f, err := Message(msg)
	if err != nil {
		return nil, err
	}
	return f.Encode()
}

// Unmarshal decodes one complete frame and its payload. The returned value
// is one of *Hello, *Event, *Render, *ErrorMessage or *Control.
func Unmarshal(data []byte) (any, error) {
	f, err := DecodeFrame(data)
	if err != nil {
		return nil, err
	}
	switch f.Type {
	case FrameHello:
		return DecodeHello(f.Payload)
	case FrameEvent:
		return DecodeEvent(f.Payload)
	case FrameRender:
		return DecodeRender(f.Payload)
	case FrameError:
		return DecodeErrorMessage(f.Payload)
	case FrameControl:
		return DecodeControl(f.Payload)
	default:
		return nil, ErrInvalidFrameType
	}
}
