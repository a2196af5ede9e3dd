package protocol

import (
	"errors"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload a frame can carry.
	MaxPayloadSize = 65535
)

// FrameType identifies the message carried by a frame.
type FrameType uint8

const (
	FrameHello   FrameType = 0x00 // Client → Server session setup
	FrameEvent   FrameType = 0x01 // Client → Server widget events
	FrameRender  FrameType = 0x02 // Server → Client widget content
	FrameControl FrameType = 0x03 // Ping and pong
	FrameError   FrameType = 0x05 // Server → Client errors
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameEvent:
		return "Event"
	case FrameRender:
		return "Render"
	case FrameControl:
		return "Control"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Valid reports whether ft is a known frame type.
func (ft FrameType) Valid() bool {
	return ft.String() != "Unknown"
}

// FrameFlags are optional per-frame flags.
type FrameFlags uint8

// FlagFinal marks the last render frame of a batch.
const FlagFinal FrameFlags = 0x04

// Has returns true if the flags contain the specified flag.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
	ErrTrailingBytes    = errors.New("protocol: trailing bytes after payload")
)

// Frame is a typed payload with a fixed header.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame creates a frame with the given type and payload.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode encodes the frame to bytes including the header.
func (f *Frame) Encode() ([]byte, error) {
	length := len(f.Payload)
	if length > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize+length)
	buf[0] = byte(f.Type)
	buf[1] = byte(f.Flags)
	buf[2] = byte(length >> 8)
	buf[3] = byte(length)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf, nil
}

// DecodeFrame decodes exactly one frame from data. Unknown frame types and
// bytes beyond the declared payload are rejected.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}

	ft := FrameType(data[0])
	if !ft.Valid() {
		return nil, ErrInvalidFrameType
	}
	length := int(data[2])<<8 | int(data[3])

	switch {
	case len(data) < FrameHeaderSize+length:
		return nil, io.ErrUnexpectedEOF
	case len(data) > FrameHeaderSize+length:
		return nil, ErrTrailingBytes
	}

	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:])

	return &Frame{
		Type:    ft,
		Flags:   FrameFlags(data[1]),
		Payload: payload,
	}, nil
}
