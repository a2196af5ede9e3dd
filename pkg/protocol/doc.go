// Package protocol implements the binary messages exchanged between a docs
// page and the live widget server over WebSocket.
//
// # Wire Format
//
// Every message is one WebSocket binary message holding one frame:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameHello (0x00): client announces protocol version and page path
//   - FrameEvent (0x01): client reports a click on a widget
//   - FrameRender (0x02): server sends a widget's re-rendered content
//   - FrameControl (0x03): ping and pong
//   - FrameError (0x05): server reports a rejected event
//
// # Encoding
//
// Strings are prefixed with their length as an unsigned varint. Sequence
// numbers are varints as well. Decoding untrusted input never panics; a
// malformed payload yields an error.
package protocol
