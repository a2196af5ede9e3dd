package protocol

import "testing"

// FuzzUnmarshal checks that decoding arbitrary bytes never panics.
func FuzzUnmarshal(f *testing.F) {
	for _, msg := range []any{
		&Hello{Version: Version, Path: "/"},
		&Event{Seq: 1, Type: EventClick, WidgetID: "w0"},
		&Render{Seq: 1, WidgetID: "w0", HTML: "<div></div>"},
		&ErrorMessage{Code: ErrRateLimited, Message: "slow down"},
		&Control{Type: ControlPing, Timestamp: 1},
	} {
		data, err := Marshal(msg)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(data)
	}
	f.Add([]byte{})
	f.Add([]byte{0x02, 0x00, 0xFF, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = Unmarshal(data)
	})
}
