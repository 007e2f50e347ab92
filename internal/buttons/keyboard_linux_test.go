//go:build linux

package buttons

import (
	"encoding/binary"
	"testing"
)

func inputEvent(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestDecodeKeyPress(t *testing.T) {
	const tvSize = 16
	tests := []struct {
		name   string
		typ    uint16
		code   uint16
		value  int32
		want   Event
		wantOK bool
	}{
		{"press", evKey, keyDown, 1, VolumeDown, true},
		{"press space", evKey, keySpace, 1, TogglePause, true},
		{"release", evKey, keyDown, 0, "", false},
		{"autorepeat", evKey, keyDown, 2, "", false},
		{"unmapped key", evKey, 1, 1, "", false},
		{"not a key event", 0x02, keyDown, 1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeKeyPress(inputEvent(tvSize, tt.typ, tt.code, tt.value), tvSize)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("decodeKeyPress() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if _, ok := decodeKeyPress(make([]byte, tvSize+4), tvSize); ok {
		t.Error("decodeKeyPress() accepted a short record")
	}
}
