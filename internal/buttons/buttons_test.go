package buttons

import "testing"

func TestParseEvent(t *testing.T) {
	for _, ev := range Events {
		got, ok := ParseEvent(string(ev))
		if !ok || got != ev {
			t.Errorf("ParseEvent(%q) = %q, %v", ev, got, ok)
		}
	}
	if _, ok := ParseEvent("rewind"); ok {
		t.Error(`ParseEvent("rewind") succeeded`)
	}
}

func TestManualButtons(t *testing.T) {
	m := NewManualButtons()
	if !m.Press(VolumeUp) {
		t.Fatal("Press() = false on a running driver")
	}
	if got := <-m.Events(); got != VolumeUp {
		t.Errorf("event = %q, want %q", got, VolumeUp)
	}

	if err := m.Stop(); err != nil {
		t.Fatalf("Stop() = %v", err)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("second Stop() = %v", err)
	}
	if m.Press(VolumeDown) {
		t.Error("Press() = true after Stop")
	}
}

func TestManualButtonsFullQueue(t *testing.T) {
	m := NewManualButtons()
	for i := 0; i < cap(m.ch); i++ {
		if !m.Press(SeekForward) {
			t.Fatalf("Press() %d = false before the queue filled", i)
		}
	}
	if m.Press(SeekForward) {
		t.Error("Press() = true on a full queue")
	}
}

func TestKeymap(t *testing.T) {
	tests := []struct {
		code uint16
		want Event
	}{
		{keySpace, TogglePause},
		{keyRight, SeekForward},
		{keyLeft, SeekBackward},
		{keyUp, VolumeUp},
		{keyDown, VolumeDown},
		{keyM, ToggleMute},
		{keyQ, Exit},
	}
	for _, tt := range tests {
		if got, ok := keyEvent(tt.code); !ok || got != tt.want {
			t.Errorf("keyEvent(%d) = %q, %v; want %q", tt.code, got, ok, tt.want)
		}
	}
	if _, ok := keyEvent(1); ok {
		t.Error("keyEvent(1) mapped an unbound key")
	}
}
