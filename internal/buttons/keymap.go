package buttons

// Linux input-event-codes.h
const (
	keyQ     = 16
	keyM     = 50
	keySpace = 57
	keyF4    = 62
	keyUp    = 103
	keyLeft  = 105
	keyRight = 106
	keyDown  = 108
)

var keymap = map[uint16]Event{
	keySpace: TogglePause,
	keyRight: SeekForward,
	keyLeft:  SeekBackward,
	keyUp:    VolumeUp,
	keyDown:  VolumeDown,
	keyM:     ToggleMute,
	keyF4:    Exit,
	keyQ:     Exit,
}

func keyEvent(code uint16) (Event, bool) {
	ev, ok := keymap[code]
	return ev, ok
}
