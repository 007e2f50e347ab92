//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// key press, not release (0) or autorepeat (2)
	keyPressed = 1
)

type keyboardLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Keyboard reads Linux evdev devices under /dev/input/event* and maps keys to
// player events.
//
// It is best-effort: if no input devices are available, it logs and delivers
// nothing.
type Keyboard struct {
	Logger keyboardLogger

	ch     chan Event
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewKeyboard(logger keyboardLogger) *Keyboard {
	return &Keyboard{Logger: logger, ch: make(chan Event, 16)}
}

func (k *Keyboard) Events() <-chan Event { return k.ch }

func (k *Keyboard) Start(ctx context.Context) error {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		k.infof("no evdev devices found for keyboard control")
		return nil
	}

	readCtx, cancel := context.WithCancel(ctx)
	k.cancel = cancel

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	for _, path := range paths {
		k.wg.Add(1)
		go func(p string) {
			defer k.wg.Done()
			k.read(readCtx, p, tvSize, eventSize)
		}(path)
	}
	k.infof("keyboard control on %d devices", len(paths))
	return nil
}

func (k *Keyboard) Stop() error {
	if k.cancel != nil {
		k.cancel()
	}
	k.wg.Wait()
	return nil
}

func (k *Keyboard) read(ctx context.Context, path string, tvSize, eventSize int) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			if ev, ok := decodeKeyPress(buf[off:off+eventSize], tvSize); ok {
				k.emit(ctx, ev)
			}
		}
	}
}

// decodeKeyPress maps one input_event record to a player event. Only key
// presses of mapped keys produce one.
func decodeKeyPress(rec []byte, tvSize int) (Event, bool) {
	if len(rec) < tvSize+8 {
		return "", false
	}
	typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
	code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
	value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
	if typ != evKey || value != keyPressed {
		return "", false
	}
	return keyEvent(code)
}

func (k *Keyboard) emit(ctx context.Context, ev Event) {
	select {
	case k.ch <- ev:
	case <-ctx.Done():
	default:
		k.errorf("dropping %s: event queue full", ev)
	}
}

func (k *Keyboard) infof(format string, args ...interface{}) {
	if k.Logger != nil {
		k.Logger.Infof("input", format, args...)
	}
}

func (k *Keyboard) errorf(format string, args ...interface{}) {
	if k.Logger != nil {
		k.Logger.Errorf("input", format, args...)
	}
}
