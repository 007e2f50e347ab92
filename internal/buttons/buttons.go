package buttons

import (
	"context"
	"sync"
)

type Event string

const (
	TogglePause  Event = "toggle-pause"
	SeekForward  Event = "seek-forward"
	SeekBackward Event = "seek-backward"
	VolumeUp     Event = "volume-up"
	VolumeDown   Event = "volume-down"
	ToggleMute   Event = "toggle-mute"
	Exit         Event = "exit"
)

// Events lists every event in a stable order.
var Events = []Event{TogglePause, SeekForward, SeekBackward, VolumeUp, VolumeDown, ToggleMute, Exit}

// ParseEvent reports whether s names a known event.
func ParseEvent(s string) (Event, bool) {
	for _, e := range Events {
		if string(e) == s {
			return e, true
		}
	}
	return "", false
}

type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error                     { close(n.ch); return nil }
func (n *NoopButtons) Events() <-chan Event            { return n.ch }

// ManualButtons delivers events pushed with Press. It backs the simulator and
// tests.
type ManualButtons struct {
	ch   chan Event
	once sync.Once
	done chan struct{}
}

func NewManualButtons() *ManualButtons {
	return &ManualButtons{ch: make(chan Event, 16), done: make(chan struct{})}
}

func (m *ManualButtons) Start(ctx context.Context) error { return nil }

func (m *ManualButtons) Stop() error {
	m.once.Do(func() { close(m.done) })
	return nil
}

func (m *ManualButtons) Events() <-chan Event { return m.ch }

// Press queues ev. It reports false once the buttons are stopped or the queue
// is full.
func (m *ManualButtons) Press(ev Event) bool {
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.ch <- ev:
		return true
	default:
		return false
	}
}
