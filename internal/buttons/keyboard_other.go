//go:build !linux

package buttons

import "context"

type keyboardLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Keyboard is only implemented on Linux; elsewhere it delivers nothing.
type Keyboard struct {
	Logger keyboardLogger
	ch     chan Event
}

func NewKeyboard(logger keyboardLogger) *Keyboard {
	return &Keyboard{Logger: logger, ch: make(chan Event)}
}

func (k *Keyboard) Start(ctx context.Context) error {
	if k.Logger != nil {
		k.Logger.Infof("input", "keyboard control is not supported on this platform")
	}
	return nil
}

func (k *Keyboard) Stop() error          { return nil }
func (k *Keyboard) Events() <-chan Event { return k.ch }
