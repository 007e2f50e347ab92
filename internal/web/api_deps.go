package web

import (
	"errors"
	"image"

	"github.com/rook-computer/osdkit/internal/buttons"
	"github.com/rook-computer/osdkit/internal/state"
	"github.com/rook-computer/osdkit/internal/widget"
)

// Player is the part of the app the API drives.
type Player interface {
	State() state.State
	Dispatch(ev buttons.Event) error
	ShowSlider(channel int, o widget.Orientation, position int)
	ShowIcon(channel int, g widget.Glyph)
}

// Frames provides the last composited frame.
type Frames interface {
	Snapshot() *image.RGBA
}

type APIV1Deps struct {
	Player Player
	Frames Frames
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Player == nil {
		out.Player = NoopPlayer{Err: errors.New("player not configured")}
	}
	if out.Frames == nil {
		out.Frames = NoopFrames{}
	}
	return out
}

// NoopPlayer reports a stopped player and rejects every action.
type NoopPlayer struct{ Err error }

func (p NoopPlayer) Dispatch(buttons.Event) error {
	if p.Err != nil {
		return p.Err
	}
	return errors.New("player not configured")
}

func (p NoopPlayer) State() state.State                      { return state.State{} }
func (p NoopPlayer) ShowSlider(int, widget.Orientation, int) {}
func (p NoopPlayer) ShowIcon(int, widget.Glyph)              {}

// NoopFrames has no frame to offer.
type NoopFrames struct{}

func (NoopFrames) Snapshot() *image.RGBA { return nil }
