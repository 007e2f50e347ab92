package screens

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/render/layout"
	"github.com/rook-computer/osdkit/internal/state"
)

const (
	paddingPx     = 48
	progressPx    = 12
	statusFontPt  = 56
	captionFontPt = 24
)

// PlayerScreen shows the playback phase, the stream position and the volume.
// The OSD widgets are drawn on top of it by the renderer.
type PlayerScreen struct {
	mu      sync.RWMutex
	caption string
}

func NewPlayerScreen() *PlayerScreen {
	return &PlayerScreen{}
}

func (screen *PlayerScreen) Start(ctx context.Context) error { return nil }
func (screen *PlayerScreen) Stop() error                     { return nil }

// SetCaption sets a line shown under the status, such as the remote URL.
func (screen *PlayerScreen) SetCaption(caption string) {
	screen.mu.Lock()
	screen.caption = caption
	screen.mu.Unlock()
}

func (screen *PlayerScreen) Draw(r render.Drawer, st state.State) {
	width, height := r.Size()
	area := layout.Inset(image.Rect(0, 0, width, height), paddingPx)
	top, bottom := layout.SplitHorizontal(area, area.Dy()/2)

	r.FillBackground()

	status := r.MeasureText(st.Phase.String(), render.TextStyle{Size: statusFontPt})
	r.DrawText(st.Phase.String(), width/2, top.Max.Y-status.Height, render.TextStyle{Size: statusFontPt, Align: render.TextAlignCenter})

	screen.mu.RLock()
	caption := screen.caption
	screen.mu.RUnlock()
	if caption != "" {
		r.DrawText(caption, width/2, top.Max.Y+paddingPx/2, render.TextStyle{Size: captionFontPt, Align: render.TextAlignCenter, Color: render.Accent})
	}

	// Progress bar along the bottom, filled up to the stream position.
	_, barArea := layout.SplitHorizontal(bottom, bottom.Dy()-progressPx)
	r.FillRect(barArea, render.Foreground)
	filled, _ := layout.SplitVertical(barArea, barArea.Dx()*st.Position/100)
	r.FillRect(filled, render.Accent)

	info := fmt.Sprintf("position %d%%", st.Position)
	volume := fmt.Sprintf("volume %d%%", st.Volume)
	if st.Muted {
		volume = "muted"
	}
	style := render.TextStyle{Size: captionFontPt}
	m := r.MeasureText(info, style)
	r.DrawText(info, barArea.Min.X, barArea.Min.Y-m.Height-progressPx, style)
	style.Align = render.TextAlignRight
	r.DrawText(volume, barArea.Max.X, barArea.Min.Y-m.Height-progressPx, style)
}
