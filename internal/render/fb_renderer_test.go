package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/rook-computer/osdkit/internal/state"
	"github.com/rook-computer/osdkit/internal/video"
)

type recordingScreen struct {
	draws int
	last  state.State
}

func (s *recordingScreen) Start(ctx context.Context) error { return nil }
func (s *recordingScreen) Stop() error                     { return nil }

func (s *recordingScreen) Draw(r Drawer, st state.State) {
	s.draws++
	s.last = st
	r.FillRect(image.Rect(0, 0, 10, 10), color.RGBA{R: 0xff, A: 0xff})
}

type recordingOverlay struct {
	calls int
	dst   video.Format
}

func (o *recordingOverlay) Render(frame draw.Image, src, dst video.Format, now time.Time) int {
	o.calls++
	o.dst = dst
	frame.Set(20, 20, color.RGBA{G: 0xff, A: 0xff})
	return 1
}

func startHeadless(t *testing.T) *FBRenderer {
	t.Helper()
	r := NewFBRenderer("")
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = r.Stop() })
	return r
}

func TestFBRendererHeadlessRedraw(t *testing.T) {
	r := startHeadless(t)
	r.SARNum, r.SARDen = 16, 15

	if snap := r.Snapshot(); snap != nil {
		t.Fatal("Snapshot before the first redraw should be nil")
	}

	screen := &recordingScreen{}
	overlay := &recordingOverlay{}
	r.SetScreen(screen)
	r.Overlay = overlay

	st := state.State{Phase: state.PAUSED, Position: 40, Volume: 70}
	r.RedrawWithState(st)

	if screen.draws != 1 || screen.last != st {
		t.Errorf("screen draws = %d with %+v, want 1 with %+v", screen.draws, screen.last, st)
	}
	if overlay.calls != 1 {
		t.Fatalf("overlay calls = %d, want 1", overlay.calls)
	}
	if num, den := overlay.dst.SAR(); num != 16 || den != 15 {
		t.Errorf("overlay SAR = %d:%d, want 16:15", num, den)
	}

	snap := r.Snapshot()
	if snap == nil {
		t.Fatal("Snapshot after redraw is nil")
	}
	if got, want := snap.Bounds(), image.Rect(0, 0, CanvasWidth, CanvasHeight); got != want {
		t.Errorf("Snapshot bounds = %v, want %v", got, want)
	}
	if got := snap.RGBAAt(5, 5); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("screen pixel = %v, want red", got)
	}
	if got := snap.RGBAAt(20, 20); got != (color.RGBA{G: 0xff, A: 0xff}) {
		t.Errorf("overlay pixel = %v, want green", got)
	}
	if got := snap.RGBAAt(CanvasWidth-1, CanvasHeight-1); got != Background {
		t.Errorf("background pixel = %v, want %v", got, Background)
	}

	// snapshots are copies
	snap.SetRGBA(5, 5, color.RGBA{})
	if got := r.Snapshot().RGBAAt(5, 5); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Error("Snapshot shares storage with the renderer")
	}
}

func TestFBRendererStoppedSkipsRedraw(t *testing.T) {
	r := startHeadless(t)
	_ = r.Stop()
	r.RedrawWithState(state.State{})
	if r.Snapshot() != nil {
		t.Error("a stopped renderer should not produce frames")
	}
}

func TestFBRendererText(t *testing.T) {
	r := startHeadless(t)
	r.FillBackground()

	style := TextStyle{Size: 24}
	m := r.MeasureText("paused", style)
	if m.Width <= 0 || m.Height <= 0 || m.Ascent <= 0 {
		t.Fatalf("MeasureText = %+v, want positive metrics", m)
	}
	if wide := r.MeasureText("paused paused", style); wide.Width <= m.Width {
		t.Errorf("longer text measured %d, want more than %d", wide.Width, m.Width)
	}

	drawn := r.DrawText("paused", 100, 100, TextStyle{Size: 24, Align: TextAlignCenter})
	if drawn != m {
		t.Errorf("DrawText metrics = %+v, want %+v", drawn, m)
	}

	changed := 0
	for y := 100; y < 100+m.Height; y++ {
		for x := 100 - m.Width/2; x < 100+m.Width/2+1; x++ {
			if r.canvas.RGBAAt(x, y) != Background {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("DrawText left the text box untouched")
	}
}
