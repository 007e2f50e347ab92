package widget

import (
	"bytes"
	"testing"
	"time"

	"github.com/rook-computer/osdkit/internal/spu"
	"github.com/rook-computer/osdkit/internal/video"
)

func TestControllerLifecycle(t *testing.T) {
	c := NewController(Icon{Glyph: Pause})
	if got := c.State(); got != Created {
		t.Fatalf("State() = %v, want created", got)
	}

	f := video.NewFormat(720, 480)
	frame := c.Update(f, f, time.Now())
	if got := c.State(); got != Active {
		t.Errorf("State() after Update = %v, want active", got)
	}
	if frame.Region == nil {
		t.Fatal("Update returned no region")
	}
	if frame.OriginalWidth != 720 || frame.OriginalHeight != 480 {
		t.Errorf("original size = %dx%d, want 720x480", frame.OriginalWidth, frame.OriginalHeight)
	}

	c.Destroy()
	c.Destroy()
	if got := c.State(); got != Destroyed {
		t.Errorf("State() after Destroy = %v, want destroyed", got)
	}
	if frame := c.Update(f, f, time.Now()); frame.Region != nil {
		t.Error("Update after Destroy should draw nothing")
	}
}

func TestControllerValidate(t *testing.T) {
	c := NewController(Slider{})
	f := video.NewFormat(720, 480)
	tests := []struct {
		srcChanged, dstChanged bool
		want                   spu.Decision
	}{
		{false, false, spu.Reuse},
		{true, false, spu.Reuse},
		{false, true, spu.Recompute},
		{true, true, spu.Recompute},
	}
	for _, tt := range tests {
		if got := c.Validate(tt.srcChanged, f, tt.dstChanged, f, time.Now()); got != tt.want {
			t.Errorf("Validate(src %v, dst %v) = %v, want %v", tt.srcChanged, tt.dstChanged, got, tt.want)
		}
	}
}

func TestControllerClampsSlider(t *testing.T) {
	c := NewController(Slider{Orientation: Vertical, Position: 140})
	if got := c.Widget(); got != (Slider{Orientation: Vertical, Position: 100}) {
		t.Errorf("Widget() = %v, want a vertical slider at 100", got)
	}
}

func TestControllerNormalizesAspectRatio(t *testing.T) {
	anamorphic := video.NewFormat(720, 576)
	anamorphic.SARNum, anamorphic.SARDen = 16, 15
	square := video.NewFormat(768, 576)

	for _, w := range All() {
		a := NewController(w).Update(anamorphic, anamorphic, time.Time{})
		b := NewController(w).Update(square, square, time.Time{})
		if a.Region == nil || b.Region == nil {
			t.Fatalf("%s: missing region", w)
		}
		if a.OriginalWidth != 768 || a.OriginalHeight != 576 {
			t.Errorf("%s: original size = %dx%d, want 768x576", w, a.OriginalWidth, a.OriginalHeight)
		}
		if a.Region.Placement() != b.Region.Placement() || !bytes.Equal(a.Region.Pix, b.Region.Pix) {
			t.Errorf("%s: anamorphic and square renders differ", w)
		}
	}
}

func TestControllerSkipsUnallocatableRegion(t *testing.T) {
	huge := video.NewFormat(100000, 100000)
	frame := NewController(Slider{Orientation: Horizontal}).Update(huge, huge, time.Now())
	if frame.Region != nil {
		t.Error("expected no region for an oversized slider")
	}
	if frame.OriginalWidth != 100000 {
		t.Errorf("OriginalWidth = %d, want 100000", frame.OriginalWidth)
	}
}
