package video

import (
	"image"
	"testing"
)

func TestNormalize(t *testing.T) {
	f := NewFormat(720, 576)
	f.SARNum, f.SARDen = 16, 15
	f.XOffset = 15

	got := f.Normalize()
	if got.Width != 768 || got.VisibleWidth != 768 || got.XOffset != 16 {
		t.Errorf("Normalize() widths = %d/%d/+%d, want 768/768/+16", got.Width, got.VisibleWidth, got.XOffset)
	}
	if got.Height != 576 || got.VisibleHeight != 576 {
		t.Errorf("Normalize() changed heights: %d/%d", got.Height, got.VisibleHeight)
	}
	if num, den := got.SAR(); num != 1 || den != 1 {
		t.Errorf("SAR after Normalize = %d:%d, want 1:1", num, den)
	}
	if again := got.Normalize(); again != got {
		t.Errorf("Normalize is not idempotent: %v then %v", got, again)
	}
}

func TestSARDefaults(t *testing.T) {
	f := Format{Width: 10, Height: 10, VisibleWidth: 10, VisibleHeight: 10}
	if num, den := f.SAR(); num != 1 || den != 1 {
		t.Errorf("SAR() = %d:%d, want 1:1", num, den)
	}
	if got := f.Normalize(); got.VisibleWidth != 10 {
		t.Errorf("Normalize() VisibleWidth = %d, want 10", got.VisibleWidth)
	}
}

func TestVisible(t *testing.T) {
	f := NewFormat(720, 576)
	f.VisibleWidth, f.VisibleHeight = 704, 560
	f.XOffset, f.YOffset = 8, 8
	if got, want := f.Visible(), image.Rect(8, 8, 712, 568); got != want {
		t.Errorf("Visible() = %v, want %v", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		w, h     int
		num, den int
		wantErr  bool
	}{
		{in: "720x480", w: 720, h: 480, num: 1, den: 1},
		{in: " 1280x720 ", w: 1280, h: 720, num: 1, den: 1},
		{in: "720x576@16:15", w: 720, h: 576, num: 16, den: 15},
		{in: "720", wantErr: true},
		{in: "0x480", wantErr: true},
		{in: "axb", wantErr: true},
		{in: "720x480@16", wantErr: true},
		{in: "720x480@0:1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFormat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFormat(%q) = %v, want an error", tt.in, f)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.in, err)
			}
			num, den := f.SAR()
			if f.Width != tt.w || f.Height != tt.h || f.VisibleWidth != tt.w || f.VisibleHeight != tt.h || num != tt.num || den != tt.den {
				t.Errorf("ParseFormat(%q) = %v", tt.in, f)
			}
		})
	}
}
