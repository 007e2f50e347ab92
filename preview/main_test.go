package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/rook-computer/osdkit/internal/parallel"
	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/video"
	"github.com/rook-computer/osdkit/internal/widget"
)

func TestValidate(t *testing.T) {
	c := &CLI{Format: []string{"720x480", "720x576@16:15"}, Out: "out"}
	if err := c.Validate(nil); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if len(c.Formats) != 2 {
		t.Fatalf("Formats = %v, want 2 entries", c.Formats)
	}
	if num, den := c.Formats[1].SAR(); num != 16 || den != 15 {
		t.Errorf("SAR = %d:%d, want 16:15", num, den)
	}
	if !filepath.IsAbs(c.Out) {
		t.Errorf("Out = %q, want an absolute path", c.Out)
	}

	bad := &CLI{Format: []string{"wide"}, Out: "out"}
	if err := bad.Validate(nil); err == nil {
		t.Error("Validate() accepted an invalid format")
	}
	empty := &CLI{Out: "out"}
	if err := empty.Validate(nil); err == nil {
		t.Error("Validate() accepted no format")
	}
}

func TestRunWritesEveryWidget(t *testing.T) {
	out := t.TempDir()
	c := &CLI{
		Formats:  []video.Format{video.NewFormat(720, 480)},
		Out:      out,
		Encoding: "png",
		Sheet:    true,
		Palette:  true,
	}
	pool := parallel.Start(2)
	if err := c.Run(pool.Do, pool.Wait); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	want := len(widget.All()) + 2
	if len(entries) != want {
		t.Errorf("wrote %d files, want %d", len(entries), want)
	}
	if _, err := os.Stat(filepath.Join(out, "osd.pal")); err != nil {
		t.Errorf("palette missing: %v", err)
	}
}

func TestRenderWidgetMatchesRegion(t *testing.T) {
	f := video.NewFormat(720, 480)
	res := renderWidget(widget.Icon{Glyph: widget.Pause}, f)
	if res.region == nil {
		t.Fatal("no region")
	}
	place := res.region.Placement()
	if got := res.frame.RGBAAt(place.Min.X, place.Min.Y); got.A == 0 {
		t.Errorf("frame at region corner %v is transparent", place.Min)
	}
	if res.region.Index(0, 0) == render.Transparent {
		t.Error("region corner is transparent")
	}
	if got := res.frame.Bounds(); got != image.Rect(0, 0, 720, 480) {
		t.Errorf("frame bounds = %v", got)
	}
}

func TestFileName(t *testing.T) {
	f, err := video.ParseFormat("720x576@16:15")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := fileName(f, "play icon", "png"), "720x576_16-15_play-icon.png"; got != want {
		t.Errorf("fileName() = %q, want %q", got, want)
	}
}
