package render

import "testing"

func TestQRRegionEmptyPayload(t *testing.T) {
	r, err := QRRegion("", 0, 0, 4)
	if err != nil || r != nil {
		t.Errorf("QRRegion(\"\") = %v, %v; want nil, nil", r, err)
	}
}

func TestQRRegion(t *testing.T) {
	const modulePx = 3
	r, err := QRRegion("http://192.168.1.20:80/api/v1/", 10, 20, modulePx)
	if err != nil {
		t.Fatalf("QRRegion: %v", err)
	}
	if r.Width() != r.Height() {
		t.Errorf("size = %dx%d, want a square", r.Width(), r.Height())
	}
	if r.Width()%modulePx != 0 {
		t.Errorf("width %d is not a multiple of the module size %d", r.Width(), modulePx)
	}
	if r.X != 10 || r.Y != 20 {
		t.Errorf("placement = (%d, %d), want (10, 20)", r.X, r.Y)
	}
	if got := r.Count(Transparent); got != 0 {
		t.Errorf("Count(Transparent) = %d, want 0", got)
	}
	if r.Count(Black) == 0 || r.Count(White) == 0 {
		t.Error("expected both dark and light modules")
	}
	// quiet zone
	if got := r.Index(0, 0); got != White {
		t.Errorf("corner Index = %v, want white", got)
	}
}

func TestQRRegionDefaultModuleSize(t *testing.T) {
	small, err := QRRegion("osd", 0, 0, 1)
	if err != nil {
		t.Fatalf("QRRegion: %v", err)
	}
	def, err := QRRegion("osd", 0, 0, 0)
	if err != nil {
		t.Fatalf("QRRegion: %v", err)
	}
	if got, want := def.Width(), small.Width()*defaultQRModulePx; got != want {
		t.Errorf("default width = %d, want %d", got, want)
	}
}
