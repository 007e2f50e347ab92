package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/osdkit/internal/assets"
	"github.com/rook-computer/osdkit/internal/state"
	"github.com/rook-computer/osdkit/internal/video"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Overlay composites timed overlays onto a finished frame.
type Overlay interface {
	Render(frame draw.Image, src, dst video.Format, now time.Time) int
}

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
// With no Device it renders headless; Snapshot still returns every frame.
type FBRenderer struct {
	Device  string
	Overlay Overlay
	Logger  interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
	// Sample aspect ratio of the display the canvas is shown on.
	SARNum, SARDen int
	FPS            int
	Debug          bool

	fbDev   *fb.Device
	canvas  *image.RGBA
	ttFont  *opentype.Font
	faces   map[int]font.Face
	running atomic.Bool

	mu      sync.Mutex
	current Screen
	last    *image.RGBA
}

func NewFBRenderer(device string) *FBRenderer {
	return &FBRenderer{Device: device, SARNum: 1, SARDen: 1, FPS: 30}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	if r.Device != "" {
		dev, err := fb.Open(r.Device)
		if err != nil {
			return err
		}
		r.fbDev = dev
		if r.Logger != nil {
			bounds := dev.Bounds()
			r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", r.Device, bounds.Dx(), bounds.Dy())
		}
	} else if r.Logger != nil {
		r.Logger.Infof("fb", "no framebuffer device, rendering headless")
	}

	// Prepare logical canvas
	r.canvas = image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	r.faces = make(map[int]font.Face)

	fnt, err := opentype.Parse(assets.FontTTF)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Errorf("fb", "font parse failed, using basicfont: %v", err)
		}
	} else {
		r.ttFont = fnt
	}

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	for _, face := range r.faces {
		_ = face.Close()
	}
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.mu.Unlock()
}

// VideoFormat describes the canvas as a display for the overlay compositor.
func (r *FBRenderer) VideoFormat() video.Format {
	f := video.NewFormat(CanvasWidth, CanvasHeight)
	f.SARNum, f.SARDen = r.SARNum, r.SARDen
	return f
}

// RedrawWithState draws the current screen, composites the overlays and
// pushes the frame to the framebuffer.
func (r *FBRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() {
		return
	}
	r.mu.Lock()
	current := r.current
	r.mu.Unlock()

	// Clear canvas to background each frame for consistent rendering
	r.FillBackground()
	if current != nil {
		current.Draw(r, snap)
	}
	drawn := 0
	if r.Overlay != nil {
		f := r.VideoFormat()
		drawn = r.Overlay.Render(r.canvas, f, f, time.Now())
	}

	frame := image.NewRGBA(r.canvas.Bounds())
	copy(frame.Pix, r.canvas.Pix)
	r.mu.Lock()
	r.last = frame
	r.mu.Unlock()

	if r.fbDev != nil {
		blitToFB(r.fbDev, r.canvas)
	}
	if r.Debug && r.Logger != nil {
		r.Logger.Infof("fb", "redraw done, phase=%s overlays=%d", snap.Phase, drawn)
	}
}

// Snapshot returns a copy of the last composited frame.
func (r *FBRenderer) Snapshot() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil
	}
	frame := image.NewRGBA(r.last.Bounds())
	copy(frame.Pix, r.last.Pix)
	return frame
}

// RunLoop continuously redraws at FPS until the context is done.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	fps := r.FPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := store.Snapshot()
			r.RedrawWithState(snap)
			if r.Logger != nil && time.Since(lastLog) > 10*time.Second {
				r.Logger.Infof("fb", "heartbeat frame, phase=%s", snap.Phase)
				lastLog = time.Now()
			}
		}
	}
}

// Drawer primitives

func (r *FBRenderer) Size() (int, int) {
	return CanvasWidth, CanvasHeight
}

func (r *FBRenderer) FillBackground() {
	draw.Draw(r.canvas, r.canvas.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
}

func (r *FBRenderer) FillRect(rect image.Rectangle, c color.Color) {
	draw.Draw(r.canvas, rect.Intersect(r.canvas.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Over)
}

func (r *FBRenderer) MeasureText(text string, style TextStyle) TextMetrics {
	face := r.face(style.Size)
	drawer := &font.Drawer{Face: face}
	metrics := face.Metrics()
	return TextMetrics{
		Width:      drawer.MeasureString(text).Ceil(),
		Height:     (metrics.Ascent + metrics.Descent).Ceil(),
		Ascent:     metrics.Ascent.Ceil(),
		Descent:    metrics.Descent.Ceil(),
		LineHeight: metrics.Height.Ceil(),
	}
}

func (r *FBRenderer) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := r.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	fg := style.Color
	if fg == nil {
		fg = Foreground
	}
	drawer := &font.Drawer{
		Dst:  r.canvas,
		Src:  image.NewUniform(fg),
		Face: r.face(style.Size),
		Dot:  fixed.P(x, y+m.Ascent),
	}
	drawer.DrawString(text)
	return m
}

// face returns a cached face for size, falling back to basicfont when the
// embedded font is unavailable.
func (r *FBRenderer) face(size int) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	if r.ttFont == nil {
		return basicfont.Face7x13
	}
	if face, ok := r.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(r.ttFont, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		if r.Logger != nil {
			r.Logger.Errorf("fb", "font face create failed, using basicfont: %v", err)
		}
		return basicfont.Face7x13
	}
	r.faces[size] = face
	return face
}

// Helper: blit canvas to framebuffer via nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA) {
	xdraw.NearestNeighbor.Scale(dev, dev.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)
}
