// Command preview renders every OSD widget for a set of display formats and
// writes the regions, an optional contact sheet and the palette to disk.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rook-computer/osdkit/internal/parallel"
	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/spu"
	"github.com/rook-computer/osdkit/internal/video"
	"github.com/rook-computer/osdkit/internal/widget"
)

type CLI struct {
	Format   []string       `help:"Display format as WxH or WxH@num:den (sample aspect ratio). Repeatable." default:"720x480,1280x720,720x576@16:15"`
	Out      string         `help:"Destination folder" default:"osd-preview"`
	Encoding string         `help:"Encoding of each region" enum:"png,gif,bmp,tiff" default:"png"`
	Sheet    bool           `help:"Also write a captioned contact sheet per format" default:"false"`
	Palette  bool           `help:"Also write the OSD palette as a RIFF PAL file" default:"false"`
	Workers  int            `help:"Render workers; 0 uses every CPU" default:"0"`
	Formats  []video.Format `kong:"-"`
}

func (c *CLI) Validate(kctx *kong.Context) error {
	c.Formats = c.Formats[:0]
	for _, s := range c.Format {
		f, err := video.ParseFormat(s)
		if err != nil {
			return fmt.Errorf("invalid format %q: %w", s, err)
		}
		c.Formats = append(c.Formats, f)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("no display format given")
	}

	out, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("invalid destination path %q: %w", c.Out, err)
	}
	c.Out = out
	return nil
}

// rendered is the output of one widget on one format.
type rendered struct {
	widget widget.Widget
	region *render.Region
	frame  *image.RGBA
}

func (c *CLI) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Out, err)
	}

	widgets := widget.All()
	results := make([][]rendered, len(c.Formats))
	var writtenCount, errCount atomic.Uint64

	for fi, f := range c.Formats {
		results[fi] = make([]rendered, len(widgets))
		for wi, w := range widgets {
			worker(func() {
				logger := slog.Default().With("format", f.String(), "widget", w.String())

				res := renderWidget(w, f)
				results[fi][wi] = res
				if res.region == nil {
					errCount.Add(1)
					logger.Error("widget produced no region")
					return
				}

				name := filepath.Join(c.Out, fileName(f, w.String(), c.Encoding))
				if err := saveImage(name, res.region.Paletted, c.Encoding); err != nil {
					errCount.Add(1)
					logger.Error("could not save region", "file", name, "error", err)
					return
				}
				writtenCount.Add(1)
				logger.Debug("region written", "file", name, "rect", res.region.Placement())
			})
		}
	}
	wait(true)

	if c.Sheet {
		for fi, f := range c.Formats {
			sheet, err := contactSheet(f, results[fi])
			if err != nil {
				errCount.Add(1)
				slog.Error("could not build contact sheet", "format", f.String(), "error", err)
				continue
			}
			name := filepath.Join(c.Out, fileName(f, "sheet", "png"))
			if err := saveImage(name, sheet, "png"); err != nil {
				errCount.Add(1)
				slog.Error("could not save contact sheet", "file", name, "error", err)
				continue
			}
			writtenCount.Add(1)
		}
	}

	if c.Palette {
		name := filepath.Join(c.Out, "osd.pal")
		if err := savePalette(name); err != nil {
			errCount.Add(1)
			slog.Error("could not save palette", "file", name, "error", err)
		} else {
			writtenCount.Add(1)
		}
	}

	slog.Info("stats", "written", writtenCount.Load(), "errors", errCount.Load())
	if n := errCount.Load(); n > 0 {
		return fmt.Errorf("%d outputs failed", n)
	}
	return nil
}

// renderWidget draws w through the compositor onto a full frame of format f,
// the same path the player uses.
func renderWidget(w widget.Widget, f video.Format) rendered {
	comp := spu.NewCompositor()
	defer comp.Close()

	sp := spu.New(widget.NewController(w))
	sp.Absolute = true
	comp.Put(sp)

	frame := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	comp.Render(frame, f, f, time.Now())
	return rendered{widget: w, region: sp.Frame().Region, frame: frame}
}

func fileName(f video.Format, what, ext string) string {
	num, den := f.SAR()
	slug := strings.ReplaceAll(what, " ", "-")
	return fmt.Sprintf("%dx%d_%d-%d_%s.%s", f.Width, f.Height, num, den, slug, ext)
}

func saveImage(name string, img image.Image, encoding string) (err error) {
	out, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", name, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close %q: %w", name, closeErr)
		}
	}()
	return render.Encode(out, img, encoding)
}

func savePalette(name string) (err error) {
	out, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", name, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close %q: %w", name, closeErr)
		}
	}()
	return render.WritePaletteRIFF(out, render.Palette())
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("preview"),
		kong.Description("Render every OSD widget for a set of display formats."),
		kong.UsageOnError(),
	)

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool.Do, pool.Wait)
	kctx.FatalIfErrorf(err)
}
