package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/osdkit/internal/app/screens"
	"github.com/rook-computer/osdkit/internal/buttons"
	"github.com/rook-computer/osdkit/internal/osd"
	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/spu"
	"github.com/rook-computer/osdkit/internal/state"
	"github.com/rook-computer/osdkit/internal/system"
	"github.com/rook-computer/osdkit/internal/web"
	"github.com/rook-computer/osdkit/internal/widget"
)

// Step sizes, in percent, for one seek or volume event.
const (
	SeekStep   = 5
	VolumeStep = 5
)

var ErrUnknownEvent = errors.New("unknown event")

type App struct {
	Store      *state.Store
	Render     render.Renderer
	Web        web.Server
	Buttons    buttons.Buttons
	Compositor *spu.Compositor
	OSD        *osd.Display
	Logger     Logger
	Debug      bool

	// Console switches the VT to graphics mode while the app runs.
	Console bool
	// RemoteURL, when set, is shown as a QR badge at startup.
	RemoteURL string

	osdChannel    int
	badgeChannel  int
	currentScreen *screens.PlayerScreen

	exitOnce atomic.Bool
	exitCh   chan error
}

// New wires the subsystems. A nil compositor gets a default one.
func New(store *state.Store, renderer render.Renderer, webServer web.Server, buttonDriver buttons.Buttons, compositor *spu.Compositor, osdCfg osd.Config) *App {
	if compositor == nil {
		compositor = spu.NewCompositor()
	}
	app := &App{
		Store:      store,
		Render:     renderer,
		Web:        webServer,
		Buttons:    buttonDriver,
		Compositor: compositor,
		OSD:        osd.NewDisplay(compositor, osdCfg),
		Logger:     NoopLogger{},
		exitCh:     make(chan error, 1),
	}
	app.osdChannel = compositor.RegisterChannel()
	app.badgeChannel = compositor.RegisterChannel()
	return app
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if sl, ok := app.Logger.(SlogLogger); ok && app.OSD.Logger == nil {
		app.OSD.Logger = sl.Slog()
	}

	// Initialize renderer and draw first screen
	if app.Render == nil {
		app.Render = &render.NoopRenderer{}
	}
	if fb, ok := app.Render.(*render.FBRenderer); ok {
		fb.Logger = app.Logger
		fb.Debug = app.Debug
		fb.Overlay = app.Compositor
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()
	defer app.Compositor.Close()

	if app.Console {
		restore := system.EnterGraphicsConsole(app.Logger)
		defer restore()
	}

	player := screens.NewPlayerScreen()
	player.SetCaption(app.RemoteURL)
	if err := app.setScreen(ctx, player); err != nil {
		return err
	}

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("web", "server start error: %v", err)
			return err
		}
		defer app.Web.Stop()
	}

	if app.Buttons == nil {
		app.Buttons = buttons.NewNoopButtons()
	}
	if err := app.Buttons.Start(ctx); err != nil {
		app.Logger.Errorf("buttons", "start error: %v", err)
		return err
	}
	defer app.Buttons.Stop()

	app.ShowRemoteQR(app.RemoteURL)

	// Force immediate first redraw so the screen shows without waiting for the loop.
	app.Render.RedrawWithState(app.Store.Snapshot())

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()
	go func() {
		defer wg.Done()
		app.pumpEvents(loopCtx)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	return err
}

func (app *App) pumpEvents(ctx context.Context) {
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := app.Dispatch(ev); err != nil {
				app.Logger.Errorf("buttons", "dispatch %q: %v", ev, err)
			}
		}
	}
}

// Dispatch applies ev to the player state and shows the matching OSD widget.
func (app *App) Dispatch(ev buttons.Event) error {
	if app.Debug {
		app.Logger.Infof("app", "event %s", ev)
	}
	switch ev {
	case buttons.TogglePause:
		glyph := widget.Play
		if app.Store.TogglePause() == state.PAUSED {
			glyph = widget.Pause
		}
		app.OSD.Icon(app.osdChannel, glyph)
	case buttons.SeekForward, buttons.SeekBackward:
		delta := SeekStep
		if ev == buttons.SeekBackward {
			delta = -delta
		}
		app.OSD.Slider(app.osdChannel, app.Store.Seek(delta), widget.Horizontal)
	case buttons.VolumeUp, buttons.VolumeDown:
		delta := VolumeStep
		if ev == buttons.VolumeDown {
			delta = -delta
		}
		app.OSD.Slider(app.osdChannel, app.Store.AdjustVolume(delta), widget.Vertical)
	case buttons.ToggleMute:
		glyph := widget.Speaker
		if app.Store.ToggleMute() {
			glyph = widget.Mute
		}
		app.OSD.Icon(app.osdChannel, glyph)
	case buttons.Exit:
		app.Exit(nil)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev)
	}
	return nil
}

// State returns the current player state.
func (app *App) State() state.State { return app.Store.Snapshot() }

// ShowSlider shows a slider on channel; 0 selects the OSD channel.
func (app *App) ShowSlider(channel int, o widget.Orientation, position int) {
	app.OSD.Slider(app.channel(channel), position, o)
}

// ShowIcon shows a status icon on channel; 0 selects the OSD channel.
func (app *App) ShowIcon(channel int, g widget.Glyph) {
	app.OSD.Icon(app.channel(channel), g)
}

// ShowRemoteQR shows url as a QR badge for osd.BadgeDuration.
func (app *App) ShowRemoteQR(url string) {
	if url == "" {
		return
	}
	app.Logger.Infof("app", "remote control at %s", url)
	app.OSD.Badge(app.badgeChannel, url, osd.BadgeDuration)
}

func (app *App) channel(ch int) int {
	if ch == 0 {
		return app.osdChannel
	}
	return ch
}

func (app *App) setScreen(ctx context.Context, screen *screens.PlayerScreen) error {
	if app.currentScreen != nil {
		_ = app.currentScreen.Stop()
	}
	app.currentScreen = screen
	app.Render.SetScreen(screen)
	return screen.Start(ctx)
}

func (app *App) Stop() error {
	return nil
}
