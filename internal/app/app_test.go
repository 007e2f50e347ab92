package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rook-computer/osdkit/internal/buttons"
	"github.com/rook-computer/osdkit/internal/osd"
	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/spu"
	"github.com/rook-computer/osdkit/internal/state"
	"github.com/rook-computer/osdkit/internal/widget"
)

func newTestApp(t *testing.T, cfg osd.Config) *App {
	t.Helper()
	store := state.NewStore()
	store.SetPhase(state.PLAYING)
	a := New(store, &render.NoopRenderer{}, nil, buttons.NewManualButtons(), spu.NewCompositor(), cfg)
	t.Cleanup(a.Compositor.Close)
	return a
}

func TestDispatchUpdatesState(t *testing.T) {
	a := newTestApp(t, osd.DefaultConfig())

	steps := []struct {
		ev   buttons.Event
		want state.State
	}{
		{buttons.TogglePause, state.State{Phase: state.PAUSED, Volume: 100}},
		{buttons.SeekForward, state.State{Phase: state.PAUSED, Position: SeekStep, Volume: 100}},
		{buttons.SeekBackward, state.State{Phase: state.PAUSED, Volume: 100}},
		{buttons.SeekBackward, state.State{Phase: state.PAUSED, Volume: 100}},
		{buttons.VolumeDown, state.State{Phase: state.PAUSED, Volume: 100 - VolumeStep}},
		{buttons.ToggleMute, state.State{Phase: state.PAUSED, Volume: 100 - VolumeStep, Muted: true}},
		{buttons.VolumeUp, state.State{Phase: state.PAUSED, Volume: 100}},
		{buttons.TogglePause, state.State{Phase: state.PLAYING, Volume: 100}},
	}
	for _, step := range steps {
		if err := a.Dispatch(step.ev); err != nil {
			t.Fatalf("Dispatch(%q) = %v", step.ev, err)
		}
		if got := a.State(); got != step.want {
			t.Errorf("after %q: state = %+v, want %+v", step.ev, got, step.want)
		}
	}

	// Every widget shares the OSD channel, so only the latest one is queued.
	if got := a.Compositor.Len(); got != 1 {
		t.Errorf("Compositor.Len() = %d, want 1", got)
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	a := newTestApp(t, osd.DefaultConfig())
	err := a.Dispatch(buttons.Event("rewind"))
	if !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("Dispatch(rewind) = %v, want ErrUnknownEvent", err)
	}
}

func TestDispatchWithOSDDisabled(t *testing.T) {
	a := newTestApp(t, osd.Config{Enabled: false, Duration: time.Second})
	if err := a.Dispatch(buttons.VolumeDown); err != nil {
		t.Fatalf("Dispatch() = %v", err)
	}
	if got := a.State().Volume; got != 100-VolumeStep {
		t.Errorf("Volume = %d, want %d", got, 100-VolumeStep)
	}
	if got := a.Compositor.Len(); got != 0 {
		t.Errorf("Compositor.Len() = %d with the OSD disabled, want 0", got)
	}
}

func TestShowOnChannels(t *testing.T) {
	a := newTestApp(t, osd.DefaultConfig())
	a.ShowIcon(0, widget.Play)
	a.ShowSlider(0, widget.Horizontal, 10)
	if got := a.Compositor.Len(); got != 1 {
		t.Errorf("channel 0 widgets: Len() = %d, want 1", got)
	}

	other := a.Compositor.RegisterChannel()
	a.ShowSlider(other, widget.Vertical, 70)
	if got := a.Compositor.Len(); got != 2 {
		t.Errorf("after a second channel: Len() = %d, want 2", got)
	}

	a.ShowRemoteQR("")
	a.ShowRemoteQR("http://192.0.2.1/api/v1/")
	if got := a.Compositor.Len(); got != 3 {
		t.Errorf("after the badge: Len() = %d, want 3", got)
	}
}

func TestStartRunsUntilExit(t *testing.T) {
	store := state.NewStore()
	store.SetPhase(state.PLAYING)
	renderer := render.NewFBRenderer("")
	btns := buttons.NewManualButtons()
	a := New(store, renderer, nil, btns, nil, osd.DefaultConfig())

	btns.Press(buttons.VolumeDown)
	btns.Press(buttons.Exit)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if got := store.Snapshot().Volume; got != 100-VolumeStep {
		t.Errorf("Volume = %d, want %d", got, 100-VolumeStep)
	}
	if renderer.Snapshot() == nil {
		t.Error("no frame was rendered")
	}
	if got := a.Compositor.Len(); got != 0 {
		t.Errorf("Compositor.Len() after Start returned = %d, want 0", got)
	}
}

func TestStartStopsOnContext(t *testing.T) {
	a := newTestApp(t, osd.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvOSD, "")
	t.Setenv(EnvOSDDuration, "")
	cfg, err := ConfigFromEnv()
	if err != nil || cfg != osd.DefaultConfig() {
		t.Errorf("defaults = %+v, %v", cfg, err)
	}

	t.Setenv(EnvOSD, "false")
	t.Setenv(EnvOSDDuration, "3s")
	cfg, err = ConfigFromEnv()
	if err != nil || cfg != (osd.Config{Enabled: false, Duration: 3 * time.Second}) {
		t.Errorf("from env = %+v, %v", cfg, err)
	}

	for _, tt := range []struct{ key, value string }{
		{EnvOSD, "maybe"},
		{EnvOSDDuration, "soon"},
		{EnvOSDDuration, "-1s"},
	} {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(EnvOSD, "")
			t.Setenv(EnvOSDDuration, "")
			t.Setenv(tt.key, tt.value)
			if _, err := ConfigFromEnv(); err == nil {
				t.Error("ConfigFromEnv() accepted an invalid value")
			}
		})
	}
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(&buf, slog.LevelInfo)
	l.Infof("web", "listening on %s", ":80")
	l.Errorf("buttons", "read: %v", errors.New("eof"))

	out := buf.String()
	for _, want := range []string{
		`level=INFO msg="listening on :80" component=web`,
		`level=ERROR msg="read: eof" component=buttons`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	quiet := NewSlogLogger(&buf, slog.LevelError)
	buf.Reset()
	quiet.Infof("app", "hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged below the level: %q", buf.String())
	}

	if (SlogLogger{}).Slog() == nil {
		t.Error("zero SlogLogger has no slog logger")
	}
}
