package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/osdkit/internal/app"
	"github.com/rook-computer/osdkit/internal/buttons"
	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/spu"
	"github.com/rook-computer/osdkit/internal/state"
	"github.com/rook-computer/osdkit/internal/system"
	"github.com/rook-computer/osdkit/internal/video"
	"github.com/rook-computer/osdkit/internal/web"
)

func main() {
	serverDefaults, err := web.ServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	osdDefaults, err := app.ConfigFromEnv()
	if err != nil {
		fmt.Println("osd config error:", err)
		os.Exit(2)
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./osdkit-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via OSDKIT_STDIO_LOG")
	fbDevice := flag.String("fb", "/dev/fb0", "framebuffer device; empty renders headless")
	listenAddr := flag.String("listen", serverDefaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", serverDefaults.DevMode, "enable permissive CORS; also configurable via "+web.EnvDevMode)
	noOSD := flag.Bool("no-osd", !osdDefaults.Enabled, "disable on-screen widgets; also configurable via "+app.EnvOSD)
	osdDuration := flag.Duration("osd-duration", osdDefaults.Duration, "how long a widget stays on screen; also configurable via "+app.EnvOSDDuration)
	sar := flag.String("sar", "1:1", "sample aspect ratio of the display pixels, as num:den")
	flag.Parse()

	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("OSDKIT_STDIO_LOG")
	}
	if err := system.RedirectOutput(logPath); err != nil {
		fmt.Println("stdio log redirect error:", err)
	}

	sarNum, sarDen, err := video.ParseSAR(*sar)
	if err != nil {
		fmt.Println("invalid -sar:", err)
		os.Exit(2)
	}
	if *osdDuration <= 0 {
		fmt.Println("invalid -osd-duration: must be positive")
		os.Exit(2)
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	slogger := slog.New(slog.DiscardHandler)
	if *debug {
		f, err := os.OpenFile("./osdkit-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			sl := app.NewSlogLogger(f, slog.LevelDebug)
			logger, slogger = sl, sl.Slog()
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	store.SetPhase(state.PLAYING)

	renderer := render.NewFBRenderer(*fbDevice)
	renderer.SARNum, renderer.SARDen = sarNum, sarDen

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger

	compositor := spu.NewCompositor(spu.WithLogger(slogger))
	osdCfg := osdDefaults
	osdCfg.Enabled = !*noOSD
	osdCfg.Duration = *osdDuration

	a := app.New(store, renderer, server, buttons.NewKeyboard(logger), compositor, osdCfg)
	a.Logger = logger
	a.Debug = *debug
	a.Console = *fbDevice != ""
	a.RemoteURL = system.RemoteURL(ctx, system.InterfaceNetInfo{}, *listenAddr)
	server.Deps = web.APIV1Deps{Player: a, Frames: renderer}

	fmt.Println("osdkit starting, remote control at", a.RemoteURL)
	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
	if err := a.Stop(); err != nil {
		fmt.Println("app stop error:", err)
	}
}
