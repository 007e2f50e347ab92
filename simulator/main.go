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
	"github.com/rook-computer/osdkit/internal/video"
	"github.com/rook-computer/osdkit/internal/web"
)

func main() {
	defaults, err := web.ServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	osdDefaults, err := app.ConfigFromEnv()
	if err != nil {
		fmt.Println("osd config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	sar := flag.String("sar", "1:1", "sample aspect ratio of the simulated display, as num:den")
	demo := flag.Bool("demo", false, "press the demo sequence once at startup")
	demoStep := flag.Duration("demo-step", osdDefaults.Duration, "delay between demo key presses")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	sarNum, sarDen, err := video.ParseSAR(*sar)
	if err != nil {
		fmt.Println("invalid -sar:", err)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	slogger := slog.New(slog.DiscardHandler)
	if *verbose {
		sl := app.NewSlogLogger(os.Stderr, slog.LevelDebug)
		logger, slogger = sl, sl.Slog()
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	store.SetPhase(state.PLAYING)

	// No framebuffer: frames are only kept for the API.
	renderer := render.NewFBRenderer("")
	renderer.SARNum, renderer.SARDen = sarNum, sarDen

	btns := buttons.NewManualButtons()
	control := NewSimControl(processCtx, btns, store, *demoStep)

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger

	a := app.New(store, renderer, server, btns, spu.NewCompositor(spu.WithLogger(slogger)), osdDefaults)
	a.Logger = logger
	a.Debug = *verbose

	mux := web.NewDefaultMux(web.APIV1Config{Deps: web.APIV1Deps{Player: a, Frames: renderer}})
	registerSimEndpoints(mux, control)
	server.Handler = mux

	fmt.Println("osdkit simulator listening on", *listenAddr)
	fmt.Println("API: http://" + trimLeadingColon(*listenAddr) + "/api/v1/")
	fmt.Println("Last frame: http://" + trimLeadingColon(*listenAddr) + "/api/v1/frame.png")

	if *demo {
		control.StartDemo()
	}

	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}

func trimLeadingColon(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	return addr
}
