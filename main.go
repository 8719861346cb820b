package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/bitmapfb/internal/app"
	"github.com/rook-computer/bitmapfb/internal/display"
	"github.com/rook-computer/bitmapfb/internal/logging"
	"github.com/rook-computer/bitmapfb/internal/state"
	"github.com/rook-computer/bitmapfb/internal/web"
)

const envStdioLog = "BITMAPFB_STDIO_LOG"

func main() {
	fmt.Println("bitmapfb starting")

	cfg, err := app.ConfigFromEnv(app.DefaultConfig())
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	// The device serves the preview only when asked to.
	webDefaults, err := web.DefaultServerConfigFromEnv("")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	debug := flag.Bool("debug", false, "enable debug logging to ./bitmapfb-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	fbDevice := flag.String("fb", cfg.FBDevice, "framebuffer device; also configurable via "+app.EnvFBDevice)
	listenAddr := flag.String("listen", webDefaults.ListenAddr, "http preview listen address, empty to disable; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", webDefaults.DevMode, "enable dev mode (CORS); also configurable via "+web.EnvDevMode)
	fps := flag.Int("fps", cfg.FPS, "frames per second; also configurable via "+app.EnvFPS)
	backdrop := flag.String("pattern", cfg.Pattern, "backdrop pattern: checker | stripes | qr; also configurable via "+app.EnvPattern)
	size := flag.String("size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "surface size WIDTHxHEIGHT; also configurable via "+app.EnvSize)
	exitKey := flag.Bool("exit-key", true, "quit when F4 is pressed on any keyboard")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger logging.Logger = logging.Noop{}
	if *debug {
		f, err := os.OpenFile("./bitmapfb-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = logging.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg.FBDevice = *fbDevice
	cfg.FPS = *fps
	cfg.Pattern = app.NormalizePattern(*backdrop)
	if cfg.Width, cfg.Height, err = app.ParseSize(*size); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	palette := app.Palette()
	store := state.NewStore()

	presenter := display.NewFBPresenter(cfg.FBDevice)
	presenter.Palette = palette
	presenter.Logger = logger

	var server web.Server = web.NoopServer{}
	httpServer := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	httpServer.Logger = logger
	if *listenAddr != "" {
		server = httpServer
	}

	a := app.New(store, presenter, server, cfg)
	a.Logger = logger
	a.Console = true
	httpServer.Handler = web.NewDefaultMux("", web.APIV1Config{
		Handlers: web.APIV1Handlers{RedrawFunc: a.RequestRedraw},
		Deps:     web.APIV1Deps{Frames: store, Palette: &palette},
	})

	if *exitKey {
		display.WatchExitKey(ctx, logger, display.KeyF4, func() { a.Exit(nil) })
	}

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
	fmt.Println("bitmapfb stopped")
}
