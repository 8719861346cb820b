package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rook-computer/bitmapfb/internal/app"
	"github.com/rook-computer/bitmapfb/internal/display"
	"github.com/rook-computer/bitmapfb/internal/logging"
	"github.com/rook-computer/bitmapfb/internal/state"
	"github.com/rook-computer/bitmapfb/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(web.DefaultListenAddr)
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	cfg, err := app.ConfigFromEnv(app.DefaultConfig())
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve a static UI from this directory (optional)")
	fps := flag.Int("fps", cfg.FPS, "frames per second; also configurable via "+app.EnvFPS)
	backdrop := flag.String("pattern", cfg.Pattern, "backdrop pattern: checker | stripes | qr; also configurable via "+app.EnvPattern)
	qr := flag.String("qr", cfg.QRPayload, "payload for the qr pattern; also configurable via "+app.EnvQR)
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	cfg.FPS = *fps
	cfg.Pattern = app.NormalizePattern(*backdrop)
	cfg.QRPayload = *qr
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	var logger logging.Logger = logging.Noop{}
	if *verbose {
		logger = logging.NewFileLogger(os.Stderr)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	palette := app.Palette()
	store := state.NewStore()
	presenter := display.NewImagePresenter(cfg.Width, cfg.Height)
	presenter.Palette = palette

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger

	a := app.New(store, presenter, server, cfg)
	a.Logger = logger
	server.Handler = web.NewDefaultMux(*staticDir, web.APIV1Config{
		Handlers: web.APIV1Handlers{RedrawFunc: a.RequestRedraw},
		Deps:     web.APIV1Deps{Frames: store, Palette: &palette},
	})

	done := make(chan error, 1)
	go func() { done <- a.Start(processCtx) }()

	// The app starts the server; wait for the first frame before printing
	// the bound address.
	for store.Snapshot().Phase == state.BOOTING {
		select {
		case err := <-done:
			fmt.Println("simulator error:", err)
			os.Exit(1)
		default:
		}
		time.Sleep(10 * time.Millisecond)
	}
	if store.Snapshot().Phase == state.ERROR {
		fmt.Println("simulator error:", <-done)
		os.Exit(1)
	}

	base := "http://" + displayAddr(server.Addr)
	fmt.Println("bitmapfb simulator listening on", server.Addr)
	fmt.Printf("Surface: %dx%d, pattern %s, %d fps\n", cfg.Width, cfg.Height, cfg.Pattern, cfg.FPS)
	fmt.Println("Preview: " + base + "/api/v1/screen.png?scale=2")
	fmt.Println("API: " + base + "/api/v1/")

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}

func displayAddr(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	switch {
	case addr == "":
		return "127.0.0.1" + web.DefaultListenAddr
	case strings.HasPrefix(addr, ":"):
		return "127.0.0.1" + addr
	case strings.HasPrefix(addr, "[::]:"):
		return "127.0.0.1" + strings.TrimPrefix(addr, "[::]")
	case strings.HasPrefix(addr, "0.0.0.0:"):
		return "127.0.0.1" + strings.TrimPrefix(addr, "0.0.0.0")
	}
	return addr
}
