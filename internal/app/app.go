package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
	"github.com/rook-computer/bitmapfb/internal/display"
	"github.com/rook-computer/bitmapfb/internal/fonts"
	"github.com/rook-computer/bitmapfb/internal/logging"
	"github.com/rook-computer/bitmapfb/internal/state"
	"github.com/rook-computer/bitmapfb/internal/web"
)

type App struct {
	Store     *state.Store
	Presenter display.Presenter
	Web       web.Server
	Logger    logging.Logger
	Config    Config
	// Console switches the VT into graphics mode while running. Only the
	// device binary sets it.
	Console bool

	scene *Scene

	redrawCh chan struct{}
	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, presenter display.Presenter, webServer web.Server, cfg Config) *App {
	return &App{
		Store:     store,
		Presenter: presenter,
		Web:       webServer,
		Logger:    logging.Noop{},
		Config:    cfg,
		redrawCh:  make(chan struct{}, 1),
		exitCh:    make(chan error, 1),
	}
}

// Exit requests the app to stop running. Only the first call has an effect.
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

// RequestRedraw asks the render loop to repaint the whole screen on its next
// frame. Requests made while one is pending are merged into it. It is safe to
// call from any goroutine, and is the web API's RedrawFunc.
func (app *App) RequestRedraw(ctx context.Context) error {
	select {
	case app.redrawCh <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func (app *App) log() logging.Logger { return logging.OrNoop(app.Logger) }

// Start builds the scene, starts the presenter and web server and runs the
// render loop until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.redrawCh == nil {
		app.redrawCh = make(chan struct{}, 1)
	}
	if app.Store == nil {
		app.Store = state.NewStore()
	}
	if app.Presenter == nil {
		app.Presenter = display.NoopPresenter{}
	}
	if app.Web == nil {
		app.Web = web.NoopServer{}
	}
	app.exitOnce.Store(false)
	bitmap.SetLogger(app.Logger)

	face, err := fonts.Load(app.Config.FontSize, app.Logger)
	if err != nil {
		app.log().Errorf("app", "font load: %v", err)
	}
	app.scene, err = NewScene(app.Config, face, app.Logger)
	if err != nil {
		app.log().Errorf("app", "scene build error: %v", err)
		app.Store.SetError(err)
		return err
	}

	if err := app.Presenter.Start(ctx); err != nil {
		app.log().Errorf("app", "presenter start error: %v", err)
		app.Store.SetError(err)
		return err
	}
	defer app.Presenter.Stop()

	if app.Console {
		_ = display.SetGraphicsMode(app.Logger)
		_ = display.HideCursor(app.Logger)
		defer func() {
			_ = display.ShowCursor(app.Logger)
			_ = display.RestoreTextMode(app.Logger)
		}()
	}

	if err := app.Web.Start(ctx); err != nil {
		app.log().Errorf("app", "web start error: %v", err)
		app.Store.SetError(err)
		return err
	}
	defer app.Web.Stop()

	app.Store.SetPhase(state.RUNNING)
	// First frame right away, so the screen does not wait for the ticker.
	if err := app.renderFrame(false); err != nil {
		app.Store.SetError(err)
		return err
	}

	err = app.runLoop(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		app.Store.SetPhase(state.STOPPED)
	} else {
		app.Store.SetError(err)
	}
	return err
}

func (app *App) runLoop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(app.Config.FPS))
	defer ticker.Stop()
	lastLog := time.Now()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case <-app.redrawCh:
			app.scene.Compositor.InvalidateAll()
		case <-ticker.C:
			if err := app.renderFrame(true); err != nil {
				return err
			}
			frames++
			if time.Since(lastLog) > time.Second {
				app.log().Infof("app", "heartbeat: %d frames, seq=%d", frames, app.Store.Seq())
				lastLog = time.Now()
				frames = 0
			}
		}
	}
}

// renderFrame optionally advances the scene, repaints its damage and hands
// the painted rects to the presenter and the frame store.
func (app *App) renderFrame(step bool) error {
	if step {
		if err := app.scene.Step(); err != nil {
			return err
		}
	}
	painted, err := app.scene.Compositor.Redraw()
	if err != nil {
		return err
	}
	if len(painted) == 0 {
		return nil
	}
	if err := app.Presenter.Present(app.scene.Screen, painted); err != nil {
		app.log().Errorf("app", "present: %v", err)
	}
	if _, err := app.Store.Publish(app.scene.Screen, painted); err != nil {
		return err
	}
	app.Store.SetLayers(app.scene.Layers())
	return nil
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}
