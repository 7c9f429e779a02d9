package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"golang.org/x/term"

	"lifeline/internal/app"
	"lifeline/internal/control"
	"lifeline/internal/core"
	"lifeline/internal/life"
	"lifeline/internal/logging"
	"lifeline/internal/seed"
	"lifeline/internal/ui"
)

// frontend is a display that renders frames, supplies keys and owns the
// main goroutine while it runs.
type frontend interface {
	app.Renderer
	control.InputSource
	Run(ctx context.Context) error
}

func run(ctx context.Context, cfg *app.Config) error {
	// The terminal frontend owns stdout and stderr; only log there when a
	// window is showing the board.
	var fallback io.Writer
	if cfg.Frontend == app.FrontendWindow {
		fallback = os.Stderr
	}
	log, err := logging.New(cfg.LogFile, cfg.LogLevel, fallback)
	if err != nil {
		return err
	}
	defer log.Close()

	store := seed.NewStore(afero.NewOsFs(), cfg.SaveDir)
	engine, err := buildEngine(cfg, store, terminalSize)
	if err != nil {
		return err
	}
	session, err := app.NewSession(engine, app.Options{
		QueueCapacity:  cfg.QueueCapacity,
		RenderInterval: cfg.RenderInterval,
		MaxTPS:         cfg.MaxTPS,
		Saver:          store,
		Logger:         log.Logger,
	})
	if err != nil {
		return err
	}

	var front frontend
	switch cfg.Frontend {
	case app.FrontendWindow:
		front = ui.NewWindow(cfg.Scale)
	default:
		front = ui.NewTerminal()
	}

	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- session.Run(ctx, front, front)
		cancel()
	}()

	frontErr := front.Run(ctx)
	// Closing the display ends the session as if Quit had been pressed.
	session.Stop()
	cancel()
	runErr := <-errc
	if frontErr != nil {
		frontErr = fmt.Errorf("%s frontend: %w", cfg.Frontend, frontErr)
	}
	return errors.Join(runErr, frontErr)
}

// buildEngine loads the configured seed file or generates a random board.
// A seed that fails to load is returned as *seed.LoadError.
func buildEngine(cfg *app.Config, store *seed.Store, size func() (int, int, bool)) (*life.Engine, error) {
	opts := cfg.EngineOptions()
	if cfg.SeedFile != "" {
		b, err := store.Load(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		return life.New(b, opts...)
	}

	w, h := boardSize(cfg, size)
	s := cfg.Seed
	if s == 0 {
		s = core.TimeSeed()
	}
	return life.NewRandom(w, h, s, opts...)
}

// boardSize fills in a zero width or height, from the terminal when the
// terminal frontend is in use and from the defaults otherwise.
func boardSize(cfg *app.Config, size func() (int, int, bool)) (int, int) {
	w, h := cfg.Width, cfg.Height
	if w > 0 && h > 0 {
		return w, h
	}
	fw, fh := app.DefaultWidth, app.DefaultHeight
	if cfg.Frontend == app.FrontendTerminal && size != nil {
		if cols, rows, ok := size(); ok {
			fw, fh = ui.FitTerminal(cols, rows)
		}
	}
	if w <= 0 {
		w = fw
	}
	if h <= 0 {
		h = fh
	}
	return w, h
}

func terminalSize() (int, int, bool) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return cols, rows, true
}
