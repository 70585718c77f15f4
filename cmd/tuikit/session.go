package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/odvcencio/tuikit/pkg/config"
	apperrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
	tcellbackend "github.com/odvcencio/tuikit/pkg/ui/backend/tcell"
	"github.com/odvcencio/tuikit/pkg/ui/layout"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
	"github.com/odvcencio/tuikit/pkg/ui/surface"
)

// newBackendFn allows tests to run sessions on a simulation backend.
var newBackendFn = func() (backend.Backend, error) {
	return tcellbackend.New()
}

// isTerminalFn allows tests to bypass the TTY check.
var isTerminalFn = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// openLogger creates the session logger described by cfg. Logging failures
// never stop a session; they are reported on stderr and logging is skipped.
func openLogger(cfg *config.Config, stderr io.Writer) *logging.Logger {
	if !cfg.Logging.Enabled {
		return nil
	}
	logger, err := logging.NewLogger(cfg.LogDir(), logging.NewSessionID())
	if err != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
		return nil
	}
	logger.SetMinLevel(cfg.LogLevel())
	return logger
}

// runSession compiles a layout document and runs it until the cancel key,
// SIGINT or SIGTERM.
func runSession(ctx context.Context, opts *rootOptions, source string, data []byte, stderr io.Writer) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	if !isTerminalFn() {
		return withExitCode(fmt.Errorf("tuikit needs an interactive terminal on stdin and stdout"), exitUsage)
	}

	logger := openLogger(cfg, stderr)
	defer logger.Close()
	logger.Info(logging.CategoryApp, "session_start", "", map[string]any{
		"source":  source,
		"version": version,
	})

	root, err := layout.NewBuilder(logger).Compile(data)
	if err != nil {
		logger.Error(logging.CategoryLayout, "compile_failed", err.Error(), map[string]any{"source": source})
		return withExitCode(fmt.Errorf("%s: %w", source, err), exitInvalid)
	}

	b, err := newBackendFn()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeBackendInit, "creating terminal backend")
	}

	app, err := runtime.NewApp(runtime.AppConfig{
		Surface:    surface.New(b),
		Root:       root,
		CancelKey:  cfg.CancelBinding(),
		SizePolicy: cfg.SizePolicy(),
		MinWidth:   cfg.UI.MinWidth,
		MinHeight:  cfg.UI.MinHeight,
		Logger:     logger,
	})
	if err != nil {
		return withExitCode(fmt.Errorf("%s: %w", source, err), exitInvalid)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx)
	logger.Info(logging.CategoryApp, "session_end", "", map[string]any{"frames": app.Frames()})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
