// Package app wires configuration, input loading, table construction and
// the runs together behind the collatz command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/collatz/internal/cli"
	"github.com/agbru/collatz/internal/config"
	apperrors "github.com/agbru/collatz/internal/errors"
	"github.com/agbru/collatz/internal/logging"
	"github.com/agbru/collatz/internal/metrics"
	"github.com/agbru/collatz/internal/tui"
	"github.com/agbru/collatz/internal/ui"
)

// Application represents the collatz application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the diagnostics logger. The default writes zerolog console
// output to the error writer at the configured level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "collatz"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "collatz", cfg.LogLevel)
	}
	return app, nil
}

// Run executes the application and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Piped or redirected output stays plain so that scripts can match it.
	ui.InitTheme(a.Config.NoColor || !ui.IsTerminal(out))

	job, err := a.prepare(ctx, out)
	if err == nil {
		gc := metrics.NewGCController(metrics.GCMode(a.Config.GCMode), job.n.ByteLen())
		gc.SetLogger(a.Logger)
		gc.Begin()
		if a.Config.TUI {
			err = a.runTUI(ctx, job, out)
		} else {
			err = a.runCLI(ctx, job, out)
		}
		gc.End()
	}
	if err != nil {
		cli.DisplayError(a.ErrWriter, err)
		a.Logger.Debug("run failed", logging.Err(err))
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitSuccess
}

// runTUI launches the dashboard, then prints the result line once the
// alternate screen is gone.
func (a *Application) runTUI(ctx context.Context, j *job, out io.Writer) error {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	info := tui.RunInfo{
		Input:         j.input,
		InputBits:     j.n.BitLen(),
		Window:        j.table.Width(),
		Kernel:        j.kernel,
		Extend:        !a.Config.NoExtend,
		TableDuration: j.tableDuration,
	}
	st, d, err := tui.Run(ctx, j.runners, j.n, info, Version)
	if errors.Is(err, tui.ErrQuit) {
		return fmt.Errorf("%w: %w", err, context.Canceled)
	}
	if err != nil {
		return err
	}
	cli.DisplayResult(out, st)
	return a.finish(j, st, d, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
