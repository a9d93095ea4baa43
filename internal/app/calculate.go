package app

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/collatz/internal/bignum"
	"github.com/agbru/collatz/internal/cli"
	"github.com/agbru/collatz/internal/collatz"
	"github.com/agbru/collatz/internal/config"
	apperrors "github.com/agbru/collatz/internal/errors"
	"github.com/agbru/collatz/internal/loader"
	"github.com/agbru/collatz/internal/logging"
	"github.com/agbru/collatz/internal/metrics"
	"github.com/agbru/collatz/internal/orchestration"
)

const tracerName = "github.com/agbru/collatz/internal/app"

// job is a loaded input with its table and runs, ready to execute.
type job struct {
	input         string
	n             *bignum.Nat
	kernel        string
	table         *collatz.Table
	tableDuration time.Duration
	runners       []orchestration.Runner
}

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// describeInput names the starting value for summaries.
func describeInput(mode loader.Mode, arg string) string {
	switch mode {
	case loader.ModeOnes:
		return "2^" + arg + " - 1"
	case loader.ModeFile:
		return "file " + arg
	}
	return arg
}

// prepare loads the input, applies the buffer ceiling, builds the table and
// selects the runs. The lut: line is printed here, before any run starts.
func (a *Application) prepare(ctx context.Context, out io.Writer) (*job, error) {
	mode, arg, err := a.Config.Input()
	if err != nil {
		return nil, err
	}

	n, err := a.load(ctx, mode, arg)
	if err != nil {
		return nil, err
	}
	if limit := a.Config.MaxBytes; limit > 0 {
		if n.ByteLen() > limit {
			return nil, apperrors.AllocationError{Requested: uint64(n.ByteLen()), Limit: uint64(limit)}
		}
		n.SetLimit(limit)
	}

	kernel, err := bignum.SelectKernel(a.Config.Kernel)
	if err != nil {
		return nil, err
	}

	a.Config = config.ApplyWindowLimits(a.Config, n.Len())
	table, d, err := a.buildTable(ctx, a.Config.LUT)
	if err != nil {
		return nil, err
	}
	if !a.Config.Quiet && !a.Config.TUI {
		cli.DisplayTableTime(out, d)
	}

	runners, err := orchestration.SelectRunners(a.Config, table, n.BitLen(), a.Logger)
	if err != nil {
		return nil, err
	}

	a.Logger.Info("run configured",
		logging.String("kernel", kernel.Name()),
		logging.String("features", bignum.DetectFeatures().String()),
		logging.Int("bits", n.BitLen()),
		logging.Int("lut", table.Width()),
		logging.Duration("table", d),
		logging.Int("runs", len(runners)),
	)

	return &job{
		input:         describeInput(mode, arg),
		n:             n,
		kernel:        kernel.Name(),
		table:         table,
		tableDuration: d,
		runners:       runners,
	}, nil
}

func (a *Application) load(ctx context.Context, mode loader.Mode, arg string) (*bignum.Nat, error) {
	_, span := tracer().Start(ctx, "load", trace.WithAttributes(attribute.String("mode", string(mode))))
	defer span.End()

	n, err := loader.Load(mode, arg)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("bits", n.BitLen()))
	return n, nil
}

// buildTable builds the transition table, in parallel for large widths.
func (a *Application) buildTable(ctx context.Context, width int) (*collatz.Table, time.Duration, error) {
	ctx, span := tracer().Start(ctx, "table", trace.WithAttributes(attribute.Int("width", width)))
	defer span.End()

	start := time.Now()
	if width >= collatz.ParallelBuildWindow {
		t, err := collatz.BuildTableParallel(ctx, width, runtime.NumCPU())
		if err != nil {
			span.RecordError(err)
			return nil, 0, apperrors.WrapError(err, "building the %d-bit table", width)
		}
		return t, time.Since(start), nil
	}
	return collatz.BuildTable(width), time.Since(start), nil
}

// runCLI executes the runs with line or spinner progress and prints the
// result.
func (a *Application) runCLI(ctx context.Context, j *job, out io.Writer) error {
	ctx, span := tracer().Start(ctx, "run", trace.WithAttributes(
		attribute.String("kernel", j.kernel),
		attribute.Int("runs", len(j.runners)),
	))
	defer span.End()

	reporter := cli.CLIProgressReporter{Spinner: a.Config.Spinner, Quiet: a.Config.Quiet}
	results := orchestration.ExecuteRuns(ctx, j.runners, j.n, reporter, out)

	// Quiet mode keeps only the result line, printed once the runs agree.
	report := out
	if a.Config.Quiet {
		report = io.Discard
	}
	st, err := orchestration.AnalyzeResults(results, cli.CLIResultPresenter{Quiet: a.Config.Quiet}, report)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if a.Config.Quiet {
		cli.DisplayResult(out, st)
	}
	span.SetAttributes(
		attribute.Int64("mul3", int64(st.Mul3)),
		attribute.Int64("div2", int64(st.Div2)),
	)
	return a.finish(j, st, results[0].Duration, out)
}

// finish prints the time: line and writes the optional result and metrics
// files.
func (a *Application) finish(j *job, st collatz.Stats, d time.Duration, out io.Writer) error {
	a.Logger.Debug("run finished",
		logging.Uint64("iterations", st.Iterations),
		logging.Int("peak_words", st.PeakWords),
		logging.Duration("elapsed", d),
	)

	summary := cli.RunSummary{
		Input:         j.input,
		InputBits:     j.n.BitLen(),
		Stats:         st,
		Kernel:        j.kernel,
		Window:        j.table.Width(),
		Extend:        !a.Config.NoExtend,
		TableDuration: j.tableDuration,
		RunDuration:   d,
	}
	outCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet}
	if err := cli.DisplayRunSummary(out, summary, outCfg); err != nil {
		return err
	}

	if a.Config.MetricsFile == "" {
		return nil
	}
	rec := metrics.RunRecord{
		Stats:         st,
		Kernel:        j.kernel,
		Window:        j.table.Width(),
		Extend:        !a.Config.NoExtend,
		InputBits:     j.n.BitLen(),
		TableDuration: j.tableDuration,
		RunDuration:   d,
		Memory:        metrics.NewMemoryCollector().Snapshot(),
	}
	if err := metrics.WriteRunMetrics(a.Config.MetricsFile, rec); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
