package orchestration

import (
	"context"
	"fmt"

	"github.com/agbru/collatz/internal/bignum"
	"github.com/agbru/collatz/internal/collatz"
	"github.com/agbru/collatz/internal/config"
	apperrors "github.com/agbru/collatz/internal/errors"
	"github.com/agbru/collatz/internal/logging"
)

// Runner computes the counters of a trajectory with one engine
// configuration.
type Runner interface {
	// Name identifies the configuration in reports.
	Name() string
	// Run drives a private copy of n to the end of its trajectory. n itself
	// is not modified.
	Run(ctx context.Context, n *bignum.Nat, observer collatz.Observer) (collatz.Stats, error)
}

// EngineRunner runs the accelerated engine.
type EngineRunner struct {
	Kernel   bignum.Kernel
	Table    *collatz.Table
	Extend   bool
	Interval int
	Logger   logging.Logger
}

// Name returns the kernel name and table width, e.g. "lanes/lut=20".
func (r EngineRunner) Name() string {
	width := 1
	if r.Table != nil {
		width = r.Table.Width()
	}
	kernel := bignum.KernelAuto
	if r.Kernel != nil {
		kernel = r.Kernel.Name()
	}
	name := fmt.Sprintf("%s/lut=%d", kernel, width)
	if !r.Extend {
		name += "/no-extend"
	}
	return name
}

// Run runs the engine on a clone of n. The engine cannot be interrupted, so
// the context is only checked before starting. A buffer growing past its
// limit is reported as an apperrors.AllocationError.
func (r EngineRunner) Run(ctx context.Context, n *bignum.Nat, observer collatz.Observer) (st collatz.Stats, err error) {
	if err := ctx.Err(); err != nil {
		return collatz.Stats{}, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			allocErr, ok := rec.(apperrors.AllocationError)
			if !ok {
				panic(rec)
			}
			st, err = collatz.Stats{}, allocErr
		}
	}()
	e := collatz.NewEngine(n.Clone(),
		collatz.WithKernel(r.Kernel),
		collatz.WithTable(r.Table),
		collatz.WithExtension(r.Extend),
		collatz.WithObserver(observer),
		collatz.WithProgressInterval(r.Interval),
		collatz.WithLogger(r.Logger),
	)
	return e.Run(), nil
}

// ReferenceRunner runs the step-by-step math/big engine. It reports only the
// final notification.
type ReferenceRunner struct{}

// Name returns "reference".
func (ReferenceRunner) Name() string { return "reference" }

// Run runs collatz.ReferenceRun on n.
func (ReferenceRunner) Run(ctx context.Context, n *bignum.Nat, observer collatz.Observer) (collatz.Stats, error) {
	if err := ctx.Err(); err != nil {
		return collatz.Stats{}, err
	}
	st := collatz.ReferenceRun(n.Big())
	if observer != nil {
		observer.OnProgress(collatz.Progress{
			Bytes:      n.ByteLen(),
			Iterations: st.Iterations,
			Mul3:       st.Mul3,
			Div2:       st.Div2,
			Done:       true,
		})
	}
	return st, nil
}

// SelectRunners determines which runs to execute for cfg. Without --verify
// it is the single configured engine. With --verify it is every concrete
// kernel, plus the reference engine when the input has at most
// cfg.VerifyLimit bits.
//
// Parameters:
//   - cfg: The application configuration.
//   - table: The transition table, already built for the clamped width.
//   - inputBits: The bit length of the starting value.
//   - logger: The logger handed to each engine.
//
// Returns:
//   - []Runner: The runs to execute, the configured one first.
//   - error: A ConfigError for an unknown kernel name.
func SelectRunners(cfg config.AppConfig, table *collatz.Table, inputBits int, logger logging.Logger) ([]Runner, error) {
	primary, err := bignum.SelectKernel(cfg.Kernel)
	if err != nil {
		return nil, err
	}
	mk := func(k bignum.Kernel) EngineRunner {
		return EngineRunner{
			Kernel:   k,
			Table:    table,
			Extend:   !cfg.NoExtend,
			Interval: cfg.ProgressInterval,
			Logger:   logger,
		}
	}
	runners := []Runner{mk(primary)}
	if !cfg.Verify {
		return runners, nil
	}
	for _, name := range []string{bignum.KernelScalar, bignum.KernelLanes} {
		k := bignum.MustSelectKernel(name)
		if k.Name() != primary.Name() {
			runners = append(runners, mk(k))
		}
	}
	if inputBits <= cfg.VerifyLimit {
		runners = append(runners, ReferenceRunner{})
	}
	return runners, nil
}
