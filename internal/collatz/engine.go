package collatz

import (
	"fmt"

	"github.com/agbru/collatz/internal/bignum"
	"github.com/agbru/collatz/internal/logging"
)

// Stats holds the counters of a completed run.
type Stats struct {
	// Mul3 is the number of 3x+1 steps.
	Mul3 uint64
	// Div2 is the number of halving steps.
	Div2 uint64
	// Iterations is the number of kernel passes over the buffer.
	Iterations uint64
	// PeakWords is the largest buffer length reached.
	PeakWords int
}

// Total returns Mul3 + Div2, the length of the trajectory.
func (s Stats) Total() uint64 { return s.Mul3 + s.Div2 }

// String formats the step counters the way the command line prints them.
func (s Stats) String() string {
	return fmt.Sprintf("mul3 = %d, div2 = %d, total = %d", s.Mul3, s.Div2, s.Total())
}

// SameCounts reports whether s and o agree on Mul3 and Div2.
func (s Stats) SameCounts(o Stats) bool {
	return s.Mul3 == o.Mul3 && s.Div2 == o.Div2
}

// Option configures an Engine.
type Option func(*Engine)

// WithTable sets the transition table. The default is IdentityTable().
func WithTable(t *Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.table = t
		}
	}
}

// WithKernel sets the multiply-add kernel. The default is the kernel chosen
// by bignum.SelectKernel("auto").
func WithKernel(k bignum.Kernel) Option {
	return func(e *Engine) {
		if k != nil {
			e.kernel = k
		}
	}
}

// WithExtension enables or disables folding extra bits into a looked-up
// transform. Enabled by default.
func WithExtension(on bool) Option {
	return func(e *Engine) { e.extend = on }
}

// WithObserver sets the progress observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithProgressInterval sets the number of iterations between progress
// notifications. Zero or less disables periodic notifications; the final one
// is always sent.
func WithProgressInterval(n int) Option {
	return func(e *Engine) { e.interval = n }
}

// WithLogger sets the logger for run diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine drives a value down to 1. It owns the value it was created with and
// modifies it in place; an Engine is not safe for concurrent use.
type Engine struct {
	n        *bignum.Nat
	table    *Table
	kernel   bignum.Kernel
	extend   bool
	observer Observer
	interval int
	logger   logging.Logger
}

// NewEngine creates an engine for n.
func NewEngine(n *bignum.Nat, opts ...Option) *Engine {
	e := &Engine{
		n:        n,
		table:    IdentityTable(),
		extend:   true,
		observer: NewNoOpObserver(),
		interval: DefaultProgressInterval,
		logger:   logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.kernel == nil {
		e.kernel = bignum.MustSelectKernel(bignum.KernelAuto)
	}
	return e
}

// Value returns the engine's working value. After Run it holds the end of the
// trajectory: 1, or 0 for a zero input.
func (e *Engine) Value() *bignum.Nat { return e.n }

// Run iterates until the value reaches 1 and returns the counters.
//
// Each iteration discards the low zero bits found by bignum.Scan, then
// applies one transform with a single kernel pass. When at least two words
// lie above the scan position, the transform comes from the table and covers
// Width halving steps, optionally extended bit by bit up to SafeWindow()
// bits. Otherwise it is the plain odd step 3x+1.
func (e *Engine) Run() Stats {
	n := e.n
	width := uint(e.table.Width())
	safe := uint(SafeWindow())
	st := Stats{PeakWords: n.Len()}

	e.logger.Debug("engine start",
		logging.Int("words", n.Len()),
		logging.Int("lut", int(width)),
		logging.String("kernel", e.kernel.Name()),
		logging.Bool("extend", e.extend),
	)

	for {
		shift, terminal := bignum.Scan(n)
		st.Div2 += uint64(shift)
		if terminal {
			e.kernel.ShrMulAdd(n, shift, 1, 0)
			break
		}

		step := rawStep
		if roomAbove(n, shift) {
			step = e.table.lookup(n.Window(shift))
			shift += width
			st.Div2 += uint64(width)
			if e.extend {
				m, a, odd := step.Mul, step.Add, step.Odd
				for used := width; used < safe && roomAbove(n, shift); used++ {
					b := n.Word(int(shift/bignum.W)) >> (shift % bignum.W) & 1
					m, a, odd = fold(m, a+(m&-b), odd)
					shift++
					st.Div2++
				}
				step = Step{Mul: m, Add: a, Odd: odd}
			}
		}

		st.Mul3 += uint64(step.Odd)
		e.kernel.ShrMulAdd(n, shift, step.Mul, step.Add)
		st.Iterations++
		st.PeakWords = max(st.PeakWords, n.Len())

		if e.interval > 0 && st.Iterations%uint64(e.interval) == 0 {
			e.observer.OnProgress(e.progress(st, false))
		}
	}

	e.observer.OnProgress(e.progress(st, true))
	e.logger.Debug("engine done",
		logging.Uint64("mul3", st.Mul3),
		logging.Uint64("div2", st.Div2),
		logging.Uint64("iterations", st.Iterations),
		logging.Int("peak_words", st.PeakWords),
	)
	return st
}

// roomAbove reports whether at least two words of n lie above the word
// holding bit pos, so that a window read at pos stays inside the buffer and
// the value cannot reach 1 within one transform.
func roomAbove(n *bignum.Nat, pos uint) bool {
	return int(pos/bignum.W)+2 < n.Len()
}

func (e *Engine) progress(st Stats, done bool) Progress {
	return Progress{
		Bytes:      e.n.ByteLen(),
		Iterations: st.Iterations,
		Mul3:       st.Mul3,
		Div2:       st.Div2,
		Done:       done,
	}
}
