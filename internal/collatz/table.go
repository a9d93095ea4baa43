package collatz

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/collatz/internal/bignum"
)

// Step is an affine transform x -> x*Mul + Add standing for Odd odd steps and
// a fixed number of halving steps.
type Step struct {
	Mul bignum.Word
	Add bignum.Word
	Odd int
}

// rawStep is the plain odd step 3x+1. It consumes no bits.
var rawStep = Step{Mul: 3, Add: 1, Odd: 1}

// fold applies one halving step to the transform. a is the additive with the
// next input bit already merged in. When a is odd the step is (3v+1)/2,
// otherwise v/2.
func fold(m, a bignum.Word, odd int) (bignum.Word, bignum.Word, int) {
	x := a & 1
	odd += int(x)
	m += (m << 1) & -x
	a = (a >> 1) + ((a + 1) & -x)
	return m, a, odd
}

// Table maps the low bits of an odd value to the transform that performs the
// next Width halving steps. It is immutable once built and may be shared.
type Table struct {
	width   int
	entries []Step
}

// Width returns the number of bits consumed per lookup.
func (t *Table) Width() int { return t.width }

// Len returns the number of entries, 2^(Width-1).
func (t *Table) Len() int { return len(t.entries) }

// Entry returns the transform for the odd Width-bit value 2*idx+1.
func (t *Table) Entry(idx int) Step { return t.entries[idx] }

// lookup returns the transform for the low Width bits of window, whose
// lowest bit is set.
func (t *Table) lookup(window bignum.Word) Step {
	mask := bignum.Word(1)<<t.width - 1
	return t.entries[(window&mask)>>1]
}

// IdentityTable returns the width-1 table used when no wider table applies.
func IdentityTable() *Table {
	return identityTable
}

var identityTable = BuildTable(MinWindow)

// BuildTable returns the table of the given width, which must lie in
// [MinWindow, SafeWindow()].
func BuildTable(width int) *Table {
	t := newTable(width)
	fillEntries(t.entries, 0, width)
	return t
}

// BuildTableParallel builds the same table as BuildTable, splitting the
// entries into disjoint ranges filled by up to workers goroutines.
func BuildTableParallel(ctx context.Context, width, workers int) (*Table, error) {
	t := newTable(width)
	n := len(t.entries)
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	// Small tables are not worth the goroutines.
	if chunk < 1<<12 {
		chunk = n
	}

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fillEntries(t.entries[lo:hi], lo, width)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building width-%d table: %w", width, err)
	}
	return t, nil
}

func newTable(width int) *Table {
	if width < MinWindow || width > SafeWindow() {
		panic(fmt.Sprintf("collatz: table width %d out of range [%d, %d]", width, MinWindow, SafeWindow()))
	}
	return &Table{width: width, entries: make([]Step, 1<<(width-1))}
}

// fillEntries computes entries for indices first, first+1, ... of a table of
// the given width.
func fillEntries(dst []Step, first, width int) {
	for i := range dst {
		m, a, odd := bignum.Word(1), bignum.Word(2*(first+i)+1), 0
		for range width {
			m, a, odd = fold(m, a, odd)
		}
		dst[i] = Step{Mul: m, Add: a, Odd: odd}
	}
}

// ClampWidth returns the table width to use for a requested width and an
// input of the given number of words. The result lies in [MinWindow,
// min(MaxWindow, SafeWindow())] and is MinWindow for inputs shorter than
// three words.
func ClampWidth(requested, words int) int {
	w := max(MinWindow, min(requested, MaxWindow, SafeWindow()))
	if words < minTableWords {
		return MinWindow
	}
	return w
}
