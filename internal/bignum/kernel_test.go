package bignum

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/collatz/internal/errors"
)

// allKernels returns every kernel implementation.
func allKernels() []Kernel {
	return []Kernel{ScalarKernel{}, LanesKernel{}}
}

// wantShrMulAdd computes floor(v / 2^shift) * mul + add with math/big.
func wantShrMulAdd(v *big.Int, shift uint, mul, add Word) *big.Int {
	r := new(big.Int).Rsh(v, shift)
	r.Mul(r, new(big.Int).SetUint64(uint64(mul)))
	return r.Add(r, new(big.Int).SetUint64(uint64(add)))
}

func wordsOf(vs []uint64) []Word {
	ws := make([]Word, len(vs))
	for i, v := range vs {
		ws[i] = Word(v)
	}
	return ws
}

func TestShrMulAdd_Table(t *testing.T) {
	t.Parallel()
	ones := ^Word(0)
	tests := []struct {
		name  string
		words []Word
		shift uint
		mul   Word
		add   Word
	}{
		{"odd step on 27", []Word{27}, 0, 3, 1},
		{"halve and odd step", []Word{82}, 1, 3, 1},
		{"zero stays zero", []Word{0}, 0, 3, 0},
		{"zero plus add", []Word{0}, 0, 3, 7},
		{"shift past top word", []Word{5, 9}, 3 * W, 3, 11},
		{"shift to exactly the bit length", []Word{0xff}, 8, 3, 2},
		{"whole-word shift", []Word{1, 2, 3}, W, 3, 1},
		{"carry out of every word", []Word{ones, ones, ones, ones, ones, ones}, 0, 3, 1},
		{"maximal multiplier and addend", []Word{ones, ones, ones, ones, ones}, 1, ones, ones},
		{"unaligned shift across blocks", []Word{0x1234, ones, 0, ones, 7, 1, 1, 1, 1, 1}, W + 5, 243, 211},
	}

	for _, tt := range tests {
		for _, k := range allKernels() {
			t.Run(tt.name+"/"+k.Name(), func(t *testing.T) {
				t.Parallel()
				z := FromWords(tt.words)
				want := wantShrMulAdd(z.Big(), tt.shift, tt.mul, tt.add)
				k.ShrMulAdd(z, tt.shift, tt.mul, tt.add)
				if z.Big().Cmp(want) != 0 {
					t.Errorf("got %s, want %s", z, want)
				}
				if z.Len() > 1 && z.Word(z.Len()-1) == 0 {
					t.Errorf("result not trimmed: %d words", z.Len())
				}
			})
		}
	}
}

// TestShrMulAdd_PropertyBased checks every kernel against math/big on random
// operands, including shifts at and beyond the bit length.
func TestShrMulAdd_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	for _, k := range allKernels() {
		properties.Property(k.Name()+" matches math/big", prop.ForAll(
			func(vs []uint64, shift uint, mul, add uint64) bool {
				z := FromWords(wordsOf(vs))
				want := wantShrMulAdd(z.Big(), shift, Word(mul), Word(add))
				k.ShrMulAdd(z, shift, Word(mul), Word(add))
				return z.Big().Cmp(want) == 0
			},
			gen.SliceOfN(23, gen.UInt64()),
			gen.UIntRange(0, 24*W),
			gen.UInt64(),
			gen.UInt64(),
		))
	}

	properties.TestingRun(t)
}

// TestLanesMatchesScalar_PropertyBased requires identical buffers, not just
// identical values, from both kernels.
func TestLanesMatchesScalar_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("lanes and scalar produce identical buffers", prop.ForAll(
		func(vs []uint64, shift uint, mul, add uint64) bool {
			a := FromWords(wordsOf(vs))
			b := a.Clone()
			ScalarKernel{}.ShrMulAdd(a, shift, Word(mul), Word(add))
			LanesKernel{}.ShrMulAdd(b, shift, Word(mul), Word(add))
			if a.Len() != b.Len() {
				return false
			}
			for i := 0; i < a.Len(); i++ {
				if a.Word(i) != b.Word(i) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt64().Map(edgeWord)),
		gen.UIntRange(0, 4*W),
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// edgeWord biases generated words towards 0 and all ones, which exercise
// the carry paths.
func edgeWord(v uint64) uint64 {
	switch v % 4 {
	case 0:
		return 0
	case 1:
		return ^uint64(0)
	}
	return v
}

func TestMulAdd(t *testing.T) {
	t.Parallel()
	z := FromUint64(0)
	for _, d := range "123456789012345678901234567890" {
		z.MulAdd(10, Word(d-'0'))
	}
	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	if z.Big().Cmp(want) != 0 {
		t.Errorf("got %s, want %s", z, want)
	}
}

func TestShrMulAdd_GrowsOneBlock(t *testing.T) {
	t.Parallel()
	ws := make([]Word, blockWords)
	for i := range ws {
		ws[i] = ^Word(0)
	}
	for _, k := range allKernels() {
		z := FromWords(ws)
		if z.Cap() != blockWords {
			t.Fatalf("%s: initial capacity %d, want %d", k.Name(), z.Cap(), blockWords)
		}
		k.ShrMulAdd(z, 0, 3, 1)
		if z.Len() != blockWords+1 {
			t.Errorf("%s: len %d, want %d", k.Name(), z.Len(), blockWords+1)
		}
		if z.Cap() != 2*blockWords {
			t.Errorf("%s: capacity %d, want %d", k.Name(), z.Cap(), 2*blockWords)
		}
	}
}

func TestShrMulAdd_LimitPanics(t *testing.T) {
	t.Parallel()
	ws := make([]Word, blockWords)
	for i := range ws {
		ws[i] = ^Word(0)
	}
	z := FromWords(ws)
	z.SetLimit(BlockBytes)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected an error panic, got %v", r)
		}
		var allocErr apperrors.AllocationError
		if !errors.As(err, &allocErr) {
			t.Fatalf("expected AllocationError, got %T", err)
		}
		if allocErr.Limit != BlockBytes {
			t.Errorf("Limit = %d, want %d", allocErr.Limit, BlockBytes)
		}
	}()
	ScalarKernel{}.ShrMulAdd(z, 0, 3, 1)
	t.Fatal("expected panic")
}

func TestCarryLookahead(t *testing.T) {
	t.Parallel()
	for g := 0; g < 16; g++ {
		for p := 0; p < 16; p++ {
			if g&p != 0 {
				continue
			}
			var c, mask uint8
			for j := 0; j < laneWidth; j++ {
				if c != 0 {
					mask |= 1 << j
				}
				gj, pj := g>>j&1 == 1, p>>j&1 == 1
				if gj || (pj && c != 0) {
					c = 1
				} else {
					c = 0
				}
			}
			want := mask | c<<laneWidth
			if got := carryLookahead[g|p<<laneWidth]; got != want {
				t.Errorf("g=%04b p=%04b: got %05b, want %05b", g, p, got, want)
			}
		}
	}
}

func BenchmarkShrMulAdd(b *testing.B) {
	ws := make([]Word, 1<<14)
	for i := range ws {
		ws[i] = Word(0x9e3779b97f4a7c15 * uint64(i+1))
	}
	for _, k := range allKernels() {
		b.Run(k.Name(), func(b *testing.B) {
			src := FromWords(ws)
			b.SetBytes(int64(src.ByteLen()))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				z := src.Clone()
				k.ShrMulAdd(z, 13, 243, 211)
			}
		})
	}
}
