package bignum

import (
	"bytes"
	"math/big"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/collatz/internal/errors"
)

func TestAllocate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hint    int
		wantCap int
	}{
		{0, blockWords},
		{1, blockWords},
		{BlockBytes, blockWords},
		{BlockBytes + 1, 2 * blockWords},
		{5 * BlockBytes, 5 * blockWords},
	}
	for _, tt := range tests {
		z := Allocate(tt.hint)
		if z.Cap() != tt.wantCap {
			t.Errorf("Allocate(%d).Cap() = %d, want %d", tt.hint, z.Cap(), tt.wantCap)
		}
		if !z.IsZero() {
			t.Errorf("Allocate(%d) = %s, want 0", tt.hint, z)
		}
	}
}

func TestFromBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"empty", nil, "0"},
		{"zero byte", []byte{0}, "0"},
		{"single byte", []byte{27}, "27"},
		{"little endian", []byte{0x01, 0x02}, "513"},
		{"trailing zero bytes", []byte{0x1b, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "27"},
		{"crosses a word", []byte{0, 0, 0, 0, 0, 0, 0, 0, 1}, "18446744073709551616"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FromBytes(tt.raw).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// TestNormalize_PropertyBased checks that loading little-endian bytes agrees
// with math/big and that Bytes returns the trimmed input.
func TestNormalize_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Normalize agrees with big.Int.SetBytes", prop.ForAll(
		func(raw []byte) bool {
			z := FromBytes(raw)
			be := slices.Clone(raw)
			slices.Reverse(be)
			if z.Big().Cmp(new(big.Int).SetBytes(be)) != 0 {
				return false
			}
			trimmed := raw
			for len(trimmed) > 1 && trimmed[len(trimmed)-1] == 0 {
				trimmed = trimmed[:len(trimmed)-1]
			}
			if len(trimmed) == 0 {
				trimmed = []byte{0}
			}
			return bytes.Equal(z.Bytes(), trimmed)
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}

func TestNormalize_ReusesStorage(t *testing.T) {
	t.Parallel()
	z := FromUint64(12345)
	z.Normalize([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x03})
	want := new(big.Int).Lsh(big.NewInt(1), 82)
	want.Sub(want, big.NewInt(1))
	if z.Big().Cmp(want) != 0 {
		t.Errorf("got %s, want %s", z, want)
	}
	z.Normalize([]byte{7})
	if z.String() != "7" || z.Len() != 1 {
		t.Errorf("got %s with %d words, want 7 with 1 word", z, z.Len())
	}
}

func TestFromBig(t *testing.T) {
	t.Parallel()
	x, _ := new(big.Int).SetString("1000000000000000000000000000001", 10)
	z := FromBig(x)
	if z.Big().Cmp(x) != 0 {
		t.Errorf("got %s, want %s", z, x)
	}
	if !FromBig(new(big.Int)).IsZero() {
		t.Error("FromBig(0) should be zero")
	}
}

func TestFromUint64(t *testing.T) {
	t.Parallel()
	for _, v := range []uint64{0, 1, 27, 1 << 32, ^uint64(0)} {
		if got := FromUint64(v).Big().Uint64(); got != v {
			t.Errorf("FromUint64(%d) = %d", v, got)
		}
	}
}

func TestWindow(t *testing.T) {
	t.Parallel()
	top := ^(^Word(0) >> 4)
	z := FromWords([]Word{top, 0b1011})
	tests := []struct {
		pos  uint
		want Word
	}{
		{0, top},
		{W - 4, 0b1011_1111},
		{W, 0b1011},
		{2 * W, 0},
	}
	for _, tt := range tests {
		if got := z.Window(tt.pos); got != tt.want {
			t.Errorf("Window(%d) = %#x, want %#x", tt.pos, got, tt.want)
		}
	}
}

func TestBitLenAndPredicates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		words  []Word
		bitLen int
		isZero bool
		isOne  bool
	}{
		{[]Word{0}, 0, true, false},
		{[]Word{1}, 1, false, true},
		{[]Word{27}, 5, false, false},
		{[]Word{0, 1}, W + 1, false, false},
		{[]Word{1, 0, 0}, 1, false, true},
	}
	for _, tt := range tests {
		z := FromWords(tt.words)
		if z.BitLen() != tt.bitLen || z.IsZero() != tt.isZero || z.IsOne() != tt.isOne {
			t.Errorf("%v: BitLen=%d IsZero=%v IsOne=%v", tt.words, z.BitLen(), z.IsZero(), z.IsOne())
		}
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()
	a := FromWords([]Word{5, 1})
	b := FromWords([]Word{6, 1})
	c := FromUint64(7)
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a.Clone()) != 0 || c.Cmp(a) != -1 {
		t.Error("Cmp returned an inconsistent ordering")
	}
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()
	a := FromUint64(27)
	b := a.Clone()
	b.MulAdd(3, 1)
	if a.String() != "27" || b.String() != "82" {
		t.Errorf("a=%s b=%s, want 27 and 82", a, b)
	}
}

func TestSetLimit(t *testing.T) {
	t.Parallel()
	z := Allocate(0)
	z.SetLimit(10)
	if z.limit != (10+WordBytes-1)/WordBytes {
		t.Errorf("limit = %d words", z.limit)
	}
	z.SetLimit(0)
	if z.limit != 0 {
		t.Errorf("SetLimit(0) should remove the cap, got %d", z.limit)
	}
}

func TestSetLimit_ClipsCapacity(t *testing.T) {
	t.Parallel()
	z := Allocate(BlockBytes)
	z.SetLimit(1000)
	want := (1000 + WordBytes - 1) / WordBytes
	if z.Cap() != want {
		t.Errorf("Cap() = %d, want %d", z.Cap(), want)
	}
	if c := z.Clone(); c.Cap() != want {
		t.Errorf("clone Cap() = %d, want %d", c.Cap(), want)
	}
}

func TestReserve_ClampedToLimit(t *testing.T) {
	t.Parallel()
	z := Allocate(0)
	z.SetLimit(BlockBytes + 3*WordBytes)
	z.reserve(blockWords + 2)
	if want := blockWords + 3; z.Cap() != want {
		t.Errorf("Cap() = %d, want %d", z.Cap(), want)
	}
	defer func() {
		if _, ok := recover().(apperrors.AllocationError); !ok {
			t.Error("expected an AllocationError panic")
		}
	}()
	z.reserve(blockWords + 4)
}

func TestGrow_StopsAtLimit(t *testing.T) {
	t.Parallel()
	// 5000 bytes is not a whole number of blocks: the buffer may grow to
	// exactly that size, and the next word panics.
	const limitBytes = 5000
	limitWords := (limitBytes + WordBytes - 1) / WordBytes

	z := Allocate(0)
	z.SetLimit(limitBytes)
	z.words = z.words[:z.Cap()]
	z.grow()
	if z.Cap() != limitWords {
		t.Fatalf("Cap() after grow = %d, want %d", z.Cap(), limitWords)
	}

	z.words = z.words[:z.Cap()]
	defer func() {
		allocErr, ok := recover().(apperrors.AllocationError)
		if !ok {
			t.Fatal("expected an AllocationError panic")
		}
		if allocErr.Limit != uint64(limitWords)*WordBytes {
			t.Errorf("Limit = %d, want %d", allocErr.Limit, limitWords*WordBytes)
		}
		if allocErr.Requested != uint64(limitWords+1)*WordBytes {
			t.Errorf("Requested = %d, want %d", allocErr.Requested, (limitWords+1)*WordBytes)
		}
	}()
	z.grow()
	t.Fatal("expected grow past the limit to panic")
}

func TestSwapWordBytes(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 2*WordBytes)
	for i := range buf {
		buf[i] = byte(i)
	}
	swapWordBytes(buf)
	for w := 0; w < 2; w++ {
		for i := 0; i < WordBytes; i++ {
			if want := byte(w*WordBytes + WordBytes - 1 - i); buf[w*WordBytes+i] != want {
				t.Fatalf("byte %d = %d, want %d", w*WordBytes+i, buf[w*WordBytes+i], want)
			}
		}
	}
}
