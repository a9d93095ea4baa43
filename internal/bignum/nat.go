package bignum

import (
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/collatz/internal/errors"
)

// Word is an alias for big.Word, a single limb of a Nat.
type Word = big.Word

const (
	// W is the word size in bits.
	W = bits.UintSize
	// WordBytes is the word size in bytes.
	WordBytes = W / 8
	// BlockBytes is the allocation granularity of a Nat. Storage is reserved
	// and grown in whole blocks.
	BlockBytes = 4096

	blockWords = BlockBytes / WordBytes
)

// Nat is a non-negative integer held in a growable word buffer.
//
// Invariants: len(words) >= 1, and the top word is non-zero unless the value
// is 0, in which case the buffer is a single zero word. Capacity only grows,
// one block at a time.
type Nat struct {
	words []Word
	inc   int
	limit int
}

// Allocate returns a Nat holding 0 whose storage is byteHint bytes rounded up
// to a whole number of blocks (at least one block).
func Allocate(byteHint int) *Nat {
	if byteHint < BlockBytes {
		byteHint = BlockBytes
	}
	size := (byteHint + BlockBytes - 1) &^ (BlockBytes - 1)
	return &Nat{
		words: make([]Word, 1, size/WordBytes),
		inc:   blockWords,
	}
}

// FromBytes returns a Nat loaded from the little-endian magnitude raw.
func FromBytes(raw []byte) *Nat {
	z := Allocate(len(raw))
	z.Normalize(raw)
	return z
}

// FromUint64 returns a Nat holding v.
func FromUint64(v uint64) *Nat {
	z := Allocate(0)
	z.SetUint64(v)
	return z
}

// FromBig returns a Nat holding |x|.
func FromBig(x *big.Int) *Nat {
	src := x.Bits()
	z := Allocate(len(src) * WordBytes)
	if len(src) == 0 {
		return z
	}
	z.words = z.words[:len(src)]
	copy(z.words, src)
	z.trim()
	return z
}

// FromWords returns a Nat holding the little-endian words ws.
func FromWords(ws []Word) *Nat {
	z := Allocate(len(ws) * WordBytes)
	if len(ws) == 0 {
		return z
	}
	z.words = z.words[:len(ws)]
	copy(z.words, ws)
	z.trim()
	return z
}

// SetLimit caps the buffer at maxBytes, rounded up to whole words. Growth
// never allocates past the cap, and needing a word beyond it panics with an
// apperrors.AllocationError. Zero removes the cap.
func (z *Nat) SetLimit(maxBytes int) {
	if maxBytes <= 0 {
		z.limit = 0
		return
	}
	z.limit = (maxBytes + WordBytes - 1) / WordBytes
	if cap(z.words) > z.limit && len(z.words) <= z.limit {
		z.words = z.words[:len(z.words):z.limit]
	}
}

// SetUint64 sets z to v.
func (z *Nat) SetUint64(v uint64) {
	if W == 64 || v>>32 == 0 {
		z.words = z.words[:1]
		z.words[0] = Word(v)
		return
	}
	z.reserve(2)
	z.words = z.words[:2]
	z.words[0] = Word(uint32(v))
	z.words[1] = Word(v >> 32)
	z.trim()
}

// Len returns the number of words in use.
func (z *Nat) Len() int { return len(z.words) }

// Cap returns the number of words reserved.
func (z *Nat) Cap() int { return cap(z.words) }

// ByteLen returns the size of the words in use, in bytes.
func (z *Nat) ByteLen() int { return len(z.words) * WordBytes }

// Words returns the words in use. The slice aliases z and must not be
// modified or retained across kernel calls.
func (z *Nat) Words() []Word { return z.words }

// Word returns word i, or 0 past the top word.
func (z *Nat) Word(i int) Word {
	if i < 0 || i >= len(z.words) {
		return 0
	}
	return z.words[i]
}

// Window returns the W bits of z starting at bit position pos.
func (z *Nat) Window(pos uint) Word {
	i := int(pos / W)
	k := pos % W
	x := z.Word(i) >> k
	if k != 0 {
		x |= z.Word(i+1) << (W - k)
	}
	return x
}

// BitLen returns the length of the absolute value of z in bits.
func (z *Nat) BitLen() int {
	top := len(z.words) - 1
	return top*W + bits.Len(uint(z.words[top]))
}

// IsZero reports whether z == 0.
func (z *Nat) IsZero() bool { return len(z.words) == 1 && z.words[0] == 0 }

// IsOne reports whether z == 1.
func (z *Nat) IsOne() bool { return len(z.words) == 1 && z.words[0] == 1 }

// Bytes returns the little-endian magnitude of z without trailing zero
// bytes (a single zero byte for 0).
func (z *Nat) Bytes() []byte {
	out := make([]byte, 0, len(z.words)*WordBytes)
	for _, w := range z.words {
		for b := 0; b < WordBytes; b++ {
			out = append(out, byte(w>>(8*b)))
		}
	}
	n := len(out)
	for n > 1 && out[n-1] == 0 {
		n--
	}
	return out[:n]
}

// Clone returns an independent copy of z with the same capacity and limit.
func (z *Nat) Clone() *Nat {
	words := make([]Word, len(z.words), cap(z.words))
	copy(words, z.words)
	return &Nat{words: words, inc: z.inc, limit: z.limit}
}

// Big returns z as a new big.Int.
func (z *Nat) Big() *big.Int {
	ws := make([]Word, len(z.words))
	copy(ws, z.words)
	return new(big.Int).SetBits(ws)
}

// Cmp compares z and y and returns -1, 0 or +1.
func (z *Nat) Cmp(y *Nat) int {
	if len(z.words) != len(y.words) {
		if len(z.words) < len(y.words) {
			return -1
		}
		return 1
	}
	for i := len(z.words) - 1; i >= 0; i-- {
		switch {
		case z.words[i] < y.words[i]:
			return -1
		case z.words[i] > y.words[i]:
			return 1
		}
	}
	return 0
}

// String returns the decimal representation of z.
func (z *Nat) String() string { return z.Big().String() }

// setWord sets z to the single word v.
func (z *Nat) setWord(v Word) {
	z.words = z.words[:1]
	z.words[0] = v
}

// reserve makes room for at least n words, rounded up to whole blocks and
// clamped to the limit. Existing words are preserved.
func (z *Nat) reserve(n int) {
	if n <= cap(z.words) {
		return
	}
	if z.limit > 0 && n > z.limit {
		panic(apperrors.AllocationError{
			Requested: uint64(n) * WordBytes,
			Limit:     uint64(z.limit) * WordBytes,
		})
	}
	size := (n + blockWords - 1) / blockWords * blockWords
	if z.limit > 0 {
		size = min(size, z.limit)
	}
	words := make([]Word, len(z.words), size)
	copy(words, z.words)
	z.words = words
}

// grow extends the storage by one increment, stopping at the configured
// limit when that comes first. It is called when every allocated word is in
// use. A Nat has no way to continue with a truncated buffer, so needing a
// word past the limit panics.
func (z *Nat) grow() {
	size := cap(z.words)
	if z.limit > 0 && size+1 > z.limit {
		panic(apperrors.AllocationError{
			Requested: uint64(size+1) * WordBytes,
			Limit:     uint64(z.limit) * WordBytes,
		})
	}
	inc := z.inc
	if inc <= 0 {
		inc = blockWords
	}
	size += inc
	if z.limit > 0 {
		size = min(size, z.limit)
	}
	words := make([]Word, len(z.words), size)
	copy(words, z.words)
	z.words = words
}

// trim drops zero words above the top non-zero word, keeping at least one.
func (z *Nat) trim() {
	n := len(z.words)
	for n > 1 && z.words[n-1] == 0 {
		n--
	}
	z.words = z.words[:n]
}
