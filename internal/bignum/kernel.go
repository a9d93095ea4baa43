package bignum

import "math/bits"

// Kernel replaces the value V of a Nat with floor(V / 2^shift) * mul + add,
// in place. mul and add are single words. The buffer grows by at most one
// word per call.
//
// All implementations produce identical buffers for identical inputs.
type Kernel interface {
	// Name identifies the implementation in logs and configuration.
	Name() string
	// ShrMulAdd applies the transform to z.
	ShrMulAdd(z *Nat, shift uint, mul, add Word)
}

// ScalarKernel processes one word per step with a widening multiply.
type ScalarKernel struct{}

// Name returns "scalar".
func (ScalarKernel) Name() string { return "scalar" }

// ShrMulAdd applies floor(z / 2^shift) * mul + add to z.
func (ScalarKernel) ShrMulAdd(z *Nat, shift uint, mul, add Word) {
	shrMulAddScalar(z, shift, mul, add)
}

// MulAdd sets z = z*mul + add using the portable kernel.
func (z *Nat) MulAdd(mul, add Word) {
	shrMulAddScalar(z, 0, mul, add)
}

func shrMulAddScalar(z *Nat, shift uint, mul, add Word) {
	w := z.words
	n := len(w)
	i := int(shift / W)
	k := shift % W
	if i >= n {
		z.setWord(add)
		return
	}

	// x holds the bits of the current input word not yet emitted.
	x := w[i] >> k
	i++
	carry := uint(add)
	j := 0
	for ; i < n; i++ {
		lo := w[i]<<(W-k) | x
		x = w[i] >> k
		hi, l := bits.Mul(uint(lo), uint(mul))
		l, c := bits.Add(l, carry, 0)
		w[j] = Word(l)
		carry = hi + c
		j++
	}
	z.finish(j, x, mul, carry)
}

// finish emits the leftover high bits x of the last input word, appends the
// final carry word if any and fixes up the length. j is the number of words
// already written.
func (z *Nat) finish(j int, x, mul Word, carry uint) {
	w := z.words
	if x != 0 {
		hi, l := bits.Mul(uint(x), uint(mul))
		l, c := bits.Add(l, carry, 0)
		w[j] = Word(l)
		carry = hi + c
		j++
	}
	if carry != 0 {
		if j == cap(w) {
			z.grow()
			w = z.words
		}
		w = w[:j+1]
		w[j] = Word(carry)
		j++
	}
	if j == 0 {
		w[0] = 0
		j = 1
	}
	z.words = w[:j]
	z.trim()
}
