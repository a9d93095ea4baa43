package bignum

import "math/bits"

// laneWidth is the number of words handled per block by LanesKernel.
const laneWidth = 4

// carryLookahead maps the generate mask g and propagate mask p of a block
// (index g | p<<4) to the carry bits of that block: bit j is the carry into
// word j, bit 4 the carry out of the block.
var carryLookahead = buildCarryLookahead()

func buildCarryLookahead() (t [256]uint8) {
	for g := 0; g < 1<<laneWidth; g++ {
		for p := 0; p < 1<<laneWidth; p++ {
			var c, mask uint8
			for j := 0; j < laneWidth; j++ {
				mask |= c << j
				c = uint8(g>>j)&1 | uint8(p>>j)&1&c
			}
			t[g|p<<laneWidth] = mask | c<<laneWidth
		}
	}
	return t
}

// LanesKernel processes four words per block. The products and raw sums of a
// block are independent of each other; the carries between them are resolved
// afterwards from the block's generate and propagate masks with a single table
// lookup. Its output is identical to ScalarKernel.
type LanesKernel struct{}

// Name returns "lanes".
func (LanesKernel) Name() string { return "lanes" }

// ShrMulAdd applies floor(z / 2^shift) * mul + add to z.
func (LanesKernel) ShrMulAdd(z *Nat, shift uint, mul, add Word) {
	shrMulAddLanes(z, shift, mul, add)
}

func shrMulAddLanes(z *Nat, shift uint, mul, add Word) {
	w := z.words
	n := len(w)
	i := int(shift / W)
	k := shift % W
	if i >= n {
		z.setWord(add)
		return
	}

	x := w[i] >> k
	i++
	carry := uint(add)
	m := uint(mul)
	j := 0

	// Every word of a block is read before any output word is written. The
	// output index trails the input index, so in-place writes never clobber
	// unread input.
	for ; i+laneWidth <= n; i += laneWidth {
		in := w[i : i+laneWidth : i+laneWidth]
		s0 := uint(in[0]<<(W-k) | x)
		s1 := uint(in[1]<<(W-k) | in[0]>>k)
		s2 := uint(in[2]<<(W-k) | in[1]>>k)
		s3 := uint(in[3]<<(W-k) | in[2]>>k)
		x = in[3] >> k

		h0, l0 := bits.Mul(s0, m)
		h1, l1 := bits.Mul(s1, m)
		h2, l2 := bits.Mul(s2, m)
		h3, l3 := bits.Mul(s3, m)

		r0, g0 := bits.Add(l0, carry, 0)
		r1, g1 := bits.Add(l1, h0, 0)
		r2, g2 := bits.Add(l2, h1, 0)
		r3, g3 := bits.Add(l3, h2, 0)

		// A raw sum propagates an incoming carry iff it is all ones.
		_, p0 := bits.Add(r0, 1, 0)
		_, p1 := bits.Add(r1, 1, 0)
		_, p2 := bits.Add(r2, 1, 0)
		_, p3 := bits.Add(r3, 1, 0)

		gen := g0 | g1<<1 | g2<<2 | g3<<3
		prop := p0 | p1<<1 | p2<<2 | p3<<3
		cm := uint(carryLookahead[gen|prop<<laneWidth])

		out := w[j : j+laneWidth : j+laneWidth]
		out[0] = Word(r0 + cm&1)
		out[1] = Word(r1 + cm>>1&1)
		out[2] = Word(r2 + cm>>2&1)
		out[3] = Word(r3 + cm>>3&1)
		carry = h3 + cm>>laneWidth
		j += laneWidth
	}

	for ; i < n; i++ {
		lo := w[i]<<(W-k) | x
		x = w[i] >> k
		hi, l := bits.Mul(uint(lo), m)
		l, c := bits.Add(l, carry, 0)
		w[j] = Word(l)
		carry = hi + c
		j++
	}
	z.finish(j, x, mul, carry)
}
