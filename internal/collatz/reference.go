package collatz

import "math/big"

// ReferenceRun follows the trajectory of n one step at a time on math/big,
// without tables, shortcuts or word-level tricks. n is not modified. The
// trajectory of 0 is empty.
func ReferenceRun(n *big.Int) Stats {
	var s Stats
	x := new(big.Int).Abs(n)
	if x.Sign() == 0 {
		return s
	}
	t := new(big.Int)
	for {
		tz := x.TrailingZeroBits()
		x.Rsh(x, tz)
		s.Div2 += uint64(tz)
		if x.BitLen() == 1 {
			return s
		}
		// 3x+1 = 2x + x + 1
		t.Lsh(x, 1)
		x.Add(x, t)
		x.Add(x, bigOne)
		s.Mul3++
		s.Iterations++
	}
}

var bigOne = big.NewInt(1)
