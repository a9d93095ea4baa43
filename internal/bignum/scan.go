package bignum

import "math/bits"

// Scan returns the number of low bits to discard before the next odd step,
// and whether the trajectory has ended.
//
// The count starts as the number of trailing zero bits of z. When the first
// non-zero word is not the top word, the bits above its trailing zeros are
// then inspected: while their low three bits read 101, two more bits are
// counted. For odd x = 4y+1 with y odd, (3x+1)/4 = 3y+1, so stepping from y
// reproduces the same value with the two halvings already counted.
//
// terminal is true when the remaining value is 0 or 1 and no higher word is
// left, i.e. z is 0 or a power of two. A zero buffer reports (0, true).
func Scan(z *Nat) (shift uint, terminal bool) {
	return scan(z.words, true)
}

// ScanPlain is Scan without the 101 shortcut: shift is the plain trailing
// zero count.
func ScanPlain(z *Nat) (shift uint, terminal bool) {
	return scan(z.words, false)
}

func scan(w []Word, shortcut bool) (uint, bool) {
	n := len(w)
	for i := 0; i < n; i++ {
		a := w[i]
		if a == 0 {
			continue
		}
		tz := uint(bits.TrailingZeros(uint(a)))
		a >>= tz
		shift := uint(i)*W + tz
		top := i == n-1
		if shortcut && !top {
			for a&7 == 5 {
				a >>= 2
				shift += 2
			}
		}
		return shift, top && a < 2
	}
	return 0, true
}
