package bignum

import (
	"unsafe"

	"github.com/segmentio/asm/bswap"
	"golang.org/x/sys/cpu"
)

// Normalize loads the little-endian magnitude raw into z, replacing its
// value. Trailing zero bytes are ignored; an empty or all-zero input loads 0.
//
// The bytes are copied into the word storage as-is and then, on big-endian
// hosts only, swapped within each word. This is the only place where host
// byte order matters.
func (z *Nat) Normalize(raw []byte) {
	n := len(raw)
	for n > 1 && raw[n-1] == 0 {
		n--
	}
	if n == 0 {
		z.setWord(0)
		return
	}
	nw := (n + WordBytes - 1) / WordBytes
	z.reserve(nw)
	z.words = z.words[:nw]

	buf := wordBytes(z.words)
	copy(buf, raw[:n])
	clear(buf[n:])
	if cpu.IsBigEndian {
		swapWordBytes(buf)
	}
	z.trim()
}

// wordBytes returns the memory of ws as a byte slice.
func wordBytes(ws []Word) []byte {
	if len(ws) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&ws[0])), len(ws)*WordBytes)
}

// swapWordBytes reverses the byte order of every word in buf.
// len(buf) must be a multiple of WordBytes.
func swapWordBytes(buf []byte) {
	if WordBytes == 8 {
		bswap.Swap64(buf)
		return
	}
	for k := 0; k+WordBytes <= len(buf); k += WordBytes {
		for i := 0; i < WordBytes/2; i++ {
			buf[k+i], buf[k+WordBytes-1-i] = buf[k+WordBytes-1-i], buf[k+i]
		}
	}
}
