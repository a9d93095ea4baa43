// Package loader produces the starting value of a run: a decimal or
// hexadecimal literal, a raw little-endian file, or the synthetic value
// 2^n - 1.
package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/segmentio/asm/ascii"

	"github.com/agbru/collatz/internal/bignum"
	apperrors "github.com/agbru/collatz/internal/errors"
)

// Mode selects where the starting value comes from.
type Mode string

// Supported modes.
const (
	ModeNum  Mode = "num"
	ModeFile Mode = "file"
	ModeOnes Mode = "ones"
)

// ParseMode returns the mode named by s ("num", "--num", ...).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.TrimLeft(s, "-")) {
	case ModeNum:
		return ModeNum, nil
	case ModeFile:
		return ModeFile, nil
	case ModeOnes:
		return ModeOnes, nil
	}
	return "", apperrors.NewConfigError("unknown mode %q", s)
}

// Load produces the starting value for mode from arg.
func Load(mode Mode, arg string) (*bignum.Nat, error) {
	switch mode {
	case ModeNum:
		return ParseLiteral(arg)
	case ModeFile:
		return LoadFile(arg)
	case ModeOnes:
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, apperrors.InputError{Source: string(ModeOnes), Message: fmt.Sprintf("invalid bit count %q", arg), Cause: err}
		}
		return Ones(n)
	}
	return nil, apperrors.NewConfigError("unknown mode %q", string(mode))
}

// decimalChunk is the number of decimal digits folded into one kernel call:
// the largest power of ten that fits in a word.
const decimalChunk = 9 + 10*(bignum.W/64)

// ParseLiteral parses a decimal literal, or a hexadecimal one when prefixed
// with 0x or 0X.
func ParseLiteral(s string) (*bignum.Nat, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return ParseHex(s[2:])
	}
	return ParseDecimal(s)
}

// ParseDecimal parses an unsigned decimal literal.
func ParseDecimal(s string) (*bignum.Nat, error) {
	if err := checkLiteral(s); err != nil {
		return nil, err
	}
	// log2(10)/8 < 0.42 bytes per digit.
	z := bignum.Allocate(len(s)*42/100 + bignum.WordBytes)
	for len(s) > 0 {
		c := min(len(s), decimalChunk)
		var v, scale bignum.Word = 0, 1
		for _, ch := range []byte(s[:c]) {
			d := ch - '0'
			if d > 9 {
				return nil, apperrors.NewInputError(string(ModeNum), "unexpected character %q in a decimal number string", ch)
			}
			v = v*10 + bignum.Word(d)
			scale *= 10
		}
		z.MulAdd(scale, v)
		s = s[c:]
	}
	return z, nil
}

// ParseHex parses an unsigned hexadecimal literal without prefix.
func ParseHex(s string) (*bignum.Nat, error) {
	if err := checkLiteral(s); err != nil {
		return nil, err
	}
	raw := make([]byte, (len(s)+1)/2)
	for i := 0; i < len(s); i++ {
		ch := s[len(s)-1-i]
		d, ok := hexDigit(ch)
		if !ok {
			return nil, apperrors.NewInputError(string(ModeNum), "unexpected character %q in a hexadecimal number string", ch)
		}
		raw[i/2] |= d << (4 * (i & 1))
	}
	return bignum.FromBytes(raw), nil
}

func checkLiteral(s string) error {
	if s == "" {
		return apperrors.NewInputError(string(ModeNum), "empty number string")
	}
	if !ascii.ValidString(s) {
		return apperrors.NewInputError(string(ModeNum), "number string contains non-ASCII characters")
	}
	return nil
}

func hexDigit(ch byte) (byte, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

// LoadFile reads path as a little-endian magnitude. An empty file is an
// error.
func LoadFile(path string) (*bignum.Nat, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.InputError{Source: string(ModeFile), Message: "cannot read " + path, Cause: err}
	}
	if len(raw) == 0 {
		return nil, apperrors.NewInputError(string(ModeFile), "%s is empty", path)
	}
	return bignum.FromBytes(raw), nil
}

// Ones returns 2^n - 1 for n >= 1.
func Ones(n int) (*bignum.Nat, error) {
	if n < 1 {
		return nil, apperrors.NewInputError(string(ModeOnes), "bit count must be positive, got %d", n)
	}
	raw := make([]byte, (n+7)>>3)
	for i := range raw {
		raw[i] = 0xff
	}
	if r := n & 7; r != 0 {
		raw[len(raw)-1] = byte(1)<<r - 1
	}
	return bignum.FromBytes(raw), nil
}
