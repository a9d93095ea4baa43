package collatz

import "github.com/agbru/collatz/internal/bignum"

// ─────────────────────────────────────────────────────────────────────────────
// Window Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MinWindow is the smallest table width. A width-1 table holds the single
	// (3x+1)/2 step.
	MinWindow = 1

	// MaxWindow is the largest table width accepted from the command line.
	// A width-26 table has 2^25 entries.
	MaxWindow = 26

	// DefaultWindow is the table width used when none is configured.
	DefaultWindow = 20

	// ParallelBuildWindow is the width from which the application builds the
	// table with BuildTableParallel.
	ParallelBuildWindow = 20

	// minTableWords is the number of words a value must occupy before a table
	// wider than 1 is worth using. Lookups read a word pair and the engine
	// keeps one word of headroom above it.
	minTableWords = 3
)

// SafeWindow is the largest number of bits that can be folded into one
// transform without overflowing a word: after k bits the multiplier is at
// most 3^k, and 3^(5W/8) < 2^W for W = 32 and W = 64.
func SafeWindow() int {
	return 5 * bignum.W / 8
}

// ─────────────────────────────────────────────────────────────────────────────
// Progress Reporting Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultProgressInterval is the number of iterations between progress
	// notifications.
	DefaultProgressInterval = 25000
)
