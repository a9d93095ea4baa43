// Package collatz runs the accelerated 3x+1 trajectory of an arbitrary
// precision integer down to 1, counting the odd steps (mul3) and the
// halving steps (div2).
//
// The engine folds several halving steps into one affine transform read
// from a precomputed Table, and applies it to the whole number with a single
// bignum.Kernel pass. ReferenceRun provides an independent step-by-step
// oracle on math/big for verification and tests.
package collatz
