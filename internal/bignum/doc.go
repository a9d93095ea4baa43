// Package bignum implements the growable unsigned integer mutated in place by
// the Collatz engine, together with the shifted multiply-add kernels and the
// trailing-zero scanner that operate on it.
//
// A Nat stores its magnitude as little-endian machine words (math/big.Word)
// on every host. Byte order is normalized once, when raw bytes are loaded.
// After that the buffer is only changed by a Kernel.
//
// Nat values are not safe for concurrent use. An engine owns its Nat for the
// whole run.
package bignum
