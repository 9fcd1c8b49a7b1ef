package hashset

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Hasher maps an element to a 64-bit hash. The table index is the hash
// masked by capacity-1, so a Hasher must spread entropy into the low bits.
type Hasher[T constraints.Integer] func(v T) uint64

const (
	m1 = 0xa0761d6478bd642f
	m2 = 0xe7037ed1a0b428db
	m5 = 0x1d8e4e27c47d124f
)

func mix(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return hi ^ lo
}

// DefaultHasher is a wyhash-style multiply-mix over the element's 64-bit
// pattern. Constants are fixed, so hashes are stable across runs.
func DefaultHasher[T constraints.Integer](v T) uint64 {
	x := uint64(v)
	return mix(m5^8, mix(x^m2, x^m1))
}

// IdentityHasher uses the element value itself as its hash. Useful when a
// caller wants to pin table placement, e.g. in tests or when keys are
// already well distributed.
func IdentityHasher[T constraints.Integer](v T) uint64 {
	return uint64(v)
}

// nextPowerOfTwo rounds n up to the next power of two, minimum 1.
func nextPowerOfTwo(n int) int {
	if n < 2 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
