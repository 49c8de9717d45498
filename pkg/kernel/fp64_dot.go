package kernel

import (
	"math"

	"github.com/vhive-serverless/cpubench/pkg/generator"
)

const DotBias = 1e-9

// Fp64Dot accumulates a*b+C over pairs of draws with plain sequential
// summation and returns the bit pattern of the sum.
//
//go:noinline
func Fp64Dot(n uint64, seed uint32) (uint64, error) {
	rng, err := generator.NewXorShift32(seed)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for i := uint64(0); i < n; i++ {
		a := rng.NextFloat64()
		b := rng.NextFloat64()
		// The explicit conversion forces the product to be rounded, so the
		// compiler may not contract it into an FMA.
		sum += float64(a*b) + DotBias
	}

	return math.Float64bits(sum), nil
}
