package kernel

import (
	"math/bits"

	"github.com/vhive-serverless/cpubench/pkg/generator"
)

const (
	MixMultiplier uint32 = 0x9E3779B1
	MixFlipMask   uint32 = 0xA5A5A5A5
)

// Int32Mix stresses the integer ALU and the branch predictor. Every
// intermediate value is a uint32, so multiplication and addition wrap
// exactly like the masked arithmetic of other runtimes.
//
//go:noinline
func Int32Mix(n uint64, seed uint32) (uint32, error) {
	rng, err := generator.NewXorShift32(seed)
	if err != nil {
		return 0, err
	}

	var acc uint32
	for i := uint64(0); i < n; i++ {
		v := rng.NextUint32() ^ acc
		v = bits.RotateLeft32(v, int(i&31))
		v *= MixMultiplier
		v ^= v >> 16
		acc += v
		if v&0x8000 != 0 {
			acc ^= MixFlipMask
		}
	}

	return acc, nil
}
