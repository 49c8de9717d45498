package driver

import "math/bits"

// sink collects every digest the driver sees. It is read back by the caller
// after the run, so no kernel result is provably unused.
var sink uint64

func consume(digest uint64) {
	sink = bits.RotateLeft64(sink, 7) ^ digest
}

func Sink() uint64 {
	return sink
}
