package common

import "fmt"

// RunParameters are validated once at startup and read-only afterwards.
type RunParameters struct {
	Seed    uint32 `json:"-"`
	N1      uint64 `json:"n1"`
	N2      uint64 `json:"n2"`
	Warmup  int    `json:"warmup"`
	Repeats int    `json:"repeats"`
}

// TimeStats are in milliseconds. Percentiles use the nearest-rank method.
type TimeStats struct {
	Min    float64 `json:"min"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

type TestResult struct {
	ID         string
	Digest     uint64
	DigestBits int
	Time       TimeStats

	// Samples are the timed runs in execution order, kept for the exporter.
	Samples []float64
}

func (r *TestResult) DigestHex() string {
	return fmt.Sprintf("%016x", r.Digest)
}

type Report struct {
	RunID       string
	Lang        string
	Seed        uint32
	Params      RunParameters
	Results     []*TestResult
	FinalDigest uint64
}

func (r *Report) FinalDigestHex() string {
	return fmt.Sprintf("%016x", r.FinalDigest)
}

// FoldDigest32 is the 32-bit form runtimes without native 64-bit integers
// emit for T2: the high and low halves XOR-ed together.
func FoldDigest32(digest uint64) uint32 {
	return uint32(digest>>32) ^ uint32(digest)
}
