package driver

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vhive-serverless/cpubench/pkg/common"
	"github.com/vhive-serverless/cpubench/pkg/kernel"
)

// countingKernel returns digests[call] (or the last entry) and records calls.
type countingKernel struct {
	digests []uint64
	calls   int
}

func (k *countingKernel) ID() string      { return "TEST_KERNEL" }
func (k *countingKernel) DigestBits() int { return 64 }

func (k *countingKernel) Run(n uint64, seed uint32) (uint64, error) {
	idx := k.calls
	if idx >= len(k.digests) {
		idx = len(k.digests) - 1
	}
	k.calls++
	return k.digests[idx], nil
}

var errClockUnavailable = errors.New("clock unavailable")

// steppingClock advances by the next step on every read and can fail on a
// chosen read.
type steppingClock struct {
	now    time.Duration
	steps  []time.Duration
	reads  int
	failAt int
}

func (c *steppingClock) Now() (time.Duration, error) {
	c.reads++
	if c.failAt > 0 && c.reads == c.failAt {
		return 0, errClockUnavailable
	}
	if len(c.steps) > 0 {
		c.now += c.steps[(c.reads-1)%len(c.steps)]
	}
	return c.now, nil
}

func testParameters(warmup, repeats int) common.RunParameters {
	return common.RunParameters{Seed: common.DefaultSeed, N1: 100, N2: 100, Warmup: warmup, Repeats: repeats}
}

func TestMeasureCollectsTimedRunsOnly(t *testing.T) {
	k := &countingKernel{digests: []uint64{0xabc}}
	clock := &steppingClock{steps: []time.Duration{0, 2 * time.Millisecond}}

	d := NewDriver(&DriverConfiguration{Parameters: testParameters(3, 4), Clock: clock, PinCPU: -1})
	result, err := d.Measure(k, 10)
	require.NoError(t, err)

	assert.Equal(t, 7, k.calls)
	assert.Equal(t, 8, clock.reads)
	assert.Equal(t, "TEST_KERNEL", result.ID)
	assert.Equal(t, uint64(0xabc), result.Digest)
	assert.Equal(t, []float64{2, 2, 2, 2}, result.Samples)
	assert.Equal(t, 2.0, result.Time.P50)
}

func TestMeasureStatisticsFromClock(t *testing.T) {
	k := &countingKernel{digests: []uint64{1}}
	// Alternating reads: start (+1ms gap), end (+run time).
	clock := &steppingClock{steps: []time.Duration{
		time.Millisecond, 5 * time.Millisecond,
		time.Millisecond, 1 * time.Millisecond,
		time.Millisecond, 3 * time.Millisecond,
	}}

	d := NewDriver(&DriverConfiguration{Parameters: testParameters(0, 3), Clock: clock, PinCPU: -1})
	result, err := d.Measure(k, 1)
	require.NoError(t, err)

	assert.Equal(t, []float64{5, 1, 3}, result.Samples)
	assert.Equal(t, 1.0, result.Time.Min)
	assert.Equal(t, 3.0, result.Time.P50)
	assert.Equal(t, 5.0, result.Time.P95)
	assert.Equal(t, 5.0, result.Time.Max)
}

func TestMeasureDigestMismatch(t *testing.T) {
	k := &countingKernel{digests: []uint64{7, 7, 7, 8}}

	d := NewDriver(&DriverConfiguration{Parameters: testParameters(1, 5), Clock: &steppingClock{}, PinCPU: -1})
	result, err := d.Measure(k, 1)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, common.ErrDigestMismatch)
}

func TestMeasureClockFailure(t *testing.T) {
	k := &countingKernel{digests: []uint64{1}}
	clock := &steppingClock{failAt: 4}

	d := NewDriver(&DriverConfiguration{Parameters: testParameters(0, 5), Clock: clock, PinCPU: -1})
	result, err := d.Measure(k, 1)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, common.ErrClockFailure)
	assert.Equal(t, 2, k.calls)

	// the clock's own error stays reachable behind the sentinel
	assert.ErrorIs(t, err, errClockUnavailable)
	var clockErr *ClockError
	require.True(t, errors.As(err, &clockErr))
	assert.Equal(t, errClockUnavailable, clockErr.Cause)
}

func TestMeasureClockFailureOnStart(t *testing.T) {
	k := &countingKernel{digests: []uint64{1}}

	d := NewDriver(&DriverConfiguration{Parameters: testParameters(2, 3), Clock: &steppingClock{failAt: 1}, PinCPU: -1})
	_, err := d.Measure(k, 1)

	assert.ErrorIs(t, err, common.ErrClockFailure)
	assert.ErrorIs(t, err, errClockUnavailable)
	// only the warmup runs happened
	assert.Equal(t, 2, k.calls)
}

func TestMeasureRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		testName   string
		parameters common.RunParameters
		n          uint64
	}{
		{testName: "zero_seed", parameters: common.RunParameters{Seed: 0, Repeats: 1}, n: 1},
		{testName: "zero_iterations", parameters: common.RunParameters{Seed: 1, Repeats: 1}, n: 0},
		{testName: "zero_repeats", parameters: common.RunParameters{Seed: 1, Repeats: 0}, n: 1},
	}

	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			k := &countingKernel{digests: []uint64{1}}
			clock := &steppingClock{}

			d := NewDriver(&DriverConfiguration{Parameters: test.parameters, Clock: clock, PinCPU: -1})
			_, err := d.Measure(k, test.n)

			assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
			assert.Zero(t, k.calls)
			assert.Zero(t, clock.reads)
		})
	}
}

func TestRunBenchmarkRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		testName string
		mutate   func(p *common.RunParameters)
	}{
		{testName: "zero_seed", mutate: func(p *common.RunParameters) { p.Seed = 0 }},
		{testName: "zero_n1", mutate: func(p *common.RunParameters) { p.N1 = 0 }},
		{testName: "zero_n2", mutate: func(p *common.RunParameters) { p.N2 = 0 }},
		{testName: "zero_repeats", mutate: func(p *common.RunParameters) { p.Repeats = 0 }},
	}

	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			p := testParameters(1, 1)
			test.mutate(&p)

			clock := &steppingClock{}
			progressEvents := 0
			d := NewDriver(&DriverConfiguration{
				Parameters: p,
				Clock:      clock,
				Progress:   func(ProgressUpdate) { progressEvents++ },
				PinCPU:     -1,
			})

			report, err := d.RunBenchmark()
			assert.Nil(t, report)
			assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
			assert.Zero(t, clock.reads)
			assert.Zero(t, progressEvents)
		})
	}
}

func TestRunBenchmarkReport(t *testing.T) {
	p := common.RunParameters{Seed: 12345, N1: 1000, N2: 1000, Warmup: 1, Repeats: 3}
	d := NewDriver(&DriverConfiguration{Parameters: p, PinCPU: -1})

	report, err := d.RunBenchmark()
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, common.Lang, report.Lang)
	assert.Equal(t, uint32(12345), report.Seed)
	require.Len(t, report.Results, 2)

	t1, t2 := report.Results[0], report.Results[1]
	assert.Equal(t, common.Int32MixID, t1.ID)
	assert.Equal(t, uint64(0x6dfc3af0), t1.Digest)
	assert.Equal(t, 32, t1.DigestBits)
	assert.Equal(t, common.Fp64DotID, t2.ID)
	assert.Equal(t, uint64(0x406e3a4d259974c4), t2.Digest)
	assert.Equal(t, "406e3a4d259974c4", t2.DigestHex())
	assert.Equal(t, t1.Digest^t2.Digest, report.FinalDigest)

	for _, result := range report.Results {
		assert.Len(t, result.Samples, 3)
		assert.LessOrEqual(t, result.Time.Min, result.Time.P50)
		assert.LessOrEqual(t, result.Time.P50, result.Time.P95)
		assert.LessOrEqual(t, result.Time.P95, result.Time.Max)
	}
}

func TestWarmupDoesNotChangeDigest(t *testing.T) {
	var digests []uint64
	for _, warmup := range []int{0, 1, 5} {
		d := NewDriver(&DriverConfiguration{Parameters: testParameters(warmup, 2), PinCPU: -1})

		result, err := d.Measure(kernel.T1, 500)
		require.NoError(t, err)
		assert.Len(t, result.Samples, 2)
		digests = append(digests, result.Digest)
	}

	assert.Equal(t, digests[0], digests[1])
	assert.Equal(t, digests[0], digests[2])
}

func TestProgressUpdates(t *testing.T) {
	var updates []ProgressUpdate
	d := NewDriver(&DriverConfiguration{
		Parameters: testParameters(2, 3),
		Progress:   func(u ProgressUpdate) { updates = append(updates, u) },
		PinCPU:     -1,
	})

	_, err := d.RunBenchmark()
	require.NoError(t, err)

	// started + finished for every invocation of both kernels
	require.Len(t, updates, 2*2*(2+3))

	first, last := updates[0], updates[len(updates)-1]
	assert.Equal(t, common.Int32MixID, first.TestID)
	assert.Equal(t, common.WarmupPhase, first.Phase)
	assert.Equal(t, common.StepStarted, first.Status)
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, 0, first.CompletedSteps)
	assert.Equal(t, 10, first.TotalSteps)

	assert.Equal(t, common.Fp64DotID, last.TestID)
	assert.Equal(t, common.MeasurePhase, last.Phase)
	assert.Equal(t, common.StepFinished, last.Status)
	assert.Equal(t, 3, last.Index)
	assert.Equal(t, 3, last.Total)
	assert.Equal(t, 10, last.CompletedSteps)

	for i := 1; i < len(updates); i++ {
		assert.GreaterOrEqual(t, updates[i].CompletedSteps, updates[i-1].CompletedSteps)
	}
}

func TestSinkObservesDigests(t *testing.T) {
	before := Sink()
	d := NewDriver(&DriverConfiguration{Parameters: testParameters(0, 1), Clock: &steppingClock{}, PinCPU: -1})

	_, err := d.Measure(&countingKernel{digests: []uint64{0x5555}}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, before, Sink())
}
