/*
 * MIT License
 *
 * Copyright (c) 2023 EASL and the vHive community
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package driver

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vhive-serverless/cpubench/pkg/common"
	"github.com/vhive-serverless/cpubench/pkg/kernel"

	log "github.com/sirupsen/logrus"
)

type DriverConfiguration struct {
	Parameters common.RunParameters

	// Clock defaults to a MonotonicClock.
	Clock    Clock
	Progress ProgressFunc

	// PinCPU restricts the run to one CPU when non-negative.
	PinCPU int
}

type Driver struct {
	Configuration *DriverConfiguration

	completedSteps int
	totalSteps     int
}

func NewDriver(driverConfig *DriverConfiguration) *Driver {
	if driverConfig.Clock == nil {
		driverConfig.Clock = NewMonotonicClock()
	}

	p := driverConfig.Parameters
	return &Driver{
		Configuration: driverConfig,
		totalSteps:    len(kernel.Suite()) * (p.Warmup + p.Repeats),
	}
}

/////////////////////////////////////////
// MEASUREMENT
/////////////////////////////////////////

// Measure runs k warmup times untimed, then repeats times timed, and packages
// the digest with the timing statistics. All timed runs must agree on the
// digest.
func (d *Driver) Measure(k kernel.Kernel, n uint64) (*common.TestResult, error) {
	p := d.Configuration.Parameters
	if err := common.CheckSeed(p.Seed); err != nil {
		return nil, err
	}
	if err := common.CheckIterations(k.ID(), n); err != nil {
		return nil, err
	}
	if err := common.CheckRepeats(p.Warmup, p.Repeats); err != nil {
		return nil, err
	}

	for i := 1; i <= p.Warmup; i++ {
		d.report(k.ID(), common.WarmupPhase, common.StepStarted, i, p.Warmup)

		digest, err := k.Run(n, p.Seed)
		if err != nil {
			return nil, errors.Wrapf(err, "%s warmup %d", k.ID(), i)
		}
		consume(digest)

		d.completedSteps++
		d.report(k.ID(), common.WarmupPhase, common.StepFinished, i, p.Warmup)
	}

	samples := make([]float64, 0, p.Repeats)
	var reference uint64

	for i := 1; i <= p.Repeats; i++ {
		d.report(k.ID(), common.MeasurePhase, common.StepStarted, i, p.Repeats)

		digest, elapsed, err := d.timedRun(k, n)
		if err != nil {
			return nil, errors.Wrapf(err, "%s repeat %d", k.ID(), i)
		}
		consume(digest)

		if i == 1 {
			reference = digest
		} else if digest != reference {
			return nil, errors.Wrapf(common.ErrDigestMismatch,
				"%s repeat %d produced %016x, expected %016x", k.ID(), i, digest, reference)
		}
		samples = append(samples, float64(elapsed)/common.OneMillisecondInNanoseconds)

		d.completedSteps++
		d.report(k.ID(), common.MeasurePhase, common.StepFinished, i, p.Repeats)
	}

	stats, err := ComputeStatistics(samples)
	if err != nil {
		return nil, err
	}

	log.Debugf("%s done. last_digest=%016x", k.ID(), reference)

	return &common.TestResult{
		ID:         k.ID(),
		Digest:     reference,
		DigestBits: k.DigestBits(),
		Time:       stats,
		Samples:    samples,
	}, nil
}

func (d *Driver) timedRun(k kernel.Kernel, n uint64) (uint64, time.Duration, error) {
	clock := d.Configuration.Clock

	start, err := clock.Now()
	if err != nil {
		return 0, 0, &ClockError{Cause: err}
	}

	digest, err := k.Run(n, d.Configuration.Parameters.Seed)
	if err != nil {
		return 0, 0, err
	}

	end, err := clock.Now()
	if err != nil {
		return 0, 0, &ClockError{Cause: err}
	}

	return digest, end - start, nil
}

/////////////////////////////////////////
// FULL RUN
/////////////////////////////////////////

// RunBenchmark measures T1 with N1 and then T2 with N2. Parameters are
// validated before any kernel runs and no partial report is returned.
func (d *Driver) RunBenchmark() (*common.Report, error) {
	p := d.Configuration.Parameters
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if d.Configuration.PinCPU >= 0 {
		release, err := pinToCPU(d.Configuration.PinCPU)
		if err != nil {
			log.Warnf("Running unpinned: %v", err)
		} else {
			log.Debugf("Pinned benchmark thread to CPU %d", d.Configuration.PinCPU)
			defer release()
		}
	}

	d.completedSteps = 0
	iterations := map[string]uint64{
		common.Int32MixID: p.N1,
		common.Fp64DotID:  p.N2,
	}

	report := &common.Report{
		RunID:  uuid.NewString(),
		Lang:   common.Lang,
		Seed:   p.Seed,
		Params: p,
	}

	for _, k := range kernel.Suite() {
		result, err := d.Measure(k, iterations[k.ID()])
		if err != nil {
			return nil, err
		}

		report.Results = append(report.Results, result)
		report.FinalDigest ^= result.Digest
	}

	log.Debugf("Digest sink: %016x", Sink())

	return report, nil
}
