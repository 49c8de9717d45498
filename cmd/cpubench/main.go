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

package main

import (
	"flag"
	"math"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/vhive-serverless/cpubench/pkg/common"
	"github.com/vhive-serverless/cpubench/pkg/config"
	"github.com/vhive-serverless/cpubench/pkg/driver"
	"github.com/vhive-serverless/cpubench/pkg/metric"

	log "github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "cmd/config.json", "Path to benchmark configuration file")
	verbosity  = flag.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace]")

	seed    = flag.Uint("seed", 0, "Override the xorshift32 seed (non-zero)")
	n1      = flag.Uint64("n1", 0, "Override the T1_INT32_MIX iteration count")
	n2      = flag.Uint64("n2", 0, "Override the T2_FP64_DOT iteration count")
	warmup  = flag.Int("warmup", 0, "Override the number of untimed warmup runs")
	repeats = flag.Int("repeats", 0, "Override the number of timed runs")
	pinCPU  = flag.Int("pin", -1, "Override the CPU to pin the benchmark thread to")
)

func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.StampMilli,
		FullTimestamp:   true,
	})
	// The JSON report goes to stdout, so logs go to stderr.
	log.SetOutput(os.Stderr)

	switch *verbosity {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "trace":
		log.SetLevel(log.TraceLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	flag.Parse()
	setupLogging()

	cfg, err := config.ReadConfigurationFile(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("Using default configuration: %v", err)
	} else if err != nil {
		log.Fatal(err)
	}
	if err := applyOverrides(&cfg); err != nil {
		log.Fatal(err)
	}

	params := cfg.RunParameters()
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	log.Infof("Running with seed=%d n1=%d n2=%d warmup=%d repeats=%d",
		params.Seed, params.N1, params.N2, params.Warmup, params.Repeats)

	benchDriver := driver.NewDriver(&driver.DriverConfiguration{
		Parameters: params,
		Progress:   logProgress,
		PinCPU:     cfg.PinCPU,
	})

	report, err := benchDriver.RunBenchmark()
	if err != nil {
		log.Fatal(err)
	}

	for _, line := range metric.SummaryLines(report) {
		log.Info(line)
	}

	if err := metric.WriteReport(os.Stdout, report); err != nil {
		log.Fatal(err)
	}

	if cfg.OutputPathPrefix != "" {
		saveOutputs(cfg, report)
	}

	// Keep every digest observable.
	log.Tracef("sink=%016x", driver.Sink())
}

// applyOverrides copies only the flags given on the command line.
func applyOverrides(cfg *config.BenchConfiguration) error {
	if *seed > math.MaxUint32 {
		return errors.Wrapf(common.ErrInvalidConfiguration, "seed %d does not fit in 32 bits", *seed)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = uint32(*seed)
		case "n1":
			cfg.N1 = *n1
		case "n2":
			cfg.N2 = *n2
		case "warmup":
			cfg.Warmup = *warmup
		case "repeats":
			cfg.Repeats = *repeats
		case "pin":
			cfg.PinCPU = *pinCPU
		}
	})

	return nil
}

func logProgress(update driver.ProgressUpdate) {
	log.WithFields(log.Fields{
		"test":   update.TestID,
		"phase":  update.Phase,
		"run":    update.Index,
		"of":     update.Total,
		"status": update.Status,
	}).Debugf("step %d/%d", update.CompletedSteps, update.TotalSteps)
}
