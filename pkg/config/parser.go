package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/vhive-serverless/cpubench/pkg/common"
)

type BenchConfiguration struct {
	Seed    uint32 `json:"Seed"`
	N1      uint64 `json:"N1"`
	N2      uint64 `json:"N2"`
	Warmup  int    `json:"Warmup"`
	Repeats int    `json:"Repeats"`

	// PinCPU < 0 leaves scheduling to the OS.
	PinCPU int `json:"PinCPU"`

	OutputPathPrefix string `json:"OutputPathPrefix"`
	EnablePlot       bool   `json:"EnablePlot"`
}

func DefaultConfiguration() BenchConfiguration {
	return BenchConfiguration{
		Seed:    common.DefaultSeed,
		N1:      common.DefaultN1,
		N2:      common.DefaultN2,
		Warmup:  common.DefaultWarmup,
		Repeats: common.DefaultRepeats,
		PinCPU:  -1,
	}
}

// ReadConfigurationFile overlays the file on top of the defaults, so any key
// missing from the file keeps its default value. On any error the plain
// defaults are returned; a missing file matches os.ErrNotExist.
func ReadConfigurationFile(path string) (BenchConfiguration, error) {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfiguration(), errors.Wrap(err, "reading configuration")
	}

	config := DefaultConfiguration()
	if err := json.Unmarshal(byteValue, &config); err != nil {
		return DefaultConfiguration(), errors.Wrapf(err, "parsing configuration %s", path)
	}

	return config, nil
}

func (c BenchConfiguration) RunParameters() common.RunParameters {
	return common.RunParameters{
		Seed:    c.Seed,
		N1:      c.N1,
		N2:      c.N2,
		Warmup:  c.Warmup,
		Repeats: c.Repeats,
	}
}
