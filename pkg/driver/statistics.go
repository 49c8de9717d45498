package driver

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/vhive-serverless/cpubench/pkg/common"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NearestRank returns sorted[ceil(p*n)-1]. gonum's empirical quantile is
// exactly that rule; for nine samples p95 selects the maximum.
func NearestRank(sorted []float64, p float64) float64 {
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func ComputeStatistics(samples []float64) (common.TimeStats, error) {
	if len(samples) == 0 {
		return common.TimeStats{}, errors.Wrap(common.ErrInvalidConfiguration, "no timing samples")
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	stats := common.TimeStats{
		Min: floats.Min(samples),
		P50: NearestRank(sorted, common.P50),
		P95: NearestRank(sorted, common.P95),
		Max: floats.Max(samples),
	}

	if len(sorted) > 1 {
		stats.Mean, stats.StdDev = stat.MeanStdDev(sorted, nil)
	} else {
		stats.Mean = sorted[0]
	}

	return stats, nil
}
