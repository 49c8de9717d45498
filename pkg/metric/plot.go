package metric

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vhive-serverless/cpubench/pkg/common"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotSamples draws one box per test from the raw timing samples. The output
// format follows the file extension.
func PlotSamples(path string, report *common.Report) error {
	p := plot.New()

	p.Title.Text = "Timing samples"
	p.Y.Label.Text = "Time (ms)"

	names := make([]string, 0, len(report.Results))
	for i, result := range report.Results {
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(result.Samples))
		if err != nil {
			return errors.Wrapf(err, "building box plot for %s", result.ID)
		}

		p.Add(box)
		names = append(names, result.ID)
	}
	p.NominalX(names...)

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
