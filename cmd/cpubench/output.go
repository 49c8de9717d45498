package main

import (
	"github.com/vhive-serverless/cpubench/pkg/common"
	"github.com/vhive-serverless/cpubench/pkg/config"
	"github.com/vhive-serverless/cpubench/pkg/metric"

	log "github.com/sirupsen/logrus"
)

func saveOutputs(cfg config.BenchConfiguration, report *common.Report) {
	reportPath := cfg.OutputPathPrefix + "_report.json"
	if err := metric.SaveReport(reportPath, report); err != nil {
		log.Fatal(err)
	}

	samplesPath := cfg.OutputPathPrefix + "_samples.csv"
	if err := metric.ExportSamples(samplesPath, report); err != nil {
		log.Fatal(err)
	}

	log.Infof("Report written to %s, samples to %s", reportPath, samplesPath)

	if cfg.EnablePlot {
		plotPath := cfg.OutputPathPrefix + "_samples.png"
		if err := metric.PlotSamples(plotPath, report); err != nil {
			log.Warnf("Failed to plot samples: %v", err)
			return
		}
		log.Infof("Box plot written to %s", plotPath)
	}
}
