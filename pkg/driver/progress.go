package driver

import "github.com/vhive-serverless/cpubench/pkg/common"

type ProgressUpdate struct {
	TestID string
	Phase  common.BenchPhase
	Status common.StepStatus

	// Index is 1-based within the phase.
	Index int
	Total int

	CompletedSteps int
	TotalSteps     int
}

type ProgressFunc func(update ProgressUpdate)

func (d *Driver) report(testID string, phase common.BenchPhase, status common.StepStatus, index, total int) {
	if d.Configuration.Progress == nil {
		return
	}

	d.Configuration.Progress(ProgressUpdate{
		TestID:         testID,
		Phase:          phase,
		Status:         status,
		Index:          index,
		Total:          total,
		CompletedSteps: d.completedSteps,
		TotalSteps:     d.totalSteps,
	})
}
