package main

import (
	"fmt"
	"io"
	"time"

	"kiwi/internal/buildpipeline"
)

var timingLabels = []struct {
	stage buildpipeline.Stage
	label string
}{
	{buildpipeline.StageParse, "parsed"},
	{buildpipeline.StageValidate, "validated"},
	{buildpipeline.StagePlan, "planned"},
	{buildpipeline.StageEmit, "emitted"},
	{buildpipeline.StageWrite, "written"},
}

// printStageTimings prints the accumulated time of every stage that ran.
// Durations are summed over files, so with --jobs > 1 they can exceed
// wall time.
func printStageTimings(out io.Writer, timings *buildpipeline.Timings) {
	if out == nil || timings == nil {
		return
	}
	for _, tl := range timingLabels {
		if !timings.Has(tl.stage) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", tl.label, toMillis(timings.Duration(tl.stage)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
