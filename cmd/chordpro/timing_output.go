package main

import (
	"fmt"
	"io"
	"time"

	"chordpro/internal/buildpipeline"
)

var bookStages = []buildpipeline.Stage{
	buildpipeline.StageLoad,
	buildpipeline.StageScan,
	buildpipeline.StageAssemble,
	buildpipeline.StageRender,
}

// printStageTimings writes one line per recorded stage. Per-file stages
// are summed over all songs.
func printStageTimings(out io.Writer, timings buildpipeline.Timings) error {
	for _, stage := range bookStages {
		if !timings.Has(stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%-9s %.1f ms\n", stage, toMillis(timings.Duration(stage))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "%-9s %.1f ms\n", "total", toMillis(timings.Sum(bookStages...)))
	return err
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
