// Package planner turns a normalized timeline into per-segment clip jobs.
package planner

import (
	"fmt"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/layout"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/segment"
)

// ClipJob describes one output clip: a source time range, the speaker's
// cell to crop, and the size it is scaled up to.
type ClipJob struct {
	// Index is the clip's position in the final sequence.
	Index     int
	Speaker   int
	Cell      int
	Start     float64
	End       float64
	Crop      layout.Rect
	OutWidth  int
	OutHeight int
}

// Duration returns the source range length in seconds.
func (j ClipJob) Duration() float64 {
	return j.End - j.Start
}

func (j ClipJob) String() string {
	return fmt.Sprintf("clip #%d: speaker=%d cell=%d %.3f-%.3f crop=%s", j.Index, j.Speaker, j.Cell, j.Start, j.End, j.Crop)
}

// Plan builds one job per segment in input order. Segments whose speaker has
// no cell are skipped and counted in dropped; job indices stay dense.
func Plan(segs []segment.Segment, assignment layout.Assignment, l layout.Layout) (jobs []ClipJob, dropped int, err error) {
	jobs = make([]ClipJob, 0, len(segs))
	for _, s := range segs {
		cell, ok := assignment[s.Speaker]
		if !ok {
			dropped++
			continue
		}

		crop, err := l.Cell(cell)
		if err != nil {
			return nil, 0, fmt.Errorf("speaker %d: %w", s.Speaker, err)
		}

		jobs = append(jobs, ClipJob{
			Index:     len(jobs),
			Speaker:   s.Speaker,
			Cell:      cell,
			Start:     s.Start,
			End:       s.End,
			Crop:      crop,
			OutWidth:  l.FrameWidth,
			OutHeight: l.FrameHeight,
		})
	}
	return jobs, dropped, nil
}
