// Package clip renders planned clip jobs into per-clip media files.
package clip

import (
	"context"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/planner"
)

// Artifact is one rendered clip and the sequence position it belongs to.
type Artifact struct {
	Index int
	Path  string
}

// Executor renders clip jobs against a read-only source.
type Executor interface {
	// Execute renders a single job.
	Execute(ctx context.Context, job planner.ClipJob, src string) (Artifact, error)
	// Run renders all jobs on a bounded pool. The result is ordered by job
	// index. On the first failure the remaining jobs are cancelled, produced
	// clips are removed and only the error is returned.
	Run(ctx context.Context, src string, jobs []planner.ClipJob) ([]Artifact, error)
}
