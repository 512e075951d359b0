package clip

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/media"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/planner"
)

// ClipName is the file name of the clip at index within the work dir.
func ClipName(index int) string {
	return fmt.Sprintf("clip_%06d.mp4", index)
}

func (e *implExecutor) Execute(ctx context.Context, job planner.ClipJob, src string) (Artifact, error) {
	out := filepath.Join(e.workDir, ClipName(job.Index))

	req := media.TransformRequest{
		Source:   src,
		Start:    job.Start,
		Duration: job.Duration(),
		Crop:     job.Crop,
		Width:    job.OutWidth,
		Height:   job.OutHeight,
		Output:   out,
	}
	if err := e.transformer.Transform(ctx, req); err != nil {
		os.Remove(out)
		return Artifact{}, fmt.Errorf("clip %d: %w", job.Index, err)
	}

	e.logger.Debug(ctx, "Rendered %s", job)
	return Artifact{Index: job.Index, Path: out}, nil
}

func (e *implExecutor) Run(ctx context.Context, src string, jobs []planner.ClipJob) ([]Artifact, error) {
	if err := os.MkdirAll(e.workDir, 0755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}

	for i, job := range jobs {
		if job.Index != i {
			return nil, fmt.Errorf("job at position %d has index %d", i, job.Index)
		}
	}

	results := make([]Artifact, len(jobs))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := e.Execute(gctx, job, src)
			if err != nil {
				return err
			}
			results[job.Index] = a

			n := done.Add(1)
			if n%100 == 0 || int(n) == len(jobs) {
				e.logger.Info(ctx, "Rendered %d/%d clips", n, len(jobs))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.removeArtifacts(ctx, results)
		return nil, err
	}
	return results, nil
}

func (e *implExecutor) removeArtifacts(ctx context.Context, results []Artifact) {
	for _, a := range results {
		if a.Path == "" {
			continue
		}
		if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
			e.logger.Warn(ctx, "Failed to remove clip %s: %v", a.Path, err)
		}
	}
}
