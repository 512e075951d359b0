package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/clip"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/layout"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/planner"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/segment"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/sequencer"
)

func (p *implProcessor) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	startTime := time.Now()

	segs, err := segment.Load(req.SegmentsPath)
	if err != nil {
		return RenderResult{}, fmt.Errorf("load segments: %w", err)
	}
	segs, degenerate := segment.Clean(segs)
	if degenerate > 0 {
		p.logger.Debug(ctx, "Dropped %d degenerate segments", degenerate)
	}
	if len(segs) == 0 {
		return RenderResult{}, fmt.Errorf("%s: %w", req.SegmentsPath, sequencer.ErrNoJobs)
	}

	dims, err := p.media.Probe(ctx, req.SourcePath)
	if err != nil {
		return RenderResult{}, fmt.Errorf("probe source: %w", err)
	}

	speakers := segment.Speakers(segs)
	grid, err := layout.New(len(speakers), dims.Width, dims.Height)
	if err != nil {
		return RenderResult{}, fmt.Errorf("layout: %w", err)
	}

	jobs, unmapped, err := planner.Plan(segs, layout.Assign(speakers), grid)
	if err != nil {
		return RenderResult{}, fmt.Errorf("plan: %w", err)
	}
	if unmapped > 0 {
		p.logger.Debug(ctx, "Dropped %d segments without a cell", unmapped)
	}
	if len(jobs) == 0 {
		return RenderResult{}, sequencer.ErrNoJobs
	}

	runID, workDir, err := p.newWorkDir()
	if err != nil {
		return RenderResult{}, err
	}
	defer p.cleanupWorkDir(ctx, workDir)

	log := p.logger.With("run_id", runID)
	log.Info(ctx, "Rendering %s: %d clips, %d speakers on a %dx%d grid (%dx%d cells)",
		req.SourcePath, len(jobs), len(speakers), grid.Rows, grid.Cols, grid.CellWidth, grid.CellHeight)

	artifacts, err := clip.New(p.media, log, workDir, p.cfg.Performance.Workers).Run(ctx, req.SourcePath, jobs)
	if err != nil {
		return RenderResult{}, fmt.Errorf("render clips: %w", err)
	}

	if err := sequencer.New(p.media, log, workDir).Concatenate(ctx, artifacts, len(jobs), req.OutputPath); err != nil {
		return RenderResult{}, fmt.Errorf("sequence clips: %w", err)
	}

	result := RenderResult{
		RunID:      runID,
		OutputPath: req.OutputPath,
		Clips:      len(jobs),
		Speakers:   len(speakers),
		Dropped:    degenerate + unmapped,
	}

	object, err := p.publish(ctx, req.OutputPath)
	if err != nil {
		return result, err
	}
	result.Object = object

	log.Info(ctx, "Render completed in %s: %s", time.Since(startTime).Round(time.Millisecond), req.OutputPath)
	return result, nil
}

// publish uploads the render when storage is enabled. An upload failure
// only fails the render when storage is required.
func (p *implProcessor) publish(ctx context.Context, path string) (string, error) {
	if p.publisher == nil {
		return "", nil
	}

	object, err := p.publisher.Publish(ctx, path)
	if err != nil {
		if p.cfg.Storage.Required {
			return "", fmt.Errorf("publish: %w", err)
		}
		p.logger.Warn(ctx, "Failed to publish %s: %v", path, err)
		return "", nil
	}
	return object, nil
}
