package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Process orchestrates the entire video processing pipeline
func (p *implProcessor) Process(ctx context.Context, videoPath string) error {
	startTime := time.Now()
	filename := filepath.Base(videoPath)
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting video processing: %s", videoPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Diarize and persist the timeline
	segmentsPath := filepath.Join(p.segmentsDir(), stem+".json")
	if _, err := p.Diarize(ctx, videoPath, segmentsPath); err != nil {
		return err
	}

	// Step 2: Render the spotlight video
	result, err := p.Render(ctx, RenderRequest{
		SourcePath:   videoPath,
		SegmentsPath: segmentsPath,
		OutputPath:   filepath.Join(p.cfg.Paths.Output, filename),
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// Step 3: Move original video to archived folder
	if err := p.moveToArchived(ctx, videoPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Output video: %s", result.OutputPath)
	p.logger.Info(ctx, "Timeline: %s", segmentsPath)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

// segmentsDir is where watch mode persists timelines; defaults to the output folder.
func (p *implProcessor) segmentsDir() string {
	if p.cfg.Paths.Segments != "" {
		return p.cfg.Paths.Segments
	}
	return p.cfg.Paths.Output
}
