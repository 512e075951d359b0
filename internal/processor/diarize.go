package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/segment"
)

var errNoDiarizer = errors.New("diarization backend is not configured")

func (p *implProcessor) Diarize(ctx context.Context, videoPath, segmentsPath string) (segment.Result, error) {
	if p.diarizer == nil {
		return segment.Result{}, errNoDiarizer
	}

	_, workDir, err := p.newWorkDir()
	if err != nil {
		return segment.Result{}, err
	}
	defer p.cleanupWorkDir(ctx, workDir)

	audioPath, err := p.extractAudio(ctx, videoPath, filepath.Join(workDir, "audio.wav"))
	if err != nil {
		return segment.Result{}, fmt.Errorf("extract audio: %w", err)
	}

	raws, err := p.diarizer.Diarize(ctx, audioPath, p.cfg.Diarization.ExpectedSpeakers)
	if err != nil {
		return segment.Result{}, fmt.Errorf("diarize: %w", err)
	}

	return p.normalizeAndSave(ctx, raws, segmentsPath)
}

func (p *implProcessor) Normalize(ctx context.Context, rawPath, segmentsPath string) (segment.Result, error) {
	raws, err := segment.LoadRaw(rawPath)
	if err != nil {
		return segment.Result{}, fmt.Errorf("load raw segments: %w", err)
	}
	return p.normalizeAndSave(ctx, raws, segmentsPath)
}

func (p *implProcessor) normalizeAndSave(ctx context.Context, raws []segment.Raw, segmentsPath string) (segment.Result, error) {
	res, err := segment.Normalize(raws, p.cfg.Diarization.ChunkDuration, segment.Options{
		ExpectedSpeakers: p.cfg.Diarization.ExpectedSpeakers,
	})
	if err != nil {
		return segment.Result{}, fmt.Errorf("normalize: %w", err)
	}
	if res.Warning != "" {
		p.logger.Warn(ctx, "%s", res.Warning)
	}
	if res.Dropped > 0 {
		p.logger.Debug(ctx, "Dropped %d degenerate intervals", res.Dropped)
	}

	if err := segment.Save(segmentsPath, res.Segments); err != nil {
		return segment.Result{}, err
	}

	p.logger.Info(ctx, "Saved %d segments for %d speakers: %s", len(res.Segments), res.SpeakerCount(), segmentsPath)
	return res, nil
}
