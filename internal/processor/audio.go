package processor

import (
	"context"
)

// extractAudio writes the audio track of videoPath to audioPath as
// 16kHz mono WAV, the input format diarization backends expect.
func (p *implProcessor) extractAudio(ctx context.Context, videoPath, audioPath string) (string, error) {
	p.logger.Info(ctx, "Extracting audio: %s", videoPath)

	if err := p.media.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return "", err
	}

	p.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
