package processor

import (
	"context"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/segment"
)

// RenderRequest names the inputs and output of one spotlight render.
type RenderRequest struct {
	SourcePath   string
	SegmentsPath string
	OutputPath   string
}

// RenderResult summarizes a finished render.
type RenderResult struct {
	RunID      string
	OutputPath string
	Clips      int
	Speakers   int
	// Dropped counts degenerate segments plus segments without a cell.
	Dropped int
	// Object is the published object name, empty when publishing is off.
	Object string
}

// Processor runs the speaker spotlight pipeline stages.
type Processor interface {
	// Render composites the source into one spotlight video following the
	// persisted timeline.
	Render(ctx context.Context, req RenderRequest) (RenderResult, error)
	// Diarize extracts audio, detects speakers, normalizes the timeline and
	// persists it to segmentsPath.
	Diarize(ctx context.Context, videoPath, segmentsPath string) (segment.Result, error)
	// Normalize re-chunks a raw interval file into a persisted timeline.
	Normalize(ctx context.Context, rawPath, segmentsPath string) (segment.Result, error)
	// Process runs diarize then render for a video from the inbox and
	// archives the source.
	Process(ctx context.Context, videoPath string) error
}
