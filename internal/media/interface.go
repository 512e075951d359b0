// Package media is the narrow boundary to the external encoder. Everything
// that decodes, crops, scales, encodes or muxes goes through these interfaces.
package media

import (
	"context"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/layout"
)

// TransformRequest asks for one clip: [Start, Start+Duration) of Source,
// cropped to Crop and scaled to Width x Height, audio kept in sync.
type TransformRequest struct {
	Source   string
	Start    float64
	Duration float64
	Crop     layout.Rect
	Width    int
	Height   int
	Output   string
}

// Dimensions is the frame size of a video stream.
type Dimensions struct {
	Width  int
	Height int
}

type Transformer interface {
	Transform(ctx context.Context, req TransformRequest) error
}

// Concatenator joins compatible clips, in the given order, without re-encoding.
type Concatenator interface {
	Concat(ctx context.Context, clips []string, output string) error
}

type Prober interface {
	Probe(ctx context.Context, path string) (Dimensions, error)
}

// AudioExtractor writes the audio track as 16kHz mono PCM wav.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}

// Toolkit bundles every media operation the pipeline needs.
type Toolkit interface {
	Transformer
	Concatenator
	Prober
	AudioExtractor
}
