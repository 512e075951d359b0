// Package diarize wraps the external speaker-activity detector.
package diarize

import (
	"context"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/segment"
)

// Diarizer detects who speaks when in an audio file. expected is a hint
// for the detector; 0 means unknown.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string, expected int) ([]segment.Raw, error)
}
