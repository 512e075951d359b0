// Package sequencer assembles rendered clips into the final output in
// strict index order.
package sequencer

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/clip"
)

var (
	ErrNoJobs      = errors.New("no clips to sequence")
	ErrMissingClip = errors.New("missing clip")
	ErrOutOfOrder  = errors.New("clip out of order")
)

type Sequencer interface {
	// Concatenate joins artifacts 0..total-1 into output. Artifacts are
	// never re-sorted; a gap or misplaced index aborts before anything is
	// written to output.
	Concatenate(ctx context.Context, artifacts []clip.Artifact, total int, output string) error
}
