package sequencer

import (
	"github.com/nguyentantai21042004/speaker-spotlight/internal/logger"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/media"
)

type implSequencer struct {
	concat  media.Concatenator
	logger  logger.Logger
	tempDir string
}

// New creates a Sequencer. The joined stream is staged in tempDir and
// moved to the output path once complete.
func New(concat media.Concatenator, log logger.Logger, tempDir string) Sequencer {
	return &implSequencer{
		concat:  concat,
		logger:  log,
		tempDir: tempDir,
	}
}
