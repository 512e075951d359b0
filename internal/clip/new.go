package clip

import (
	"runtime"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/logger"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/media"
)

type implExecutor struct {
	transformer media.Transformer
	logger      logger.Logger
	workDir     string
	workers     int
}

// New creates an Executor writing clips into workDir. workers <= 0 means
// one worker per CPU.
func New(transformer media.Transformer, log logger.Logger, workDir string, workers int) Executor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &implExecutor{
		transformer: transformer,
		logger:      log,
		workDir:     workDir,
		workers:     workers,
	}
}
