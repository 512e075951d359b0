package media

import (
	"github.com/nguyentantai21042004/speaker-spotlight/internal/config"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/logger"
	"github.com/nguyentantai21042004/speaker-spotlight/pkg/executor"
)

type implFFmpeg struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates an ffmpeg/ffprobe backed Toolkit.
func New(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Toolkit {
	return &implFFmpeg{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
