package processor

import (
	"github.com/nguyentantai21042004/speaker-spotlight/internal/config"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/diarize"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/logger"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/media"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/storage"
)

type implProcessor struct {
	cfg       *config.Config
	media     media.Toolkit
	diarizer  diarize.Diarizer
	publisher storage.Publisher
	logger    logger.Logger
}

// New creates a new Processor instance. diarizer may be nil when only
// rendering; publisher may be nil when storage is disabled.
func New(cfg *config.Config, tk media.Toolkit, diarizer diarize.Diarizer, publisher storage.Publisher, log logger.Logger) Processor {
	return &implProcessor{
		cfg:       cfg,
		media:     tk,
		diarizer:  diarizer,
		publisher: publisher,
		logger:    log,
	}
}
