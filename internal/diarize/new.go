package diarize

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/config"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/logger"
	"github.com/nguyentantai21042004/speaker-spotlight/pkg/executor"
)

type implCommand struct {
	command  string
	args     []string
	executor executor.Executor
	logger   logger.Logger
}

type implHTTP struct {
	url    string
	client *http.Client
	logger logger.Logger
}

// New creates the Diarizer selected by cfg.Backend.
func New(cfg config.DiarizationConfig, exec executor.Executor, log logger.Logger) (Diarizer, error) {
	switch cfg.Backend {
	case "command", "":
		if cfg.Command == "" {
			return nil, fmt.Errorf("diarization command is required")
		}
		return &implCommand{
			command:  cfg.Command,
			args:     cfg.Args,
			executor: exec,
			logger:   log,
		}, nil
	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("diarization url is required")
		}
		return &implHTTP{
			url:    strings.TrimRight(cfg.URL, "/"),
			client: &http.Client{},
			logger: log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown diarization backend %q", cfg.Backend)
	}
}
