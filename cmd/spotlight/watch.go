package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/config"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/logger"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/watcher"
)

func (a *app) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Diarize and render every video dropped into the inbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context())
		},
	}
}

func (a *app) watch(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	if err := cfg.RequireWatchPaths(); err != nil {
		return err
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Speaker Spotlight Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	proc, err := a.newProcessor(true)
	if err != nil {
		return err
	}

	// Create watcher with processor as handler and concurrency control
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "  - Diarization: %s backend, %.3fs chunks", cfg.Diarization.Backend, cfg.Diarization.ChunkDuration)
	log.Info(ctx, "  - FFmpeg: %s encoder, crf %d", cfg.FFmpeg.Encoder, cfg.FFmpeg.Quality())
	log.Info(ctx, "  - Clip workers: %d", cfg.Performance.Workers)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	return serve(ctx, w, sigChan, log)
}

// serve runs w until stop fires or w fails. It returns only after Start has
// returned, which in turn waits for in-flight videos to finish their cleanup.
func serve(ctx context.Context, w watcher.Watcher, stop <-chan os.Signal, log logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	// Wait for shutdown signal or error
	select {
	case <-stop:
		log.Info(ctx, "Shutdown signal received")
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "Watcher error: %v", err)
			return err
		}
		log.Info(ctx, "Pipeline stopped")
		return nil
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Watcher error: %v", err)
		return err
	}

	log.Info(ctx, "Pipeline stopped")
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}
	if cfg.Paths.Segments != "" {
		dirs = append(dirs, cfg.Paths.Segments)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
