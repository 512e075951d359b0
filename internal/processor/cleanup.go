package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// newWorkDir creates an isolated run-<uuid> directory under the temp path.
func (p *implProcessor) newWorkDir() (string, string, error) {
	runID := uuid.NewString()
	dir := filepath.Join(p.cfg.Paths.Temp, "run-"+runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create work dir: %w", err)
	}
	return runID, dir, nil
}

// cleanupWorkDir removes a run directory, logs warning if fails
func (p *implProcessor) cleanupWorkDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup work dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up work dir: %s", dir)
	}
}

// moveToArchived moves the processed source out of the inbox
func (p *implProcessor) moveToArchived(ctx context.Context, videoPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(videoPath))
	p.logger.Info(ctx, "Archiving source: %s -> %s", videoPath, destPath)

	if err := os.Rename(videoPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
