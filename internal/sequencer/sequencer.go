package sequencer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/clip"
)

// Verify checks that artifacts hold exactly indices 0..total-1 in order.
func Verify(artifacts []clip.Artifact, total int) error {
	if total <= 0 {
		return ErrNoJobs
	}
	for i := 0; i < total; i++ {
		if i >= len(artifacts) {
			return fmt.Errorf("%w: index %d", ErrMissingClip, i)
		}
		if got := artifacts[i].Index; got != i {
			if !containsIndex(artifacts, i) {
				return fmt.Errorf("%w: index %d", ErrMissingClip, i)
			}
			return fmt.Errorf("%w: index %d at position %d", ErrOutOfOrder, got, i)
		}
		if artifacts[i].Path == "" {
			return fmt.Errorf("%w: index %d has no file", ErrMissingClip, i)
		}
	}
	if len(artifacts) > total {
		return fmt.Errorf("%w: %d clips for %d jobs", ErrOutOfOrder, len(artifacts), total)
	}
	return nil
}

func containsIndex(artifacts []clip.Artifact, index int) bool {
	for _, a := range artifacts {
		if a.Index == index {
			return true
		}
	}
	return false
}

func (s *implSequencer) Concatenate(ctx context.Context, artifacts []clip.Artifact, total int, output string) error {
	if err := Verify(artifacts, total); err != nil {
		return err
	}

	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	stageDir, err := os.MkdirTemp(s.tempDir, "concat-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(stageDir)

	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.Path
	}

	staged := filepath.Join(stageDir, "output"+filepath.Ext(output))
	s.logger.Info(ctx, "Concatenating %d clips -> %s", len(paths), output)
	if err := s.concat.Concat(ctx, paths, staged); err != nil {
		return fmt.Errorf("concatenate: %w", err)
	}

	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.Rename(staged, output); err != nil {
		// rename fails across filesystems
		if err := copyFile(staged, output); err != nil {
			return fmt.Errorf("move output to final location: %w", err)
		}
	}
	return nil
}

// copyFile writes dst via a sibling temp file so a partial copy never
// sits at dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	defer in.Close()

	tmp := dst + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("write destination: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write destination: %w", err)
	}
	return os.Rename(tmp, dst)
}
