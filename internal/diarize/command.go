package diarize

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/segment"
)

// Diarize runs the helper as
//
//	<command> [args...] --audio <wav> --out <json> [--num-speakers N]
//
// and reads [[start, end, label], ...] from the out file.
func (d *implCommand) Diarize(ctx context.Context, audioPath string, expected int) ([]segment.Raw, error) {
	outPath := strings.TrimSuffix(audioPath, ".wav") + "_diarization.json"
	defer os.Remove(outPath)

	args := append([]string{}, d.args...)
	args = append(args, "--audio", audioPath, "--out", outPath)
	if expected > 0 {
		args = append(args, "--num-speakers", strconv.Itoa(expected))
	}

	d.logger.Info(ctx, "Running diarization: %s", audioPath)
	if _, err := d.executor.Execute(ctx, d.command, args...); err != nil {
		return nil, fmt.Errorf("diarization command: %w", err)
	}

	raws, err := segment.LoadRaw(outPath)
	if err != nil {
		return nil, fmt.Errorf("read diarization output: %w", err)
	}

	d.logger.Info(ctx, "Diarization returned %d intervals", len(raws))
	return raws, nil
}
