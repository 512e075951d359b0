package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Transform cuts, crops and scales one clip.
// CPU path:  crop -> scale (software) -> configured encoder
// CUDA path: crop (CPU) -> hwupload_cuda -> scale_cuda -> configured encoder
func (f *implFFmpeg) Transform(ctx context.Context, req TransformRequest) error {
	if req.Duration <= 0 {
		return fmt.Errorf("transform %s: non-positive duration %v", req.Output, req.Duration)
	}

	args := f.transformArgs(req)
	f.logger.Debug(ctx, "ffmpeg transform: %s", strings.Join(args, " "))

	if _, err := f.executor.Execute(ctx, f.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg transform %s: %w", filepath.Base(req.Output), err)
	}
	return nil
}

func (f *implFFmpeg) transformArgs(req TransformRequest) []string {
	crop := fmt.Sprintf("crop=%d:%d:%d:%d", req.Crop.W, req.Crop.H, req.Crop.X, req.Crop.Y)

	var vf string
	if f.cfg.HWAccel == "cuda" {
		vf = fmt.Sprintf("%s,hwupload_cuda,scale_cuda=w=%d:h=%d", crop, req.Width, req.Height)
	} else {
		vf = fmt.Sprintf("%s,scale=%d:%d:flags=%s,setsar=1", crop, req.Width, req.Height, f.cfg.ScaleFlags)
	}

	// -ss before -i seeks on input; -t bounds the output length
	args := []string{
		"-y",
		"-ss", formatSeconds(req.Start),
		"-t", formatSeconds(req.Duration),
		"-i", req.Source,
		"-vf", vf,
		"-c:v", f.cfg.Encoder,
	}
	if f.cfg.Preset != "" {
		args = append(args, "-preset", f.cfg.Preset)
	}
	if f.cfg.HWAccel == "cuda" {
		args = append(args, "-cq", strconv.Itoa(f.cfg.Quality()))
	} else {
		args = append(args, "-crf", strconv.Itoa(f.cfg.Quality()))
	}
	args = append(args, "-c:a", f.cfg.AudioCodec)
	if f.cfg.AudioBitrate != "" && f.cfg.AudioCodec != "copy" {
		args = append(args, "-b:a", f.cfg.AudioBitrate)
	}
	return append(args, req.Output)
}

// Concat joins clips with the concat demuxer and stream copy. The list file
// is written next to the output and removed afterwards.
func (f *implFFmpeg) Concat(ctx context.Context, clips []string, output string) error {
	if len(clips) == 0 {
		return fmt.Errorf("concat %s: no clips", output)
	}

	absOutput, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	listPath := absOutput + ".concat.txt"
	if err := writeConcatList(listPath, clips); err != nil {
		return err
	}
	defer os.Remove(listPath)

	// run next to the list so the demuxer sees a plain relative name
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", filepath.Base(listPath),
		"-c", "copy",
		absOutput,
	}

	f.logger.Debug(ctx, "ffmpeg concat: %d clips -> %s", len(clips), output)
	if _, err := f.executor.ExecuteInDir(ctx, filepath.Dir(listPath), f.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg concat: %w", err)
	}
	return nil
}

func writeConcatList(path string, clips []string) error {
	var b strings.Builder
	for _, c := range clips {
		abs, err := filepath.Abs(c)
		if err != nil {
			return fmt.Errorf("resolve clip path %s: %w", c, err)
		}
		// concat demuxer quoting: close quote, escaped quote, reopen
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

type probeOutput struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

// Probe reads the first video stream's frame size with ffprobe.
func (f *implFFmpeg) Probe(ctx context.Context, path string) (Dimensions, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		path,
	}

	out, err := f.executor.Execute(ctx, f.cfg.ProbePath, args...)
	if err != nil {
		return Dimensions{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe(out)
}

func parseProbe(out string) (Dimensions, error) {
	var po probeOutput
	if err := json.Unmarshal([]byte(out), &po); err != nil {
		return Dimensions{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(po.Streams) == 0 {
		return Dimensions{}, fmt.Errorf("no video stream found")
	}
	d := Dimensions{Width: po.Streams[0].Width, Height: po.Streams[0].Height}
	if d.Width <= 0 || d.Height <= 0 {
		return Dimensions{}, fmt.Errorf("invalid frame size %dx%d", d.Width, d.Height)
	}
	return d, nil
}

// ExtractAudio extracts audio from video file and converts to 16kHz mono WAV
func (f *implFFmpeg) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	// +genpts -copyts -start_at_zero: audio timestamps start at zero like -ss
	// seeks do, even when the container has a non-zero start_time
	// -vn: no video, -ar 16000 -ac 1: 16kHz mono, pcm_s16le: uncompressed
	args := []string{
		"-y",
		"-fflags", "+genpts",
		"-copyts",
		"-start_at_zero",
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		audioPath,
	}

	if _, err := f.executor.Execute(ctx, f.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	return nil
}

func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
