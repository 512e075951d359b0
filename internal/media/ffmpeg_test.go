package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/config"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/layout"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/logger"
)

type call struct {
	dir  string
	name string
	args []string
}

type fakeExecutor struct {
	calls  []call
	out    string
	err    error
	onCall func(dir string, args []string)
}

func (e *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.ExecuteInDir(ctx, "", name, args...)
}

func (e *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	e.calls = append(e.calls, call{dir: dir, name: name, args: args})
	if e.onCall != nil {
		e.onCall(dir, args)
	}
	return e.out, e.err
}

func newTestFFmpeg(t *testing.T, hw string, exec *fakeExecutor) *implFFmpeg {
	t.Helper()
	return newTestFFmpegWith(t, config.FFmpegConfig{HWAccel: hw}, exec)
}

func newTestFFmpegWith(t *testing.T, ff config.FFmpegConfig, exec *fakeExecutor) *implFFmpeg {
	t.Helper()
	cfg := config.Config{FFmpeg: ff}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return New(cfg.FFmpeg, exec, logger.New("error")).(*implFFmpeg)
}

func argValue(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func TestTransformArgsCPU(t *testing.T) {
	exec := &fakeExecutor{}
	f := newTestFFmpeg(t, "", exec)

	req := TransformRequest{
		Source:   "in.mp4",
		Start:    1.3,
		Duration: 0.5,
		Crop:     layout.Rect{X: 640, Y: 0, W: 640, H: 360},
		Width:    1280,
		Height:   720,
		Output:   "clip_000001.mp4",
	}
	if err := f.Transform(context.Background(), req); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if len(exec.calls) != 1 || exec.calls[0].name != "ffmpeg" {
		t.Fatalf("calls = %+v, want one ffmpeg call", exec.calls)
	}
	args := exec.calls[0].args
	if got := argValue(args, "-ss"); got != "1.300" {
		t.Errorf("-ss = %q, want 1.300", got)
	}
	if got := argValue(args, "-t"); got != "0.500" {
		t.Errorf("-t = %q, want 0.500", got)
	}
	if got := argValue(args, "-vf"); got != "crop=640:360:640:0,scale=1280:720:flags=lanczos,setsar=1" {
		t.Errorf("-vf = %q", got)
	}
	if got := argValue(args, "-c:v"); got != "libx264" {
		t.Errorf("-c:v = %q", got)
	}
	if got := argValue(args, "-crf"); got != "23" {
		t.Errorf("-crf = %q", got)
	}
	if got := argValue(args, "-b:a"); got != "192k" {
		t.Errorf("-b:a = %q", got)
	}
	if args[len(args)-1] != "clip_000001.mp4" {
		t.Errorf("output = %q", args[len(args)-1])
	}
}

func TestTransformArgsCUDA(t *testing.T) {
	exec := &fakeExecutor{}
	f := newTestFFmpeg(t, "cuda", exec)

	args := f.transformArgs(TransformRequest{
		Source: "in.mp4", Start: 0, Duration: 0.2,
		Crop:  layout.Rect{X: 0, Y: 540, W: 960, H: 540},
		Width: 1920, Height: 1080, Output: "out.mp4",
	})

	if got := argValue(args, "-vf"); got != "crop=960:540:0:540,hwupload_cuda,scale_cuda=w=1920:h=1080" {
		t.Errorf("-vf = %q", got)
	}
	if got := argValue(args, "-cq"); got != "23" {
		t.Errorf("-cq = %q", got)
	}
	if got := argValue(args, "-c:v"); got != "h264_nvenc" {
		t.Errorf("-c:v = %q", got)
	}
	if got := argValue(args, "-preset"); got != "p1" {
		t.Errorf("-preset = %q, want p1", got)
	}
}

func TestTransformArgsLosslessCRF(t *testing.T) {
	crf := 0
	f := newTestFFmpegWith(t, config.FFmpegConfig{CRF: &crf}, &fakeExecutor{})

	args := f.transformArgs(TransformRequest{Source: "in.mp4", Duration: 1, Width: 640, Height: 360, Output: "out.mp4"})
	if got := argValue(args, "-crf"); got != "0" {
		t.Errorf("-crf = %q, want 0", got)
	}
}

func TestTransformRejectsEmptyRange(t *testing.T) {
	exec := &fakeExecutor{}
	f := newTestFFmpeg(t, "", exec)

	if err := f.Transform(context.Background(), TransformRequest{Duration: 0}); err == nil {
		t.Error("Transform() should reject a zero duration")
	}
	if len(exec.calls) != 0 {
		t.Error("ffmpeg should not be called")
	}
}

func TestTransformPropagatesFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1")}
	f := newTestFFmpeg(t, "", exec)

	err := f.Transform(context.Background(), TransformRequest{Duration: 1, Output: "x.mp4"})
	if err == nil {
		t.Error("Transform() should fail when ffmpeg fails")
	}
}

func TestConcatWritesOrderedList(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.mp4")
	clips := []string{filepath.Join(dir, "clip_0.mp4"), filepath.Join(dir, "it's.mp4")}

	var list string
	exec := &fakeExecutor{onCall: func(dir string, args []string) {
		data, err := os.ReadFile(filepath.Join(dir, argValue(args, "-i")))
		if err != nil {
			t.Errorf("read list: %v", err)
		}
		list = string(data)
	}}
	f := newTestFFmpeg(t, "", exec)

	if err := f.Concat(context.Background(), clips, output); err != nil {
		t.Fatalf("Concat() error = %v", err)
	}

	want := "file '" + clips[0] + "'\nfile '" + strings.ReplaceAll(clips[1], "'", `'\''`) + "'\n"
	if list != want {
		t.Errorf("list =\n%s\nwant\n%s", list, want)
	}
	if exec.calls[0].dir != dir {
		t.Errorf("concat ran in %q, want %q", exec.calls[0].dir, dir)
	}
	if got := argValue(exec.calls[0].args, "-c"); got != "copy" {
		t.Errorf("-c = %q, want copy", got)
	}
	if _, err := os.Stat(output + ".concat.txt"); !os.IsNotExist(err) {
		t.Error("concat list should be removed")
	}
}

func TestConcatNoClips(t *testing.T) {
	f := newTestFFmpeg(t, "", &fakeExecutor{})
	if err := f.Concat(context.Background(), nil, "out.mp4"); err == nil {
		t.Error("Concat() should fail without clips")
	}
}

func TestProbe(t *testing.T) {
	exec := &fakeExecutor{out: `{"programs": [], "streams": [{"width": 1920, "height": 1080}]}`}
	f := newTestFFmpeg(t, "", exec)

	d, err := f.Probe(context.Background(), "in.mp4")
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if d != (Dimensions{Width: 1920, Height: 1080}) {
		t.Errorf("Probe() = %+v", d)
	}
	if exec.calls[0].name != "ffprobe" {
		t.Errorf("probe binary = %q, want ffprobe", exec.calls[0].name)
	}
}

func TestParseProbeErrors(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{"not json", "garbage"},
		{"no streams", `{"streams": []}`},
		{"zero size", `{"streams": [{"width": 0, "height": 720}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseProbe(tt.out); err == nil {
				t.Error("parseProbe() should fail")
			}
		})
	}
}

func TestExtractAudio(t *testing.T) {
	exec := &fakeExecutor{}
	f := newTestFFmpeg(t, "", exec)

	if err := f.ExtractAudio(context.Background(), "in.mp4", "in.wav"); err != nil {
		t.Fatalf("ExtractAudio() error = %v", err)
	}
	args := exec.calls[0].args
	if argValue(args, "-ar") != "16000" || argValue(args, "-ac") != "1" {
		t.Errorf("args = %v, want 16kHz mono", args)
	}
	if argValue(args, "-fflags") != "+genpts" {
		t.Errorf("-fflags = %q, want +genpts", argValue(args, "-fflags"))
	}

	// timestamp flags must precede the input
	pos := map[string]int{}
	for i, a := range args {
		pos[a] = i
	}
	for _, flag := range []string{"-copyts", "-start_at_zero"} {
		i, ok := pos[flag]
		if !ok || i > pos["-i"] {
			t.Errorf("%s missing or after -i: %v", flag, args)
		}
	}
}
