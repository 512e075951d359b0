package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultCRF is used when ffmpeg.crf is not set.
const DefaultCRF = 23

type Config struct {
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Diarization DiarizationConfig `yaml:"diarization"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Storage     StorageConfig     `yaml:"storage"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path" split_words:"true" validate:"required"`
	ProbePath  string `yaml:"probe_path" split_words:"true" validate:"required"`
	Encoder    string `yaml:"encoder" split_words:"true" validate:"required"`
	Preset     string `yaml:"preset" split_words:"true"`
	// CRF is the quality target (-crf, or -cq on nvenc). Nil means 23; 0 is lossless.
	CRF          *int   `yaml:"crf" split_words:"true" validate:"omitempty,gte=0,lte=63"`
	AudioCodec   string `yaml:"audio_codec" split_words:"true" validate:"required"`
	AudioBitrate string `yaml:"audio_bitrate" split_words:"true"`
	ScaleFlags   string `yaml:"scale_flags" split_words:"true"`
	// HWAccel selects the scaling path: "" for CPU filters, "cuda" for hwupload_cuda + scale_cuda.
	HWAccel string `yaml:"hwaccel" split_words:"true" validate:"omitempty,oneof=cuda"`
}

type DiarizationConfig struct {
	Backend          string   `yaml:"backend" split_words:"true" validate:"oneof=command http"`
	Command          string   `yaml:"command" split_words:"true"`
	Args             []string `yaml:"args" split_words:"true"`
	URL              string   `yaml:"url" split_words:"true"`
	ExpectedSpeakers int      `yaml:"expected_speakers" split_words:"true" validate:"gte=0"`
	ChunkDuration    float64  `yaml:"chunk_duration" split_words:"true" validate:"gte=0.001"`
}

type PathsConfig struct {
	Input    string `yaml:"input" split_words:"true"`
	Output   string `yaml:"output" split_words:"true"`
	Segments string `yaml:"segments" split_words:"true"`
	Archived string `yaml:"archived" split_words:"true"`
	Temp     string `yaml:"temp" split_words:"true" validate:"required"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true" validate:"omitempty,oneof=text json"`
}

type PerformanceConfig struct {
	// MaxConcurrent bounds how many videos watch mode renders at once.
	MaxConcurrent int `yaml:"max_concurrent" split_words:"true" validate:"gte=1"`
	// Workers bounds concurrent clip jobs within one render; 0 means one per CPU.
	Workers int `yaml:"workers" split_words:"true" validate:"gte=0"`
}

type StorageConfig struct {
	Enabled         bool   `yaml:"enabled" split_words:"true"`
	Required        bool   `yaml:"required" split_words:"true"`
	Endpoint        string `yaml:"endpoint" split_words:"true" validate:"required_if=Enabled true"`
	AccessKeyID     string `yaml:"access_key_id" split_words:"true"`
	SecretAccessKey string `yaml:"secret_access_key" split_words:"true"`
	Bucket          string `yaml:"bucket" split_words:"true" validate:"required_if=Enabled true"`
	Prefix          string `yaml:"prefix" split_words:"true"`
	UseSSL          bool   `yaml:"use_ssl" split_words:"true"`
}

// Quality returns the configured CRF, or DefaultCRF when unset.
func (c FFmpegConfig) Quality() int {
	if c.CRF == nil {
		return DefaultCRF
	}
	return *c.CRF
}

// Validate fills defaults and checks the configuration.
func (c *Config) Validate() error {
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.HWAccel == "cuda" {
		// CUDA frames can only be fed to an nvenc encoder
		if c.FFmpeg.Encoder == "" {
			c.FFmpeg.Encoder = "h264_nvenc"
		}
		if c.FFmpeg.Preset == "" {
			c.FFmpeg.Preset = "p1"
		}
		if !strings.HasSuffix(c.FFmpeg.Encoder, "_nvenc") {
			return fmt.Errorf("invalid config: ffmpeg.encoder %q cannot encode cuda frames, use an nvenc encoder", c.FFmpeg.Encoder)
		}
	}
	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = "libx264"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}
	if c.FFmpeg.CRF == nil {
		crf := DefaultCRF
		c.FFmpeg.CRF = &crf
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.FFmpeg.ScaleFlags == "" {
		c.FFmpeg.ScaleFlags = "lanczos"
	}
	if c.Diarization.Backend == "" {
		c.Diarization.Backend = "command"
	}
	if c.Diarization.ChunkDuration == 0 {
		c.Diarization.ChunkDuration = 0.5
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RequireDiarizer checks the settings the selected diarization backend needs.
func (c *Config) RequireDiarizer() error {
	switch c.Diarization.Backend {
	case "command":
		if c.Diarization.Command == "" {
			return fmt.Errorf("diarization.command is required for the command backend")
		}
	case "http":
		if c.Diarization.URL == "" {
			return fmt.Errorf("diarization.url is required for the http backend")
		}
	}
	return nil
}

// RequireWatchPaths checks the directories watch mode depends on.
func (c *Config) RequireWatchPaths() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	return nil
}
