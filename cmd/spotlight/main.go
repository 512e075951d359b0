package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/config"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/diarize"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/logger"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/media"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/processor"
	"github.com/nguyentantai21042004/speaker-spotlight/internal/storage"
	"github.com/nguyentantai21042004/speaker-spotlight/pkg/executor"
)

// app holds what every command needs once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
}

func main() {
	a := &app{}
	root := a.rootCommand()

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "spotlight",
		Short:         "Speaker spotlight video pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "path to config file")

	root.AddCommand(
		a.renderCommand(),
		a.diarizeCommand(),
		a.normalizeCommand(),
		a.watchCommand(),
	)
	return root
}

// setup loads configuration and the logger. The default config file may be
// absent; an explicitly named one must exist.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load(a.configPath)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a.cfg = cfg
	a.log = logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	return nil
}

// newProcessor wires the pipeline. The diarizer is only built for commands
// that run detection.
func (a *app) newProcessor(withDiarizer bool) (processor.Processor, error) {
	exec := executor.New()
	tk := media.New(a.cfg.FFmpeg, exec, a.log)

	var d diarize.Diarizer
	if withDiarizer {
		if err := a.cfg.RequireDiarizer(); err != nil {
			return nil, err
		}
		var err error
		d, err = diarize.New(a.cfg.Diarization, exec, a.log)
		if err != nil {
			return nil, fmt.Errorf("create diarizer: %w", err)
		}
	}

	var pub storage.Publisher
	if a.cfg.Storage.Enabled {
		var err error
		pub, err = storage.New(a.cfg.Storage, a.log)
		if err != nil {
			if a.cfg.Storage.Required {
				return nil, fmt.Errorf("create publisher: %w", err)
			}
			a.log.Warn(context.Background(), "Publishing disabled: %v", err)
			pub = nil
		}
	}

	return processor.New(a.cfg, tk, d, pub, a.log), nil
}
