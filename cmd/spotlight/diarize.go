package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func (a *app) diarizeCommand() *cobra.Command {
	var input, segmentsPath string

	cmd := &cobra.Command{
		Use:   "diarize",
		Short: "Detect speakers in a video and write the normalized timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			proc, err := a.newProcessor(true)
			if err != nil {
				return err
			}

			_, err = proc.Diarize(ctx, input, segmentsPath)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "source video")
	cmd.Flags().StringVarP(&segmentsPath, "segments", "s", "", "output timeline JSON")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("segments")
	return cmd
}

func (a *app) normalizeCommand() *cobra.Command {
	var rawPath, segmentsPath string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize raw [start, end, label] intervals into a timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, err := a.newProcessor(false)
			if err != nil {
				return err
			}

			_, err = proc.Normalize(cmd.Context(), rawPath, segmentsPath)
			return err
		},
	}

	cmd.Flags().StringVarP(&rawPath, "raw", "r", "", "raw intervals JSON")
	cmd.Flags().StringVarP(&segmentsPath, "segments", "s", "", "output timeline JSON")
	cmd.MarkFlagRequired("raw")
	cmd.MarkFlagRequired("segments")
	return cmd
}
