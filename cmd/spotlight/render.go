package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/processor"
)

func (a *app) renderCommand() *cobra.Command {
	var req processor.RenderRequest

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a spotlight video from a source and a segment timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			proc, err := a.newProcessor(false)
			if err != nil {
				return err
			}

			res, err := proc.Render(ctx, req)
			if err != nil {
				return err
			}
			a.log.Info(ctx, "Wrote %s (%d clips, %d speakers, %d segments dropped)", res.OutputPath, res.Clips, res.Speakers, res.Dropped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.SourcePath, "input", "i", "", "source video")
	cmd.Flags().StringVarP(&req.SegmentsPath, "segments", "s", "", "segment timeline JSON")
	cmd.Flags().StringVarP(&req.OutputPath, "output", "o", "", "output video")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("segments")
	cmd.MarkFlagRequired("output")
	return cmd
}
