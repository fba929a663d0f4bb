package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidai-tools/vidai/internal/pipeline"
)

func trimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trim <input>",
		Short: "Cut a [start, end) range out of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetFloat64("start")
			end, _ := cmd.Flags().GetFloat64("end")

			cfg, err := rootConfig(cmd, args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
			defer cancel()

			_, err = pipeline.Trim(ctx, cfg,
				time.Duration(start*float64(time.Second)),
				time.Duration(end*float64(time.Second)),
			)
			return err
		},
	}
	cmd.Flags().Float64("start", 0, "Start time in seconds")
	cmd.Flags().Float64("end", 0, "End time in seconds")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
