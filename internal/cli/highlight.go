package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidai-tools/vidai/internal/pipeline"
)

func highlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight <input>",
		Short: "Extract the most interesting window of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, _ := cmd.Flags().GetFloat64("duration")

			cfg, err := rootConfig(cmd, args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
			defer cancel()

			_, err = pipeline.Highlight(ctx, cfg, duration)
			return err
		},
	}
	cmd.Flags().Float64("duration", 15, "Highlight duration in seconds")
	return cmd
}
