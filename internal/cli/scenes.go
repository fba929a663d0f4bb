package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidai-tools/vidai/internal/domain/scenes"
	"github.com/vidai-tools/vidai/internal/pipeline"
)

func scenesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes <input>",
		Short: "Drop silent and duplicate scenes, keep the rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, _ := cmd.Flags().GetFloat64("threshold")
			minDuration, _ := cmd.Flags().GetFloat64("min-duration")
			maxSilent, _ := cmd.Flags().GetFloat64("max-silent")
			hashTolerance, _ := cmd.Flags().GetInt("hash-tolerance")

			cfg, err := rootConfig(cmd, args[0])
			if err != nil {
				return err
			}

			filter := scenes.DefaultFilterOptions()
			filter.MinDuration = minDuration
			filter.MaxSilent = maxSilent
			filter.HashTolerance = hashTolerance

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
			defer cancel()

			_, err = pipeline.Scenes(ctx, cfg, threshold, filter)
			return err
		},
	}
	cmd.Flags().Float64("threshold", 0.4, "Scene change detection threshold (0..1)")
	cmd.Flags().Float64("min-duration", 1, "Minimum scene length to keep, seconds")
	cmd.Flags().Float64("max-silent", 0.9, "Drop scenes with a larger silent fraction")
	cmd.Flags().Int("hash-tolerance", 10, "Perceptual hash distance below which scenes are duplicates")
	return cmd
}
