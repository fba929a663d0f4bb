package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vidai-tools/vidai/internal/render"
)

func mergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <input> <input>...",
		Short: "Concatenate clips with an optional transition effect",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			transition, _ := cmd.Flags().GetString("transition")
			transitionDur, _ := cmd.Flags().GetFloat64("transition-duration")

			inputs := make([]string, len(args))
			for i, a := range args {
				abs, err := filepath.Abs(a)
				if err != nil {
					return err
				}
				inputs[i] = abs
			}

			cfg, err := rootConfig(cmd, args[0])
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			_, runOutDir, err := cfg.Workspace()
			if err != nil {
				return err
			}

			engine := render.New(cfg.Log)
			out := filepath.Join(runOutDir, "merged.mp4")
			if err := engine.Merge(inputs, out, render.MergeOptions{
				Transition:         transition,
				TransitionDuration: transitionDur,
			}); err != nil {
				return err
			}
			cfg.Log.Info().Str("clip", out).Int("inputs", len(inputs)).Msg("merged")
			return nil
		},
	}
	cmd.Flags().String("transition", "", "Transition effect (fade, blackwhite, mirrorx, mirrory, negate)")
	cmd.Flags().Float64("transition-duration", 1, "Transition duration in seconds")
	return cmd
}
