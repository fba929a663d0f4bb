package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vidai-tools/vidai/internal/render"
)

func enhanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enhance <input>",
		Short: "Apply quality filters: denoise, sharpen, upscale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sharpen, _ := cmd.Flags().GetBool("sharpen")
			upscale, _ := cmd.Flags().GetBool("upscale")
			denoise, _ := cmd.Flags().GetBool("denoise")

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
			out := filepath.Join(runOutDir, "enhanced.mp4")
			if err := engine.Enhance(cfg.Input, out, render.EnhanceOptions{
				Sharpen: sharpen,
				Upscale: upscale,
				Denoise: denoise,
			}); err != nil {
				return err
			}
			cfg.Log.Info().Str("clip", out).Msg("enhanced")
			return nil
		},
	}
	cmd.Flags().Bool("sharpen", true, "Apply an unsharp mask")
	cmd.Flags().Bool("upscale", false, "Double the resolution (lanczos)")
	cmd.Flags().Bool("denoise", false, "Apply temporal denoising")
	return cmd
}
