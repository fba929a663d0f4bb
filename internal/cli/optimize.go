package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vidai-tools/vidai/internal/platform"
	"github.com/vidai-tools/vidai/internal/render"
)

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <input>",
		Short: "Re-encode a video for a target platform",
		Long: fmt.Sprintf(
			"Re-encode a video for a target platform.\n\nSupported platforms: %s",
			strings.Join(platform.Supported(), ", "),
		),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("platform")

			plat, err := platform.Get(name)
			if err != nil {
				return err
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
			out := filepath.Join(runOutDir, name+".mp4")
			if err := engine.Optimize(cfg.Input, out, plat); err != nil {
				return err
			}
			cfg.Log.Info().Str("clip", out).Str("platform", name).Msg("optimized")
			return nil
		},
	}
	cmd.Flags().String("platform", "youtube", "Target platform")
	return cmd
}
