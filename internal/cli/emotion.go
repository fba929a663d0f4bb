package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidai-tools/vidai/internal/pipeline"
)

func emotionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emotion <input>",
		Short: "Cut a highlight reel of the moments showing selected emotions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emotionsFlag, _ := cmd.Flags().GetString("emotions")
			step, _ := cmd.Flags().GetFloat64("step")

			var emotions []string
			for _, e := range strings.Split(emotionsFlag, ",") {
				if e = strings.TrimSpace(e); e != "" {
					emotions = append(emotions, e)
				}
			}

			cfg, err := rootConfig(cmd, args[0])
			if err != nil {
				return err
			}
			cfg.HFAPIKey = os.Getenv("HF_API_TOKEN")
			cfg.HFModel = os.Getenv("HF_MODEL")
			cfg.HFBaseURL = os.Getenv("HF_BASE_URL")
			if hosts := os.Getenv("HF_ALLOWED_HOSTS"); hosts != "" {
				cfg.HFAllowedHosts = strings.Split(hosts, ",")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
			defer cancel()

			_, err = pipeline.EmotionReel(ctx, cfg, emotions, step)
			return err
		},
	}
	cmd.Flags().String("emotions", "", "Comma-separated labels to keep (e.g. happy,surprise)")
	cmd.Flags().Float64("step", 1, "Seconds between classified frames")
	_ = cmd.MarkFlagRequired("emotions")
	return cmd
}
