package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidai-tools/vidai/internal/pipeline"
)

func subtitleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtitle <input>",
		Short: "Transcribe audio to an SRT file, optionally burning it in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			burn, _ := cmd.Flags().GetBool("burn")
			whisperBin, _ := cmd.Flags().GetString("whisper-bin")
			whisperModel, _ := cmd.Flags().GetString("whisper-model")

			cfg, err := rootConfig(cmd, args[0])
			if err != nil {
				return err
			}
			cfg.WhisperBin = whisperBin
			cfg.WhisperModel = whisperModel

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
			defer cancel()

			_, err = pipeline.Subtitle(ctx, cfg, burn)
			return err
		},
	}
	cmd.Flags().Bool("burn", false, "Render a copy with subtitles baked in")
	cmd.Flags().String("whisper-bin", ".cache/bin/whisper.cpp", "whisper.cpp binary path")
	cmd.Flags().String("whisper-model", ".cache/models/ggml-base.bin", "whisper.cpp model path")
	return cmd
}
