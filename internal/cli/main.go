package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vidai-tools/vidai/internal/pipeline"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "vidai",
		Short:        "Command-line video editing toolkit",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("out", "out", "Output directory")
	root.PersistentFlags().String("cache", ".cache", "Cache directory")
	root.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")

	// Hidden tool-location overrides (internal)
	root.PersistentFlags().String("ffmpeg", "", "ffmpeg binary path")
	root.PersistentFlags().String("ffprobe", "", "ffprobe binary path")
	_ = root.PersistentFlags().MarkHidden("ffmpeg")
	_ = root.PersistentFlags().MarkHidden("ffprobe")

	root.AddCommand(
		highlightCmd(),
		emotionCmd(),
		trimCmd(),
		optimizeCmd(),
		mergeCmd(),
		scenesCmd(),
		subtitleCmd(),
		enhanceCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootConfig assembles a pipeline.Config from the persistent flags and the
// positional input path.
func rootConfig(cmd *cobra.Command, input string) (pipeline.Config, error) {
	absIn, err := filepath.Abs(input)
	if err != nil {
		return pipeline.Config{}, err
	}

	outDir, _ := cmd.Flags().GetString("out")
	cacheDir, _ := cmd.Flags().GetString("cache")
	ffmpegPath, _ := cmd.Flags().GetString("ffmpeg")
	ffprobePath, _ := cmd.Flags().GetString("ffprobe")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if ffmpegPath == "" {
		ffmpegPath = getenvDefault("FFMPEG_PATH", "ffmpeg")
	}
	if ffprobePath == "" {
		ffprobePath = getenvDefault("FFPROBE_PATH", "ffprobe")
	}

	return pipeline.Config{
		Input:       absIn,
		OutDir:      outDir,
		CacheDir:    cacheDir,
		FFmpegPath:  ffmpegPath,
		FFprobePath: ffprobePath,
		Log:         newLogger(verbose),
	}, nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
