package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/vidai-tools/vidai/internal/domain/scenes"
	"github.com/vidai-tools/vidai/internal/ports/adapters/hfinference"
	"github.com/vidai-tools/vidai/internal/render"
	"github.com/vidai-tools/vidai/internal/usecase"
)

// Highlight runs the full highlight extraction: probe, score, select, render.
// Returns the path of the written clip.
func Highlight(ctx context.Context, cfg Config, duration float64) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if duration <= 0 {
		return "", fmt.Errorf("duration must be > 0, got %v", duration)
	}
	cacheDir, runOutDir, err := cfg.Workspace()
	if err != nil {
		return "", err
	}

	uc := usecase.New(cfg.Deps())
	res, err := uc.Highlight(ctx, usecase.HighlightInput{
		Input:    cfg.Input,
		Duration: duration,
		OutPath:  filepath.Join(runOutDir, "highlight.mp4"),
		CacheDir: cacheDir,
	})
	if err != nil {
		return "", err
	}
	if res.Warning != "" {
		cfg.Log.Warn().Msg(res.Warning)
	}
	cfg.Log.Info().
		Str("clip", res.OutPath).
		Float64("duration_sec", res.UsedDuration).
		Msg("highlight extracted")
	return res.OutPath, nil
}

// Trim cuts [start, end) out of the input into a new file.
func Trim(ctx context.Context, cfg Config, start, end time.Duration) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if end <= start {
		return "", fmt.Errorf("end (%v) must be after start (%v)", end, start)
	}
	_, runOutDir, err := cfg.Workspace()
	if err != nil {
		return "", err
	}

	deps := cfg.Deps()
	out := filepath.Join(runOutDir, "trimmed.mp4")
	if err := deps.Video.RenderClip(ctx, cfg.Input, start, end, out, ""); err != nil {
		return "", fmt.Errorf("render trim: %w", err)
	}
	cfg.Log.Info().Str("clip", out).Msg("trimmed")
	return out, nil
}

// Scenes detects scene boundaries, drops silent and duplicate scenes, and
// reassembles the keepers into one file.
func Scenes(ctx context.Context, cfg Config, threshold float64, filter scenes.FilterOptions) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if threshold <= 0 || threshold >= 1 {
		return "", fmt.Errorf("scene threshold must be in (0, 1), got %v", threshold)
	}
	cacheDir, runOutDir, err := cfg.Workspace()
	if err != nil {
		return "", err
	}

	engine := render.New(cfg.Log)
	uc := usecase.New(cfg.Deps())
	res, err := uc.SceneTrim(ctx, usecase.SceneTrimInput{
		Input:          cfg.Input,
		SceneThreshold: threshold,
		Filter:         filter,
		OutPath:        filepath.Join(runOutDir, "scenes.mp4"),
		CacheDir:       cacheDir,
		Concat:         engine.Concat,
	})
	if err != nil {
		return "", err
	}
	cfg.Log.Info().
		Int("detected", res.Detected).
		Int("kept", len(res.Kept)).
		Str("clip", res.OutPath).
		Msg("scene trim complete")
	return res.OutPath, nil
}

// EmotionReel classifies sampled frames for facial emotions and assembles a
// reel of the moments matching the requested labels.
func EmotionReel(ctx context.Context, cfg Config, emotions []string, stepSec float64) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if len(emotions) == 0 {
		return "", fmt.Errorf("at least one emotion is required")
	}
	if cfg.HFAPIKey == "" {
		return "", fmt.Errorf("HF_API_TOKEN is required (set it in .env)")
	}
	if err := hfinference.ValidateBaseURL(cfg.HFBaseURL, cfg.HFAllowedHosts); err != nil {
		return "", err
	}
	cacheDir, runOutDir, err := cfg.Workspace()
	if err != nil {
		return "", err
	}

	engine := render.New(cfg.Log)
	uc := usecase.New(cfg.Deps())
	res, err := uc.EmotionReel(ctx, usecase.EmotionReelInput{
		Input:    cfg.Input,
		Emotions: emotions,
		StepSec:  stepSec,
		OutPath:  filepath.Join(runOutDir, "reel.mp4"),
		CacheDir: cacheDir,
		Concat:   engine.Concat,
	})
	if err != nil {
		return "", err
	}
	cfg.Log.Info().
		Int("clips", len(res.Intervals)).
		Strs("detected", res.Detected).
		Str("clip", res.OutPath).
		Msg("emotion reel assembled")
	return res.OutPath, nil
}

// Subtitle transcribes the input and writes an SRT file; when burn is set it
// also renders a copy with the subtitles baked in.
func Subtitle(ctx context.Context, cfg Config, burn bool) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if cfg.WhisperModel == "" {
		return "", fmt.Errorf("whisper model path is required")
	}
	cacheDir, runOutDir, err := cfg.Workspace()
	if err != nil {
		return "", err
	}

	uc := usecase.New(cfg.Deps())
	in := usecase.SubtitleInput{
		Input:    cfg.Input,
		SRTPath:  filepath.Join(runOutDir, "subtitles.srt"),
		CacheDir: cacheDir,
		Burn:     burn,
	}
	if burn {
		in.BurnPath = filepath.Join(runOutDir, "subtitled.mp4")
	}
	res, err := uc.Subtitle(ctx, in)
	if err != nil {
		return "", err
	}
	cfg.Log.Info().
		Int("segments", res.Segments).
		Str("srt", res.SRTPath).
		Msg("subtitles written")
	if res.BurnPath != "" {
		cfg.Log.Info().Str("clip", res.BurnPath).Msg("subtitles burned")
		return res.BurnPath, nil
	}
	return res.SRTPath, nil
}
