package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/corona10/goimagehash"

	"github.com/vidai-tools/vidai/internal/domain/scenes"
	"github.com/vidai-tools/vidai/internal/types"
)

type SceneTrimInput struct {
	Input string
	// SceneThreshold is the ffmpeg scene-change threshold (0..1).
	SceneThreshold float64
	Filter         scenes.FilterOptions
	OutPath        string
	CacheDir       string
	// Concat joins the kept scene clips into OutPath.
	Concat func(inputs []string, output string) error
}

type SceneTrimResult struct {
	OutPath  string
	Detected int
	Kept     []types.Scene
}

// SceneTrim cuts the video at detected scene changes, drops mostly-silent
// and near-duplicate scenes, and reassembles the keepers.
func (u Usecase) SceneTrim(ctx context.Context, in SceneTrimInput) (SceneTrimResult, error) {
	log := u.d.Log

	meta, err := u.d.Video.Probe(ctx, in.Input)
	if err != nil {
		return SceneTrimResult{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	marks, err := u.d.Video.DetectScenes(ctx, in.Input, in.SceneThreshold)
	if err != nil {
		return SceneTrimResult{}, fmt.Errorf("detect scenes: %w", err)
	}
	all := scenes.FromBoundaries(meta.Duration, marks)
	log.Info().Int("scenes", len(all)).Msg("scene boundaries detected")

	wav := ""
	if meta.HasAudio {
		wav = filepath.Join(in.CacheDir, "audio.wav")
		if err := u.d.Video.ExtractAudioMono16k(ctx, in.Input, wav); err != nil {
			return SceneTrimResult{}, fmt.Errorf("extract audio: %w", err)
		}
		defer os.Remove(wav)
	}

	infos := make([]scenes.Info, 0, len(all))
	for _, sc := range all {
		info := scenes.Info{Scene: sc}

		if wav != "" {
			portion, err := u.d.Audio.SilentPortion(ctx, wav, secs(sc.Start), secs(sc.End))
			if err != nil {
				return SceneTrimResult{}, fmt.Errorf("analyze scene audio: %w", err)
			}
			info.SilentPortion = portion
		}

		// A failed thumbnail only disables duplicate suppression for this
		// scene; it does not abort the cut.
		if img, err := u.d.Video.FrameImage(ctx, in.Input, sc.Mid()); err == nil {
			if hash, err := goimagehash.DifferenceHash(img); err == nil {
				info.Hash = hash
			}
		} else {
			log.Debug().Err(err).Float64("scene_start", sc.Start).Msg("thumbnail extraction failed")
		}

		infos = append(infos, info)
	}

	kept := scenes.Filter(infos, in.Filter)
	log.Info().Int("kept", len(kept)).Int("detected", len(all)).Msg("scene filter applied")
	if len(kept) == 0 {
		return SceneTrimResult{}, ErrNoSignal
	}

	clips := make([]string, 0, len(kept))
	for i, sc := range kept {
		clip := filepath.Join(in.CacheDir, fmt.Sprintf("scene_%03d.mp4", i))
		if err := u.d.Video.RenderClip(ctx, in.Input, secs(sc.Start), secs(sc.End), clip, ""); err != nil {
			return SceneTrimResult{}, fmt.Errorf("render scene %d: %w", i+1, err)
		}
		clips = append(clips, clip)
	}
	defer func() {
		for _, c := range clips {
			os.Remove(c)
		}
	}()

	if err := in.Concat(clips, in.OutPath); err != nil {
		return SceneTrimResult{}, fmt.Errorf("assemble scenes: %w", err)
	}

	return SceneTrimResult{OutPath: in.OutPath, Detected: len(all), Kept: kept}, nil
}
