package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vidai-tools/vidai/internal/domain/emotion"
	"github.com/vidai-tools/vidai/internal/types"
)

type EmotionReelInput struct {
	Input string
	// Emotions are the labels worth keeping (case-insensitive).
	Emotions []string
	// StepSec is the sampling interval between classified frames.
	StepSec  float64
	OutPath  string
	CacheDir string
	// Concat joins the matched clips into OutPath.
	Concat func(inputs []string, output string) error
}

type EmotionReelResult struct {
	OutPath string
	// Sampled is the number of frames sent to the classifier.
	Sampled int
	// Detected lists the distinct labels seen in the footage.
	Detected []string
	// Intervals are the reel segments, in timeline order.
	Intervals []types.Scene
}

// EmotionReel samples one frame per step, classifies each for facial
// emotions, and cuts a reel from the moments matching the requested labels.
func (u Usecase) EmotionReel(ctx context.Context, in EmotionReelInput) (EmotionReelResult, error) {
	log := u.d.Log

	meta, err := u.d.Video.Probe(ctx, in.Input)
	if err != nil {
		return EmotionReelResult{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	step := in.StepSec
	if step <= 0 {
		step = 1
	}

	var moments []emotion.Moment
	sampled := 0
	for t := step; t < meta.Duration; t += step {
		img, err := u.d.Video.FrameImage(ctx, in.Input, secs(t))
		if err != nil {
			// One unreadable frame does not sink the reel.
			log.Debug().Err(err).Float64("at_sec", t).Msg("frame extraction failed")
			continue
		}
		sampled++

		labels, err := u.d.Emotion.Classify(ctx, img)
		if err != nil {
			if ctx.Err() != nil {
				return EmotionReelResult{}, ctx.Err()
			}
			log.Warn().Err(err).Float64("at_sec", t).Msg("emotion classification failed")
			continue
		}
		if len(labels) == 0 {
			continue
		}
		moments = append(moments, emotion.Moment{Sec: t, Emotions: labels})
	}
	log.Info().Int("sampled", sampled).Int("moments", len(moments)).Msg("footage analyzed")

	if len(moments) == 0 {
		return EmotionReelResult{}, fmt.Errorf("%w: no emotions detected in footage", ErrNoSignal)
	}

	intervals := emotion.Reel(moments, in.Emotions, meta.Duration)
	if len(intervals) == 0 {
		return EmotionReelResult{}, fmt.Errorf(
			"%w: no moments match emotions %v (footage contains %v)",
			ErrNoSignal, in.Emotions, emotion.Labels(moments),
		)
	}
	log.Info().Int("intervals", len(intervals)).Msg("reel intervals selected")

	clips := make([]string, 0, len(intervals))
	for i, iv := range intervals {
		clip := filepath.Join(in.CacheDir, fmt.Sprintf("moment_%03d.mp4", i))
		if err := u.d.Video.RenderClip(ctx, in.Input, secs(iv.Start), secs(iv.End), clip, ""); err != nil {
			return EmotionReelResult{}, fmt.Errorf("render moment %d: %w", i+1, err)
		}
		clips = append(clips, clip)
	}
	defer func() {
		for _, c := range clips {
			os.Remove(c)
		}
	}()

	if err := in.Concat(clips, in.OutPath); err != nil {
		return EmotionReelResult{}, fmt.Errorf("assemble reel: %w", err)
	}

	return EmotionReelResult{
		OutPath:   in.OutPath,
		Sampled:   sampled,
		Detected:  emotion.Labels(moments),
		Intervals: intervals,
	}, nil
}
