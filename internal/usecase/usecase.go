package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidai-tools/vidai/internal/domain/highlight"
	"github.com/vidai-tools/vidai/internal/ports"
	"github.com/vidai-tools/vidai/internal/types"
)

var (
	// ErrSourceUnavailable means the input could not be opened or probed for
	// decoding. Nothing was produced.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNoSignal means both the audio activity signal and the frame
	// difference signal are empty or degenerate, so there is nothing to rank.
	ErrNoSignal = errors.New("no interesting content detected")
)

type Deps struct {
	Video   ports.VideoTool
	Audio   ports.AudioAnalyzer
	ASR     ports.ASR
	Emotion ports.EmotionDetector
	Log     zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type HighlightInput struct {
	Input string
	// Duration is the requested highlight length in seconds.
	Duration float64
	OutPath  string
	CacheDir string
}

type HighlightResult struct {
	OutPath string
	// UsedDuration is the highlight length actually extracted, in seconds.
	UsedDuration float64
	// Warning is non-empty when the requested duration was clamped.
	Warning string
}

// Highlight locates and extracts the most interesting window of the video.
// The pipeline is a single synchronous pass: probe, extract audio, detect
// non-silence, difference frames, score, select, render. The score arrays
// live only for the duration of this call.
func (u Usecase) Highlight(ctx context.Context, in HighlightInput) (HighlightResult, error) {
	log := u.d.Log

	meta, err := u.d.Video.Probe(ctx, in.Input)
	if err != nil {
		return HighlightResult{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	fps := int(meta.FPS)
	if fps <= 0 {
		return HighlightResult{}, fmt.Errorf("%w: frame rate unknown", ErrSourceUnavailable)
	}
	totalFrames := int(meta.Duration * float64(fps))
	if totalFrames <= 0 {
		return HighlightResult{}, fmt.Errorf("%w: no decodable frames", ErrSourceUnavailable)
	}

	requested := in.Duration
	var warning string
	if requested > meta.Duration {
		warning = fmt.Sprintf(
			"requested highlight duration (%.2fs) exceeds video duration (%.2fs); adjusted to %.2fs",
			requested, meta.Duration, meta.Duration,
		)
		requested = meta.Duration
		log.Warn().Msg(warning)
	}

	intervals, err := u.nonSilentIntervals(ctx, in, meta)
	if err != nil {
		return HighlightResult{}, err
	}
	log.Debug().Int("intervals", len(intervals)).Msg("audio activity detected")

	var diffs []float64
	var differ highlight.Differ
	err = u.d.Video.StreamGrayFrames(ctx, in.Input, meta.Width, meta.Height, func(frame []byte) error {
		if mag, ok := differ.Push(frame); ok {
			diffs = append(diffs, mag)
		}
		return nil
	})
	if err != nil {
		return HighlightResult{}, fmt.Errorf("decode frames: %w", err)
	}
	if len(diffs) > totalFrames {
		diffs = diffs[:totalFrames]
	}
	log.Debug().Int("frames", len(diffs)+1).Msg("frame differences computed")

	if len(intervals) == 0 && highlight.AllZero(diffs) {
		return HighlightResult{}, ErrNoSignal
	}

	ranges := make([]types.FrameRange, 0, len(intervals))
	for _, iv := range intervals {
		ranges = append(ranges, highlight.FrameRangeFromInterval(iv, fps))
	}
	scores := highlight.BuildScores(totalFrames, diffs, ranges)

	l := int(requested * float64(fps))
	if l > len(scores) {
		warning = fmt.Sprintf(
			"highlight duration adjusted to %.2fs to fit the video",
			float64(len(scores))/float64(fps),
		)
		log.Warn().Msg(warning)
		l = len(scores)
	}
	if l < 1 {
		l = 1
	}

	start := highlight.BestWindow(scores, l)
	startSec := float64(start) / float64(fps)
	endSec := float64(start+l) / float64(fps)
	log.Info().
		Float64("start_sec", startSec).
		Float64("end_sec", endSec).
		Msg("highlight window selected")

	if err := u.d.Video.RenderClip(ctx, in.Input, secs(startSec), secs(endSec), in.OutPath, ""); err != nil {
		return HighlightResult{}, fmt.Errorf("render highlight: %w", err)
	}

	return HighlightResult{
		OutPath:      in.OutPath,
		UsedDuration: float64(l) / float64(fps),
		Warning:      warning,
	}, nil
}

// nonSilentIntervals extracts the audio track and runs activity detection.
// Videos without an audio stream yield no intervals rather than an error.
// The temporary waveform is removed on every path out.
func (u Usecase) nonSilentIntervals(ctx context.Context, in HighlightInput, meta types.VideoMeta) ([]types.Interval, error) {
	if !meta.HasAudio {
		u.d.Log.Debug().Msg("input has no audio stream; scoring on frame differences only")
		return nil, nil
	}

	wav := filepath.Join(in.CacheDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, in.Input, wav); err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	defer os.Remove(wav)

	intervals, err := u.d.Audio.NonSilent(ctx, wav)
	if err != nil {
		return nil, fmt.Errorf("analyze audio: %w", err)
	}
	return intervals, nil
}

func secs(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }
