package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vidai-tools/vidai/internal/domain/subtitles"
)

type SubtitleInput struct {
	Input    string
	SRTPath  string
	CacheDir string
	// Burn renders a copy of the video with the subtitles drawn in.
	Burn     bool
	BurnPath string
}

type SubtitleResult struct {
	SRTPath  string
	BurnPath string
	Segments int
}

// Subtitle transcribes the audio track and writes an SRT file, optionally
// burning it into a re-encoded copy.
func (u Usecase) Subtitle(ctx context.Context, in SubtitleInput) (SubtitleResult, error) {
	meta, err := u.d.Video.Probe(ctx, in.Input)
	if err != nil {
		return SubtitleResult{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if !meta.HasAudio {
		return SubtitleResult{}, fmt.Errorf("%w: no audio stream to transcribe", ErrNoSignal)
	}

	wav := filepath.Join(in.CacheDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, in.Input, wav); err != nil {
		return SubtitleResult{}, fmt.Errorf("extract audio: %w", err)
	}
	defer os.Remove(wav)

	tr, err := u.d.ASR.Transcribe(ctx, wav, in.CacheDir)
	if err != nil {
		return SubtitleResult{}, fmt.Errorf("transcribe: %w", err)
	}

	srt := subtitles.RenderSRT(tr)
	if srt == "" {
		return SubtitleResult{}, fmt.Errorf("%w: transcript is empty", ErrNoSignal)
	}
	if err := os.WriteFile(in.SRTPath, []byte(srt), 0o644); err != nil {
		return SubtitleResult{}, fmt.Errorf("write subtitles: %w", err)
	}

	res := SubtitleResult{SRTPath: in.SRTPath, Segments: len(tr.Segments)}
	if in.Burn {
		if err := u.d.Video.RenderClip(ctx, in.Input, 0, secs(meta.Duration), in.BurnPath, in.SRTPath); err != nil {
			return SubtitleResult{}, fmt.Errorf("burn subtitles: %w", err)
		}
		res.BurnPath = in.BurnPath
	}
	return res, nil
}
