package ports

import (
	"context"
	"image"
	"time"

	"github.com/vidai-tools/vidai/internal/types"
)

// VideoTool is the ffmpeg-shaped collaborator every pipeline leans on.
type VideoTool interface {
	Probe(ctx context.Context, input string) (types.VideoMeta, error)
	ExtractAudioMono16k(ctx context.Context, input, outWav string) error
	RenderClip(ctx context.Context, input string, start, end time.Duration, out string, burnSRT string) error

	// StreamGrayFrames decodes the video as a sequential stream of
	// single-channel intensity frames (one byte per pixel, width*height bytes
	// per frame) and invokes fn once per frame, in order. The frame buffer is
	// only valid for the duration of the call.
	StreamGrayFrames(ctx context.Context, input string, width, height int, fn func(frame []byte) error) error

	// DetectScenes returns timestamps (seconds, ascending) where the content
	// changes more than threshold (0..1).
	DetectScenes(ctx context.Context, input string, threshold float64) ([]float64, error)

	// FrameImage decodes the single frame nearest to the given offset.
	FrameImage(ctx context.Context, input string, at time.Duration) (image.Image, error)
}

// AudioAnalyzer locates activity in a decoded mono waveform.
type AudioAnalyzer interface {
	// NonSilent returns sorted, non-overlapping millisecond intervals where
	// audio energy stays above the dynamic threshold (overall dBFS minus a
	// fixed margin) for at least the analyzer's minimum run length.
	NonSilent(ctx context.Context, wavPath string) ([]types.Interval, error)

	// SilentPortion reports the fraction of [start, end) whose energy is
	// below the absolute silence threshold configured on the analyzer.
	SilentPortion(ctx context.Context, wavPath string, start, end time.Duration) (float64, error)
}

type ASR interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error)
}

// EmotionDetector classifies the facial emotions visible in a single frame.
type EmotionDetector interface {
	// Classify returns the model's labels for the frame, sorted by
	// descending score. An empty slice means no face or no emotion found.
	Classify(ctx context.Context, frame image.Image) ([]types.Emotion, error)
}
