package usecase

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidai-tools/vidai/internal/domain/scenes"
	"github.com/vidai-tools/vidai/internal/types"
)

type renderCall struct {
	start, end time.Duration
	out        string
	burn       string
}

type fakeVideoTool struct {
	meta      types.VideoMeta
	probeErr  error
	frames    [][]byte
	streamErr error
	marks     []float64
	thumb     image.Image
	renders   []renderCall
}

func (f *fakeVideoTool) Probe(_ context.Context, _ string) (types.VideoMeta, error) {
	return f.meta, f.probeErr
}

func (f *fakeVideoTool) ExtractAudioMono16k(_ context.Context, _, outWav string) error {
	return os.WriteFile(outWav, []byte("wav"), 0o644)
}

func (f *fakeVideoTool) RenderClip(_ context.Context, _ string, start, end time.Duration, out, burn string) error {
	f.renders = append(f.renders, renderCall{start: start, end: end, out: out, burn: burn})
	return os.WriteFile(out, []byte("clip"), 0o644)
}

func (f *fakeVideoTool) StreamGrayFrames(_ context.Context, _ string, _, _ int, fn func([]byte) error) error {
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, frame := range f.frames {
		if err := fn(frame); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeVideoTool) DetectScenes(_ context.Context, _ string, _ float64) ([]float64, error) {
	return f.marks, nil
}

func (f *fakeVideoTool) FrameImage(_ context.Context, _ string, _ time.Duration) (image.Image, error) {
	if f.thumb == nil {
		return nil, errors.New("no thumbnails in tests")
	}
	return f.thumb, nil
}

type fakeAudio struct {
	intervals []types.Interval
	portions  map[int]float64 // keyed by scene start second
}

func (f fakeAudio) NonSilent(_ context.Context, _ string) ([]types.Interval, error) {
	return f.intervals, nil
}

func (f fakeAudio) SilentPortion(_ context.Context, _ string, start, _ time.Duration) (float64, error) {
	return f.portions[int(start.Seconds())], nil
}

type fakeASR struct {
	tr types.Transcript
}

func (f fakeASR) Transcribe(_ context.Context, _, _ string) (types.Transcript, error) {
	return f.tr, nil
}

// flatFrames returns n identical frames: zero difference signal.
func flatFrames(n, size int) [][]byte {
	frames := make([][]byte, n)
	for i := range frames {
		frames[i] = make([]byte, size)
	}
	return frames
}

func newTestUsecase(video *fakeVideoTool, audio fakeAudio) Usecase {
	return New(Deps{Video: video, Audio: audio, ASR: fakeASR{}, Log: zerolog.Nop()})
}

func TestHighlight_SelectsLoudWindow(t *testing.T) {
	t.Parallel()

	// 10 frames at 1 fps, zero visual change; non-silent interval covers
	// frames [3,7). The window of length 4 must land on start frame 3.
	video := &fakeVideoTool{
		meta:   types.VideoMeta{Duration: 10, FPS: 1, Width: 2, Height: 2, HasAudio: true},
		frames: flatFrames(10, 4),
	}
	audio := fakeAudio{intervals: []types.Interval{{StartMS: 3000, EndMS: 7000}}}
	uc := newTestUsecase(video, audio)

	tmp := t.TempDir()
	res, err := uc.Highlight(context.Background(), HighlightInput{
		Input:    "in.mp4",
		Duration: 4,
		OutPath:  filepath.Join(tmp, "highlight.mp4"),
		CacheDir: tmp,
	})
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if res.UsedDuration != 4 {
		t.Fatalf("UsedDuration = %v, want 4", res.UsedDuration)
	}
	if res.Warning != "" {
		t.Fatalf("unexpected warning: %q", res.Warning)
	}
	if len(video.renders) != 1 {
		t.Fatalf("expected 1 render, got %d", len(video.renders))
	}
	r := video.renders[0]
	if r.start != 3*time.Second || r.end != 7*time.Second {
		t.Fatalf("rendered window [%v, %v), want [3s, 7s)", r.start, r.end)
	}
}

func TestHighlight_ClampsRequestedDuration(t *testing.T) {
	t.Parallel()

	video := &fakeVideoTool{
		meta:   types.VideoMeta{Duration: 30, FPS: 1, Width: 2, Height: 2, HasAudio: true},
		frames: flatFrames(30, 4),
	}
	audio := fakeAudio{intervals: []types.Interval{{StartMS: 0, EndMS: 30000}}}
	uc := newTestUsecase(video, audio)

	tmp := t.TempDir()
	res, err := uc.Highlight(context.Background(), HighlightInput{
		Input:    "in.mp4",
		Duration: 50,
		OutPath:  filepath.Join(tmp, "highlight.mp4"),
		CacheDir: tmp,
	})
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if res.UsedDuration != 30 {
		t.Fatalf("UsedDuration = %v, want 30", res.UsedDuration)
	}
	if res.Warning == "" {
		t.Fatal("expected a duration-adjusted warning")
	}
	if video.renders[0].start != 0 {
		t.Fatalf("full-length window must start at 0, got %v", video.renders[0].start)
	}
}

func TestHighlight_NoSignal(t *testing.T) {
	t.Parallel()

	video := &fakeVideoTool{
		meta:   types.VideoMeta{Duration: 5, FPS: 1, Width: 2, Height: 2, HasAudio: true},
		frames: flatFrames(5, 4),
	}
	uc := newTestUsecase(video, fakeAudio{}) // no intervals, no motion

	tmp := t.TempDir()
	_, err := uc.Highlight(context.Background(), HighlightInput{
		Input:    "in.mp4",
		Duration: 2,
		OutPath:  filepath.Join(tmp, "highlight.mp4"),
		CacheDir: tmp,
	})
	if !errors.Is(err, ErrNoSignal) {
		t.Fatalf("expected ErrNoSignal, got %v", err)
	}
	if len(video.renders) != 0 {
		t.Fatal("no output may be produced on NoSignal")
	}
	if _, err := os.Stat(filepath.Join(tmp, "highlight.mp4")); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err = %v", err)
	}
}

func TestHighlight_SourceUnavailable(t *testing.T) {
	t.Parallel()

	video := &fakeVideoTool{probeErr: errors.New("no such file")}
	uc := newTestUsecase(video, fakeAudio{})

	_, err := uc.Highlight(context.Background(), HighlightInput{Input: "missing.mp4", Duration: 5})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestHighlight_MotionOnlyWithoutAudioStream(t *testing.T) {
	t.Parallel()

	// No audio stream at all: scoring falls back to the difference signal.
	frames := flatFrames(10, 4)
	frames[6] = []byte{255, 255, 255, 255} // burst of motion at frame 6
	video := &fakeVideoTool{
		meta:   types.VideoMeta{Duration: 10, FPS: 1, Width: 2, Height: 2, HasAudio: false},
		frames: frames,
	}
	uc := newTestUsecase(video, fakeAudio{})

	tmp := t.TempDir()
	res, err := uc.Highlight(context.Background(), HighlightInput{
		Input:    "in.mp4",
		Duration: 3,
		OutPath:  filepath.Join(tmp, "highlight.mp4"),
		CacheDir: tmp,
	})
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if res.UsedDuration != 3 {
		t.Fatalf("UsedDuration = %v, want 3", res.UsedDuration)
	}
	// Frames 6 and 7 both score (motion in and out of the burst); any chosen
	// window must cover them.
	r := video.renders[0]
	if r.start > 6*time.Second || r.end < 7*time.Second {
		t.Fatalf("window [%v, %v) must cover the motion burst", r.start, r.end)
	}
}

func TestHighlight_DecodeFailurePropagates(t *testing.T) {
	t.Parallel()

	video := &fakeVideoTool{
		meta:      types.VideoMeta{Duration: 10, FPS: 1, Width: 2, Height: 2, HasAudio: true},
		streamErr: errors.New("decode truncated after 3 frames"),
	}
	uc := newTestUsecase(video, fakeAudio{intervals: []types.Interval{{StartMS: 0, EndMS: 1000}}})

	tmp := t.TempDir()
	_, err := uc.Highlight(context.Background(), HighlightInput{
		Input:    "in.mp4",
		Duration: 3,
		OutPath:  filepath.Join(tmp, "highlight.mp4"),
		CacheDir: tmp,
	})
	if err == nil || !strings.Contains(err.Error(), "decode frames") {
		t.Fatalf("expected decode failure, got %v", err)
	}
	if len(video.renders) != 0 {
		t.Fatal("selection must not run after a decode failure")
	}
}

func TestSceneTrim_DropsSilentScene(t *testing.T) {
	t.Parallel()

	video := &fakeVideoTool{
		meta:  types.VideoMeta{Duration: 10, FPS: 1, Width: 2, Height: 2, HasAudio: true},
		marks: []float64{3, 7},
	}
	// Scenes: [0,3) loud, [3,7) silent, [7,10) loud.
	audio := fakeAudio{portions: map[int]float64{0: 0.1, 3: 0.95, 7: 0.2}}
	uc := newTestUsecase(video, audio)

	var concatInputs []string
	tmp := t.TempDir()
	res, err := uc.SceneTrim(context.Background(), SceneTrimInput{
		Input:          "in.mp4",
		SceneThreshold: 0.4,
		Filter:         sceneFilterForTest(),
		OutPath:        filepath.Join(tmp, "out.mp4"),
		CacheDir:       tmp,
		Concat: func(inputs []string, output string) error {
			concatInputs = inputs
			return os.WriteFile(output, []byte("merged"), 0o644)
		},
	})
	if err != nil {
		t.Fatalf("SceneTrim: %v", err)
	}
	if res.Detected != 3 {
		t.Fatalf("Detected = %d, want 3", res.Detected)
	}
	if len(res.Kept) != 2 {
		t.Fatalf("Kept = %v, want the two loud scenes", res.Kept)
	}
	if res.Kept[0].Start != 0 || res.Kept[1].Start != 7 {
		t.Fatalf("unexpected kept scenes: %v", res.Kept)
	}
	if len(concatInputs) != 2 {
		t.Fatalf("expected 2 clips handed to concat, got %d", len(concatInputs))
	}
	if len(video.renders) != 2 {
		t.Fatalf("expected 2 scene renders, got %d", len(video.renders))
	}
}

func TestSceneTrim_AllScenesFilteredOut(t *testing.T) {
	t.Parallel()

	video := &fakeVideoTool{
		meta:  types.VideoMeta{Duration: 6, FPS: 1, Width: 2, Height: 2, HasAudio: true},
		marks: []float64{3},
	}
	audio := fakeAudio{portions: map[int]float64{0: 1, 3: 1}}
	uc := newTestUsecase(video, audio)

	tmp := t.TempDir()
	_, err := uc.SceneTrim(context.Background(), SceneTrimInput{
		Input:          "in.mp4",
		SceneThreshold: 0.4,
		Filter:         sceneFilterForTest(),
		OutPath:        filepath.Join(tmp, "out.mp4"),
		CacheDir:       tmp,
		Concat: func([]string, string) error {
			t.Fatal("concat must not run when nothing is kept")
			return nil
		},
	})
	if !errors.Is(err, ErrNoSignal) {
		t.Fatalf("expected ErrNoSignal, got %v", err)
	}
}

func TestSubtitle_WritesSRTAndBurns(t *testing.T) {
	t.Parallel()

	video := &fakeVideoTool{
		meta: types.VideoMeta{Duration: 8, FPS: 25, Width: 2, Height: 2, HasAudio: true},
	}
	uc := New(Deps{
		Video: video,
		Audio: fakeAudio{},
		ASR: fakeASR{tr: types.Transcript{Segments: []types.Segment{
			{Start: 0, End: 2, Text: "hello"},
			{Start: 2, End: 4, Text: "world"},
		}}},
		Log: zerolog.Nop(),
	})

	tmp := t.TempDir()
	srtPath := filepath.Join(tmp, "subs.srt")
	burnPath := filepath.Join(tmp, "burned.mp4")
	res, err := uc.Subtitle(context.Background(), SubtitleInput{
		Input:    "in.mp4",
		SRTPath:  srtPath,
		CacheDir: tmp,
		Burn:     true,
		BurnPath: burnPath,
	})
	if err != nil {
		t.Fatalf("Subtitle: %v", err)
	}
	if res.Segments != 2 {
		t.Fatalf("Segments = %d, want 2", res.Segments)
	}

	b, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	if !strings.Contains(string(b), "hello") || !strings.Contains(string(b), "-->") {
		t.Fatalf("unexpected SRT content: %q", string(b))
	}

	if len(video.renders) != 1 {
		t.Fatalf("expected 1 burn render, got %d", len(video.renders))
	}
	if video.renders[0].burn != srtPath {
		t.Fatalf("burn subtitle path = %q, want %q", video.renders[0].burn, srtPath)
	}
	if video.renders[0].end != 8*time.Second {
		t.Fatalf("burn render must span the whole video, got end %v", video.renders[0].end)
	}
}

func sceneFilterForTest() scenes.FilterOptions {
	opts := scenes.DefaultFilterOptions()
	opts.MaxSilent = 0.9
	return opts
}
