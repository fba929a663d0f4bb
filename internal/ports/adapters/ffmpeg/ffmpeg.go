package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidai-tools/vidai/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
	log     zerolog.Logger
}

func New(ffmpegPath, ffprobePath string, log zerolog.Logger) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{
		ffmpeg:  ffmpegPath,
		ffprobe: ffprobePath,
		log:     log.With().Str("component", "ffmpeg").Logger(),
	}
}

// probeResult matches the ffprobe JSON output structure.
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		Duration   string `json:"duration"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

func (a *Adapter) Probe(ctx context.Context, input string) (types.VideoMeta, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		input,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.VideoMeta{}, fmt.Errorf("ffprobe: %w\n%s", err, string(b))
	}

	var probe probeResult
	if err := json.Unmarshal(b, &probe); err != nil {
		return types.VideoMeta{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	var meta types.VideoMeta
	if d, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64); err == nil {
		meta.Duration = d
	}
	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			meta.Width = s.Width
			meta.Height = s.Height
			meta.Codec = s.CodecName
			meta.FPS = parseFrameRate(s.RFrameRate)
			// Stream duration is preferred when the container has none.
			if meta.Duration == 0 {
				if d, err := strconv.ParseFloat(strings.TrimSpace(s.Duration), 64); err == nil {
					meta.Duration = d
				}
			}
		case "audio":
			meta.HasAudio = true
		}
	}
	if meta.Width == 0 || meta.Height == 0 {
		return types.VideoMeta{}, fmt.Errorf("no video stream found in %s", input)
	}
	if meta.Duration <= 0 {
		return types.VideoMeta{}, fmt.Errorf("could not determine duration of %s", input)
	}
	return meta, nil
}

// parseFrameRate converts an ffprobe rational like "30000/1001" to a float.
func parseFrameRate(r string) float64 {
	parts := strings.Split(r, "/")
	if len(parts) != 2 {
		if f, err := strconv.ParseFloat(r, 64); err == nil {
			return f
		}
		return 0
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, input, outWav string) error {
	a.log.Debug().Str("input", input).Str("out", outWav).Msg("extracting audio")
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", input,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) RenderClip(ctx context.Context, input string, start, end time.Duration, out string, burnSRT string) error {
	a.log.Debug().
		Str("input", input).
		Str("out", out).
		Dur("start", start).
		Dur("end", end).
		Msg("rendering clip")

	args := []string{
		"-y",
		"-ss", fmtSeconds(start),
		"-to", fmtSeconds(end),
		"-i", input,
	}
	if burnSRT != "" {
		args = append(args, "-vf", "subtitles="+escapeFilterPath(burnSRT))
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		out,
	)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg render clip: %w\n%s", err, string(b))
	}
	return nil
}

func fmtSeconds(d time.Duration) string {
	sec := float64(d) / float64(time.Second)
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
