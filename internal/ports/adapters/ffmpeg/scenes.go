package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DetectScenes finds content-change timestamps using ffmpeg's scene filter.
// Results are seconds, ascending; the boundaries do not include 0 or the
// video end.
func (a *Adapter) DetectScenes(ctx context.Context, input string, threshold float64) ([]float64, error) {
	a.log.Debug().Str("input", input).Float64("threshold", threshold).Msg("detecting scenes")

	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-i", input,
		"-vf", fmt.Sprintf("select='gt(scene,%f)',showinfo", threshold),
		"-f", "null",
		"-",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("ffmpeg scene detection: %w\n%s", err, stderr.String())
	}

	return parseSceneOutput(stderr.String()), nil
}

// parseSceneOutput extracts pts_time values from showinfo stderr lines.
func parseSceneOutput(output string) []float64 {
	var scenes []float64
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "pts_time:") {
			continue
		}
		parts := strings.Split(line, "pts_time:")
		if len(parts) != 2 {
			continue
		}
		fields := strings.Fields(strings.TrimSpace(parts[1]))
		if len(fields) == 0 {
			continue
		}
		if sec, err := strconv.ParseFloat(fields[0], 64); err == nil {
			scenes = append(scenes, sec)
		}
	}
	return scenes
}
