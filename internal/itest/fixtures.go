//go:build integration

package itest

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"testing"
)

// buildFixture renders an mp4 test asset: a black clip with a loud sine
// burst in the middle of an otherwise silent audio track, so both the
// highlight selector and the silence analysis have something to find.
func buildFixture(t *testing.T, path string, durationSec int) {
	t.Helper()

	loudFrom := durationSec / 3
	loudTo := 2 * durationSec / 3
	audio := fmt.Sprintf(
		"sine=frequency=440:duration=%d,volume='if(between(t,%d,%d),1,0.001)':eval=frame",
		durationSec, loudFrom, loudTo,
	)
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=640x360:d=%d", durationSec),
		"-f", "lavfi",
		"-i", audio,
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		path,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
}

func probeDurationSeconds(mp4Path string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		mp4Path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return sec, nil
}
