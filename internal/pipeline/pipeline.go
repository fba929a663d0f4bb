package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/vidai-tools/vidai/internal/ports"
	"github.com/vidai-tools/vidai/internal/ports/adapters/ffmpeg"
	"github.com/vidai-tools/vidai/internal/ports/adapters/hfinference"
	"github.com/vidai-tools/vidai/internal/ports/adapters/loudness"
	"github.com/vidai-tools/vidai/internal/ports/adapters/whispercpp"
	"github.com/vidai-tools/vidai/internal/usecase"
)

// Config holds everything a run needs that is not command-specific:
// tool locations, workspace directories, and the logger.
type Config struct {
	Input  string
	OutDir string

	// CacheDir is the base directory for local artifacts (extracted audio,
	// intermediate clips). If empty, defaults to ".cache".
	CacheDir string

	FFmpegPath  string
	FFprobePath string

	WhisperBin   string
	WhisperModel string

	HFAPIKey       string
	HFModel        string
	HFBaseURL      string
	HFAllowedHosts []string

	Log zerolog.Logger
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	return nil
}

// Deps builds the adapter set shared by every command.
func (c Config) Deps() usecase.Deps {
	return usecase.Deps{
		Video:   ffmpeg.New(c.FFmpegPath, c.FFprobePath, c.Log),
		Audio:   loudness.New(),
		ASR:     whispercpp.New(c.WhisperBin, c.WhisperModel),
		Emotion: hfinference.New(c.HFAPIKey, c.HFModel, c.HFBaseURL),
		Log:     c.Log,
	}
}

// Workspace creates the per-input cache dir and the timestamped run output
// dir, returning both. The cache dir is keyed by the input path so repeated
// runs on the same file share artifacts.
func (c Config) Workspace() (cacheDir, runOutDir string, err error) {
	baseCache := c.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir = filepath.Join(baseCache, "runs", hash(c.Input))
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", "", err
	}
	c.Log.Debug().Str("cache", cacheDir).Msg("workspace prepared")

	outDir := c.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir = buildRunOutDir(outDir, c.Input, time.Now().UTC())
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return "", "", err
	}
	c.Log.Info().Str("out", runOutDir).Msg("output run dir")
	return cacheDir, runOutDir, nil
}

func buildRunOutDir(outRoot, input string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", input, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.AudioAnalyzer = (*loudness.Analyzer)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
var _ ports.EmotionDetector = (*hfinference.Adapter)(nil)
