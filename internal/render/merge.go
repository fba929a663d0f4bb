package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type MergeOptions struct {
	// Transition is applied between consecutive clips. Supported: none,
	// fade, crossfade, blackwhite, mirrorx, mirrory, negate.
	Transition string
	// TransitionDuration is the fade length in seconds for fade-style
	// transitions.
	TransitionDuration float64
}

// Merge concatenates clips into one video, normalizing every clip to the
// first clip's resolution so the concat demuxer sees uniform streams.
// Transitions are applied per clip: fades touch both sides of each cut,
// visual effects restyle every clip after the first.
func (e *Engine) Merge(inputs []string, output string, opts MergeOptions) error {
	if len(inputs) < 2 {
		return errors.New("merge needs at least two inputs")
	}
	if opts.TransitionDuration <= 0 {
		opts.TransitionDuration = 1
	}

	first, err := probeInput(inputs[0])
	if err != nil {
		return err
	}
	target := first.dimensions

	tempDir, err := os.MkdirTemp("", "vidai_merge_")
	if err != nil {
		return errors.Wrap(err, "create temp directory")
	}
	defer os.RemoveAll(tempDir)

	e.log.Info().
		Int("inputs", len(inputs)).
		Str("transition", opts.Transition).
		Msg("merging clips")

	prepared := make([]string, 0, len(inputs))
	for i, input := range inputs {
		info, err := probeInput(input)
		if err != nil {
			return err
		}

		vf := fitFilter(info.dimensions, target)
		af := "anull"
		if extra := clipVideoFilter(opts, i, len(inputs), info.Duration); extra != "" {
			vf += "," + extra
		}
		if extra := clipAudioFilter(opts, i, len(inputs), info.Duration); extra != "" {
			af = extra
		}

		out := filepath.Join(tempDir, fmt.Sprintf("part_%03d.mp4", i))
		outputKwargs := ffmpeg.KwArgs{
			"c:v":     "libx264",
			"crf":     "18",
			"preset":  "veryfast",
			"c:a":     "aac",
			"b:a":     "192k",
			"ar":      "48000",
			"vf":      vf,
			"af":      af,
			"pix_fmt": "yuv420p",
		}
		if err := ffmpeg.Input(input).
			Output(out, outputKwargs).
			OverWriteOutput().
			ErrorToStdOut().
			Run(); err != nil {
			return errors.Wrapf(err, "prepare clip %d", i+1)
		}
		prepared = append(prepared, out)
	}

	return e.concat(prepared, output)
}

// clipVideoFilter returns the transition's video filter for clip i of n.
func clipVideoFilter(opts MergeOptions, i, n int, duration float64) string {
	d := opts.TransitionDuration
	switch opts.Transition {
	case "", "none":
		return ""
	case "fade", "crossfade":
		var parts []string
		if i > 0 {
			parts = append(parts, fmt.Sprintf("fade=t=in:st=0:d=%.3f", d))
		}
		if i < n-1 && duration > d {
			parts = append(parts, fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", duration-d, d))
		}
		if len(parts) == 0 {
			return ""
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return parts[0] + "," + parts[1]
	case "blackwhite":
		if i == 0 {
			return ""
		}
		return "hue=s=0"
	case "mirrorx":
		if i == 0 {
			return ""
		}
		return "hflip"
	case "mirrory":
		if i == 0 {
			return ""
		}
		return "vflip"
	case "negate":
		if i == 0 {
			return ""
		}
		return "negate"
	}
	return ""
}

// clipAudioFilter mirrors fade transitions on the audio track so cuts do not
// pop.
func clipAudioFilter(opts MergeOptions, i, n int, duration float64) string {
	if opts.Transition != "fade" && opts.Transition != "crossfade" {
		return ""
	}
	d := opts.TransitionDuration
	var parts []string
	if i > 0 {
		parts = append(parts, fmt.Sprintf("afade=t=in:st=0:d=%.3f", d))
	}
	if i < n-1 && duration > d {
		parts = append(parts, fmt.Sprintf("afade=t=out:st=%.3f:d=%.3f", duration-d, d))
	}
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "," + parts[1]
}

// concat joins uniformly encoded clips with the concat demuxer, stream copy.
func (e *Engine) concat(inputs []string, output string) error {
	listFile, err := writeConcatList(inputs)
	if err != nil {
		return err
	}
	defer os.Remove(listFile)

	if err := ffmpeg.Input(listFile, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(output, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().
		ErrorToStdOut().
		Run(); err != nil {
		return errors.Wrap(err, "concat clips")
	}
	return nil
}

// Concat joins already-compatible clips without re-encoding.
func (e *Engine) Concat(inputs []string, output string) error {
	if len(inputs) == 0 {
		return errors.New("no input files provided")
	}
	e.log.Info().Int("inputs", len(inputs)).Str("output", output).Msg("concatenating clips")
	return e.concat(inputs, output)
}

func writeConcatList(inputs []string) (string, error) {
	tmp, err := os.CreateTemp("", "vidai-concat-*.txt")
	if err != nil {
		return "", errors.Wrap(err, "create concat list")
	}
	defer tmp.Close()

	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return "", err
		}
		if _, err := fmt.Fprintf(tmp, "file '%s'\n", escapeConcatPath(abs)); err != nil {
			return "", err
		}
	}
	return tmp.Name(), nil
}

// escapeConcatPath quotes embedded single quotes for the concat demuxer,
// which reads file entries as single-quoted strings.
func escapeConcatPath(p string) string {
	return strings.ReplaceAll(p, "'", `'\''`)
}
