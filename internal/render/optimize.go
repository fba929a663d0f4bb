package render

import (
	"fmt"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/vidai-tools/vidai/internal/platform"
)

// Optimize re-encodes input for a platform target: fit to the platform
// resolution, H.264/AAC, faststart for streaming playback.
func (e *Engine) Optimize(input, output string, plat platform.Platform) error {
	info, err := probeInput(input)
	if err != nil {
		return err
	}

	w, h := plat.Dimensions()
	target := dimensions{Width: w, Height: h}
	filter := fitFilter(info.dimensions, target)

	e.log.Info().
		Str("input", input).
		Str("platform", plat.Name()).
		Str("filter", filter).
		Msg("optimizing video")

	outputKwargs := ffmpeg.KwArgs{
		"c:v":      plat.VideoCodec(),
		"c:a":      plat.AudioCodec(),
		"b:a":      plat.AudioBitrate(),
		"crf":      fmt.Sprintf("%d", plat.CRF()),
		"preset":   "medium",
		"vf":       filter,
		"pix_fmt":  "yuv420p",
		"movflags": "+faststart",
	}

	if err := ffmpeg.Input(input).
		Output(output, outputKwargs).
		OverWriteOutput().
		ErrorToStdOut().
		Run(); err != nil {
		return errors.Wrapf(err, "optimize for %s", plat.Name())
	}
	return nil
}
