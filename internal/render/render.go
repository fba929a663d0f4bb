// Package render runs the encode jobs that do not need frame- or
// sample-level analysis: platform re-encodes, enhancement filters, and
// transition merges. All jobs go through ffmpeg-go filter graphs.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type Engine struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Engine {
	return &Engine{log: log.With().Str("component", "render").Logger()}
}

type dimensions struct {
	Width  int
	Height int
}

type inputInfo struct {
	dimensions
	Duration float64
}

// probeInput reads the metadata the encode jobs need for filter math.
func probeInput(path string) (inputInfo, error) {
	probe, err := ffmpeg.Probe(path)
	if err != nil {
		return inputInfo{}, errors.Wrap(err, "probe input")
	}

	var data struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
	}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return inputInfo{}, errors.Wrap(err, "parse probe output")
	}

	info := inputInfo{}
	if d, err := strconv.ParseFloat(strings.TrimSpace(data.Format.Duration), 64); err == nil {
		info.Duration = d
	}
	for _, s := range data.Streams {
		if s.CodecType == "video" {
			info.Width = s.Width
			info.Height = s.Height
			break
		}
	}
	if info.Width == 0 || info.Height == 0 {
		return inputInfo{}, fmt.Errorf("no video stream in %s", path)
	}
	return info, nil
}

// fitFilter builds a scale(+pad) chain that fits src into target while
// preserving aspect ratio. Output dimensions are forced even for codec
// compatibility.
func fitFilter(src, target dimensions) string {
	srcAspect := float64(src.Width) / float64(src.Height)
	targetAspect := float64(target.Width) / float64(target.Height)

	var scaleW, scaleH int
	if srcAspect > targetAspect {
		scaleW = target.Width
		scaleH = int(float64(target.Width) / srcAspect)
	} else {
		scaleH = target.Height
		scaleW = int(float64(target.Height) * srcAspect)
	}
	scaleW -= scaleW % 2
	scaleH -= scaleH % 2

	if scaleW == target.Width && scaleH == target.Height {
		return fmt.Sprintf("scale=%d:%d", scaleW, scaleH)
	}
	return fmt.Sprintf(
		"scale=%d:%d,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black",
		scaleW, scaleH,
		target.Width, target.Height,
	)
}
