package types

import "time"

// VideoMeta describes a probed input video.
type VideoMeta struct {
	Duration float64 // seconds
	FPS      float64
	Width    int
	Height   int
	Codec    string
	HasAudio bool
}

// Interval is a half-open millisecond range [StartMS, EndMS).
type Interval struct {
	StartMS int
	EndMS   int
}

// FrameRange is a half-open frame index range [Start, End).
type FrameRange struct {
	Start int
	End   int
}

// Scene is a detected scene spanning [Start, End) seconds.
type Scene struct {
	Start float64
	End   float64
}

func (s Scene) Duration() float64 { return s.End - s.Start }

// Mid returns the scene midpoint, used for representative-frame sampling.
func (s Scene) Mid() time.Duration {
	return time.Duration((s.Start + s.End) / 2 * float64(time.Second))
}

// Emotion is one label from a facial-emotion classifier, with the model's
// confidence in [0, 1].
type Emotion struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}
