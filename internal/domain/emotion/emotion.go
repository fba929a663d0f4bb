// Package emotion holds the pure selection logic for emotion-based highlight
// reels: which sampled moments match the requested emotions and how the
// matches expand into renderable clip intervals.
package emotion

import (
	"strings"

	"github.com/vidai-tools/vidai/internal/types"
)

const (
	// Lead and Tail pad each matched moment so the clip carries context
	// around the expression instead of starting on it.
	Lead = 2.5 // seconds before the moment
	Tail = 2.5 // seconds after the moment

	// MinClip is the shortest interval worth watching; shorter merged
	// intervals are padded symmetrically up to this length.
	MinClip = 5.0
)

// Moment is one sampled timestamp with the classifier's labels for it.
type Moment struct {
	Sec      float64
	Emotions []types.Emotion
}

// Matches reports whether any of the moment's labels is in wanted,
// case-insensitively.
func (m Moment) Matches(wanted []string) bool {
	for _, e := range m.Emotions {
		for _, w := range wanted {
			if strings.EqualFold(e.Label, w) {
				return true
			}
		}
	}
	return false
}

// Reel turns matched moments into the intervals of the highlight reel:
// each match expands to [Sec-Lead, Sec+Tail) clamped to [0, duration),
// overlapping intervals merge, and every merged interval shorter than
// MinClip is padded symmetrically (still clamped). Intervals come back in
// timeline order; no matches yields nil.
func Reel(moments []Moment, wanted []string, duration float64) []types.Scene {
	var raw []types.Scene
	for _, m := range moments {
		if !m.Matches(wanted) {
			continue
		}
		start := m.Sec - Lead
		if start < 0 {
			start = 0
		}
		end := m.Sec + Tail
		if end > duration {
			end = duration
		}
		if end <= start {
			continue
		}
		raw = append(raw, types.Scene{Start: start, End: end})
	}
	if len(raw) == 0 {
		return nil
	}

	// Moments arrive in sample order, so raw is already sorted by Start.
	merged := []types.Scene{raw[0]}
	for _, iv := range raw[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	for i := range merged {
		if merged[i].Duration() >= MinClip {
			continue
		}
		pad := (MinClip - merged[i].Duration()) / 2
		merged[i].Start -= pad
		if merged[i].Start < 0 {
			merged[i].Start = 0
		}
		merged[i].End += pad
		if merged[i].End > duration {
			merged[i].End = duration
		}
	}
	return merged
}

// Labels returns the distinct labels seen across all moments, in first-seen
// order, for reporting which emotions the footage actually contains.
func Labels(moments []Moment) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range moments {
		for _, e := range m.Emotions {
			key := strings.ToLower(e.Label)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, e.Label)
		}
	}
	return out
}
