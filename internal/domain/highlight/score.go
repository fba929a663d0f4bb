package highlight

import (
	"math"

	"github.com/vidai-tools/vidai/internal/types"
)

// FrameRangeFromInterval converts a millisecond interval to a frame range at
// the given frame rate, rounding boundaries to the nearest frame.
func FrameRangeFromInterval(iv types.Interval, fps int) types.FrameRange {
	return types.FrameRange{
		Start: int(math.Round(float64(iv.StartMS) / 1000 * float64(fps))),
		End:   int(math.Round(float64(iv.EndMS) / 1000 * float64(fps))),
	}
}

// BuildScores merges the frame-difference signal and the non-silent frame
// ranges onto a common per-frame timeline of length totalFrames.
//
// Every range [start, end) adds 1 to each covered index. Overlapping ranges
// accumulate: a frame covered by k ranges gets +k, not +1. diffs[i] is the
// change magnitude between frames i and i+1 and is added at index i+1; frame
// 0 has no predecessor and gets no magnitude contribution. Indices outside
// [0, totalFrames) are clipped silently and never extend the array.
func BuildScores(totalFrames int, diffs []float64, ranges []types.FrameRange) []float64 {
	if totalFrames <= 0 {
		return nil
	}
	scores := make([]float64, totalFrames)

	for _, r := range ranges {
		start, end := r.Start, r.End
		if start < 0 {
			start = 0
		}
		if end > totalFrames {
			end = totalFrames
		}
		for i := start; i < end; i++ {
			scores[i]++
		}
	}

	for i, d := range diffs {
		idx := i + 1
		if idx >= totalFrames {
			break
		}
		scores[idx] += d
	}

	return scores
}

// AllZero reports whether every magnitude in diffs is zero. An empty slice is
// all-zero.
func AllZero(diffs []float64) bool {
	for _, d := range diffs {
		if d != 0 {
			return false
		}
	}
	return true
}
