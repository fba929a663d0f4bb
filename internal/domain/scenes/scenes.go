// Package scenes holds the pure selection policy for scene-based trimming:
// which detected scenes survive into the final cut.
package scenes

import (
	"github.com/corona10/goimagehash"

	"github.com/vidai-tools/vidai/internal/types"
)

// FromBoundaries turns scene-change timestamps into contiguous half-open
// scenes covering [0, duration). Marks outside (0, duration) are ignored.
func FromBoundaries(duration float64, marks []float64) []types.Scene {
	var out []types.Scene
	prev := 0.0
	for _, m := range marks {
		if m <= prev || m >= duration {
			continue
		}
		out = append(out, types.Scene{Start: prev, End: m})
		prev = m
	}
	if prev < duration {
		out = append(out, types.Scene{Start: prev, End: duration})
	}
	return out
}

// Info is a scene annotated with the measurements the filter decides on.
type Info struct {
	Scene         types.Scene
	SilentPortion float64                // 0..1
	Hash          *goimagehash.ImageHash // representative frame; nil when unavailable
}

type FilterOptions struct {
	// MinDuration drops scenes shorter than this many seconds.
	MinDuration float64
	// MaxSilent drops scenes whose silent fraction exceeds this value.
	MaxSilent float64
	// HashTolerance drops a scene whose representative-frame hash is within
	// this Hamming distance of the previously kept scene.
	HashTolerance int
}

func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		MinDuration:   1.0,
		MaxSilent:     0.9,
		HashTolerance: 10,
	}
}

// Filter returns the scenes worth keeping, in timeline order. Duplicate
// suppression compares each candidate against the last kept scene only, so a
// pattern like A B A keeps all three.
func Filter(infos []Info, opts FilterOptions) []types.Scene {
	var kept []types.Scene
	var lastHash *goimagehash.ImageHash

	for _, in := range infos {
		if in.Scene.Duration() < opts.MinDuration {
			continue
		}
		if in.SilentPortion > opts.MaxSilent {
			continue
		}
		if in.Hash != nil && lastHash != nil {
			if dist, err := lastHash.Distance(in.Hash); err == nil && dist <= opts.HashTolerance {
				continue
			}
		}
		kept = append(kept, in.Scene)
		if in.Hash != nil {
			lastHash = in.Hash
		}
	}
	return kept
}
