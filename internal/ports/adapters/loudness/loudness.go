// Package loudness implements audio activity detection over decoded WAV
// samples: overall waveform dBFS, non-silent interval detection against a
// dynamic threshold, and per-range silence ratios.
package loudness

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/vidai-tools/vidai/internal/types"
)

const windowMS = 10 // RMS analysis window

type Analyzer struct {
	// MarginDB is subtracted from the overall waveform dBFS to form the
	// dynamic non-silence threshold.
	MarginDB float64
	// MinRun is the minimum duration energy must stay above threshold for a
	// run to count as a non-silent interval.
	MinRun time.Duration
	// SilenceDB is the absolute threshold used by SilentPortion.
	SilenceDB float64
}

func New() *Analyzer {
	return &Analyzer{
		MarginDB:  10,
		MinRun:    300 * time.Millisecond,
		SilenceDB: -35,
	}
}

// NonSilent returns sorted, non-overlapping millisecond intervals where the
// windowed RMS energy stays above (overall dBFS - MarginDB) for at least
// MinRun.
func (a *Analyzer) NonSilent(ctx context.Context, wavPath string) ([]types.Interval, error) {
	w, err := decode(wavPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	threshold := w.dBFS() - a.MarginDB
	active := w.activeWindows(threshold)

	minWindows := int(a.MinRun.Milliseconds()) / windowMS
	if minWindows < 1 {
		minWindows = 1
	}

	var out []types.Interval
	runStart := -1
	for i := 0; i <= len(active); i++ {
		on := i < len(active) && active[i]
		switch {
		case on && runStart < 0:
			runStart = i
		case !on && runStart >= 0:
			if i-runStart >= minWindows {
				out = append(out, types.Interval{
					StartMS: runStart * windowMS,
					EndMS:   i * windowMS,
				})
			}
			runStart = -1
		}
	}
	return out, nil
}

// SilentPortion reports the fraction of [start, end) whose windowed energy is
// below SilenceDB.
func (a *Analyzer) SilentPortion(ctx context.Context, wavPath string, start, end time.Duration) (float64, error) {
	w, err := decode(wavPath)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	first := int(start.Milliseconds()) / windowMS
	last := int(end.Milliseconds()) / windowMS

	total, silent := 0, 0
	for i := first; i < last; i++ {
		db, ok := w.windowDB(i)
		if !ok {
			break
		}
		total++
		if db < a.SilenceDB {
			silent++
		}
	}
	if total == 0 {
		// No usable windows in range: treat as fully silent so degenerate
		// scenes are dropped rather than kept.
		return 1, nil
	}
	return float64(silent) / float64(total), nil
}

type waveform struct {
	samples    []int
	sampleRate int
	fullScale  float64
}

func decode(path string) (*waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open wav")
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav: %s", path)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "decode wav")
	}
	return newWaveform(buf, int(d.BitDepth))
}

func newWaveform(buf *audio.IntBuffer, bitDepth int) (*waveform, error) {
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("empty waveform")
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("unknown sample rate")
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}

	samples := buf.Data
	// Downmix interleaved channels so the analysis always runs on mono.
	if ch := buf.Format.NumChannels; ch > 1 {
		mono := make([]int, 0, len(samples)/ch)
		for i := 0; i+ch <= len(samples); i += ch {
			sum := 0
			for c := 0; c < ch; c++ {
				sum += samples[i+c]
			}
			mono = append(mono, sum/ch)
		}
		samples = mono
	}

	return &waveform{
		samples:    samples,
		sampleRate: buf.Format.SampleRate,
		fullScale:  math.Pow(2, float64(bitDepth-1)),
	}, nil
}

// dBFS is the RMS level of the whole waveform relative to full scale.
func (w *waveform) dBFS() float64 {
	return toDB(rms(w.samples), w.fullScale)
}

func (w *waveform) windowSamples() int {
	n := w.sampleRate * windowMS / 1000
	if n < 1 {
		n = 1
	}
	return n
}

// windowDB returns the RMS level of the i-th analysis window, or ok=false
// when the window is past the end of the waveform.
func (w *waveform) windowDB(i int) (float64, bool) {
	ws := w.windowSamples()
	start := i * ws
	if start >= len(w.samples) {
		return 0, false
	}
	end := start + ws
	if end > len(w.samples) {
		end = len(w.samples)
	}
	return toDB(rms(w.samples[start:end]), w.fullScale), true
}

func (w *waveform) activeWindows(threshold float64) []bool {
	n := (len(w.samples) + w.windowSamples() - 1) / w.windowSamples()
	active := make([]bool, n)
	for i := 0; i < n; i++ {
		db, _ := w.windowDB(i)
		active[i] = db > threshold
	}
	return active
}

func rms(samples []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func toDB(rms, fullScale float64) float64 {
	if rms <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms/fullScale)
}
