package subtitles

import (
	"fmt"
	"strings"
	"time"

	"github.com/vidai-tools/vidai/internal/types"
)

// RenderSRT converts a transcript to SubRip format. Empty segments are
// skipped; cue numbering stays contiguous regardless.
func RenderSRT(tr types.Transcript) string {
	var b strings.Builder
	n := 0
	for _, s := range tr.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		n++
		b.WriteString(fmt.Sprintf("%d\n", n))
		b.WriteString(srtTime(dur(s.Start)))
		b.WriteString(" --> ")
		b.WriteString(srtTime(dur(s.End)))
		b.WriteString("\n")
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func srtTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	ms := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
