package emotion

import (
	"math"
	"testing"

	"github.com/vidai-tools/vidai/internal/types"
)

func moment(sec float64, labels ...string) Moment {
	m := Moment{Sec: sec}
	for _, l := range labels {
		m.Emotions = append(m.Emotions, types.Emotion{Label: l, Score: 0.9})
	}
	return m
}

func approxEq(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMoment_Matches(t *testing.T) {
	m := moment(10, "happy", "surprise")
	if !m.Matches([]string{"happy"}) {
		t.Fatal("exact label must match")
	}
	if !m.Matches([]string{"SAD", "Surprise"}) {
		t.Fatal("match must be case-insensitive")
	}
	if m.Matches([]string{"angry"}) {
		t.Fatal("unrelated label must not match")
	}
	if m.Matches(nil) {
		t.Fatal("empty selection matches nothing")
	}
}

func TestReel_SingleMomentPadsToMinClip(t *testing.T) {
	// One match at 10s expands to [7.5, 12.5): exactly MinClip, no padding.
	got := Reel([]Moment{moment(10, "happy")}, []string{"happy"}, 60)
	if len(got) != 1 {
		t.Fatalf("expected 1 interval, got %v", got)
	}
	if !approxEq(got[0].Start, 7.5) || !approxEq(got[0].End, 12.5) {
		t.Fatalf("interval = %+v, want [7.5, 12.5)", got[0])
	}
}

func TestReel_MergesOverlappingMoments(t *testing.T) {
	// Matches at 10s and 13s overlap ([7.5,12.5) and [10.5,15.5)) and must
	// come back as one interval.
	moments := []Moment{moment(10, "happy"), moment(13, "happy")}
	got := Reel(moments, []string{"happy"}, 60)
	if len(got) != 1 {
		t.Fatalf("expected merged interval, got %v", got)
	}
	if !approxEq(got[0].Start, 7.5) || !approxEq(got[0].End, 15.5) {
		t.Fatalf("merged interval = %+v, want [7.5, 15.5)", got[0])
	}
}

func TestReel_KeepsDisjointMoments(t *testing.T) {
	moments := []Moment{moment(10, "happy"), moment(40, "happy")}
	got := Reel(moments, []string{"happy"}, 60)
	if len(got) != 2 {
		t.Fatalf("expected 2 intervals, got %v", got)
	}
	if got[1].Start <= got[0].End {
		t.Fatalf("intervals must be disjoint and ordered: %v", got)
	}
}

func TestReel_ClampsAtVideoEdges(t *testing.T) {
	// A match at 1s clamps at 0; raw [0, 3.5) is padded by 0.75 per side
	// and the leading pad is swallowed by the clamp.
	got := Reel([]Moment{moment(1, "happy")}, []string{"happy"}, 60)
	if len(got) != 1 {
		t.Fatalf("expected 1 interval, got %v", got)
	}
	if got[0].Start != 0 {
		t.Fatalf("start must clamp to 0, got %v", got[0].Start)
	}
	if !approxEq(got[0].End, 4.25) {
		t.Fatalf("end = %v, want 4.25", got[0].End)
	}

	// A match near the end of a short video cannot exceed the duration.
	short := Reel([]Moment{moment(5.5, "happy")}, []string{"happy"}, 6)
	if len(short) != 1 {
		t.Fatalf("expected 1 interval, got %v", short)
	}
	if short[0].End > 6 {
		t.Fatalf("end must clamp to duration, got %v", short[0].End)
	}
}

func TestReel_IgnoresNonMatching(t *testing.T) {
	moments := []Moment{moment(10, "sad"), moment(20, "angry")}
	if got := Reel(moments, []string{"happy"}, 60); got != nil {
		t.Fatalf("expected no intervals, got %v", got)
	}
}

func TestLabels_DistinctFirstSeen(t *testing.T) {
	moments := []Moment{
		moment(1, "happy", "sad"),
		moment(2, "HAPPY", "surprise"),
	}
	got := Labels(moments)
	want := []string{"happy", "sad", "surprise"}
	if len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %v, want %v", got, want)
		}
	}
}
