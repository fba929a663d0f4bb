package scenes

import (
	"image"
	"testing"

	"github.com/corona10/goimagehash"

	"github.com/vidai-tools/vidai/internal/types"
)

func TestFromBoundaries(t *testing.T) {
	got := FromBoundaries(10, []float64{3, 7})
	want := []types.Scene{{Start: 0, End: 3}, {Start: 3, End: 7}, {Start: 7, End: 10}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFromBoundaries_NoMarks(t *testing.T) {
	got := FromBoundaries(5, nil)
	if len(got) != 1 || got[0] != (types.Scene{Start: 0, End: 5}) {
		t.Fatalf("expected single full-length scene, got %v", got)
	}
}

func TestFromBoundaries_DropsInvalidMarks(t *testing.T) {
	got := FromBoundaries(10, []float64{0, -1, 5, 5, 12})
	want := []types.Scene{{Start: 0, End: 5}, {Start: 5, End: 10}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFilter_DropsShortAndSilent(t *testing.T) {
	infos := []Info{
		{Scene: types.Scene{Start: 0, End: 0.5}},                       // too short
		{Scene: types.Scene{Start: 0.5, End: 5}, SilentPortion: 0.95},  // silent
		{Scene: types.Scene{Start: 5, End: 9}, SilentPortion: 0.2},     // keep
		{Scene: types.Scene{Start: 9, End: 12}, SilentPortion: 0.89},   // keep, just under
	}
	kept := Filter(infos, DefaultFilterOptions())
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept scenes, got %v", kept)
	}
	if kept[0].Start != 5 || kept[1].Start != 9 {
		t.Fatalf("unexpected kept scenes: %v", kept)
	}
}

func TestFilter_DropsNearDuplicateOfPreviousKept(t *testing.T) {
	flat := image.NewGray(image.Rect(0, 0, 64, 64))
	grad := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			grad.Pix[y*grad.Stride+x] = uint8(x * 4)
		}
	}

	flatHash, err := goimagehash.DifferenceHash(flat)
	if err != nil {
		t.Fatal(err)
	}
	gradHash, err := goimagehash.DifferenceHash(grad)
	if err != nil {
		t.Fatal(err)
	}

	infos := []Info{
		{Scene: types.Scene{Start: 0, End: 4}, Hash: flatHash},
		{Scene: types.Scene{Start: 4, End: 8}, Hash: flatHash}, // duplicate of previous
		{Scene: types.Scene{Start: 8, End: 12}, Hash: gradHash},
	}
	kept := Filter(infos, DefaultFilterOptions())
	if len(kept) != 2 {
		t.Fatalf("expected duplicate scene dropped, kept %v", kept)
	}
	if kept[0].Start != 0 || kept[1].Start != 8 {
		t.Fatalf("unexpected kept scenes: %v", kept)
	}
}
