package script

import (
	"testing"

	"github.com/forPelevin/reelmap/internal/types"
)

func TestSplit(t *testing.T) {
	segs := Split("First thing. Second thing! Is this the third?  \n ")
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	want := []string{"First thing.", "Second thing!", "Is this the third?"}
	for i, s := range segs {
		if s.Text != want[i] {
			t.Fatalf("segment %d = %q, want %q", i, s.Text, want[i])
		}
		if s.Index != i {
			t.Fatalf("segment %d carries index %d", i, s.Index)
		}
	}
}

func TestSplitUnterminatedTail(t *testing.T) {
	segs := Split("Complete sentence. trailing fragment")
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[1].Text != "trailing fragment" {
		t.Fatalf("tail = %q", segs[1].Text)
	}
}

func TestAllocateProportional(t *testing.T) {
	scenes := []types.Scene{
		{Index: 0, Start: 0, End: 3, Kind: types.SceneHook},
		{Index: 1, Start: 3, End: 21, Kind: types.SceneBuildup},
		{Index: 2, Start: 21, End: 30, Kind: types.SceneCTA},
	}
	segs := Split("One. Two. Three. Four. Five. Six. Seven. Eight. Nine. Ten.")
	alloc := Allocate(segs, scenes)

	// Midpoint of the first sentence lands at 1.5s, inside the hook scene.
	if got := alloc[0]; len(got) != 1 || got[0].Text != "One." {
		t.Fatalf("hook allocation = %+v", got)
	}
	// Scene durations are 10%, 60%, 30% of the timeline.
	if len(alloc[1]) != 6 {
		t.Fatalf("buildup got %d segments, want 6", len(alloc[1]))
	}
	if len(alloc[2]) != 3 {
		t.Fatalf("cta got %d segments, want 3", len(alloc[2]))
	}
}

func TestAllocateEmpty(t *testing.T) {
	if got := Allocate(nil, []types.Scene{{Index: 0, Start: 0, End: 10}}); got != nil {
		t.Fatalf("Allocate(nil) = %v, want nil", got)
	}
	if got := Allocate(Split("Hi."), nil); got != nil {
		t.Fatalf("Allocate with no scenes = %v, want nil", got)
	}
}
