package analyze

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/forPelevin/reelmap/internal/types"
)

func TestScenes_FallbackDeterminism(t *testing.T) {
	got := Scenes(context.Background(), failingReasoner(), "", 30)

	want := []struct {
		start, end float64
		kind       types.SceneKind
	}{
		{0, 3, types.SceneHook},
		{3, 21, types.SceneBuildup},
		{21, 30, types.SceneCTA},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d fallback scenes, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Start != w.start || got[i].End != w.end || got[i].Kind != w.kind {
			t.Fatalf("scene %d = %+v, want [%v,%v] %s", i, got[i], w.start, w.end, w.kind)
		}
		if got[i].Index != i+1 {
			t.Fatalf("scene %d has index %d", i, got[i].Index)
		}
	}
}

func TestScenes_ParsesStructure(t *testing.T) {
	r := &fakeReasoner{raw: json.RawMessage(`{
		"structure": [
			{"index": 1, "start": 0, "end": 5, "kind": "hook", "description": " Opening "},
			{"index": 2, "start": 5, "end": 20, "kind": "reveal", "description": "Body"}
		]
	}`)}

	got := Scenes(context.Background(), r, "some transcript", 20)
	if len(got) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(got))
	}
	if got[0].Kind != types.SceneHook || got[0].Description != "Opening" {
		t.Fatalf("unexpected first scene: %+v", got[0])
	}
	if got[1].Kind != types.SceneOther {
		t.Fatalf("unknown kind should map to other, got %q", got[1].Kind)
	}
}

func TestScenes_MalformedResponseFallsBack(t *testing.T) {
	for name, raw := range map[string]string{
		"empty structure": `{"structure": []}`,
		"wrong shape":     `{"structure": "three acts"}`,
		"other keys":      `{"scenes": [1, 2, 3]}`,
	} {
		t.Run(name, func(t *testing.T) {
			r := &fakeReasoner{raw: json.RawMessage(raw)}
			got := Scenes(context.Background(), r, "text", 30)
			if len(got) != 3 || got[0].Kind != types.SceneHook {
				t.Fatalf("expected fallback skeleton, got %+v", got)
			}
		})
	}
}

func TestFallbackScenes_ShortDurationStaysMonotonic(t *testing.T) {
	for _, d := range []float64{0.5, 1, 2, 2.9} {
		got := FallbackScenes(d)
		if len(got) != 3 {
			t.Fatalf("expected 3 skeleton scenes for d=%v, got %d", d, len(got))
		}
		prev := 0.0
		for i, s := range got {
			if s.Start < prev {
				t.Fatalf("d=%v scene %d start %v before previous end %v", d, i, s.Start, prev)
			}
			if s.End < s.Start {
				t.Fatalf("d=%v scene %d end %v before start %v", d, i, s.End, s.Start)
			}
			prev = s.End
		}
		if got[2].End != d {
			t.Fatalf("d=%v last scene ends at %v", d, got[2].End)
		}
	}
}
