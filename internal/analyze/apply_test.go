package analyze

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/forPelevin/reelmap/internal/types"
)

func applyTemplate() types.Template {
	return types.Template{
		Name:     "demo",
		Duration: 30,
		Scenes: []types.Scene{
			{Index: 1, Start: 0, End: 3, Kind: types.SceneHook},
			{Index: 2, Start: 3, End: 21, Kind: types.SceneBuildup},
			{Index: 3, Start: 21, End: 30, Kind: types.SceneCTA},
		},
		Pacing: types.PacingSlow,
	}
}

func TestApply_FailureDegradesToPlaceholders(t *testing.T) {
	got := Apply(context.Background(), failingReasoner(), applyTemplate(), "new script", nil)

	if len(got) != 3 {
		t.Fatalf("expected one placeholder per scene, got %d", len(got))
	}
	for i, ins := range got {
		if ins.Action != ActionPlaceholder {
			t.Fatalf("instruction %d action %q, want %q", i, ins.Action, ActionPlaceholder)
		}
		if i > 0 && ins.Timestamp < got[i-1].Timestamp {
			t.Fatalf("timestamps decrease at %d: %v then %v", i, got[i-1].Timestamp, ins.Timestamp)
		}
	}
	if got[1].Parameters["scene_index"] != 2 {
		t.Fatalf("expected scene index in parameters, got %+v", got[1].Parameters)
	}
}

func TestPlaceholderInstructions_SortsUnorderedScenes(t *testing.T) {
	// Templates loaded from hand-edited JSON carry no ordering guarantee.
	tmpl := types.Template{
		Name:     "edited",
		Duration: 30,
		Scenes: []types.Scene{
			{Index: 3, Start: 21, End: 30, Kind: types.SceneCTA},
			{Index: 1, Start: 0, End: 3, Kind: types.SceneHook},
			{Index: 2, Start: 3, End: 21, Kind: types.SceneBuildup},
		},
	}

	got := PlaceholderInstructions(tmpl)
	if len(got) != 3 {
		t.Fatalf("expected 3 placeholders, got %d", len(got))
	}
	for i, ins := range got {
		if i > 0 && ins.Timestamp < got[i-1].Timestamp {
			t.Fatalf("timestamps decrease at %d: %v then %v", i, got[i-1].Timestamp, ins.Timestamp)
		}
	}
	if got[0].Parameters["scene_index"] != 1 || got[2].Parameters["scene_index"] != 3 {
		t.Fatalf("placeholders not in timeline order: %+v", got)
	}
}

func TestApply_SortsAndFiltersInstructions(t *testing.T) {
	r := &fakeReasoner{raw: json.RawMessage(`{
		"instructions": [
			{"timestamp": 21, "action": "show_text", "parameters": {"text": "BUY"}},
			{"timestamp": 0, "action": "cut_to", "parameters": {"asset": "a.mp4"}},
			{"timestamp": 99, "action": "cut_to"},
			{"timestamp": 3, "action": ""}
		]
	}`)}

	got := Apply(context.Background(), r, applyTemplate(), "script", []string{"a.mp4"})
	if len(got) != 2 {
		t.Fatalf("expected 2 instructions, got %d: %+v", len(got), got)
	}
	if got[0].Action != "cut_to" || got[0].Timestamp != 0 {
		t.Fatalf("unexpected first instruction: %+v", got[0])
	}
	if got[1].Action != "show_text" || got[1].Timestamp != 21 {
		t.Fatalf("unexpected second instruction: %+v", got[1])
	}
}

func TestApply_EmptyInstructionListDegrades(t *testing.T) {
	r := &fakeReasoner{raw: json.RawMessage(`{"instructions": []}`)}
	got := Apply(context.Background(), r, applyTemplate(), "script", nil)
	if len(got) != 3 || got[0].Action != ActionPlaceholder {
		t.Fatalf("expected placeholder fallback, got %+v", got)
	}
}
