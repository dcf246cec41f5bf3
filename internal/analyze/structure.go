// Package analyze holds the reasoning-backed pipeline stages. Every stage
// receives the shared ports.Reasoner from the composition root, validates a
// strict per-stage response schema, and substitutes its documented fallback
// on any reasoning or schema failure. Stages never return errors: a degraded
// result is a valid terminal state.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/forPelevin/reelmap/internal/ports"
	"github.com/forPelevin/reelmap/internal/types"
)

const scenesSystemPrompt = "You are a short-form video editor analyzing the narrative structure of a reel. " +
	"Return strictly valid JSON (no markdown, no code fences) matching the requested schema."

// Scenes segments the timeline into narrative scenes via the reasoning
// service. Fallback on any failure: the fixed three-scene skeleton.
func Scenes(ctx context.Context, r ports.Reasoner, transcript string, duration float64) []types.Scene {
	raw, err := r.Ask(ctx, scenesSystemPrompt, buildScenesPrompt(transcript, duration))
	if err != nil {
		return FallbackScenes(duration)
	}

	var resp struct {
		Structure []struct {
			Index       int     `json:"index"`
			Start       float64 `json:"start"`
			End         float64 `json:"end"`
			Kind        string  `json:"kind"`
			Description string  `json:"description"`
		} `json:"structure"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Structure) == 0 {
		return FallbackScenes(duration)
	}

	out := make([]types.Scene, 0, len(resp.Structure))
	for _, s := range resp.Structure {
		kind := types.SceneKind(s.Kind)
		if !kind.Valid() {
			kind = types.SceneOther
		}
		out = append(out, types.Scene{
			Index:       s.Index,
			Start:       s.Start,
			End:         s.End,
			Kind:        kind,
			Description: strings.TrimSpace(s.Description),
		})
	}
	return out
}

// FallbackScenes is the deterministic skeleton used when the reasoning
// service cannot produce a structure: hook [0,3], buildup [3,0.7d],
// cta [0.7d,d], with boundaries clamped monotonic for very short inputs.
func FallbackScenes(duration float64) []types.Scene {
	hookEnd := math.Min(3, duration)
	buildEnd := math.Max(hookEnd, 0.7*duration)
	if buildEnd > duration {
		buildEnd = duration
	}
	return []types.Scene{
		{Index: 1, Start: 0, End: hookEnd, Kind: types.SceneHook, Description: "Opening hook"},
		{Index: 2, Start: hookEnd, End: buildEnd, Kind: types.SceneBuildup, Description: "Main content"},
		{Index: 3, Start: buildEnd, End: duration, Kind: types.SceneCTA, Description: "Call to action"},
	}
}

func buildScenesPrompt(transcript string, duration float64) string {
	if strings.TrimSpace(transcript) == "" {
		transcript = "(no transcript available)"
	}
	payload, _ := json.Marshal(map[string]any{
		"duration_sec": duration,
		"transcript":   transcript,
	})
	return fmt.Sprintf(
		"Segment this %.1f second video into narrative scenes. "+
			"Each scene has index (1-based), start and end in seconds, "+
			"kind (one of hook, buildup, climax, cta, other) and a one-line description. "+
			"Scenes must be ordered, non-overlapping and cover the full duration. "+
			`Respond as {"structure": [{"index": 1, "start": 0, "end": 3, "kind": "hook", "description": "..."}]}.`+
			"\n\nInput JSON:\n%s",
		duration, payload,
	)
}
