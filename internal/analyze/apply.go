package analyze

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/forPelevin/reelmap/internal/domain/script"
	"github.com/forPelevin/reelmap/internal/ports"
	"github.com/forPelevin/reelmap/internal/types"
)

const applySystemPrompt = "You are a video editor mapping an existing editing template onto new content. " +
	"Return strictly valid JSON (no markdown, no code fences) matching the requested schema."

// ActionPlaceholder marks instructions produced by the degraded apply path:
// the template's scene boundaries reproduced verbatim, with no content
// mapping.
const ActionPlaceholder = "placeholder"

// Apply maps a template's timing skeleton onto new content. On any reasoning
// failure it degrades to PlaceholderInstructions rather than failing the
// request. The result is always sorted by timestamp.
func Apply(ctx context.Context, r ports.Reasoner, tmpl types.Template, newScript string, assetRefs []string) []types.EditingInstruction {
	raw, err := r.Ask(ctx, applySystemPrompt, buildApplyPrompt(tmpl, newScript, assetRefs))
	if err != nil {
		return PlaceholderInstructions(tmpl)
	}

	var resp struct {
		Instructions []struct {
			Timestamp  float64        `json:"timestamp"`
			Action     string         `json:"action"`
			Parameters map[string]any `json:"parameters"`
		} `json:"instructions"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return PlaceholderInstructions(tmpl)
	}

	out := make([]types.EditingInstruction, 0, len(resp.Instructions))
	for _, ins := range resp.Instructions {
		action := strings.TrimSpace(ins.Action)
		if action == "" || ins.Timestamp < 0 || ins.Timestamp > tmpl.Duration {
			continue
		}
		out = append(out, types.EditingInstruction{
			Timestamp:  ins.Timestamp,
			Action:     action,
			Parameters: ins.Parameters,
		})
	}
	if len(out) == 0 {
		return PlaceholderInstructions(tmpl)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// PlaceholderInstructions reproduces the template's scene boundaries as a
// minimal, structurally faithful instruction set. Scenes are sorted here
// rather than trusted: templates loaded from external JSON may carry any
// order.
func PlaceholderInstructions(tmpl types.Template) []types.EditingInstruction {
	out := lo.Map(tmpl.Scenes, func(s types.Scene, _ int) types.EditingInstruction {
		return types.EditingInstruction{
			Timestamp: s.Start,
			Action:    ActionPlaceholder,
			Parameters: map[string]any{
				"scene_index": s.Index,
				"kind":        string(s.Kind),
				"start":       s.Start,
				"end":         s.End,
			},
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

func buildApplyPrompt(tmpl types.Template, newScript string, assetRefs []string) string {
	// Pre-segmented script with heuristic scores gives the model a
	// deterministic starting allocation to refine instead of a raw blob.
	segments := script.Split(newScript)
	payload, _ := json.Marshal(map[string]any{
		"template":          tmpl,
		"new_script":        newScript,
		"asset_refs":        assetRefs,
		"script_segments":   segments,
		"suggested_mapping": script.Allocate(segments, tmpl.Scenes),
	})
	return "Map the template's scenes, transitions and overlay slots onto the new script and assets. " +
		"Produce an ordered list of editing instructions. Each instruction has a timestamp in seconds " +
		"within the template duration, an action name (for example cut_to, show_text, apply_effect) " +
		"and an arbitrary parameters object. Timestamps must be non-decreasing. " +
		`Respond as {"instructions": [{"timestamp": 0, "action": "cut_to", "parameters": {"asset": "..."}}]}.` +
		"\n\nInput JSON:\n" + string(payload)
}
