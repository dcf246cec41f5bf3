package analyze

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/forPelevin/reelmap/internal/ports"
	"github.com/forPelevin/reelmap/internal/types"
)

const styleSystemPrompt = "You are a colorist and motion designer for short-form video. " +
	"Return strictly valid JSON (no markdown, no code fences) matching the requested schema."

const genericStyleSubject = "a short-form vertical video with no transcript available"

// Style derives color-grading, effect and filter suggestions from the
// transcript. Fallback on any failure: NeutralStyle.
func Style(ctx context.Context, r ports.Reasoner, transcript string) types.VisualStyle {
	subject := strings.TrimSpace(transcript)
	if subject == "" {
		subject = genericStyleSubject
	}

	raw, err := r.Ask(ctx, styleSystemPrompt, buildStylePrompt(subject))
	if err != nil {
		return NeutralStyle()
	}

	var resp struct {
		ColorGrading string   `json:"color_grading"`
		Effects      []string `json:"effects"`
		Filters      []string `json:"filters"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return NeutralStyle()
	}
	if strings.TrimSpace(resp.ColorGrading) == "" {
		return NeutralStyle()
	}

	style := types.VisualStyle{
		ColorGrading: strings.TrimSpace(resp.ColorGrading),
		Effects:      compactStrings(resp.Effects),
		Filters:      compactStrings(resp.Filters),
	}
	return style
}

// NeutralStyle is the documented fallback when style analysis degrades.
func NeutralStyle() types.VisualStyle {
	return types.VisualStyle{
		ColorGrading: "natural",
		Effects:      []string{},
		Filters:      []string{},
	}
}

func buildStylePrompt(subject string) string {
	payload, _ := json.Marshal(map[string]string{"content": subject})
	return "Suggest a visual treatment for this video content: one color grading label, " +
		"a list of effect names and a list of filter names. " +
		`Respond as {"color_grading": "warm", "effects": ["..."], "filters": ["..."]}.` +
		"\n\nInput JSON:\n" + string(payload)
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
