package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/forPelevin/reelmap/internal/ports"
	"github.com/forPelevin/reelmap/internal/types"
)

const overlaysSystemPrompt = "You are a caption designer for short-form video. " +
	"Return strictly valid JSON (no markdown, no code fences) matching the requested schema."

// Overlays derives timed on-screen caption suggestions from the transcript.
// An empty transcript short-circuits to an empty list before any reasoning
// call; failures also yield an empty list, never synthetic captions.
func Overlays(ctx context.Context, r ports.Reasoner, transcript string, duration float64) []types.TextOverlay {
	if strings.TrimSpace(transcript) == "" {
		return nil
	}

	raw, err := r.Ask(ctx, overlaysSystemPrompt, buildOverlaysPrompt(transcript, duration))
	if err != nil {
		return nil
	}

	var resp struct {
		Overlays []struct {
			Start    float64 `json:"start"`
			End      float64 `json:"end"`
			Text     string  `json:"text"`
			Position string  `json:"position"`
		} `json:"overlays"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}

	out := make([]types.TextOverlay, 0, len(resp.Overlays))
	for _, o := range resp.Overlays {
		text := strings.TrimSpace(o.Text)
		if text == "" || o.End <= o.Start {
			continue
		}
		pos := types.OverlayPosition(o.Position)
		if !pos.Valid() {
			pos = types.OverlayCenter
		}
		out = append(out, types.TextOverlay{
			Start:    o.Start,
			End:      o.End,
			Text:     text,
			Position: pos,
		})
	}
	return out
}

func buildOverlaysPrompt(transcript string, duration float64) string {
	payload, _ := json.Marshal(map[string]any{
		"duration_sec": duration,
		"transcript":   transcript,
	})
	return fmt.Sprintf(
		"Suggest timed on-screen text overlays for this %.1f second video. "+
			"Each overlay has start and end in seconds within the video, short punchy text, "+
			"and a position (top, center or bottom). "+
			`Respond as {"overlays": [{"start": 10, "end": 12, "text": "...", "position": "bottom"}]}.`+
			"\n\nInput JSON:\n%s",
		duration, payload,
	)
}
