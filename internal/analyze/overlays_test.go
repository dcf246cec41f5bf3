package analyze

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/forPelevin/reelmap/internal/types"
)

func TestOverlays_EmptyTranscriptShortCircuits(t *testing.T) {
	r := &fakeReasoner{raw: json.RawMessage(`{"overlays": []}`)}

	got := Overlays(context.Background(), r, "   ", 30)
	if len(got) != 0 {
		t.Fatalf("expected no overlays, got %+v", got)
	}
	if r.calls != 0 {
		t.Fatalf("expected no reasoning calls for empty transcript, got %d", r.calls)
	}
}

func TestOverlays_FailureReturnsEmpty(t *testing.T) {
	got := Overlays(context.Background(), failingReasoner(), "buy now", 30)
	if len(got) != 0 {
		t.Fatalf("expected empty overlays on failure, got %+v", got)
	}
}

func TestOverlays_ParsesAndFilters(t *testing.T) {
	r := &fakeReasoner{raw: json.RawMessage(`{
		"overlays": [
			{"start": 10, "end": 12, "text": "BUY NOW", "position": "bottom"},
			{"start": 5, "end": 5, "text": "zero width", "position": "top"},
			{"start": 1, "end": 2, "text": "  ", "position": "top"},
			{"start": 3, "end": 4, "text": "odd spot", "position": "corner"}
		]
	}`)}

	got := Overlays(context.Background(), r, "welcome, buy now", 30)
	if len(got) != 2 {
		t.Fatalf("expected 2 overlays, got %d: %+v", len(got), got)
	}
	if got[0].Text != "BUY NOW" || got[0].Position != types.OverlayBottom {
		t.Fatalf("unexpected first overlay: %+v", got[0])
	}
	if got[1].Position != types.OverlayCenter {
		t.Fatalf("unknown position should normalize to center, got %q", got[1].Position)
	}
}

func TestOverlays_MalformedResponseReturnsEmpty(t *testing.T) {
	r := &fakeReasoner{raw: json.RawMessage(`{"overlays": "none"}`)}
	if got := Overlays(context.Background(), r, "text", 30); len(got) != 0 {
		t.Fatalf("expected empty overlays, got %+v", got)
	}
}
