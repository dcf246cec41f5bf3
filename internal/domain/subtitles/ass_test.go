package subtitles

import (
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/reelmap/internal/types"
)

func TestRenderOverlayASS(t *testing.T) {
	ass := RenderOverlayASS([]types.TextOverlay{
		{Start: 0, End: 2.5, Text: "WAIT FOR IT", Position: types.OverlayTop},
		{Start: 3, End: 5, Text: "follow {now}", Position: types.OverlayBottom},
		{Start: 6, End: 7, Text: "   ", Position: types.OverlayCenter},
	})
	if n := strings.Count(ass, "Dialogue:"); n != 2 {
		t.Fatalf("got %d dialogue events, want 2 (blank overlay dropped):\n%s", n, ass)
	}
	if !strings.Contains(ass, "0:00:00.00,0:00:02.50,OverlayTop,,0,0,0,,WAIT FOR IT") {
		t.Fatalf("missing top overlay event:\n%s", ass)
	}
	if !strings.Contains(ass, "follow (now)") {
		t.Fatalf("braces not sanitized:\n%s", ass)
	}
	if strings.Contains(ass, "{now}") {
		t.Fatalf("raw braces leaked into ASS:\n%s", ass)
	}
}

func TestRenderOverlayASS_UnknownPositionCenters(t *testing.T) {
	ass := RenderOverlayASS([]types.TextOverlay{
		{Start: 0, End: 1, Text: "hi", Position: types.OverlayPosition("floating")},
	})
	if !strings.Contains(ass, ",OverlayCenter,") {
		t.Fatalf("unknown position not centered:\n%s", ass)
	}
}

func TestAssTime_Format(t *testing.T) {
	got := assTime(61*time.Second + 234*time.Millisecond)
	if got != "0:01:01.23" {
		t.Fatalf("unexpected assTime: %s", got)
	}
}
