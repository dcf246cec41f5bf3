package subtitles

import (
	"fmt"
	"strings"
	"time"

	"github.com/forPelevin/reelmap/internal/types"
)

// RenderOverlayASS renders a template's text overlays as an ASS subtitle
// file, one dialogue event per overlay. The style encodes the overlay's
// screen position, so the file drops straight onto a vertical-video render.
func RenderOverlayASS(overlays []types.TextOverlay) string {
	var b strings.Builder
	b.WriteString(assHeader())
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, o := range overlays {
		text := sanitizeASS(o.Text)
		if text == "" {
			continue
		}
		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(dur(o.Start)))
		b.WriteString(",")
		b.WriteString(assTime(dur(o.End)))
		b.WriteString(",")
		b.WriteString(styleFor(o.Position))
		b.WriteString(",,0,0,0,,")
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

func styleFor(p types.OverlayPosition) string {
	switch p {
	case types.OverlayTop:
		return "OverlayTop"
	case types.OverlayBottom:
		return "OverlayBottom"
	default:
		return "OverlayCenter"
	}
}

func assHeader() string {
	return strings.TrimSpace(`
[Script Info]
ScriptType: v4.00+
PlayResX: 1080
PlayResY: 1920
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: OverlayTop, Inter, 78, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,8, 80,80,120,1
Style: OverlayCenter, Inter, 78, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,5, 80,80,0,1
Style: OverlayBottom, Inter, 78, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,2, 80,80,120,1
`)
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
