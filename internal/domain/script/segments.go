package script

import (
	"strings"

	"github.com/forPelevin/reelmap/internal/types"
)

// Segment is one sentence of an incoming script, scored for the scene
// families it could land in.
type Segment struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Info  float64 `json:"info_score"`
	Hook  float64 `json:"hook_score"`
	Cta   float64 `json:"cta_score"`
}

// Split cuts a script into scored sentences. Terminators stay attached to
// their sentence because "?" and "!" feed the hook score.
func Split(text string) []Segment {
	var out []Segment
	var b strings.Builder
	flush := func() {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if s == "" {
			return
		}
		info, hook, cta := Score(s)
		out = append(out, Segment{Index: len(out), Text: s, Info: info, Hook: hook, Cta: cta})
	}
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			flush()
		}
	}
	flush()
	return out
}

// Allocate assigns each segment to a scene by mapping the segment's relative
// position in the script onto the scene timeline. Keys are scene indexes;
// scenes with no segment are absent.
func Allocate(segs []Segment, scenes []types.Scene) map[int][]Segment {
	if len(segs) == 0 || len(scenes) == 0 {
		return nil
	}
	total := scenes[len(scenes)-1].End
	if total <= 0 {
		return nil
	}

	out := make(map[int][]Segment)
	for i, seg := range segs {
		mid := (float64(i) + 0.5) / float64(len(segs)) * total
		idx := scenes[len(scenes)-1].Index
		for _, sc := range scenes {
			if mid >= sc.Start && mid < sc.End {
				idx = sc.Index
				break
			}
		}
		out[idx] = append(out[idx], seg)
	}
	return out
}
