// Package template assembles validated stage outputs into the final
// immutable Template value and owns its invariants: scenes tile [0,duration]
// exactly, every time-ordered field is sorted, and transition timestamps are
// unique. Assembly is pure data combination and never fails.
package template

import (
	"sort"

	"github.com/samber/lo"

	"github.com/forPelevin/reelmap/internal/types"
)

type Inputs struct {
	Name        string
	SourceRef   string
	Duration    float64
	Scenes      []types.Scene
	Transitions []types.Transition
	Audio       types.AudioTiming
	Style       types.VisualStyle
	Overlays    []types.TextOverlay
	Pacing      types.Pacing
}

func Assemble(in Inputs) types.Template {
	d := in.Duration
	name := in.Name
	if name == "" {
		name = DefaultName(in.SourceRef, d)
	}

	return types.Template{
		Name:      name,
		SourceRef: in.SourceRef,
		Duration:  d,
		Scenes:    normalizeScenes(in.Scenes, d),
		Transitions: normalizeTransitions(in.Transitions, d),
		AudioTiming: types.AudioTiming{
			Beats:     normalizeBeats(in.Audio.Beats, d),
			MusicCues: normalizeCues(in.Audio.MusicCues, d),
		},
		VisualStyle:  in.Style,
		TextOverlays: normalizeOverlays(in.Overlays, d),
		Pacing:       in.Pacing,
	}
}

// normalizeScenes clamps scenes into [0,d] and pads their boundaries so the
// result tiles the full timeline with no gaps: the first scene starts at 0,
// each scene starts where the previous one ends, and the last ends at d.
func normalizeScenes(scenes []types.Scene, d float64) []types.Scene {
	kept := make([]types.Scene, 0, len(scenes))
	for _, s := range scenes {
		s.Start = clamp(s.Start, 0, d)
		s.End = clamp(s.End, 0, d)
		if !s.Kind.Valid() {
			s.Kind = types.SceneOther
		}
		if s.End <= s.Start {
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return []types.Scene{{Index: 1, Start: 0, End: d, Kind: types.SceneOther}}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })

	out := make([]types.Scene, 0, len(kept))
	cursor := 0.0
	for _, s := range kept {
		s.Start = cursor
		if s.End <= s.Start {
			continue
		}
		cursor = s.End
		out = append(out, s)
	}
	if len(out) == 0 {
		return []types.Scene{{Index: 1, Start: 0, End: d, Kind: types.SceneOther}}
	}
	out[len(out)-1].End = d
	for i := range out {
		out[i].Index = i + 1
	}
	return out
}

func normalizeTransitions(trs []types.Transition, d float64) []types.Transition {
	kept := make([]types.Transition, 0, len(trs))
	for _, tr := range trs {
		if tr.At < 0 || tr.At > d {
			continue
		}
		kept = append(kept, tr)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].At < kept[j].At })
	return lo.UniqBy(kept, func(tr types.Transition) float64 { return tr.At })
}

func normalizeBeats(beats []float64, d float64) []float64 {
	sorted := append([]float64(nil), beats...)
	sort.Float64s(sorted)

	out := make([]float64, 0, len(sorted))
	for _, b := range sorted {
		if b < 0 || b > d {
			continue
		}
		if len(out) > 0 && b <= out[len(out)-1] {
			continue
		}
		out = append(out, b)
	}
	return out
}

func normalizeCues(cues []types.MusicCue, d float64) []types.MusicCue {
	kept := make([]types.MusicCue, 0, len(cues))
	for _, c := range cues {
		if c.Time < 0 || c.Time > d {
			continue
		}
		kept = append(kept, c)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Time < kept[j].Time })
	return kept
}

func normalizeOverlays(ovs []types.TextOverlay, d float64) []types.TextOverlay {
	kept := make([]types.TextOverlay, 0, len(ovs))
	for _, o := range ovs {
		o.Start = clamp(o.Start, 0, d)
		o.End = clamp(o.End, 0, d)
		if o.End <= o.Start || o.Text == "" {
			continue
		}
		if !o.Position.Valid() {
			o.Position = types.OverlayCenter
		}
		kept = append(kept, o)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
