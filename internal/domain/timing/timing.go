// Package timing derives the deterministic timing skeleton of a template:
// cut points and the assumed beat grid. Both are declared heuristics, not
// signal analysis: cuts fall on a fixed interval and beats on a fixed tempo.
package timing

import "github.com/forPelevin/reelmap/internal/types"

const (
	// TransitionInterval is the fixed spacing between generated cut points.
	TransitionInterval = 4.0

	// DefaultBPM is the assumed tempo for the beat grid.
	DefaultBPM = 120
)

// Transitions emits a cut at every multiple of TransitionInterval strictly
// below duration. Empty for durations up to one interval.
func Transitions(duration float64) []types.Transition {
	var out []types.Transition
	for at := TransitionInterval; at < duration; at += TransitionInterval {
		out = append(out, types.Transition{
			At:   at,
			Kind: types.TransitionCut,
		})
	}
	return out
}

// Audio derives the beat grid and coarse music-cue markers. Beats start at 0
// and stop strictly below duration; cues mark intro, buildup and climax.
func Audio(duration float64) types.AudioTiming {
	if duration <= 0 {
		return types.AudioTiming{}
	}

	interval := 60.0 / float64(DefaultBPM)
	beats := make([]float64, 0, int(duration/interval)+1)
	for i := 0; ; i++ {
		at := float64(i) * interval
		if at >= duration {
			break
		}
		beats = append(beats, at)
	}

	return types.AudioTiming{
		Beats: beats,
		MusicCues: []types.MusicCue{
			{Time: 0, Kind: "intro"},
			{Time: 0.5 * duration, Kind: "buildup"},
			{Time: 0.8 * duration, Kind: "climax"},
		},
	}
}
