package template

import "github.com/forPelevin/reelmap/internal/types"

// ClassifyPacing buckets scene density over duration into a coarse pacing
// class. Thresholds: >0.3 scenes/sec fast, >0.15 medium, otherwise slow.
func ClassifyPacing(sceneCount int, duration float64) types.Pacing {
	if sceneCount <= 0 || duration <= 0 {
		return types.PacingSlow
	}
	density := float64(sceneCount) / duration
	switch {
	case density > 0.3:
		return types.PacingFast
	case density > 0.15:
		return types.PacingMedium
	default:
		return types.PacingSlow
	}
}
