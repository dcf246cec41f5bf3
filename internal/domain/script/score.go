package script

import (
	"regexp"
	"strings"
)

var (
	reNum      = regexp.MustCompile(`\b\d+(?:[\.,]\d+)?\b`)
	reHookWord = regexp.MustCompile(`(?i)\b(wait|stop|imagine|secret|mistake|nobody|everyone|you\s+won'?t\s+believe|here'?s\s+why|watch\s+this|pov)\b`)
	reInfoWord = regexp.MustCompile(`(?i)\b(how\s+to|step\s+\d+|first|second|third|because|so\s+that|which\s+means|works\s+by)\b`)
	reCTAWord  = regexp.MustCompile(`(?i)\b(follow|subscribe|like|comment|share|save\s+this|link\s+in\s+bio|dm\s+me|try\s+(?:it|this)|check\s+out)\b`)
)

// Score rates one script sentence for the scene families the applier maps
// onto: informational density (buildup), hook strength (hook) and
// call-to-action weight (cta). All in range [0..10].
func Score(text string) (info, hook, cta float64) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, 0, 0
	}
	lower := strings.ToLower(t)

	info = float64(len(reNum.FindAllStringIndex(t, -1))) * 0.5
	info += float64(len(reInfoWord.FindAllStringIndex(lower, -1))) * 0.8

	hook = float64(len(reHookWord.FindAllStringIndex(lower, -1))) * 1.1
	hook += float64(strings.Count(t, "?")) * 0.8
	hook += float64(strings.Count(t, "!")) * 0.4
	// Short punchy sentences open reels; long ones explain.
	if len(strings.Fields(t)) <= 8 {
		hook += 0.5
	}

	cta = float64(len(reCTAWord.FindAllStringIndex(lower, -1))) * 1.5

	return clamp(info, 0, 10), clamp(hook, 0, 10), clamp(cta, 0, 10)
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
