package template

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// DefaultName builds a deterministic template identifier from the source
// reference. No wall clock or randomness: assembling the same inputs twice
// yields the same name.
func DefaultName(sourceRef string, duration float64) string {
	base := strings.TrimSuffix(filepath.Base(sourceRef), filepath.Ext(sourceRef))
	slug := normalizeSlug(base)
	if slug == "" {
		slug = "template"
	}
	seed := fmt.Sprintf("%s|%.3f", sourceRef, duration)
	return slug + "-" + shortHash(seed)
}

func normalizeSlug(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}
