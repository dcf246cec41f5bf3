package template

import (
	"strings"
	"testing"
)

func TestDefaultName_Deterministic(t *testing.T) {
	a := DefaultName("/tmp/My Cool.Reel.mp4", 42.5)
	b := DefaultName("/tmp/My Cool.Reel.mp4", 42.5)
	if a != b {
		t.Fatalf("expected deterministic name, got %q and %q", a, b)
	}
	if !strings.HasPrefix(a, "my-cool-reel-") {
		t.Fatalf("unexpected name format: %q", a)
	}
	if len(a) != len("my-cool-reel-")+8 {
		t.Fatalf("unexpected hash suffix length: %q", a)
	}
}

func TestDefaultName_DistinguishesSources(t *testing.T) {
	if DefaultName("a.mp4", 10) == DefaultName("b.mp4", 10) {
		t.Fatalf("expected different names for different sources")
	}
}

func TestNormalizeSlug(t *testing.T) {
	tests := map[string]string{
		"  My Cool.Video  ": "my-cool-video",
		"___":               "",
		"abc123":            "abc123",
		"Name (v2)!":        "name-v2",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := normalizeSlug(in); got != want {
				t.Fatalf("normalizeSlug(%q) = %q, want %q", in, got, want)
			}
		})
	}
}
