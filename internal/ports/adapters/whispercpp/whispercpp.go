package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// Transcribe runs whisper.cpp over a mono 16k wav and returns the joined
// plain-text transcript. Used only as a best-effort fallback when the caller
// supplies no transcript of their own.
func (a *Adapter) Transcribe(ctx context.Context, wavPath, cacheDir string) (string, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	cmd := exec.CommandContext(ctx, a.bin,
		"-m", a.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return "", err
	}

	var out struct {
		Segments []struct {
			Text string `json:"text"`
		} `json:"segments"`
	}
	if err := json.Unmarshal(jb, &out); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(out.Segments))
	for _, s := range out.Segments {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, " "), nil
}
