package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/forPelevin/reelmap/internal/types"
)

type MediaProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

type AudioExtractor interface {
	ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error
}

type ASR interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (string, error)
}

// Reasoner is the external natural-language reasoning service. Ask returns
// exactly one JSON object; any transport, status, or payload problem is
// reported as *ReasoningError. Callers substitute their own fallback value
// and never surface the error past their stage.
type Reasoner interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (json.RawMessage, error)
}

type TemplateInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SourceRef string    `json:"source_ref"`
	Duration  float64   `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

type TemplateStore interface {
	Save(ctx context.Context, t types.Template) (string, error)
	Get(ctx context.Context, id string) (types.Template, error)
	List(ctx context.Context) ([]TemplateInfo, error)
}

// ReasoningError marks a failure at the reasoning-service boundary.
type ReasoningError struct {
	Cause error
}

func (e *ReasoningError) Error() string {
	return "reasoning: " + e.Cause.Error()
}

func (e *ReasoningError) Unwrap() error { return e.Cause }
