package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/forPelevin/reelmap/internal/analyze"
	"github.com/forPelevin/reelmap/internal/domain/template"
	"github.com/forPelevin/reelmap/internal/domain/timing"
	"github.com/forPelevin/reelmap/internal/ports"
	"github.com/forPelevin/reelmap/internal/types"
)

// ErrInvalidInput marks a malformed request rejected before any stage runs.
// It is the only failure mode of extraction besides caller cancellation:
// every stage-level problem degrades to that stage's fallback instead.
var ErrInvalidInput = errors.New("invalid input")

// FallbackDuration is assumed when media probing fails. The pipeline never
// fails solely because metadata extraction did.
const FallbackDuration = 60.0

type Deps struct {
	Probe    ports.MediaProber
	Reasoner ports.Reasoner

	// Audio and ASR enable best-effort local transcription when the caller
	// supplies no transcript. Both optional.
	Audio ports.AudioExtractor
	ASR   ports.ASR
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	MediaPath  string
	Transcript string
	Name       string
	CacheDir   string
	Logf       func(format string, args ...any)
}

type Result struct {
	Template types.Template
}

// Analyze runs one extraction: probe, concurrent analyzer fan-out, join,
// pacing, assembly. Always returns a usable Template unless the input is
// invalid or the caller cancels.
func (u Usecase) Analyze(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if strings.TrimSpace(in.MediaPath) == "" {
		return Result{}, fmt.Errorf("%w: media path is empty", ErrInvalidInput)
	}

	duration := u.probeDuration(ctx, in.MediaPath, logf)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	logf("media duration: %.2fs", duration)

	transcript := u.resolveTranscript(ctx, in, logf)

	// Fan-out: the five analyzers share only (transcript, duration) as
	// read-only inputs and each writes its own private result slot. A
	// failed stage degrades on its own; it never cancels a sibling.
	var (
		scenes      []types.Scene
		transitions []types.Transition
		audio       types.AudioTiming
		style       types.VisualStyle
		overlays    []types.TextOverlay
	)
	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		scenes = analyze.Scenes(ctx, u.d.Reasoner, transcript, duration)
	}()
	go func() {
		defer wg.Done()
		transitions = timing.Transitions(duration)
	}()
	go func() {
		defer wg.Done()
		audio = timing.Audio(duration)
	}()
	go func() {
		defer wg.Done()
		style = analyze.Style(ctx, u.d.Reasoner, transcript)
	}()
	go func() {
		defer wg.Done()
		overlays = analyze.Overlays(ctx, u.d.Reasoner, transcript, duration)
	}()
	wg.Wait()

	// Cancellation yields no value, not a degraded one.
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	tmpl := template.Assemble(template.Inputs{
		Name:        in.Name,
		SourceRef:   in.MediaPath,
		Duration:    duration,
		Scenes:      scenes,
		Transitions: transitions,
		Audio:       audio,
		Style:       style,
		Overlays:    overlays,
		Pacing:      template.ClassifyPacing(len(scenes), duration),
	})
	logf("template %q assembled: %d scenes, %d transitions, %d beats, pacing=%s",
		tmpl.Name, len(tmpl.Scenes), len(tmpl.Transitions), len(tmpl.AudioTiming.Beats), tmpl.Pacing)

	return Result{Template: tmpl}, nil
}

type ApplyInput struct {
	Template  types.Template
	NewScript string
	AssetRefs []string
	Logf      func(format string, args ...any)
}

type ApplyResult struct {
	Instructions []types.EditingInstruction
}

// Apply maps an existing template onto new content. Reasoning failures
// degrade to a placeholder instruction set inside the applier.
func (u Usecase) Apply(ctx context.Context, in ApplyInput) (ApplyResult, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if in.Template.Duration <= 0 || len(in.Template.Scenes) == 0 {
		return ApplyResult{}, fmt.Errorf("%w: template has no timeline", ErrInvalidInput)
	}

	instructions := analyze.Apply(ctx, u.d.Reasoner, in.Template, in.NewScript, in.AssetRefs)
	if err := ctx.Err(); err != nil {
		return ApplyResult{}, err
	}
	logf("produced %d editing instructions", len(instructions))

	return ApplyResult{Instructions: instructions}, nil
}

func (u Usecase) probeDuration(ctx context.Context, path string, logf func(string, ...any)) float64 {
	d, err := u.d.Probe.ProbeDuration(ctx, path)
	if err != nil {
		logf("probe failed, assuming %.0fs: %v", FallbackDuration, err)
		return FallbackDuration
	}
	if d <= 0 {
		return FallbackDuration
	}
	return d
}

func (u Usecase) resolveTranscript(ctx context.Context, in Input, logf func(string, ...any)) string {
	if strings.TrimSpace(in.Transcript) != "" {
		return in.Transcript
	}
	if u.d.Audio == nil || u.d.ASR == nil || in.CacheDir == "" {
		return ""
	}

	wav := filepath.Join(in.CacheDir, "audio.wav")
	if err := u.d.Audio.ExtractAudioMono16k(ctx, in.MediaPath, wav); err != nil {
		logf("audio extraction failed, continuing without transcript: %v", err)
		return ""
	}
	text, err := u.d.ASR.Transcribe(ctx, wav, in.CacheDir)
	if err != nil {
		logf("transcription failed, continuing without transcript: %v", err)
		return ""
	}
	logf("derived transcript: %d chars", len(text))
	return text
}
