package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forPelevin/reelmap/internal/domain/subtitles"
	"github.com/forPelevin/reelmap/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/reelmap/internal/ports/adapters/openrouter"
	"github.com/forPelevin/reelmap/internal/ports/adapters/sqlite"
	"github.com/forPelevin/reelmap/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/reelmap/internal/usecase"
)

type Config struct {
	MediaPath      string
	TranscriptPath string
	Name           string
	OutDir         string
	DBPath         string
	Logf           func(format string, args ...any)

	// CacheDir is the base directory for local artifacts (extracted audio,
	// transcripts). If empty, defaults to ".cache".
	CacheDir string

	FFmpegPath  string
	FFprobePath string

	// WhisperBin/WhisperModel enable the local-transcription fallback when
	// no transcript file is given. Both empty disables it.
	WhisperBin   string
	WhisperModel string

	OpenRouterAPIKey       string
	OpenRouterModel        string
	OpenRouterBaseURL      string
	OpenRouterAllowedHosts []string
}

func (c Config) Validate() error {
	if c.MediaPath == "" {
		return errors.New("media path is empty")
	}
	if _, err := os.Stat(c.MediaPath); err != nil {
		return fmt.Errorf("stat media: %w", err)
	}
	if c.TranscriptPath != "" {
		if _, err := os.Stat(c.TranscriptPath); err != nil {
			return fmt.Errorf("stat transcript: %w", err)
		}
	}
	return openrouter.ValidateBaseURL(
		c.OpenRouterBaseURL,
		c.OpenRouterAllowedHosts,
	)
}

// Run executes one extraction end to end: adapters, usecase, template JSON
// artifact, optional store save.
func Run(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	transcript := ""
	if cfg.TranscriptPath != "" {
		b, err := os.ReadFile(cfg.TranscriptPath)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}
		transcript = string(b)
	}

	// adapters
	media := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	llm := openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.OpenRouterBaseURL)

	deps := usecase.Deps{Probe: media, Reasoner: llm}
	if cfg.WhisperBin != "" && cfg.WhisperModel != "" {
		deps.Audio = media
		deps.ASR = whispercpp.New(cfg.WhisperBin, cfg.WhisperModel)
	}
	uc := usecase.New(deps)

	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "runs", runID(cfg.MediaPath))
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	logf("cache: %s", cacheDir)

	res, err := uc.Analyze(ctx, usecase.Input{
		MediaPath:  cfg.MediaPath,
		Transcript: transcript,
		Name:       cfg.Name,
		CacheDir:   cacheDir,
		Logf:       logf,
	})
	if err != nil {
		return err
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(res.Template, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}
	templatePath := filepath.Join(outDir, res.Template.Name+".json")
	if err := os.WriteFile(templatePath, b, 0o644); err != nil {
		return err
	}
	logf("template written: %s", templatePath)

	if len(res.Template.TextOverlays) > 0 {
		assPath := filepath.Join(outDir, res.Template.Name+".ass")
		ass := subtitles.RenderOverlayASS(res.Template.TextOverlays)
		if err := os.WriteFile(assPath, []byte(ass), 0o644); err != nil {
			return err
		}
		logf("overlay subtitles written: %s", assPath)
	}

	if cfg.DBPath != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.Save(ctx, res.Template)
		if err != nil {
			return err
		}
		logf("template stored: %s", id)
	}
	return nil
}

func runID(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}
