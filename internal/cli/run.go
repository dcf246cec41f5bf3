package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/reelmap/internal/pipeline"
)

const runTimeout = 30 * time.Minute

func runAnalyze(cmd *cobra.Command, media string) error {
	transcriptPath, _ := cmd.Flags().GetString("transcript")
	name, _ := cmd.Flags().GetString("name")
	outDir, _ := cmd.Flags().GetString("out")
	dbPath, _ := cmd.Flags().GetString("db")

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return errors.New("OPENROUTER_API_KEY is required (set it in .env)")
	}

	absMedia, err := filepath.Abs(media)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := pipeline.Config{
		MediaPath:      absMedia,
		TranscriptPath: transcriptPath,
		Name:           name,
		OutDir:         outDir,
		DBPath:         dbPath,
		Logf:           logf(cmd),

		FFmpegPath:  getenvDefault("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getenvDefault("FFPROBE_PATH", "ffprobe"),

		WhisperBin:   os.Getenv("WHISPER_BIN"),
		WhisperModel: os.Getenv("WHISPER_MODEL"),

		OpenRouterAPIKey:       apiKey,
		OpenRouterModel:        getenvDefault("OPENROUTER_MODEL", "z-ai/glm-4.5-air:free"),
		OpenRouterBaseURL:      getenvDefault("OPENROUTER_BASE_URL", "https://openrouter.ai"),
		OpenRouterAllowedHosts: splitHosts(os.Getenv("OPENROUTER_ALLOWED_HOSTS")),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}

func runApply(cmd *cobra.Command, template string) error {
	scriptPath, _ := cmd.Flags().GetString("script")
	assets, _ := cmd.Flags().GetStringSlice("assets")
	outPath, _ := cmd.Flags().GetString("out")
	dbPath, _ := cmd.Flags().GetString("db")

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return errors.New("OPENROUTER_API_KEY is required (set it in .env)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := pipeline.ApplyConfig{
		ScriptPath: scriptPath,
		AssetRefs:  assets,
		OutPath:    outPath,
		DBPath:     dbPath,
		Logf:       logf(cmd),

		OpenRouterAPIKey:       apiKey,
		OpenRouterModel:        getenvDefault("OPENROUTER_MODEL", "z-ai/glm-4.5-air:free"),
		OpenRouterBaseURL:      getenvDefault("OPENROUTER_BASE_URL", "https://openrouter.ai"),
		OpenRouterAllowedHosts: splitHosts(os.Getenv("OPENROUTER_ALLOWED_HOSTS")),
	}
	if dbPath != "" {
		cfg.TemplateID = template
	} else {
		cfg.TemplatePath = template
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.RunApply(ctx, cfg)
}

func logf(cmd *cobra.Command) func(string, ...any) {
	return func(format string, args ...any) {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}

func splitHosts(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
