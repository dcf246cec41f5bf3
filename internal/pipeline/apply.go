package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/reelmap/internal/ports/adapters/openrouter"
	"github.com/forPelevin/reelmap/internal/ports/adapters/sqlite"
	"github.com/forPelevin/reelmap/internal/types"
	"github.com/forPelevin/reelmap/internal/usecase"
)

type ApplyConfig struct {
	// Exactly one of TemplatePath (a JSON artifact) or TemplateID (a stored
	// template, requires DBPath) selects the template.
	TemplatePath string
	TemplateID   string
	DBPath       string

	ScriptPath string
	AssetRefs  []string
	OutPath    string
	Logf       func(format string, args ...any)

	OpenRouterAPIKey       string
	OpenRouterModel        string
	OpenRouterBaseURL      string
	OpenRouterAllowedHosts []string
}

func (c ApplyConfig) Validate() error {
	if c.TemplatePath == "" && c.TemplateID == "" {
		return errors.New("template path or template id is required")
	}
	if c.TemplatePath != "" && c.TemplateID != "" {
		return errors.New("template path and template id are mutually exclusive")
	}
	if c.TemplateID != "" && c.DBPath == "" {
		return errors.New("template id requires a db path")
	}
	if c.ScriptPath == "" {
		return errors.New("script path is required")
	}
	if _, err := os.Stat(c.ScriptPath); err != nil {
		return fmt.Errorf("stat script: %w", err)
	}
	return openrouter.ValidateBaseURL(
		c.OpenRouterBaseURL,
		c.OpenRouterAllowedHosts,
	)
}

// RunApply maps a previously extracted template onto a new script and asset
// list and writes the resulting instruction sequence as JSON.
func RunApply(ctx context.Context, cfg ApplyConfig) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	tmpl, err := loadTemplate(ctx, cfg)
	if err != nil {
		return err
	}
	logf("template %q loaded: %d scenes over %.2fs", tmpl.Name, len(tmpl.Scenes), tmpl.Duration)

	script, err := os.ReadFile(cfg.ScriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	llm := openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.OpenRouterBaseURL)
	uc := usecase.New(usecase.Deps{Reasoner: llm})

	res, err := uc.Apply(ctx, usecase.ApplyInput{
		Template:  tmpl,
		NewScript: string(script),
		AssetRefs: cfg.AssetRefs,
		Logf:      logf,
	})
	if err != nil {
		return err
	}

	outPath := cfg.OutPath
	if outPath == "" {
		outPath = tmpl.Name + "-instructions.json"
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(res.Instructions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal instructions: %w", err)
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return err
	}
	logf("instructions written (%d): %s", len(res.Instructions), outPath)
	return nil
}

func loadTemplate(ctx context.Context, cfg ApplyConfig) (types.Template, error) {
	if cfg.TemplateID != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return types.Template{}, err
		}
		defer store.Close()
		return store.Get(ctx, cfg.TemplateID)
	}

	b, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return types.Template{}, fmt.Errorf("read template: %w", err)
	}
	var tmpl types.Template
	if err := json.Unmarshal(b, &tmpl); err != nil {
		return types.Template{}, fmt.Errorf("parse template %s: %w", cfg.TemplatePath, err)
	}
	if strings.TrimSpace(tmpl.Name) == "" {
		base := filepath.Base(cfg.TemplatePath)
		tmpl.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return tmpl, nil
}
