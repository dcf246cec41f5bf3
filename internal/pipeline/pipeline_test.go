package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tmp := t.TempDir()
	media := filepath.Join(tmp, "in.mp4")
	if err := os.WriteFile(media, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "empty media path",
			cfg:     Config{},
			wantErr: "media path is empty",
		},
		{
			name:    "missing media file",
			cfg:     Config{MediaPath: filepath.Join(tmp, "missing.mp4")},
			wantErr: "stat media",
		},
		{
			name: "missing transcript file",
			cfg: Config{
				MediaPath:      media,
				TranscriptPath: filepath.Join(tmp, "missing.txt"),
			},
			wantErr: "stat transcript",
		},
		{
			name: "bad base url",
			cfg: Config{
				MediaPath:         media,
				OpenRouterBaseURL: "http://openrouter.ai",
			},
			wantErr: "https is required",
		},
		{
			name: "valid",
			cfg:  Config{MediaPath: media},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyConfigValidate(t *testing.T) {
	tmp := t.TempDir()
	script := filepath.Join(tmp, "script.txt")
	if err := os.WriteFile(script, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name    string
		cfg     ApplyConfig
		wantErr string
	}{
		{
			name:    "no template source",
			cfg:     ApplyConfig{ScriptPath: script},
			wantErr: "template path or template id",
		},
		{
			name: "both template sources",
			cfg: ApplyConfig{
				TemplatePath: "t.json",
				TemplateID:   "abc",
				ScriptPath:   script,
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "id without db",
			cfg: ApplyConfig{
				TemplateID: "abc",
				ScriptPath: script,
			},
			wantErr: "requires a db path",
		},
		{
			name:    "missing script",
			cfg:     ApplyConfig{TemplatePath: "t.json"},
			wantErr: "script path is required",
		},
		{
			name: "valid file source",
			cfg: ApplyConfig{
				TemplatePath: "t.json",
				ScriptPath:   script,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
