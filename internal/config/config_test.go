package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipsight/internal/config"
)

func TestLoadDefaultConfigUsesEnvAPIKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("CLIPSIGHT_API_KEY", "test-key")
	t.Setenv("OPENAI_API_KEY", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantScratch := filepath.Join(tempHome, ".local", "share", "clipsight", "scratch")
	if cfg.Paths.ScratchDir != wantScratch {
		t.Fatalf("unexpected scratch dir: got %q want %q", cfg.Paths.ScratchDir, wantScratch)
	}
	if cfg.Models.APIKey != "test-key" {
		t.Fatalf("expected API key from env, got %q", cfg.Models.APIKey)
	}
	if cfg.Models.BaseURL != config.Default().Models.BaseURL {
		t.Fatalf("unexpected base url: %q", cfg.Models.BaseURL)
	}
	if cfg.Analysis.FPS != 2.0 {
		t.Fatalf("unexpected fps default: %v", cfg.Analysis.FPS)
	}
	if cfg.Analysis.DiffThreshold != 0.12 {
		t.Fatalf("unexpected diff threshold default: %v", cfg.Analysis.DiffThreshold)
	}
	if cfg.Analysis.Concurrency != 4 {
		t.Fatalf("unexpected concurrency default: %d", cfg.Analysis.Concurrency)
	}
	if !cfg.Analysis.IncludeAudio {
		t.Fatal("expected audio enabled by default")
	}
	if cfg.Transcription.Model != "large-v3-turbo" {
		t.Fatalf("unexpected whisperx model: %q", cfg.Transcription.Model)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ScratchDir, cfg.Paths.ArtifactDir, cfg.Paths.LogDir} {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadReadsTOMLOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := strings.Join([]string{
		"[analysis]",
		"fps = 4.0",
		"diff_threshold = 0.2",
		"concurrency = 8",
		"include_audio = false",
		"",
		"[models]",
		`api_key = "from-file"`,
		`text_model = "demo-text"`,
		"",
		"[logging]",
		`format = "json"`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Analysis.FPS != 4.0 {
		t.Fatalf("unexpected fps: %v", cfg.Analysis.FPS)
	}
	if cfg.Analysis.IncludeAudio {
		t.Fatal("expected audio disabled")
	}
	if cfg.Models.TextModel != "demo-text" {
		t.Fatalf("unexpected text model: %q", cfg.Models.TextModel)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"diff threshold above one", func(c *config.Config) { c.Analysis.DiffThreshold = 1.5 }},
		{"negative min gap", func(c *config.Config) { c.Analysis.MinKeyframeGap = -1 }},
		{"max gap below min gap", func(c *config.Config) {
			c.Analysis.MinKeyframeGap = 5
			c.Analysis.MaxKeyframeGap = 2
		}},
		{"scene threshold above one", func(c *config.Config) { c.Analysis.SceneThreshold = 2 }},
		{"negative dense interval", func(c *config.Config) { c.Analysis.DenseInterval = -0.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Models.APIKey = "key"
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.Models.APIKey = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for missing api key")
	}
	if !strings.Contains(err.Error(), "models.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}
