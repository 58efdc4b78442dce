package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bloomq.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Engine.Backend != "onnx" {
		t.Errorf("expected default backend 'onnx', got %q", cfg.Engine.Backend)
	}
	if want := filepath.Join("models", "all-MiniLM-L6-v2", "model.onnx"); cfg.Engine.ModelPath != want {
		t.Errorf("ModelPath = %q, want %q", cfg.Engine.ModelPath, want)
	}
	if want := filepath.Join("models", "all-MiniLM-L6-v2", "vocab.txt"); cfg.Engine.VocabPath != want {
		t.Errorf("VocabPath = %q, want %q", cfg.Engine.VocabPath, want)
	}
	if cfg.Output.Format != "stdout" || cfg.Output.Verbosity != "standard" || cfg.Output.Pretty {
		t.Errorf("unexpected output defaults %+v", cfg.Output)
	}
	if cfg.Generator.Model != "gemini-2.5-flash" {
		t.Errorf("Generator.Model = %q", cfg.Generator.Model)
	}
	if cfg.Generator.InitialWait != 2*time.Second || cfg.Generator.MaxWait != 30*time.Second {
		t.Errorf("unexpected waits %v/%v", cfg.Generator.InitialWait, cfg.Generator.MaxWait)
	}
	if cfg.Generator.Multiplier != 2 {
		t.Errorf("Multiplier = %g, want 2", cfg.Generator.Multiplier)
	}
	if len(cfg.Generator.APIKeys) != 0 {
		t.Errorf("expected no API keys, got %v", cfg.Generator.APIKeys)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `engine:
  backend: FastEmbed
  fastembed_cache_dir: /tmp/fe
output:
  format: file
  pretty: true
  verbosity: full
generator:
  api_keys: [k1, k2]
  initial_wait: 1s
  max_attempts: 4
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.Backend != "fastembed" {
		t.Errorf("Backend = %q, want fastembed", cfg.Engine.Backend)
	}
	if cfg.Engine.FastEmbedCacheDir != "/tmp/fe" {
		t.Errorf("FastEmbedCacheDir = %q", cfg.Engine.FastEmbedCacheDir)
	}
	if cfg.Output.Format != "file" || cfg.Output.FilePath != "bloomq.ndjson" || !cfg.Output.Pretty {
		t.Errorf("unexpected output %+v", cfg.Output)
	}
	if got := strings.Join(cfg.Generator.APIKeys, ","); got != "k1,k2" {
		t.Errorf("APIKeys = %v", cfg.Generator.APIKeys)
	}
	if cfg.Generator.InitialWait != time.Second || cfg.Generator.MaxAttempts != 4 {
		t.Errorf("unexpected generator %+v", cfg.Generator)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `engine:
  model_path: from/file/model.onnx
output:
  verbosity: minimal
`)
	t.Setenv("BLOOMQ_ENGINE_MODEL_PATH", "/opt/minilm/model.onnx")
	t.Setenv("BLOOMQ_OUTPUT_PRETTY", "true")
	t.Setenv("BLOOMQ_GENERATOR_API_KEYS", "alpha, beta,,gamma ")
	t.Setenv("BLOOMQ_GENERATOR_MAX_WAIT", "45s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.ModelPath != "/opt/minilm/model.onnx" {
		t.Errorf("ModelPath = %q", cfg.Engine.ModelPath)
	}
	if cfg.Engine.VocabPath != "/opt/minilm/vocab.txt" {
		t.Errorf("VocabPath should follow the model dir, got %q", cfg.Engine.VocabPath)
	}
	if cfg.Output.Verbosity != "minimal" {
		t.Errorf("file value lost: verbosity %q", cfg.Output.Verbosity)
	}
	if !cfg.Output.Pretty {
		t.Error("expected Pretty from env")
	}
	if got := strings.Join(cfg.Generator.APIKeys, "|"); got != "alpha|beta|gamma" {
		t.Errorf("APIKeys = %q", got)
	}
	if cfg.Generator.MaxWait != 45*time.Second {
		t.Errorf("MaxWait = %v", cfg.Generator.MaxWait)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"backend", "engine:\n  backend: tflite\n", "engine.backend"},
		{"format", "output:\n  format: kafka\n", "output.format"},
		{"verbosity", "output:\n  verbosity: loud\n", "output.verbosity"},
		{"seq len", "engine:\n  max_seq_len: -1\n", "engine.max_seq_len"},
		{"multiplier", "generator:\n  multiplier: 0.5\n", "generator.multiplier"},
		{"waits", "generator:\n  initial_wait: 10s\n  max_wait: 1s\n", "generator.max_wait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_FileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
	if _, err := Load(writeConfig(t, "engine: [unclosed\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"BLOOMQ_ENGINE_MODEL_PATH", "engine.model_path"},
		{"BLOOMQ_GENERATOR_API_KEYS", "generator.api_keys"},
		{"BLOOMQ_LOG_LEVEL", "log.level"},
		{"BLOOMQ_DEBUG", "debug"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRequireGenerator(t *testing.T) {
	cfg := Config{}
	if err := cfg.RequireGenerator(); err == nil {
		t.Error("expected error without keys")
	}
	cfg.Generator.APIKeys = []string{"k"}
	if err := cfg.RequireGenerator(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
