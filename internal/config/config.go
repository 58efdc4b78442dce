// Package config loads bloomq configuration from an optional YAML file and
// BLOOMQ_-prefixed environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all bloomq configuration.
type Config struct {
	Engine    EngineConfig    `koanf:"engine"`
	Output    OutputConfig    `koanf:"output"`
	Generator GeneratorConfig `koanf:"generator"`
	Log       LogConfig       `koanf:"log"`
}

// EngineConfig holds embedding and classification settings.
type EngineConfig struct {
	Backend        string `koanf:"backend"` // "onnx" or "fastembed"
	ModelPath      string `koanf:"model_path"`
	VocabPath      string `koanf:"vocab_path"`
	ProjectionPath string `koanf:"projection_path"`
	LibraryPath    string `koanf:"library_path"`
	MaxSeqLen      int    `koanf:"max_seq_len"`

	FastEmbedModel    string `koanf:"fastembed_model"`
	FastEmbedCacheDir string `koanf:"fastembed_cache_dir"`
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Format    string `koanf:"format"` // "stdout" or "file"
	Pretty    bool   `koanf:"pretty"`
	Verbosity string `koanf:"verbosity"` // "minimal", "standard", "full"
	FilePath  string `koanf:"file_path"`
	FileMaxMB int    `koanf:"file_max_mb"`
}

// GeneratorConfig holds quiz generation settings.
type GeneratorConfig struct {
	Model       string        `koanf:"model"`
	APIKeys     []string      `koanf:"api_keys"`
	MaxAttempts int           `koanf:"max_attempts"`
	InitialWait time.Duration `koanf:"initial_wait"`
	MaxWait     time.Duration `koanf:"max_wait"`
	Multiplier  float64       `koanf:"multiplier"`
	Timeout     time.Duration `koanf:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Default model layout relative to the working directory.
const (
	DefaultModelDir  = "models/all-MiniLM-L6-v2"
	DefaultGenModel  = "gemini-2.5-flash"
	DefaultBackend   = "onnx"
	DefaultVerbosity = "standard"
)

func applyDefaults(cfg *Config) {
	e := &cfg.Engine
	if e.Backend == "" {
		e.Backend = DefaultBackend
	}
	e.Backend = strings.ToLower(e.Backend)
	if e.ModelPath == "" {
		e.ModelPath = filepath.Join(DefaultModelDir, "model.onnx")
	}
	if e.VocabPath == "" {
		e.VocabPath = filepath.Join(filepath.Dir(e.ModelPath), "vocab.txt")
	}

	o := &cfg.Output
	if o.Format == "" {
		o.Format = "stdout"
	}
	if o.Verbosity == "" {
		o.Verbosity = DefaultVerbosity
	}
	if o.Format == "file" && o.FilePath == "" {
		o.FilePath = "bloomq.ndjson"
	}

	g := &cfg.Generator
	if g.Model == "" {
		g.Model = DefaultGenModel
	}
	if g.InitialWait == 0 {
		g.InitialWait = 2 * time.Second
	}
	if g.MaxWait == 0 {
		g.MaxWait = 30 * time.Second
	}
	if g.Multiplier == 0 {
		g.Multiplier = 2
	}
	if g.Timeout == 0 {
		g.Timeout = 2 * time.Minute
	}
	g.APIKeys = splitKeys(g.APIKeys)

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// splitKeys flattens comma-separated entries, as supplied through a single
// environment variable, and drops blanks.
func splitKeys(in []string) []string {
	var out []string
	for _, s := range in {
		for _, k := range strings.Split(s, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
	}
	return out
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Engine.Backend {
	case "onnx", "fastembed":
	default:
		return fmt.Errorf("engine.backend must be \"onnx\" or \"fastembed\", got %q", c.Engine.Backend)
	}
	if c.Engine.MaxSeqLen < 0 {
		return fmt.Errorf("engine.max_seq_len must be >= 0, got %d", c.Engine.MaxSeqLen)
	}

	switch c.Output.Format {
	case "stdout", "file":
	default:
		return fmt.Errorf("output.format must be \"stdout\" or \"file\", got %q", c.Output.Format)
	}
	switch c.Output.Verbosity {
	case "minimal", "standard", "full":
	default:
		return fmt.Errorf("output.verbosity must be minimal, standard or full, got %q", c.Output.Verbosity)
	}
	if c.Output.FileMaxMB < 0 {
		return fmt.Errorf("output.file_max_mb must be >= 0, got %d", c.Output.FileMaxMB)
	}

	if c.Generator.Multiplier < 1 {
		return fmt.Errorf("generator.multiplier must be >= 1, got %g", c.Generator.Multiplier)
	}
	if c.Generator.MaxWait < c.Generator.InitialWait {
		return fmt.Errorf("generator.max_wait (%s) is shorter than generator.initial_wait (%s)",
			c.Generator.MaxWait, c.Generator.InitialWait)
	}
	return nil
}

// RequireGenerator reports an error when quiz generation is requested but
// no API key is configured.
func (c *Config) RequireGenerator() error {
	if len(c.Generator.APIKeys) == 0 {
		return fmt.Errorf("no generator API keys configured (set BLOOMQ_GENERATOR_API_KEYS)")
	}
	return nil
}
