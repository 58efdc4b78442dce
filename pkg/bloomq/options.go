package bloomq

import (
	"path/filepath"

	"github.com/crimson-sun/bloomq/internal/config"
)

type options struct {
	backend        string
	modelDir       string
	modelPath      string
	vocabPath      string
	projectionPath string
	libraryPath    string
	fastEmbedModel string
	fastEmbedCache string
}

// Option configures a Bloomq instance.
type Option func(*options)

// WithModelDir sets the directory containing model.onnx and vocab.txt.
// The ONNX Runtime library is looked up there as libonnxruntime.so.
func WithModelDir(dir string) Option {
	return func(o *options) {
		o.modelDir = dir
	}
}

// WithModelPaths sets explicit paths for the model files. projection may be
// empty when the encoder has no dense head.
func WithModelPaths(model, vocab, projection string) Option {
	return func(o *options) {
		o.modelPath = model
		o.vocabPath = vocab
		o.projectionPath = projection
	}
}

// WithLibraryPath sets the ONNX Runtime shared library location.
func WithLibraryPath(path string) Option {
	return func(o *options) {
		o.libraryPath = path
	}
}

// WithBackend selects the embedding backend: "onnx" (default) or "fastembed".
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithFastEmbedCacheDir sets where the fastembed backend downloads models.
func WithFastEmbedCacheDir(dir string) Option {
	return func(o *options) {
		o.fastEmbedCache = dir
	}
}

// WithFastEmbedModel picks the fastembed model by name.
func WithFastEmbedModel(name string) Option {
	return func(o *options) {
		o.fastEmbedModel = name
	}
}

func defaultOptions() options {
	return options{backend: config.DefaultBackend}
}

// engineConfig resolves o into an engine configuration. Explicit paths take
// precedence over modelDir.
func (o options) engineConfig() config.EngineConfig {
	cfg := config.EngineConfig{
		Backend:           o.backend,
		ModelPath:         o.modelPath,
		VocabPath:         o.vocabPath,
		ProjectionPath:    o.projectionPath,
		LibraryPath:       o.libraryPath,
		FastEmbedModel:    o.fastEmbedModel,
		FastEmbedCacheDir: o.fastEmbedCache,
	}
	if cfg.ModelPath != "" {
		return cfg
	}
	dir := o.modelDir
	if dir == "" {
		dir = config.DefaultModelDir
	}
	cfg.ModelPath = filepath.Join(dir, "model.onnx")
	cfg.VocabPath = filepath.Join(dir, "vocab.txt")
	return cfg
}
