//go:build cgo

package embedder

import (
	"errors"
	"fmt"
	"sync"

	fastembed "github.com/anush008/fastembed-go"
)

// FastEmbedConfig configures the fastembed backend.
type FastEmbedConfig struct {
	// Model is a fastembed model name. Default: sentence-transformers/all-MiniLM-L6-v2.
	Model     string
	CacheDir  string
	MaxLength int
	BatchSize int
}

// ErrClosed is returned when embedding with a FastEmbedder after Close.
var ErrClosed = errors.New("embedder: fastembed model is closed")

var fastembedModels = map[string]fastembed.EmbeddingModel{
	"sentence-transformers/all-MiniLM-L6-v2": fastembed.AllMiniLML6V2,
	"fast-all-MiniLM-L6-v2":                  fastembed.AllMiniLML6V2,
	"BAAI/bge-small-en-v1.5":                 fastembed.BGESmallENV15,
	"BAAI/bge-base-en-v1.5":                  fastembed.BGEBaseENV15,
}

// FastEmbedder runs a fastembed-managed ONNX model. The model files are
// downloaded into CacheDir on first use.
type FastEmbedder struct {
	mu        sync.Mutex
	model     *fastembed.FlagEmbedding
	batchSize int
}

// NewFastEmbed loads the configured fastembed model.
func NewFastEmbed(cfg FastEmbedConfig) (*FastEmbedder, error) {
	name := cfg.Model
	if name == "" {
		name = "sentence-transformers/all-MiniLM-L6-v2"
	}
	model, ok := fastembedModels[name]
	if !ok {
		return nil, fmt.Errorf("embedder: unsupported fastembed model %q", name)
	}

	maxLen := cfg.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxSeqLen
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 64
	}

	showProgress := false
	fe, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:                model,
		CacheDir:             cfg.CacheDir,
		MaxLength:            maxLen,
		ShowDownloadProgress: &showProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("embedder: fastembed: %w", err)
	}
	return &FastEmbedder{model: fe, batchSize: batch}, nil
}

// Embed produces a single embedding vector for the given text.
func (f *FastEmbedder) Embed(text string) ([]float32, error) {
	vecs, err := f.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds texts without the query/passage prefixes fastembed adds
// for retrieval models.
func (f *FastEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.model == nil {
		return nil, ErrClosed
	}

	vecs, err := f.model.Embed(texts, f.batchSize)
	if err != nil {
		return nil, fmt.Errorf("embedder: fastembed: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedder: fastembed returned %d vectors for %d texts", len(vecs), len(texts))
	}
	return vecs, nil
}

// Close releases the underlying ONNX session.
func (f *FastEmbedder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.model == nil {
		return nil
	}
	err := f.model.Destroy()
	f.model = nil
	return err
}
