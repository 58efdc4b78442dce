//go:build !cgo

package embedder

import "errors"

// ErrFastEmbedUnavailable is returned when the binary was built without cgo.
var ErrFastEmbedUnavailable = errors.New("embedder: fastembed requires a cgo build")

// FastEmbedConfig configures the fastembed backend.
type FastEmbedConfig struct {
	Model     string
	CacheDir  string
	MaxLength int
	BatchSize int
}

// FastEmbedder is unavailable without cgo.
type FastEmbedder struct{}

// NewFastEmbed always fails without cgo.
func NewFastEmbed(FastEmbedConfig) (*FastEmbedder, error) {
	return nil, ErrFastEmbedUnavailable
}

func (f *FastEmbedder) Embed(string) ([]float32, error)          { return nil, ErrFastEmbedUnavailable }
func (f *FastEmbedder) EmbedBatch([]string) ([][]float32, error) { return nil, ErrFastEmbedUnavailable }
func (f *FastEmbedder) Close() error                             { return nil }
