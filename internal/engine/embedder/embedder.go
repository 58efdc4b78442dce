package embedder

import (
	"fmt"
	"path/filepath"
)

// Embedder produces vector embeddings from text. EmbedBatch must return one
// vector per input, in input order.
type Embedder interface {
	Embed(text string) ([]float32, error)
	EmbedBatch(texts []string) ([][]float32, error)
	Close() error
}

// DefaultMaxSeqLen matches the sequence limit all-MiniLM-L6-v2 was trained with.
const DefaultMaxSeqLen = 256

// ONNXConfig locates the files for a local ONNX sentence encoder.
type ONNXConfig struct {
	ModelPath string
	VocabPath string

	// ProjectionPath is an optional dense layer (safetensors) applied after
	// pooling. Empty means the pooled vector is used as is.
	ProjectionPath string

	// LibraryPath is the ONNX Runtime shared library. Empty means
	// libonnxruntime.so next to the model file.
	LibraryPath string

	MaxSeqLen int
}

// ONNXEmbedder wraps the ONNX runtime, tokenizer, and optional projection
// layer for local embedding inference.
type ONNXEmbedder struct {
	session *session
	tok     *tokenizer
	proj    *projection
}

// New creates an ONNXEmbedder by loading the ONNX model, vocabulary, and
// projection weights. The full embedding pipeline is:
// tokenize → ONNX inference → mean pool → (dense projection) → vector.
func New(cfg ONNXConfig) (*ONNXEmbedder, error) {
	libPath := cfg.LibraryPath
	if libPath == "" {
		libPath = filepath.Join(filepath.Dir(cfg.ModelPath), "libonnxruntime.so")
	}

	sess, err := newSession(cfg.ModelPath, libPath)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}

	maxLen := cfg.MaxSeqLen
	if maxLen <= 0 {
		maxLen = DefaultMaxSeqLen
	}
	tok, err := newTokenizer(cfg.VocabPath, maxLen)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("embedder: %w", err)
	}

	e := &ONNXEmbedder{session: sess, tok: tok}
	if cfg.ProjectionPath == "" {
		return e, nil
	}

	proj, err := loadProjection(cfg.ProjectionPath)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("embedder: %w", err)
	}
	if sess.dim != proj.inDim {
		sess.close()
		return nil, fmt.Errorf("embedder: ONNX output dim %d != projection input dim %d",
			sess.dim, proj.inDim)
	}
	e.proj = proj
	return e, nil
}

// EmbedDim returns the final embedding dimensionality.
func (e *ONNXEmbedder) EmbedDim() int {
	if e.proj != nil {
		return e.proj.outDim
	}
	return e.session.dim
}

// Embed produces a single embedding vector for the given text.
func (e *ONNXEmbedder) Embed(text string) ([]float32, error) {
	vecs, err := e.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch produces embedding vectors for multiple texts in one inference
// call, padded to the longest sequence in the batch.
func (e *ONNXEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	b := e.tok.encodeBatch(texts)
	hidden, err := e.session.run(b)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}

	vecs := meanPool(hidden, b.mask, int(b.rows), int(b.cols), e.session.dim)
	if e.proj != nil {
		for i, v := range vecs {
			vecs[i] = e.proj.apply(v)
		}
	}
	return vecs, nil
}

// Close releases ONNX Runtime resources.
func (e *ONNXEmbedder) Close() error {
	if e.session != nil {
		return e.session.close()
	}
	return nil
}
