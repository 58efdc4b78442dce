package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/crimson-sun/bloomq/internal/config"
	"github.com/crimson-sun/bloomq/internal/engine/classifier"
	"github.com/crimson-sun/bloomq/internal/engine/embedder"
	"github.com/crimson-sun/bloomq/internal/engine/reconciler"
	"github.com/crimson-sun/bloomq/internal/engine/taxonomy"
	"github.com/crimson-sun/bloomq/internal/model"
)

// Engine orchestrates the embed → classify → reconcile pipeline.
type Engine struct {
	embedder   embedder.Embedder
	taxonomy   *taxonomy.Taxonomy
	classifier *classifier.Classifier
	reconciler *reconciler.Reconciler
}

// New creates an Engine with the provided components.
func New(emb embedder.Embedder, tax *taxonomy.Taxonomy, cls *classifier.Classifier, rec *reconciler.Reconciler) *Engine {
	return &Engine{
		embedder:   emb,
		taxonomy:   tax,
		classifier: cls,
		reconciler: rec,
	}
}

// Open builds the configured embedder, pre-embeds the default keyword sets
// and wires the classifier and reconciler. Loading the model is the
// expensive step; reuse the Engine.
func Open(cfg config.EngineConfig) (*Engine, error) {
	start := time.Now()

	emb, err := NewEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	tax, err := taxonomy.New(taxonomy.DefaultKeywords(), emb)
	if err != nil {
		emb.Close()
		return nil, fmt.Errorf("engine: %w", err)
	}

	cls := classifier.New(emb, tax)
	slog.Info("engine ready",
		"backend", cfg.Backend,
		"dim", tax.Dim(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return New(emb, tax, cls, reconciler.New(cls)), nil
}

// NewEmbedder constructs the embedding backend named by cfg.Backend.
func NewEmbedder(cfg config.EngineConfig) (embedder.Embedder, error) {
	switch cfg.Backend {
	case "", "onnx":
		emb, err := embedder.New(embedder.ONNXConfig{
			ModelPath:      cfg.ModelPath,
			VocabPath:      cfg.VocabPath,
			ProjectionPath: cfg.ProjectionPath,
			LibraryPath:    cfg.LibraryPath,
			MaxSeqLen:      cfg.MaxSeqLen,
		})
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		return emb, nil
	case "fastembed":
		emb, err := embedder.NewFastEmbed(embedder.FastEmbedConfig{
			Model:     cfg.FastEmbedModel,
			CacheDir:  cfg.FastEmbedCacheDir,
			MaxLength: cfg.MaxSeqLen,
		})
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		return emb, nil
	default:
		return nil, fmt.Errorf("engine: unknown embedding backend %q", cfg.Backend)
	}
}

// Classify assigns one of the six levels to question.
func (e *Engine) Classify(question string) (model.Detailed, error) {
	return e.classifier.ClassifyDetailed(question)
}

// ClassifyCoarse assigns LOTS or HOTS to question.
func (e *Engine) ClassifyCoarse(question string) (model.Coarse, error) {
	return e.classifier.ClassifyCoarse(question)
}

// ClassifyBatch coarse-classifies questions with one embedding pass.
func (e *Engine) ClassifyBatch(questions []string) ([]model.Coarse, error) {
	return e.classifier.ClassifyBatch(questions)
}

// ClassifyBatchDetailed classifies questions into levels with one
// embedding pass.
func (e *Engine) ClassifyBatchDetailed(questions []string) ([]model.Detailed, error) {
	return e.classifier.ClassifyBatchDetailed(questions)
}

// Explain classifies question and reports the aggregate group scores.
func (e *Engine) Explain(question string) (model.Explanation, error) {
	return e.classifier.Explain(question)
}

// Reconcile corrects the declared levels of quiz in place.
func (e *Engine) Reconcile(quiz *model.Quiz) (reconciler.Report, error) {
	return e.reconciler.Reconcile(quiz)
}

// Reconciler returns the engine's reconciler.
func (e *Engine) Reconciler() *reconciler.Reconciler { return e.reconciler }

// Taxonomy returns the pre-embedded keyword sets.
func (e *Engine) Taxonomy() *taxonomy.Taxonomy { return e.taxonomy }

// Close releases the embedder.
func (e *Engine) Close() error {
	return e.embedder.Close()
}
