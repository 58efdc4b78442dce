package bloomq

import (
	"fmt"

	"github.com/crimson-sun/bloomq/internal/engine"
)

// Bloomq is a question classification engine.
// Safe for concurrent use.
type Bloomq struct {
	engine *engine.Engine
}

// New creates a Bloomq instance, loading the embedding model and
// pre-embedding the keyword sets. Create once, reuse across requests.
func New(opts ...Option) (*Bloomq, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	eng, err := engine.Open(o.engineConfig())
	if err != nil {
		return nil, fmt.Errorf("bloomq: %w", err)
	}
	return &Bloomq{engine: eng}, nil
}

// Classify assigns one of the six levels to question. Blank input yields
// remembering with confidence 0.5.
func (b *Bloomq) Classify(question string) (Result, error) {
	d, err := b.engine.Classify(question)
	if err != nil {
		return Result{}, err
	}
	return resultFromDetailed(d), nil
}

// ClassifyCoarse assigns LOTS or HOTS to question.
func (b *Bloomq) ClassifyCoarse(question string) (CoarseResult, error) {
	c, err := b.engine.ClassifyCoarse(question)
	if err != nil {
		return CoarseResult{}, err
	}
	return resultFromCoarse(c), nil
}

// ClassifyBatch coarse-classifies questions in a single batched inference
// call. Results are in input order.
func (b *Bloomq) ClassifyBatch(questions []string) ([]CoarseResult, error) {
	cs, err := b.engine.ClassifyBatch(questions)
	if err != nil {
		return nil, err
	}
	out := make([]CoarseResult, len(cs))
	for i, c := range cs {
		out[i] = resultFromCoarse(c)
	}
	return out, nil
}

// ClassifyBatchDetailed is Classify over many questions with one inference
// call.
func (b *Bloomq) ClassifyBatchDetailed(questions []string) ([]Result, error) {
	ds, err := b.engine.ClassifyBatchDetailed(questions)
	if err != nil {
		return nil, err
	}
	out := make([]Result, len(ds))
	for i, d := range ds {
		out[i] = resultFromDetailed(d)
	}
	return out, nil
}

// Explain classifies question and adds the LOTS and HOTS aggregate scores.
func (b *Bloomq) Explain(question string) (Explanation, error) {
	e, err := b.engine.Explain(question)
	if err != nil {
		return Explanation{}, err
	}
	return Explanation{
		Result:         resultFromDetailed(e.Detailed),
		LowOrderScore:  e.LowOrderScore,
		HighOrderScore: e.HighOrderScore,
		Difference:     e.Difference,
	}, nil
}

// Reconcile replaces each question's declared level with one consistent
// with its empirical LOTS/HOTS group. quiz is modified in place and left
// untouched on error.
func (b *Bloomq) Reconcile(quiz *Quiz) (Report, error) {
	return b.engine.Reconcile(quiz)
}

// Close releases model resources. Must be called when the instance is no
// longer needed.
func (b *Bloomq) Close() error {
	return b.engine.Close()
}
