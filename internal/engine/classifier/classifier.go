package classifier

import (
	"fmt"
	"math"
	"strings"

	"github.com/crimson-sun/bloomq/internal/engine/embedder"
	"github.com/crimson-sun/bloomq/internal/engine/taxonomy"
	"github.com/crimson-sun/bloomq/internal/model"
)

// DefaultConfidence is reported for blank questions, which are never embedded.
const DefaultConfidence = 0.5

// Classifier scores question embeddings against the pre-embedded keyword
// sets of a Taxonomy. It holds no mutable state.
type Classifier struct {
	emb embedder.Embedder
	tax *taxonomy.Taxonomy
}

// New creates a Classifier over the given embedder and taxonomy. The
// taxonomy must have been built with the same embedder.
func New(emb embedder.Embedder, tax *taxonomy.Taxonomy) *Classifier {
	return &Classifier{emb: emb, tax: tax}
}

// ScoreAllLevels returns, for each level, the mean cosine similarity between
// vec and every reference vector of that level. Scores are not clamped.
func (c *Classifier) ScoreAllLevels(vec []float32) model.Scores {
	q := unit(vec)
	scores := make(model.Scores, 6)
	for _, l := range model.Levels() {
		scores[l] = meanSimilarity(q, c.tax.Level(l))
	}
	return scores
}

// ClassifyDetailed assigns one of the six levels to question. Blank input
// yields remembering with confidence 0.5 and no scores.
func (c *Classifier) ClassifyDetailed(question string) (model.Detailed, error) {
	if isBlank(question) {
		return defaultDetailed(), nil
	}
	vec, err := c.emb.Embed(question)
	if err != nil {
		return model.Detailed{}, fmt.Errorf("classifier: %w", err)
	}
	return c.detailed(vec), nil
}

// ClassifyCoarse assigns LOTS or HOTS to question by comparing its mean
// similarity to the two aggregate keyword sets. HOTS wins only when strictly
// greater. Blank input yields LOTS with confidence 0.5.
func (c *Classifier) ClassifyCoarse(question string) (model.Coarse, error) {
	if isBlank(question) {
		return defaultCoarse(), nil
	}
	vec, err := c.emb.Embed(question)
	if err != nil {
		return model.Coarse{}, fmt.Errorf("classifier: %w", err)
	}
	return c.coarse(vec), nil
}

// ClassifyBatch is ClassifyCoarse over many questions with a single
// embedding call. Results are in input order. Any embedding failure fails
// the whole batch.
func (c *Classifier) ClassifyBatch(questions []string) ([]model.Coarse, error) {
	vecs, err := c.embedBatch(questions)
	if err != nil {
		return nil, err
	}
	out := make([]model.Coarse, len(questions))
	for i, v := range vecs {
		if v == nil {
			out[i] = defaultCoarse()
			continue
		}
		out[i] = c.coarse(v)
	}
	return out, nil
}

// ClassifyBatchDetailed is ClassifyDetailed over many questions with a
// single embedding call.
func (c *Classifier) ClassifyBatchDetailed(questions []string) ([]model.Detailed, error) {
	vecs, err := c.embedBatch(questions)
	if err != nil {
		return nil, err
	}
	out := make([]model.Detailed, len(questions))
	for i, v := range vecs {
		if v == nil {
			out[i] = defaultDetailed()
			continue
		}
		out[i] = c.detailed(v)
	}
	return out, nil
}

// Explain classifies question and adds the LOTS/HOTS aggregate scores and
// how far the winning score sits from the mean of all six.
func (c *Classifier) Explain(question string) (model.Explanation, error) {
	d, err := c.ClassifyDetailed(question)
	if err != nil {
		return model.Explanation{}, err
	}
	if len(d.Scores) == 0 {
		return model.Explanation{Detailed: d}, nil
	}

	var all float64
	for _, l := range model.Levels() {
		all += d.Scores[l]
	}
	return model.Explanation{
		Detailed:       d,
		LowOrderScore:  groupMean(d.Scores, model.LowOrder),
		HighOrderScore: groupMean(d.Scores, model.HighOrder),
		Difference:     math.Abs(d.Scores[d.Level] - all/6),
	}, nil
}

// embedBatch embeds every non-blank question in one call. Blank questions
// get a nil vector.
func (c *Classifier) embedBatch(questions []string) ([][]float32, error) {
	vecs := make([][]float32, len(questions))

	var texts []string
	var idx []int
	for i, q := range questions {
		if isBlank(q) {
			continue
		}
		texts = append(texts, q)
		idx = append(idx, i)
	}
	if len(texts) == 0 {
		return vecs, nil
	}

	embedded, err := c.emb.EmbedBatch(texts)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	if len(embedded) != len(texts) {
		return nil, fmt.Errorf("classifier: embedder returned %d vectors for %d questions", len(embedded), len(texts))
	}
	for j, i := range idx {
		vecs[i] = embedded[j]
	}
	return vecs, nil
}

func (c *Classifier) detailed(vec []float32) model.Detailed {
	scores := c.ScoreAllLevels(vec)

	levels := model.Levels()
	best := levels[0]
	for _, l := range levels[1:] {
		if scores[l] > scores[best] {
			best = l
		}
	}
	return model.NewDetailed(best, scores[best], scores)
}

func (c *Classifier) coarse(vec []float32) model.Coarse {
	q := unit(vec)
	low := meanSimilarity(q, c.tax.Group(model.LowOrder))
	high := meanSimilarity(q, c.tax.Group(model.HighOrder))
	if high > low {
		return model.Coarse{Group: model.HighOrder, Confidence: high}
	}
	return model.Coarse{Group: model.LowOrder, Confidence: low}
}

func defaultDetailed() model.Detailed {
	return model.NewDetailed(model.Remembering, DefaultConfidence, model.Scores{})
}

func defaultCoarse() model.Coarse {
	return model.Coarse{Group: model.LowOrder, Confidence: DefaultConfidence}
}

func groupMean(scores model.Scores, g model.Group) float64 {
	var sum float64
	levels := g.Levels()
	for _, l := range levels {
		sum += scores[l]
	}
	return sum / float64(len(levels))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
