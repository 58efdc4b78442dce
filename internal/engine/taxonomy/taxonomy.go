package taxonomy

import (
	"fmt"
	"math"

	"github.com/crimson-sun/bloomq/internal/engine/embedder"
	"github.com/crimson-sun/bloomq/internal/model"
)

// Taxonomy holds the keyword sets and their pre-embedded reference vectors.
// It is built once and never mutated, so it can be shared by any number of
// readers.
type Taxonomy struct {
	sets   []model.KeywordSet
	levels [6]model.ReferenceSet
	groups [2]model.ReferenceSet
	dim    int
}

// New validates the keyword sets and pre-embeds every phrase in a single
// batch. Exactly one non-empty set per level is required.
func New(sets []model.KeywordSet, emb embedder.Embedder) (*Taxonomy, error) {
	ordered, err := orderSets(sets)
	if err != nil {
		return nil, err
	}

	var phrases []string
	for _, s := range ordered {
		phrases = append(phrases, s.Phrases...)
	}

	vecs, err := emb.EmbedBatch(phrases)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: failed to embed keywords: %w", err)
	}
	if len(vecs) != len(phrases) {
		return nil, fmt.Errorf("taxonomy: embedder returned %d vectors for %d keywords", len(vecs), len(phrases))
	}

	t := &Taxonomy{sets: ordered}
	offset := 0
	for i, s := range ordered {
		n := len(s.Phrases)
		ref := model.ReferenceSet{
			Name:    s.Level.String(),
			Phrases: s.Phrases,
			Vectors: make([][]float32, n),
		}
		for j := 0; j < n; j++ {
			v := vecs[offset+j]
			if t.dim == 0 {
				t.dim = len(v)
			}
			if len(v) != t.dim {
				return nil, fmt.Errorf("taxonomy: keyword %q embedded to %d dims, want %d", s.Phrases[j], len(v), t.dim)
			}
			ref.Vectors[j] = normalize(v)
		}
		t.levels[i] = ref
		offset += n
	}

	for _, g := range []model.Group{model.LowOrder, model.HighOrder} {
		agg := model.ReferenceSet{Name: g.String()}
		for _, l := range g.Levels() {
			agg.Phrases = append(agg.Phrases, t.levels[l].Phrases...)
			agg.Vectors = append(agg.Vectors, t.levels[l].Vectors...)
		}
		t.groups[g] = agg
	}

	return t, nil
}

// orderSets checks that sets cover each level exactly once and returns them
// in canonical level order.
func orderSets(sets []model.KeywordSet) ([]model.KeywordSet, error) {
	var byLevel [6]*model.KeywordSet
	for i := range sets {
		s := sets[i]
		if !s.Level.Valid() {
			return nil, fmt.Errorf("taxonomy: invalid level %d", int(s.Level))
		}
		if byLevel[s.Level] != nil {
			return nil, fmt.Errorf("taxonomy: duplicate keyword set for %s", s.Level)
		}
		if len(s.Phrases) == 0 {
			return nil, fmt.Errorf("taxonomy: keyword set for %s is empty", s.Level)
		}
		byLevel[s.Level] = &s
	}

	out := make([]model.KeywordSet, 0, len(byLevel))
	for _, l := range model.Levels() {
		s := byLevel[l]
		if s == nil {
			return nil, fmt.Errorf("taxonomy: missing keyword set for %s", l)
		}
		out = append(out, model.KeywordSet{Level: l, Phrases: append([]string(nil), s.Phrases...)})
	}
	return out, nil
}

// Level returns the reference set for a single level.
func (t *Taxonomy) Level(l model.Level) model.ReferenceSet {
	return t.levels[l]
}

// Group returns the aggregate reference set for LOTS or HOTS: the three
// level sets concatenated in canonical order.
func (t *Taxonomy) Group(g model.Group) model.ReferenceSet {
	return t.groups[g]
}

// KeywordSets returns the keyword sets in canonical level order.
func (t *Taxonomy) KeywordSets() []model.KeywordSet {
	out := make([]model.KeywordSet, len(t.sets))
	for i, s := range t.sets {
		out[i] = model.KeywordSet{Level: s.Level, Phrases: append([]string(nil), s.Phrases...)}
	}
	return out
}

// Dim returns the dimensionality of the reference vectors.
func (t *Taxonomy) Dim() int {
	return t.dim
}

// normalize returns a unit-length copy of v. A zero vector stays zero, which
// makes its cosine similarity with anything 0.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	inv := 1 / math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}
