package taxonomy

import (
	"fmt"
	"math"
	"testing"

	"github.com/crimson-sun/bloomq/internal/model"
)

// mockEmbedder returns deterministic vectors for testing.
type mockEmbedder struct {
	dim   int
	calls int
}

func (m *mockEmbedder) Embed(text string) ([]float32, error) {
	vecs, err := m.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *mockEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	m.calls++
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, m.dim)
		vec[0] = float32(i + 1)
		vec[1] = 1
		vecs[i] = vec
	}
	return vecs, nil
}

func (m *mockEmbedder) Close() error { return nil }

// failEmbedder always returns an error.
type failEmbedder struct{}

func (f *failEmbedder) Embed(string) ([]float32, error)          { return nil, fmt.Errorf("embed failed") }
func (f *failEmbedder) EmbedBatch([]string) ([][]float32, error) { return nil, fmt.Errorf("embed failed") }
func (f *failEmbedder) Close() error                             { return nil }

// shortEmbedder drops the last vector.
type shortEmbedder struct{ mockEmbedder }

func (s *shortEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	vecs, _ := s.mockEmbedder.EmbedBatch(texts)
	return vecs[:len(vecs)-1], nil
}

func smallSets() []model.KeywordSet {
	return []model.KeywordSet{
		{Level: model.Creating, Phrases: []string{"create"}},
		{Level: model.Remembering, Phrases: []string{"define", "list"}},
		{Level: model.Understanding, Phrases: []string{"explain"}},
		{Level: model.Application, Phrases: []string{"solve"}},
		{Level: model.Analysis, Phrases: []string{"analyze"}},
		{Level: model.Evaluation, Phrases: []string{"evaluate", "judge"}},
	}
}

func TestNewPreEmbeds(t *testing.T) {
	emb := &mockEmbedder{dim: 4}
	tax, err := New(smallSets(), emb)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if emb.calls != 1 {
		t.Errorf("expected a single EmbedBatch call, got %d", emb.calls)
	}
	if tax.Dim() != 4 {
		t.Errorf("Dim() = %d, want 4", tax.Dim())
	}

	// Sets are reordered canonically regardless of input order.
	ks := tax.KeywordSets()
	for i, l := range model.Levels() {
		if ks[i].Level != l {
			t.Errorf("KeywordSets()[%d].Level = %s, want %s", i, ks[i].Level, l)
		}
	}

	rem := tax.Level(model.Remembering)
	if rem.Name != "remembering" || len(rem.Vectors) != 2 {
		t.Fatalf("remembering set = %q with %d vectors", rem.Name, len(rem.Vectors))
	}

	// Every reference vector is unit length.
	for _, l := range model.Levels() {
		for j, v := range tax.Level(l).Vectors {
			var sum float64
			for _, x := range v {
				sum += float64(x) * float64(x)
			}
			if math.Abs(sum-1) > 1e-5 {
				t.Errorf("%s vector %d has squared norm %f, want 1", l, j, sum)
			}
		}
	}
}

func TestGroupAggregates(t *testing.T) {
	tax, err := New(smallSets(), &mockEmbedder{dim: 3})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	lots := tax.Group(model.LowOrder)
	wantLots := []string{"define", "list", "explain", "solve"}
	if len(lots.Phrases) != len(wantLots) || len(lots.Vectors) != len(wantLots) {
		t.Fatalf("LOTS aggregate has %d phrases / %d vectors, want %d", len(lots.Phrases), len(lots.Vectors), len(wantLots))
	}
	for i, p := range wantLots {
		if lots.Phrases[i] != p {
			t.Errorf("LOTS phrase %d = %q, want %q", i, lots.Phrases[i], p)
		}
	}

	hots := tax.Group(model.HighOrder)
	if hots.Name != "HOTS" || len(hots.Vectors) != 4 {
		t.Errorf("HOTS aggregate = %q with %d vectors, want 4", hots.Name, len(hots.Vectors))
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		sets []model.KeywordSet
	}{
		{"empty", nil},
		{"missing level", smallSets()[:5]},
		{"duplicate level", append(smallSets(), model.KeywordSet{Level: model.Creating, Phrases: []string{"invent"}})},
		{"empty phrases", append(smallSets()[1:], model.KeywordSet{Level: model.Creating})},
		{"invalid level", append(smallSets()[1:], model.KeywordSet{Level: model.Level(9), Phrases: []string{"x"}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.sets, &mockEmbedder{dim: 2}); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNewEmbedError(t *testing.T) {
	_, err := New(smallSets(), &failEmbedder{})
	if err == nil {
		t.Fatal("expected error from failing embedder")
	}
}

func TestNewVectorCountMismatch(t *testing.T) {
	_, err := New(smallSets(), &shortEmbedder{mockEmbedder{dim: 2}})
	if err == nil {
		t.Fatal("expected error when embedder returns too few vectors")
	}
}

func TestKeywordSetsAreCopies(t *testing.T) {
	tax, err := New(smallSets(), &mockEmbedder{dim: 2})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ks := tax.KeywordSets()
	ks[0].Phrases[0] = "mutated"
	if tax.KeywordSets()[0].Phrases[0] == "mutated" {
		t.Error("KeywordSets() exposed internal state")
	}
}

func TestDefaultKeywords(t *testing.T) {
	sets := DefaultKeywords()
	if len(sets) != 6 {
		t.Fatalf("expected 6 keyword sets, got %d", len(sets))
	}

	wantCounts := map[model.Level]int{
		model.Remembering:   18,
		model.Understanding: 15,
		model.Application:   16,
		model.Analysis:      19,
		model.Evaluation:    20,
		model.Creating:      20,
	}
	for i, s := range sets {
		if s.Level != model.Levels()[i] {
			t.Errorf("set %d has level %s, want canonical order", i, s.Level)
		}
		if len(s.Phrases) != wantCounts[s.Level] {
			t.Errorf("%s: expected %d phrases, got %d", s.Level, wantCounts[s.Level], len(s.Phrases))
		}
	}

	// Mutating the returned copy must not affect later calls.
	sets[0].Phrases[0] = "mutated"
	if DefaultKeywords()[0].Phrases[0] != "identify" {
		t.Error("DefaultKeywords() returned shared backing storage")
	}
}
