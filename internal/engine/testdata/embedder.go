package testdata

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/crimson-sun/bloomq/internal/model"
)

// KeywordEmbedder is a deterministic stand-in for a sentence encoder. Each
// distinct keyword phrase owns one dimension; a text's vector has 1 in every
// dimension whose phrase occurs in it as a whole-word sequence. Texts with no
// known phrase embed to the zero vector.
type KeywordEmbedder struct {
	phrases [][]string
	index   map[string]int

	// Calls counts EmbedBatch invocations; Texts counts embedded texts.
	Calls int
	Texts int
}

// NewKeywordEmbedder builds an embedder over the phrases of sets.
func NewKeywordEmbedder(sets []model.KeywordSet) *KeywordEmbedder {
	e := &KeywordEmbedder{index: make(map[string]int)}
	for _, s := range sets {
		for _, p := range s.Phrases {
			key := strings.ToLower(p)
			if _, ok := e.index[key]; ok {
				continue
			}
			e.index[key] = len(e.phrases)
			e.phrases = append(e.phrases, words(key))
		}
	}
	return e
}

// Dim returns the vector dimensionality.
func (e *KeywordEmbedder) Dim() int { return len(e.phrases) }

func (e *KeywordEmbedder) Embed(text string) ([]float32, error) {
	vecs, err := e.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *KeywordEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	e.Calls++
	e.Texts += len(texts)
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.vector(words(strings.ToLower(text)))
	}
	return out, nil
}

func (e *KeywordEmbedder) Close() error { return nil }

func (e *KeywordEmbedder) vector(ws []string) []float32 {
	vec := make([]float32, len(e.phrases))
	for d, phrase := range e.phrases {
		if containsSeq(ws, phrase) {
			vec[d] = 1
		}
	}
	return vec
}

func containsSeq(ws, seq []string) bool {
	if len(seq) == 0 || len(seq) > len(ws) {
		return false
	}
	for i := 0; i+len(seq) <= len(ws); i++ {
		match := true
		for j := range seq {
			if ws[i+j] != seq[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// FailingEmbedder returns Err from every call.
type FailingEmbedder struct {
	Err error
}

func (f *FailingEmbedder) err() error {
	if f.Err != nil {
		return f.Err
	}
	return fmt.Errorf("embed failed")
}

func (f *FailingEmbedder) Embed(string) ([]float32, error)          { return nil, f.err() }
func (f *FailingEmbedder) EmbedBatch([]string) ([][]float32, error) { return nil, f.err() }
func (f *FailingEmbedder) Close() error                             { return nil }
