package model

// KeywordSet is the ordered list of cue phrases for one cognitive level.
type KeywordSet struct {
	Level   Level
	Phrases []string
}

// ReferenceSet is a list of phrases together with their pre-computed,
// unit-normalized embedding vectors.
type ReferenceSet struct {
	Name    string
	Phrases []string
	Vectors [][]float32
}
