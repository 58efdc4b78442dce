package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/bloomq/internal/engine"
	"github.com/crimson-sun/bloomq/internal/engine/classifier"
	"github.com/crimson-sun/bloomq/internal/engine/reconciler"
	"github.com/crimson-sun/bloomq/internal/engine/taxonomy"
	"github.com/crimson-sun/bloomq/internal/engine/testdata"
	"github.com/crimson-sun/bloomq/internal/output"
)

func newKeywordEngine(t *testing.T) *engine.Engine {
	t.Helper()
	sets := taxonomy.DefaultKeywords()
	emb := testdata.NewKeywordEmbedder(sets)
	tax, err := taxonomy.New(sets, emb)
	require.NoError(t, err)
	cls := classifier.New(emb, tax)
	return engine.New(emb, tax, cls, reconciler.New(cls))
}

func TestClassifyRecords(t *testing.T) {
	questions := []string{"Define the term.", "Justify the choice of material."}

	tests := []struct {
		name    string
		coarse  bool
		explain bool
		check   func(t *testing.T, recs []output.Record)
	}{
		{
			name: "detailed",
			check: func(t *testing.T, recs []output.Record) {
				assert.Equal(t, output.KindClassification, recs[0].Kind)
				assert.Equal(t, "remembering", recs[0].Level)
				assert.Equal(t, "easy", recs[0].Difficulty)
				assert.Equal(t, "LOTS", recs[0].Group)
				assert.Equal(t, "evaluation", recs[1].Level)
				assert.Equal(t, "average", recs[1].Difficulty)
				assert.Equal(t, "HOTS", recs[1].Group)
				assert.Len(t, recs[1].Scores, 6)
				assert.Nil(t, recs[1].LowOrderScore)
			},
		},
		{
			name:   "coarse",
			coarse: true,
			check: func(t *testing.T, recs []output.Record) {
				assert.Equal(t, output.KindCoarse, recs[0].Kind)
				assert.Equal(t, "LOTS", recs[0].Classification)
				assert.Equal(t, "HOTS", recs[1].Classification)
				assert.Empty(t, recs[1].Level)
				require.NotNil(t, recs[1].Confidence)
			},
		},
		{
			name:    "explain",
			explain: true,
			check: func(t *testing.T, recs []output.Record) {
				assert.Equal(t, output.KindExplanation, recs[1].Kind)
				assert.Equal(t, "evaluation", recs[1].Level)
				require.NotNil(t, recs[1].LowOrderScore)
				require.NotNil(t, recs[1].HighOrderScore)
				require.NotNil(t, recs[1].Difference)
				assert.Greater(t, *recs[1].HighOrderScore, *recs[1].LowOrderScore)
				assert.Greater(t, *recs[1].Difference, 0.0, "winning score sits above the six-way mean")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifyCoarse, classifyExplain = tt.coarse, tt.explain
			t.Cleanup(func() { classifyCoarse, classifyExplain = false, false })

			recs, err := classifyRecords(newKeywordEngine(t), questions)
			require.NoError(t, err)
			require.Len(t, recs, len(questions))
			for i, r := range recs {
				assert.Equal(t, questions[i], r.Question)
			}
			tt.check(t, recs)
		})
	}
}
