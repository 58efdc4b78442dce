package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/bloomq/internal/engine/classifier"
	"github.com/crimson-sun/bloomq/internal/engine/reconciler"
	"github.com/crimson-sun/bloomq/internal/engine/taxonomy"
	"github.com/crimson-sun/bloomq/internal/engine/testdata"
	"github.com/crimson-sun/bloomq/internal/model"
	"github.com/crimson-sun/bloomq/internal/quizgen"
)

const draftJSON = `{
  "multiple_choice": [
    {
      "question": "Evaluate how well these bridge designs handle wind load.",
      "choices": ["A. Suspension", "B. Beam", "C. Arch", "D. Truss"],
      "correct_answer": 0,
      "cognitive_level": "remembering",
      "difficulty": "easy"
    }
  ],
  "true_false": [
    {
      "question": "Define tension as a pulling force.",
      "correct_answer": true,
      "cognitive_level": "creating",
      "difficulty": "difficult"
    }
  ],
  "identification": [
    {
      "question": "Name the force that compresses a column.",
      "correct_answer": "Compression",
      "cognitive_level": "remembering"
    }
  ]
}`

func newKeywordReconciler(t *testing.T) *reconciler.Reconciler {
	t.Helper()
	sets := taxonomy.DefaultKeywords()
	emb := testdata.NewKeywordEmbedder(sets)
	tax, err := taxonomy.New(sets, emb)
	require.NoError(t, err)
	return reconciler.New(classifier.New(emb, tax))
}

func TestBuild(t *testing.T) {
	mock := quizgen.NewMockProvider(quizgen.MockResponse{Content: json.RawMessage(draftJSON)})
	svc := NewService(quizgen.NewGenerator(mock), newKeywordReconciler(t))

	res, err := svc.Build(context.Background(), Request{
		Text:   "Bridges carry loads through tension and compression.",
		Title:  "Statics",
		Counts: quizgen.Counts{MultipleChoice: 1, TrueFalse: 1, Identification: 1},
	})
	require.NoError(t, err)

	q := res.Quiz
	assert.Equal(t, "Statics", q.Title)
	assert.NotEmpty(t, q.ID)
	require.Len(t, q.Questions, 3)

	// "evaluate" reads as HOTS, so a declared remembering is corrected.
	assert.Equal(t, model.Analysis, q.Questions[0].Level)
	assert.Equal(t, model.Average, q.Questions[0].Difficulty)
	assert.Equal(t, "Suspension", q.Questions[0].Choices[0].Text)

	// "define" reads as LOTS, so a declared creating is corrected.
	assert.Equal(t, model.Application, q.Questions[1].Level)
	assert.Equal(t, model.Easy, q.Questions[1].Difficulty)

	assert.Equal(t, model.Remembering, q.Questions[2].Level)
	assert.Equal(t, 2+1+2, q.TotalPoints)

	assert.Equal(t, 3, res.Report.Total)
	assert.Equal(t, 2, res.Report.Changed)
}

func TestBuildDefaultTitle(t *testing.T) {
	mock := quizgen.NewMockProvider(quizgen.MockResponse{Content: json.RawMessage(draftJSON)})
	svc := NewService(quizgen.NewGenerator(mock), newKeywordReconciler(t))

	res, err := svc.Build(context.Background(), Request{Text: "Bridges."})
	require.NoError(t, err)
	assert.Equal(t, "Untitled Quiz", res.Quiz.Title)
}

func TestBuildGenerationError(t *testing.T) {
	boom := errors.New("offline")
	mock := quizgen.NewMockProvider(quizgen.MockResponse{Err: boom})
	svc := NewService(quizgen.NewGenerator(mock), newKeywordReconciler(t))

	_, err := svc.Build(context.Background(), Request{Text: "Bridges."})
	assert.ErrorIs(t, err, boom)
}

type failingReconciler struct{ err error }

func (f failingReconciler) Reconcile(*model.Quiz) (reconciler.Report, error) {
	return reconciler.Report{}, f.err
}

func TestBuildReconcileError(t *testing.T) {
	boom := errors.New("encoder failed")
	mock := quizgen.NewMockProvider(quizgen.MockResponse{Content: json.RawMessage(draftJSON)})
	svc := NewService(quizgen.NewGenerator(mock), failingReconciler{err: boom})

	_, err := svc.Build(context.Background(), Request{Text: "Bridges."})
	assert.ErrorIs(t, err, boom)
}
