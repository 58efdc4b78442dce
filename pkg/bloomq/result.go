package bloomq

import (
	"github.com/crimson-sun/bloomq/internal/engine/reconciler"
	"github.com/crimson-sun/bloomq/internal/model"
)

// Result is a six-way classification. This is the stable public type;
// internal representations may evolve independently.
type Result struct {
	Level      string             `json:"cognitive_level"` // remembering … creating
	Difficulty string             `json:"difficulty"`      // easy, average, difficult
	Group      string             `json:"lots_or_hots"`    // LOTS or HOTS
	Confidence float64            `json:"confidence"`      // mean cosine similarity of the chosen level
	Scores     map[string]float64 `json:"all_scores"`      // keyed by level name
}

// CoarseResult is a LOTS/HOTS classification.
type CoarseResult struct {
	Group      string  `json:"classification"`
	Confidence float64 `json:"confidence"`
}

// Explanation is a Result with the aggregate group scores.
type Explanation struct {
	Result
	LowOrderScore  float64 `json:"lots_score"`
	HighOrderScore float64 `json:"hots_score"`
	Difference     float64 `json:"difference"`
}

// Quiz and its question types are what a generator produces and Reconcile
// corrects in place.
type (
	Quiz           = model.Quiz
	Question       = model.Question
	MultipleChoice = model.MultipleChoice
	TrueFalse      = model.TrueFalse
	Identification = model.Identification
	Report         = reconciler.Report
)

func resultFromDetailed(d model.Detailed) Result {
	scores := make(map[string]float64, len(d.Scores))
	for l, s := range d.Scores {
		scores[l.String()] = s
	}
	return Result{
		Level:      d.Level.String(),
		Difficulty: d.Difficulty.String(),
		Group:      d.Group.String(),
		Confidence: d.Confidence,
		Scores:     scores,
	}
}

func resultFromCoarse(c model.Coarse) CoarseResult {
	return CoarseResult{Group: c.Group.String(), Confidence: c.Confidence}
}
