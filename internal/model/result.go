package model

// Scores maps each level to its mean cosine similarity.
type Scores map[Level]float64

// Detailed is the outcome of six-way classification.
type Detailed struct {
	Level      Level      `json:"cognitive_level"`
	Difficulty Difficulty `json:"difficulty"`
	Group      Group      `json:"lots_or_hots"`
	Confidence float64    `json:"confidence"`
	Scores     Scores     `json:"all_scores"`
}

// NewDetailed builds a Detailed result for level, deriving difficulty and
// group from the fixed tables.
func NewDetailed(level Level, confidence float64, scores Scores) Detailed {
	return Detailed{
		Level:      level,
		Difficulty: level.Difficulty(),
		Group:      level.Group(),
		Confidence: confidence,
		Scores:     scores,
	}
}

// Coarse is the outcome of two-way LOTS/HOTS classification.
type Coarse struct {
	Group      Group   `json:"classification"`
	Confidence float64 `json:"confidence"`
}

// Explanation extends Detailed with the aggregate group scores.
type Explanation struct {
	Detailed
	LowOrderScore  float64 `json:"lots_score"`
	HighOrderScore float64 `json:"hots_score"`
	// Difference is |score of the chosen level - mean of all six scores|.
	Difference float64 `json:"difference"`
}
