package bloomq

import (
	"github.com/crimson-sun/bloomq/internal/engine/distribution"
	"github.com/crimson-sun/bloomq/internal/model"
)

// Level describes one cognitive level and the cue phrases that anchor it.
type Level struct {
	Name       string   `json:"name"`
	Difficulty string   `json:"difficulty"`
	Group      string   `json:"group"`
	Share      float64  `json:"target_share"`
	Keywords   []string `json:"keywords"`
}

// Levels returns the six levels in canonical order. The keyword slices are
// copies.
func (b *Bloomq) Levels() []Level {
	sets := b.engine.Taxonomy().KeywordSets()
	out := make([]Level, len(sets))
	for i, s := range sets {
		out[i] = Level{
			Name:       s.Level.String(),
			Difficulty: s.Level.Difficulty().String(),
			Group:      s.Level.Group().String(),
			Share:      distribution.Share(s.Level),
			Keywords:   s.Phrases,
		}
	}
	return out
}

// Distribution returns the target number of questions per level for a
// quiz of total questions. Every level gets at least one, so the sum can
// drift from total by a couple of questions.
func Distribution(total int) map[string]int {
	plan := distribution.Plan(total)
	out := make(map[string]int, len(plan))
	for _, l := range model.Levels() {
		out[l.String()] = plan[l]
	}
	return out
}
