// Package distribution plans how many questions of each cognitive level a
// quiz of a given size should aim for.
package distribution

import (
	"math"

	"github.com/crimson-sun/bloomq/internal/model"
)

// shares is the target fraction of a quiz per level: 60% LOTS, 40% HOTS.
var shares = [...]float64{
	model.Remembering:   0.10,
	model.Understanding: 0.20,
	model.Application:   0.30,
	model.Analysis:      0.15,
	model.Evaluation:    0.15,
	model.Creating:      0.10,
}

// Distribution maps each level to a target question count.
type Distribution map[model.Level]int

// Share returns the target fraction for level l, or 0 for an invalid level.
func Share(l model.Level) float64 {
	if !l.Valid() {
		return 0
	}
	return shares[l]
}

// Plan returns the advisory target count per level for a quiz of total
// questions. Every level gets at least one, so the sum can exceed total
// for small quizzes and drift from it through rounding.
func Plan(total int) Distribution {
	if total < 0 {
		total = 0
	}
	d := make(Distribution, len(shares))
	for _, l := range model.Levels() {
		d[l] = max(1, int(math.Round(float64(total)*shares[l])))
	}
	return d
}

// Total returns the sum of all per-level counts.
func (d Distribution) Total() int {
	var n int
	for _, c := range d {
		n += c
	}
	return n
}

// Groups returns the summed counts for LOTS and HOTS.
func (d Distribution) Groups() (low, high int) {
	for l, c := range d {
		if l.Group() == model.HighOrder {
			high += c
		} else {
			low += c
		}
	}
	return low, high
}
