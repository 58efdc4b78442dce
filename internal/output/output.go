package output

import (
	"context"
	"fmt"
	"strings"

	"github.com/crimson-sun/bloomq/internal/engine/distribution"
	"github.com/crimson-sun/bloomq/internal/engine/reconciler"
	"github.com/crimson-sun/bloomq/internal/model"
	"github.com/crimson-sun/bloomq/internal/quizgen"
)

// Output defines the interface for result destinations.
type Output interface {
	Write(ctx context.Context, rec Record) error
	Close() error
}

// Kind tags what a Record carries.
type Kind string

const (
	KindClassification Kind = "classification"
	KindCoarse         Kind = "coarse"
	KindExplanation    Kind = "explanation"
	KindQuiz           Kind = "quiz"
	KindPlan           Kind = "plan"
)

// Record is one line of output. Only the fields relevant to Kind are set.
type Record struct {
	Kind     Kind   `json:"kind"`
	Question string `json:"question,omitempty"`

	Level          string       `json:"cognitive_level,omitempty"`
	Difficulty     string       `json:"difficulty,omitempty"`
	Group          string       `json:"lots_or_hots,omitempty"`
	Classification string       `json:"classification,omitempty"`
	Confidence     *float64     `json:"confidence,omitempty"`
	Scores         model.Scores `json:"all_scores,omitempty"`

	LowOrderScore  *float64 `json:"lots_score,omitempty"`
	HighOrderScore *float64 `json:"hots_score,omitempty"`
	Difference     *float64 `json:"difference,omitempty"`

	Quiz   *quizgen.FormattedQuiz    `json:"quiz,omitempty"`
	Report *reconciler.Report        `json:"report,omitempty"`
	Plan   distribution.Distribution `json:"plan,omitempty"`
}

// FromDetailed wraps a six-way classification of question.
func FromDetailed(question string, d model.Detailed) Record {
	return Record{
		Kind:       KindClassification,
		Question:   question,
		Level:      d.Level.String(),
		Difficulty: d.Difficulty.String(),
		Group:      d.Group.String(),
		Confidence: ptr(d.Confidence),
		Scores:     d.Scores,
	}
}

// FromCoarse wraps a LOTS/HOTS classification of question.
func FromCoarse(question string, c model.Coarse) Record {
	return Record{
		Kind:           KindCoarse,
		Question:       question,
		Classification: c.Group.String(),
		Confidence:     ptr(c.Confidence),
	}
}

// FromExplanation wraps an explained classification of question.
func FromExplanation(question string, e model.Explanation) Record {
	r := FromDetailed(question, e.Detailed)
	r.Kind = KindExplanation
	r.LowOrderScore = ptr(e.LowOrderScore)
	r.HighOrderScore = ptr(e.HighOrderScore)
	r.Difference = ptr(e.Difference)
	return r
}

// FromQuiz wraps a formatted quiz and, if non-nil, its reconciliation report.
func FromQuiz(quiz quizgen.FormattedQuiz, report *reconciler.Report) Record {
	return Record{Kind: KindQuiz, Quiz: &quiz, Report: report}
}

// FromPlan wraps a planned level distribution.
func FromPlan(plan distribution.Distribution) Record {
	return Record{Kind: KindPlan, Plan: plan}
}

// Verbosity controls how much of a Record is emitted.
type Verbosity int

const (
	Minimal  Verbosity = iota // labels only
	Standard                  // labels, confidences, scores, report summary
	Full                      // everything, including per-question report entries
)

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Full:
		return "full"
	default:
		return "standard"
	}
}

// ParseVerbosity maps a config string to a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimal":
		return Minimal, nil
	case "", "standard":
		return Standard, nil
	case "full":
		return Full, nil
	default:
		return Standard, fmt.Errorf("unknown verbosity %q", s)
	}
}

func ptr(f float64) *float64 { return &f }
