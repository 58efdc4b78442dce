// Package reconciler checks the cognitive level a generator declared for
// each question against an independent LOTS/HOTS classification and
// corrects it when the two disagree.
package reconciler

import (
	"fmt"
	"log/slog"

	"github.com/crimson-sun/bloomq/internal/engine/distribution"
	"github.com/crimson-sun/bloomq/internal/model"
)

// Fallback levels used when the declared level falls outside the
// empirically detected group.
const (
	LowOrderFallback  = model.Application
	HighOrderFallback = model.Analysis
)

// BatchClassifier is the coarse classification the reconciler depends on.
// *classifier.Classifier satisfies it.
type BatchClassifier interface {
	ClassifyBatch(questions []string) ([]model.Coarse, error)
}

// Resolve returns the final level for a question declared at declared whose
// text was empirically classified into group. A declared level inside the
// group is kept; otherwise the group's fallback level is used.
func Resolve(declared model.Level, group model.Group) model.Level {
	if group == model.HighOrder {
		if model.HighOrder.Contains(declared) {
			return declared
		}
		return HighOrderFallback
	}
	if model.LowOrder.Contains(declared) {
		return declared
	}
	return LowOrderFallback
}

// Entry records how one question was reconciled.
type Entry struct {
	Index      int                `json:"index"`
	Type       model.QuestionType `json:"type"`
	Declared   model.Level        `json:"declared_level"`
	Group      model.Group        `json:"empirical_group"`
	Confidence float64            `json:"confidence"`
	Final      model.Level        `json:"final_level"`
}

// Changed reports whether reconciliation altered the level.
func (e Entry) Changed() bool { return e.Declared != e.Final }

// Report summarizes a reconciliation pass.
type Report struct {
	Total   int                       `json:"total"`
	Changed int                       `json:"changed"`
	Counts  distribution.Distribution `json:"counts"`
	Target  distribution.Distribution `json:"target"`
	Entries []Entry                   `json:"entries,omitempty"`
}

// Reconciler rewrites question levels from a coarse classifier.
type Reconciler struct {
	cls BatchClassifier
}

// New creates a Reconciler backed by cls.
func New(cls BatchClassifier) *Reconciler {
	return &Reconciler{cls: cls}
}

// Reconcile classifies every question of quiz in one batch and assigns each
// its resolved level in place. Questions are visited in bucket order
// (multiple choice, true/false, identification). A classification error
// leaves the quiz untouched.
func (r *Reconciler) Reconcile(quiz *model.Quiz) (Report, error) {
	questions := quiz.Questions()
	types := bucketTypes(quiz)

	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = q.Text
	}

	results, err := r.cls.ClassifyBatch(texts)
	if err != nil {
		return Report{}, fmt.Errorf("reconciler: %w", err)
	}
	if len(results) != len(questions) {
		return Report{}, fmt.Errorf("reconciler: classifier returned %d results for %d questions", len(results), len(questions))
	}

	report := Report{
		Total:   len(questions),
		Counts:  make(distribution.Distribution, 6),
		Target:  distribution.Plan(len(questions)),
		Entries: make([]Entry, len(questions)),
	}
	for _, l := range model.Levels() {
		report.Counts[l] = 0
	}

	for i, q := range questions {
		declared := q.Declared()
		final := Resolve(declared, results[i].Group)
		q.Assign(final)

		e := Entry{
			Index:      i,
			Type:       types[i],
			Declared:   declared,
			Group:      results[i].Group,
			Confidence: results[i].Confidence,
			Final:      final,
		}
		report.Entries[i] = e
		report.Counts[final]++
		if e.Changed() {
			report.Changed++
			slog.Debug("corrected cognitive level",
				"index", i,
				"type", e.Type,
				"declared", declared,
				"group", e.Group,
				"final", final,
			)
		}
	}

	slog.Info("reconciled quiz",
		"questions", report.Total,
		"changed", report.Changed,
	)
	return report, nil
}

func bucketTypes(quiz *model.Quiz) []model.QuestionType {
	types := make([]model.QuestionType, 0, quiz.Len())
	for range quiz.MultipleChoice {
		types = append(types, model.MultipleChoiceType)
	}
	for range quiz.TrueFalse {
		types = append(types, model.TrueFalseType)
	}
	for range quiz.Identification {
		types = append(types, model.IdentificationType)
	}
	return types
}
