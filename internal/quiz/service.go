// Package quiz runs the full pipeline: generate a draft quiz, reconcile its
// cognitive levels and format it for delivery.
package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/bloomq/internal/engine/reconciler"
	"github.com/crimson-sun/bloomq/internal/model"
	"github.com/crimson-sun/bloomq/internal/quizgen"
)

// Generator produces a draft quiz. *quizgen.Generator satisfies it.
type Generator interface {
	Generate(ctx context.Context, req quizgen.GenerateRequest) (*model.Quiz, error)
}

// Reconciler corrects declared levels in place.
// *reconciler.Reconciler satisfies it.
type Reconciler interface {
	Reconcile(quiz *model.Quiz) (reconciler.Report, error)
}

// Request describes a quiz to build.
type Request struct {
	Text   string
	Title  string
	Counts quizgen.Counts
}

// Result is a delivered quiz plus the reconciliation audit.
type Result struct {
	Quiz   quizgen.FormattedQuiz `json:"quiz"`
	Report reconciler.Report     `json:"report"`
}

// Service composes generation, reconciliation and formatting.
type Service struct {
	gen Generator
	rec Reconciler
}

// NewService creates a Service.
func NewService(gen Generator, rec Reconciler) *Service {
	return &Service{gen: gen, rec: rec}
}

// Build generates a quiz from req.Text, reconciles every question's level
// and formats the result under req.Title.
func (s *Service) Build(ctx context.Context, req Request) (Result, error) {
	draft, err := s.gen.Generate(ctx, quizgen.GenerateRequest{Text: req.Text, Counts: req.Counts})
	if err != nil {
		return Result{}, fmt.Errorf("quiz: %w", err)
	}

	report, err := s.rec.Reconcile(draft)
	if err != nil {
		return Result{}, fmt.Errorf("quiz: %w", err)
	}

	title := req.Title
	if title == "" {
		title = "Untitled Quiz"
	}
	formatted := quizgen.Format(draft, title)

	slog.Info("quiz built",
		"id", formatted.ID,
		"questions", len(formatted.Questions),
		"total_points", formatted.TotalPoints,
		"corrected", report.Changed,
	)
	return Result{Quiz: formatted, Report: report}, nil
}
