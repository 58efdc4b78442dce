package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crimson-sun/bloomq/internal/model"
)

// Generation parameters sent with every quiz request.
const (
	DefaultMaxTokens   = 8192
	DefaultTemperature = 0.7
	DefaultTopP        = 0.95
	DefaultTopK        = 40
)

// Counts is the number of questions requested per bucket.
type Counts struct {
	MultipleChoice int `json:"multiple_choice"`
	TrueFalse      int `json:"true_false"`
	Identification int `json:"identification"`
}

// DefaultCounts asks for five questions of each type.
func DefaultCounts() Counts {
	return Counts{MultipleChoice: 5, TrueFalse: 5, Identification: 5}
}

// Total returns the number of questions across all buckets.
func (c Counts) Total() int {
	return c.MultipleChoice + c.TrueFalse + c.Identification
}

// Validate rejects negative counts.
func (c Counts) Validate() error {
	if c.MultipleChoice < 0 || c.TrueFalse < 0 || c.Identification < 0 {
		return fmt.Errorf("question counts must be non-negative, got %d/%d/%d",
			c.MultipleChoice, c.TrueFalse, c.Identification)
	}
	return nil
}

// withDefaults returns DefaultCounts when nothing was requested.
func (c Counts) withDefaults() Counts {
	if c == (Counts{}) {
		return DefaultCounts()
	}
	return c
}

// GenerateRequest describes a quiz to generate.
type GenerateRequest struct {
	Text string

	// Counts of zero in every bucket means DefaultCounts.
	Counts Counts
}

// Generator turns source text into a draft quiz with declared levels.
type Generator struct {
	provider Provider
}

// NewGenerator creates a Generator backed by p.
func NewGenerator(p Provider) *Generator {
	return &Generator{provider: p}
}

// Generate asks the provider for a quiz, repairs and validates the JSON and
// returns the decoded quiz with a fresh ID. Declared levels are left for
// the reconciler to check.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*model.Quiz, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("quizgen: source text is empty")
	}
	counts := req.Counts.withDefaults()
	if err := counts.Validate(); err != nil {
		return nil, fmt.Errorf("quizgen: %w", err)
	}

	schema := QuizSchema()
	llmReq := Request{
		System:      systemPrompt,
		Messages:    []Message{{Role: RoleUser, Content: BuildPrompt(req.Text, counts)}},
		Schema:      schema,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		TopK:        DefaultTopK,
	}

	start := time.Now()
	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("quizgen: generate: %w", err)
	}
	slog.Debug("quiz generated",
		"model", resp.Model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason,
		"latency", time.Since(start),
	)

	quiz, err := decodeQuiz(responseSchema(), resp.Content)
	if err != nil {
		return nil, fmt.Errorf("quizgen: %w", err)
	}
	quiz.ID = uuid.NewString()

	if quiz.Len() != counts.Total() {
		slog.Warn("generated question count differs from request",
			"requested", counts.Total(),
			"received", quiz.Len(),
		)
	}
	return quiz, nil
}

// decodeQuiz repairs raw model output, validates it against schema and
// decodes it.
func decodeQuiz(schema *Schema, raw json.RawMessage) (*model.Quiz, error) {
	repaired := json.RawMessage(RepairJSON(string(raw)))
	if err := validateResponse(schema, repaired); err != nil {
		return nil, err
	}

	var quiz model.Quiz
	if err := json.Unmarshal(repaired, &quiz); err != nil {
		return nil, &ErrInvalidResponse{Content: repaired, Err: err}
	}
	cleanChoices(&quiz)
	return &quiz, nil
}
