package quizgen

import "github.com/crimson-sun/bloomq/internal/model"

func levelNames() []any {
	out := make([]any, 0, 6)
	for _, l := range model.Levels() {
		out = append(out, l.String())
	}
	return out
}

// questionProps builds the shared question properties. With hints the
// declared level and difficulty carry enums that steer generation; without
// them any string passes, and unknown levels read as remembering later.
func questionProps(answer map[string]any, hints bool) map[string]any {
	level := map[string]any{"type": "string"}
	difficulty := map[string]any{"type": "string"}
	if hints {
		level["enum"] = levelNames()
		difficulty["enum"] = []any{"easy", "average", "difficult"}
	}
	return map[string]any{
		"question":        map[string]any{"type": "string", "minLength": 1},
		"correct_answer":  answer,
		"cognitive_level": level,
		"difficulty":      difficulty,
		"points":          map[string]any{"type": "integer", "minimum": 0},
	}
}

// QuizSchema describes the JSON document the generator must return: three
// arrays of typed questions, each optionally declaring a cognitive level
// and difficulty. It is sent to the provider as the response schema.
func QuizSchema() *Schema {
	return quizSchema("bloom-quiz", true)
}

// responseSchema is what generated quizzes are validated against. It
// tolerates declared levels and difficulties outside the enums.
func responseSchema() *Schema {
	return quizSchema("bloom-quiz-response", false)
}

func quizSchema(name string, hints bool) *Schema {
	mcProps := questionProps(map[string]any{"type": "integer", "minimum": 0, "maximum": 3}, hints)
	mcProps["choices"] = map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"minItems": 4,
		"maxItems": 4,
	}

	bucket := func(props map[string]any, required ...any) map[string]any {
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":       "object",
				"properties": props,
				"required":   required,
			},
		}
	}

	return &Schema{
		Name:        name,
		Description: "A quiz of multiple choice, true/false and identification questions tagged with Bloom's taxonomy levels",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"multiple_choice": bucket(mcProps, "question", "choices", "correct_answer"),
				"true_false":      bucket(questionProps(map[string]any{"type": "boolean"}, hints), "question", "correct_answer"),
				"identification":  bucket(questionProps(map[string]any{"type": "string"}, hints), "question", "correct_answer"),
			},
			"required": []any{"multiple_choice", "true_false", "identification"},
		},
	}
}
