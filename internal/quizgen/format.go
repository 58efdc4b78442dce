package quizgen

import "github.com/crimson-sun/bloomq/internal/model"

// Default points per question type when the generator gives none.
const (
	DefaultMultipleChoicePoints = 2
	DefaultTrueFalsePoints      = 1
	DefaultIdentificationPoints = 2
)

// Choice is one multiple choice option.
type Choice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// FormattedQuestion is a question flattened for delivery.
type FormattedQuestion struct {
	Type          model.QuestionType `json:"type"`
	Question      string             `json:"question"`
	Choices       []Choice           `json:"choices,omitempty"`
	CorrectAnswer string             `json:"correct_answer,omitempty"`
	Points        int                `json:"points"`
	Level         model.Level        `json:"cognitive_level"`
	Difficulty    model.Difficulty   `json:"difficulty"`
}

// FormattedQuiz is the delivery form of a quiz.
type FormattedQuiz struct {
	ID          string              `json:"id,omitempty"`
	Title       string              `json:"title"`
	Questions   []FormattedQuestion `json:"questions"`
	TotalPoints int                 `json:"total_points"`
}

// Format flattens quiz into a single question list in bucket order and
// totals the points. Level and difficulty come from the question's current
// (reconciled) level.
func Format(quiz *model.Quiz, title string) FormattedQuiz {
	out := FormattedQuiz{
		ID:        quiz.ID,
		Title:     title,
		Questions: make([]FormattedQuestion, 0, quiz.Len()),
	}

	add := func(fq FormattedQuestion, q *model.Question, def int) {
		fq.Question = q.Text
		fq.Points = pointsOr(q.Points, def)
		fq.Level = q.Level()
		fq.Difficulty = q.Difficulty()
		out.Questions = append(out.Questions, fq)
		out.TotalPoints += fq.Points
	}

	for i := range quiz.MultipleChoice {
		mc := &quiz.MultipleChoice[i]
		choices := make([]Choice, len(mc.Choices))
		for j, c := range mc.Choices {
			choices[j] = Choice{Text: c, IsCorrect: j == mc.CorrectAnswer}
		}
		add(FormattedQuestion{Type: model.MultipleChoiceType, Choices: choices}, &mc.Question, DefaultMultipleChoicePoints)
	}
	for i := range quiz.TrueFalse {
		tf := &quiz.TrueFalse[i]
		answer := "False"
		if tf.CorrectAnswer {
			answer = "True"
		}
		add(FormattedQuestion{Type: model.TrueFalseType, CorrectAnswer: answer}, &tf.Question, DefaultTrueFalsePoints)
	}
	for i := range quiz.Identification {
		id := &quiz.Identification[i]
		add(FormattedQuestion{Type: model.IdentificationType, CorrectAnswer: id.CorrectAnswer}, &id.Question, DefaultIdentificationPoints)
	}
	return out
}

func pointsOr(p, def int) int {
	if p <= 0 {
		return def
	}
	return p
}
