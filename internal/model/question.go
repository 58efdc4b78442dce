package model

// QuestionType names the bucket a generated question belongs to.
type QuestionType string

const (
	MultipleChoiceType QuestionType = "multiple_choice"
	TrueFalseType      QuestionType = "true_false"
	IdentificationType QuestionType = "identification"
)

// Question holds the fields every generated question shares. The declared
// level and difficulty are whatever the generator claimed; the reconciled
// level is set with Assign and difficulty always follows from it.
type Question struct {
	Text               string `json:"question"`
	DeclaredLevel      string `json:"cognitive_level,omitempty"`
	DeclaredDifficulty string `json:"difficulty,omitempty"`
	Points             int    `json:"points,omitempty"`

	level    Level
	assigned bool
}

// Declared returns the declared cognitive level. A missing or unknown
// declaration yields Remembering.
func (q *Question) Declared() Level {
	l, _ := ParseLevel(q.DeclaredLevel)
	return l
}

// Assign sets the reconciled level.
func (q *Question) Assign(l Level) {
	q.level = l
	q.assigned = true
}

// Assigned reports whether Assign has been called.
func (q *Question) Assigned() bool { return q.assigned }

// Level returns the reconciled level, or the declared level before
// reconciliation.
func (q *Question) Level() Level {
	if q.assigned {
		return q.level
	}
	return q.Declared()
}

// Difficulty is derived from Level; it cannot be set on its own.
func (q *Question) Difficulty() Difficulty {
	return q.Level().Difficulty()
}

// MultipleChoice is a question with four options and the index of the
// correct one.
type MultipleChoice struct {
	Question
	Choices       []string `json:"choices"`
	CorrectAnswer int      `json:"correct_answer"`
}

// TrueFalse is a statement whose truth value is the answer.
type TrueFalse struct {
	Question
	CorrectAnswer bool `json:"correct_answer"`
}

// Identification expects a short term as its answer.
type Identification struct {
	Question
	CorrectAnswer string `json:"correct_answer"`
}

// Quiz is a generated quiz grouped into typed buckets.
type Quiz struct {
	ID             string           `json:"id,omitempty"`
	MultipleChoice []MultipleChoice `json:"multiple_choice"`
	TrueFalse      []TrueFalse      `json:"true_false"`
	Identification []Identification `json:"identification"`
}

// Questions returns pointers to every question in bucket order:
// multiple choice, true/false, identification.
func (q *Quiz) Questions() []*Question {
	out := make([]*Question, 0, q.Len())
	for i := range q.MultipleChoice {
		out = append(out, &q.MultipleChoice[i].Question)
	}
	for i := range q.TrueFalse {
		out = append(out, &q.TrueFalse[i].Question)
	}
	for i := range q.Identification {
		out = append(out, &q.Identification[i].Question)
	}
	return out
}

// Len returns the total number of questions across all buckets.
func (q *Quiz) Len() int {
	return len(q.MultipleChoice) + len(q.TrueFalse) + len(q.Identification)
}
