package quizgen

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/bloomq/internal/engine/distribution"
	"github.com/crimson-sun/bloomq/internal/model"
)

// MaxSourceRunes caps how much source text is sent to the model.
const MaxSourceRunes = 4000

const systemPrompt = "You are an expert college professor creating a comprehensive assessment."

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// BuildPrompt renders the user prompt for a quiz over text with the given
// question counts.
func BuildPrompt(text string, counts Counts) string {
	var b strings.Builder

	b.WriteString("Generate CHALLENGING, COLLEGE-LEVEL quiz questions based on the following text.\n\n")
	b.WriteString("TEXT:\n")
	b.WriteString(Truncate(text, MaxSourceRunes))
	b.WriteString("\n\n")

	b.WriteString(`DIFFICULTY REQUIREMENTS:
- Questions must require DEEP UNDERSTANDING and CRITICAL THINKING
- Avoid simple recall or direct copy-paste from text
- Multiple choice distractors should be plausible and test comprehension
- Questions should test application, analysis, and synthesis skills
- Use scenario-based and analytical questions where possible

`)

	fmt.Fprintf(&b, "Generate exactly:\n")
	fmt.Fprintf(&b, "- %d Multiple Choice questions:\n", counts.MultipleChoice)
	b.WriteString(`  * Each with 4 sophisticated options
  * Distractors should be plausible but incorrect
  * Test understanding, NOT just memorization
  * Include "All of the above" or "None of the above" sparingly
`)
	fmt.Fprintf(&b, "- %d True/False questions:\n", counts.TrueFalse)
	b.WriteString(`  * Include nuanced statements that require careful analysis
  * Avoid obvious or trivial statements
  * Test conceptual understanding and common misconceptions
`)
	fmt.Fprintf(&b, "- %d Identification questions:\n", counts.Identification)
	b.WriteString(`  * Require specific technical terms or concepts
  * Test precise knowledge and terminology
  * Answers should be 1-3 words (specific terms, not sentences)

`)

	b.WriteString("BLOOM'S TAXONOMY:\n")
	b.WriteString("Tag every question with \"cognitive_level\" (one of ")
	names := make([]string, 0, 6)
	for _, l := range model.Levels() {
		names = append(names, l.String())
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(") and the matching \"difficulty\" (easy, average or difficult).\n")
	b.WriteString("Aim for roughly this many questions per level across the whole quiz:\n")
	plan := distribution.Plan(counts.Total())
	for _, l := range model.Levels() {
		fmt.Fprintf(&b, "- %s (%s): %d\n", l, l.Difficulty(), plan[l])
	}
	b.WriteString("\n")

	b.WriteString(`Return ONLY valid JSON in this exact format:
{
  "multiple_choice": [
    {
      "question": "Question text here?",
      "choices": ["Option A text here", "Option B text here", "Option C text here", "Option D text here"],
      "correct_answer": 0,
      "cognitive_level": "analysis",
      "difficulty": "average",
      "points": 2
    }
  ],
  "true_false": [
    {
      "question": "Statement here",
      "correct_answer": true,
      "cognitive_level": "understanding",
      "difficulty": "easy",
      "points": 1
    }
  ],
  "identification": [
    {
      "question": "Question here?",
      "correct_answer": "Answer here",
      "cognitive_level": "remembering",
      "difficulty": "easy",
      "points": 2
    }
  ]
}

IMPORTANT:
- Return ONLY the JSON object, no markdown, no explanations, no code blocks.
- Choice text should NOT include letter prefixes (A., B., C., D.)
- Just the plain option text
`)
	return b.String()
}
