package quizgen

import (
	"regexp"
	"strings"

	"github.com/crimson-sun/bloomq/internal/model"
)

var (
	leadingJSONFence = regexp.MustCompile("^```json\\s*")
	leadingFence     = regexp.MustCompile("^```\\s*")
	trailingFence    = regexp.MustCompile("\\s*```$")
	choicePrefix     = regexp.MustCompile(`^[A-D]\.\s*`)
)

// RepairJSON strips the markdown code fences models sometimes wrap around
// JSON output.
func RepairJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingJSONFence.ReplaceAllString(s, "")
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// StripChoicePrefix removes a leading "A. " through "D. " label.
func StripChoicePrefix(choice string) string {
	return strings.TrimSpace(choicePrefix.ReplaceAllString(choice, ""))
}

func cleanChoices(quiz *model.Quiz) {
	for i := range quiz.MultipleChoice {
		mc := &quiz.MultipleChoice[i]
		for j, c := range mc.Choices {
			mc.Choices[j] = StripChoicePrefix(c)
		}
	}
}
