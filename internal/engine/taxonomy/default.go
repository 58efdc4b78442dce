package taxonomy

import "github.com/crimson-sun/bloomq/internal/model"

// Cue phrases per level. Duplicates are intentional and kept: a phrase listed
// under two levels (or twice under one) weighs into each mean it appears in.
var (
	rememberingKeywords = []string{
		"identify", "define", "list", "name", "state", "label",
		"recall", "recognize", "match", "select", "who", "what",
		"when", "where", "which", "memorize", "repeat", "record",
	}

	understandingKeywords = []string{
		"explain", "summarize", "interpret", "classify", "describe",
		"discuss", "illustrate", "paraphrase", "restate", "translate",
		"compare", "contrast", "exemplify", "infer", "outline",
	}

	applicationKeywords = []string{
		"compute", "calculate", "solve", "apply", "demonstrate",
		"use", "show", "complete", "examine", "modify", "implement",
		"practice", "operate", "sketch", "employ", "execute",
	}

	analysisKeywords = []string{
		"analyze", "compare and contrast", "differentiate", "examine",
		"distinguish", "investigate", "categorize", "deconstruct",
		"breakdown", "organize", "separate", "inspect", "dissect",
		"detect", "diagram", "relate", "function", "motive", "inference",
	}

	evaluationKeywords = []string{
		"evaluate", "assess", "justify", "critique", "argue",
		"defend", "judge", "rate", "validate", "support",
		"recommend", "prioritize", "prove", "disprove", "appraise",
		"conclude", "measure", "rank", "test", "verify",
	}

	creatingKeywords = []string{
		"create", "design", "formulate", "propose", "construct",
		"develop", "predict", "hypothesize", "compose", "plan",
		"generate", "devise", "invent", "synthesize", "produce",
		"compile", "devise", "modify", "what if", "imagine",
	}
)

// DefaultKeywords returns the built-in keyword sets in canonical level order.
// The returned slices are copies; callers may not mutate the defaults.
func DefaultKeywords() []model.KeywordSet {
	lists := [][]string{
		rememberingKeywords,
		understandingKeywords,
		applicationKeywords,
		analysisKeywords,
		evaluationKeywords,
		creatingKeywords,
	}
	sets := make([]model.KeywordSet, len(lists))
	for i, l := range model.Levels() {
		sets[i] = model.KeywordSet{Level: l, Phrases: append([]string(nil), lists[i]...)}
	}
	return sets
}
