package model

import (
	"fmt"
	"strings"
)

// Level is one of the six cognitive levels of Bloom's taxonomy.
// The zero value is Remembering.
type Level int

const (
	Remembering Level = iota
	Understanding
	Application
	Analysis
	Evaluation
	Creating
)

// Levels returns the six levels in canonical order. Ties in scoring are
// broken by the first level in this order.
func Levels() []Level {
	return []Level{Remembering, Understanding, Application, Analysis, Evaluation, Creating}
}

var levelNames = [...]string{
	Remembering:   "remembering",
	Understanding: "understanding",
	Application:   "application",
	Analysis:      "analysis",
	Evaluation:    "evaluation",
	Creating:      "creating",
}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Valid reports whether l is one of the six defined levels.
func (l Level) Valid() bool {
	return l >= Remembering && l <= Creating
}

// Difficulty returns the fixed difficulty tag for the level.
func (l Level) Difficulty() Difficulty {
	switch l {
	case Analysis, Evaluation:
		return Average
	case Creating:
		return Difficult
	default:
		return Easy
	}
}

// Group returns the LOTS/HOTS group the level belongs to.
func (l Level) Group() Group {
	if l >= Analysis {
		return HighOrder
	}
	return LowOrder
}

// ParseLevel parses a level name, ignoring case and surrounding whitespace.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == s {
			return Level(i), true
		}
	}
	return Remembering, false
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("model: invalid level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	v, ok := ParseLevel(string(b))
	if !ok {
		return fmt.Errorf("model: unknown cognitive level %q", string(b))
	}
	*l = v
	return nil
}

// Difficulty is the coarse difficulty tag derived from a Level.
type Difficulty int

const (
	Easy Difficulty = iota
	Average
	Difficult
)

var difficultyNames = [...]string{
	Easy:      "easy",
	Average:   "average",
	Difficult: "difficult",
}

func (d Difficulty) String() string {
	if d < Easy || d > Difficult {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty parses a difficulty name, ignoring case and surrounding whitespace.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if name == s {
			return Difficulty(i), true
		}
	}
	return Easy, false
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Easy || d > Difficult {
		return nil, fmt.Errorf("model: invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, ok := ParseDifficulty(string(b))
	if !ok {
		return fmt.Errorf("model: unknown difficulty %q", string(b))
	}
	*d = v
	return nil
}

// Group splits the six levels into lower-order (LOTS) and higher-order
// (HOTS) thinking skills.
type Group int

const (
	LowOrder Group = iota
	HighOrder
)

func (g Group) String() string {
	switch g {
	case LowOrder:
		return "LOTS"
	case HighOrder:
		return "HOTS"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// Levels returns the three levels of the group in canonical order.
func (g Group) Levels() []Level {
	if g == HighOrder {
		return []Level{Analysis, Evaluation, Creating}
	}
	return []Level{Remembering, Understanding, Application}
}

// Contains reports whether l belongs to the group.
func (g Group) Contains(l Level) bool {
	return l.Valid() && l.Group() == g
}

func (g Group) MarshalText() ([]byte, error) {
	if g != LowOrder && g != HighOrder {
		return nil, fmt.Errorf("model: invalid group %d", int(g))
	}
	return []byte(g.String()), nil
}

func (g *Group) UnmarshalText(b []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "LOTS":
		*g = LowOrder
	case "HOTS":
		*g = HighOrder
	default:
		return fmt.Errorf("model: unknown group %q", string(b))
	}
	return nil
}
