package exercise

import (
	"errors"
	"fmt"
)

// Difficulty tags an exercise or challenge.
type Difficulty string

const (
	DifficultyNone         Difficulty = ""
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"

	// DifficultyAll is a filter value, never a tag.
	DifficultyAll Difficulty = "all"
)

// AllDifficulties returns the tag values in display order.
func AllDifficulties() []Difficulty {
	return []Difficulty{
		DifficultyBeginner,
		DifficultyIntermediate,
		DifficultyAdvanced,
	}
}

// Valid reports whether d is a known tag. The empty tag is valid.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyNone, DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Label returns a human-readable name.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	case DifficultyAll:
		return "All"
	default:
		return "Untagged"
	}
}

// ParseDifficulty parses a filter or tag value. Unknown values are rejected.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if d == DifficultyAll || (d != DifficultyNone && d.Valid()) {
		return d, nil
	}
	if s == "" {
		return DifficultyAll, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Record is a single multiple-choice exercise.
type Record struct {
	Prompt       string
	Snippet      string
	Options      []string
	CorrectIndex int
	Explanation  string
	Difficulty   Difficulty
}

// CorrectOption returns the text of the correct option.
func (r Record) CorrectOption() string {
	return r.Options[r.CorrectIndex]
}

// Challenge is a free-form coding task.
type Challenge struct {
	Title          string
	Description    string
	ExpectedOutput string
	Difficulty     Difficulty
}

var (
	ErrExerciseOutOfRange  = errors.New("exercise index out of range")
	ErrOptionOutOfRange    = errors.New("option index out of range")
	ErrChallengeOutOfRange = errors.New("challenge index out of range")
)

const (
	MinOptions = 2
	MaxOptions = 4
)
