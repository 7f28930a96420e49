// Package quiz implements the pure progress transitions: answering
// exercises, toggling roadmap topics, crediting challenges and computing
// overall progress. Every function returns a fresh State and leaves its
// input untouched; persisting the result is the caller's job.
package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/progress"
)

// Feedback describes the outcome of one answer.
type Feedback struct {
	Correct          bool
	Message          string
	CorrectIndex     int
	CorrectOption    string
	Explanation      string
	AlreadyCompleted bool
}

// Evaluate checks the chosen option of an exercise. A correct answer to an
// exercise not yet completed adds it to the completed set and increments
// the score; anything else leaves the state as it was.
func Evaluate(bank *exercise.Bank, st progress.State, exerciseIndex, chosenIndex int) (progress.State, Feedback, error) {
	rec, err := bank.Exercise(exerciseIndex)
	if err != nil {
		return st, Feedback{}, err
	}
	if chosenIndex < 0 || chosenIndex >= len(rec.Options) {
		return st, Feedback{}, fmt.Errorf("%w: option %d of exercise %d", exercise.ErrOptionOutOfRange, chosenIndex, exerciseIndex)
	}

	fb := Feedback{
		Correct:          chosenIndex == rec.CorrectIndex,
		CorrectIndex:     rec.CorrectIndex,
		CorrectOption:    rec.CorrectOption(),
		Explanation:      rec.Explanation,
		AlreadyCompleted: st.IsCompleted(exerciseIndex),
	}
	fb.Message = feedbackMessage(fb)

	next := st.Clone()
	if fb.Correct && !fb.AlreadyCompleted {
		next.Completed[exerciseIndex] = true
		next.Score++
	}
	return next, fb, nil
}

func feedbackMessage(fb Feedback) string {
	if fb.Correct {
		return strings.TrimSpace("Correct! " + fb.Explanation)
	}
	return strings.TrimSpace(fmt.Sprintf("Incorrect. The correct answer is: %s. %s", fb.CorrectOption, fb.Explanation))
}
