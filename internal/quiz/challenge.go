package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/progress"
)

// MinSubmissionLength is the trimmed length a submission must exceed to
// count as an attempt.
const MinSubmissionLength = 50

// SubmitChallenge credits a coding challenge. Submissions are not compiled;
// a substantial one raises ChallengeScore to at least challengeIndex+1.
// The returned bool reports whether the submission counted.
func SubmitChallenge(bank *exercise.Bank, st progress.State, challengeIndex int, code string) (progress.State, bool, error) {
	if challengeIndex < 0 || challengeIndex >= bank.ChallengeCount() {
		return st, false, fmt.Errorf("%w: %d", exercise.ErrChallengeOutOfRange, challengeIndex)
	}
	if len(strings.TrimSpace(code)) <= MinSubmissionLength {
		return st.Clone(), false, nil
	}

	next := st.Clone()
	next.ChallengeScore = max(next.ChallengeScore, challengeIndex+1)
	return next, true, nil
}
