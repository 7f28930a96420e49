package quiz

import (
	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/progress"
)

// OverallProgressPercent returns completed work as a percentage of all
// exercises and challenges, clamped to [0, 100]. It is 0 when there is
// nothing to complete.
func OverallProgressPercent(st progress.State, totalExercises, totalChallenges int) float64 {
	total := totalExercises + totalChallenges
	if total <= 0 {
		return 0
	}
	pct := 100 * float64(st.Score+st.ChallengeScore) / float64(total)
	return min(max(pct, 0), 100)
}

// Percent is OverallProgressPercent sized by bank.
func Percent(bank *exercise.Bank, st progress.State) float64 {
	return OverallProgressPercent(st, bank.Len(), bank.ChallengeCount())
}

// DifficultyCount is the completion tally for one difficulty level.
type DifficultyCount struct {
	Difficulty exercise.Difficulty
	Completed  int
	Total      int
}

// Summary is a breakdown of progress for display.
type Summary struct {
	Score           int
	TotalExercises  int
	ChallengeScore  int
	TotalChallenges int
	RoadmapDone     int
	RoadmapTotal    int
	Percent         float64
	ByDifficulty    []DifficultyCount
}

// Breakdown summarizes st against bank. RoadmapTotal counts DefaultTopics
// plus any custom topics the learner has marked complete.
func Breakdown(bank *exercise.Bank, st progress.State) Summary {
	s := Summary{
		Score:           st.Score,
		TotalExercises:  bank.Len(),
		ChallengeScore:  st.ChallengeScore,
		TotalChallenges: bank.ChallengeCount(),
		RoadmapTotal:    len(DefaultTopics),
		Percent:         Percent(bank, st),
	}

	for id, done := range st.Roadmap {
		if !done {
			continue
		}
		s.RoadmapDone++
		if _, ok := FindTopic(id); !ok {
			s.RoadmapTotal++
		}
	}

	for _, d := range exercise.AllDifficulties() {
		dc := DifficultyCount{Difficulty: d}
		for _, idx := range bank.FilterByDifficulty(d) {
			dc.Total++
			if st.IsCompleted(idx) {
				dc.Completed++
			}
		}
		if dc.Total > 0 {
			s.ByDifficulty = append(s.ByDifficulty, dc)
		}
	}
	return s
}
