package api

import (
	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/progress"
	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/session"
)

type lockView struct {
	Option       int  `json:"option"`
	Correct      bool `json:"correct"`
	CorrectIndex int  `json:"correct_index"`
}

// exerciseView omits the correct index until the exercise is locked.
type exerciseView struct {
	Index       int       `json:"index"`
	Prompt      string    `json:"prompt"`
	Snippet     string    `json:"snippet,omitempty"`
	Options     []string  `json:"options"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Completed   bool      `json:"completed"`
	Locked      *lockView `json:"locked,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
}

type challengeView struct {
	Index          int    `json:"index"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ExpectedOutput string `json:"expected_output,omitempty"`
	Difficulty     string `json:"difficulty,omitempty"`
	Credited       bool   `json:"credited"`
}

type topicView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Done        bool   `json:"done"`
}

type progressView struct {
	Score          int             `json:"score"`
	ChallengeScore int             `json:"challenge_score"`
	Completed      []int           `json:"completed"`
	Roadmap        map[string]bool `json:"roadmap"`
	Percent        float64         `json:"percent"`
}

type feedbackView struct {
	Correct          bool   `json:"correct"`
	Message          string `json:"message"`
	CorrectIndex     int    `json:"correct_index"`
	CorrectOption    string `json:"correct_option"`
	Explanation      string `json:"explanation"`
	AlreadyCompleted bool   `json:"already_completed"`
}

type difficultyView struct {
	Difficulty string `json:"difficulty"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
}

type breakdownView struct {
	Score           int              `json:"score"`
	TotalExercises  int              `json:"total_exercises"`
	ChallengeScore  int              `json:"challenge_score"`
	TotalChallenges int              `json:"total_challenges"`
	RoadmapDone     int              `json:"roadmap_done"`
	RoadmapTotal    int              `json:"roadmap_total"`
	Percent         float64          `json:"percent"`
	ByDifficulty    []difficultyView `json:"by_difficulty"`
}

func newExerciseView(svc *session.Service, idx int, rec exercise.Record, st progress.State) exerciseView {
	v := exerciseView{
		Index:      idx,
		Prompt:     rec.Prompt,
		Snippet:    rec.Snippet,
		Options:    rec.Options,
		Difficulty: string(rec.Difficulty),
		Completed:  st.IsCompleted(idx),
	}
	if lock, ok := svc.Locked(idx); ok {
		v.Locked = &lockView{Option: lock.Option, Correct: lock.Correct, CorrectIndex: rec.CorrectIndex}
		v.Explanation = rec.Explanation
	}
	return v
}

func newProgressView(bank *exercise.Bank, st progress.State) progressView {
	roadmap := make(map[string]bool, len(st.Roadmap))
	for id, done := range st.Roadmap {
		if done {
			roadmap[id] = true
		}
	}
	return progressView{
		Score:          st.Score,
		ChallengeScore: st.ChallengeScore,
		Completed:      append([]int{}, st.CompletedList()...),
		Roadmap:        roadmap,
		Percent:        quiz.Percent(bank, st),
	}
}

func newFeedbackView(fb quiz.Feedback) feedbackView {
	return feedbackView{
		Correct:          fb.Correct,
		Message:          fb.Message,
		CorrectIndex:     fb.CorrectIndex,
		CorrectOption:    fb.CorrectOption,
		Explanation:      fb.Explanation,
		AlreadyCompleted: fb.AlreadyCompleted,
	}
}

func newBreakdownView(s quiz.Summary) breakdownView {
	v := breakdownView{
		Score:           s.Score,
		TotalExercises:  s.TotalExercises,
		ChallengeScore:  s.ChallengeScore,
		TotalChallenges: s.TotalChallenges,
		RoadmapDone:     s.RoadmapDone,
		RoadmapTotal:    s.RoadmapTotal,
		Percent:         s.Percent,
		ByDifficulty:    []difficultyView{},
	}
	for _, d := range s.ByDifficulty {
		v.ByDifficulty = append(v.ByDifficulty, difficultyView{
			Difficulty: string(d.Difficulty),
			Completed:  d.Completed,
			Total:      d.Total,
		})
	}
	return v
}
