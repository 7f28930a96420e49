// Package exercises is the quiz tab: one multiple-choice exercise at a
// time, with a difficulty filter and per-session answer locking.
package exercises

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/router"
	"github.com/abhisek/golearn/internal/screen"
	"github.com/abhisek/golearn/internal/screens/challenges"
	"github.com/abhisek/golearn/internal/session"
	"github.com/abhisek/golearn/internal/ui/components"
	"github.com/abhisek/golearn/internal/ui/layout"
	"github.com/abhisek/golearn/internal/ui/theme"
)

var filterCycle = []exercise.Difficulty{
	exercise.DifficultyAll,
	exercise.DifficultyBeginner,
	exercise.DifficultyIntermediate,
	exercise.DifficultyAdvanced,
}

// ExercisesScreen shows the exercises that pass the current filter.
type ExercisesScreen struct {
	svc *session.Service

	filter  exercise.Difficulty
	visible []int // bank indices passing the filter
	pos     int   // position in visible

	choice   components.MultiChoice
	feedback *quiz.Feedback
	errMsg   string
}

var _ screen.Screen = (*ExercisesScreen)(nil)

// New creates the exercises screen.
func New(svc *session.Service) *ExercisesScreen {
	s := &ExercisesScreen{svc: svc}
	s.setFilter(exercise.DifficultyAll)
	return s
}

func (s *ExercisesScreen) Init() tea.Cmd {
	return nil
}

func (s *ExercisesScreen) Title() string {
	return "Exercises"
}

// Current returns the bank index of the exercise on screen, or -1 when the
// filter matches nothing.
func (s *ExercisesScreen) Current() int {
	if len(s.visible) == 0 {
		return -1
	}
	return s.visible[s.pos]
}

// Filter returns the active difficulty filter.
func (s *ExercisesScreen) Filter() exercise.Difficulty {
	return s.filter
}

func (s *ExercisesScreen) setFilter(d exercise.Difficulty) {
	s.filter = d
	s.visible = s.svc.Bank().FilterByDifficulty(d)
	s.pos = 0
	s.sync()
}

// sync rebuilds the option selector from the session's lock state.
func (s *ExercisesScreen) sync() {
	s.feedback = nil
	s.errMsg = ""
	idx := s.Current()
	if idx < 0 {
		s.choice = components.NewMultiChoice(nil)
		return
	}

	rec, _ := s.svc.Bank().Exercise(idx)
	s.choice = components.NewMultiChoice(rec.Options)
	if lock, ok := s.svc.Locked(idx); ok {
		s.choice.Lock(lock.Option, rec.CorrectIndex)
		// Re-derive the message; evaluation is pure and nothing is dispatched.
		if _, fb, err := quiz.Evaluate(s.svc.Bank(), s.svc.State(), idx, lock.Option); err == nil {
			s.feedback = &fb
		}
	}
}

func (s *ExercisesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.TabChangedMsg:
		s.sync()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "p":
			if s.pos > 0 {
				s.pos--
				s.sync()
			}
			return s, nil
		case "right", "l", "n":
			if s.pos < len(s.visible)-1 {
				s.pos++
				s.sync()
			}
			return s, nil
		case "f":
			s.setFilter(nextFilter(s.filter))
			return s, nil
		case "C":
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: challenges.New(s.svc)}
			}
		}
	}

	if s.choice.Locked() || s.Current() < 0 {
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted() {
		s.submit(s.choice.Chosen)
	}
	return s, cmd
}

func (s *ExercisesScreen) submit(option int) {
	idx := s.Current()
	res, err := s.svc.Dispatch(context.Background(), session.Answer{Exercise: idx, Option: option})
	if err != nil {
		s.errMsg = err.Error()
		s.choice.Chosen = -1
		return
	}
	s.choice.Lock(option, res.Feedback.CorrectIndex)
	s.feedback = res.Feedback
}

func nextFilter(d exercise.Difficulty) exercise.Difficulty {
	for i, f := range filterCycle {
		if f == d {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return exercise.DifficultyAll
}

func (s *ExercisesScreen) View(width, height int) string {
	innerWidth := max(width-4, 20)

	filterLabel := "All levels"
	if s.filter != exercise.DifficultyAll {
		filterLabel = s.filter.Label()
	}
	bar := theme.Subtitle.Render(fmt.Sprintf("Filter: %s", filterLabel))

	idx := s.Current()
	if idx < 0 {
		return "\n  " + bar + "\n\n  " + theme.Hint.Render("No exercises at this level. Press f to change the filter.")
	}

	rec, _ := s.svc.Bank().Exercise(idx)
	st := s.svc.State()

	var b strings.Builder
	b.WriteString("\n  " + bar)
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("   ·   Exercise %d of %d", s.pos+1, len(s.visible))))
	if rec.Difficulty != exercise.DifficultyNone {
		b.WriteString("   " + theme.Badge.Render(rec.Difficulty.Label()))
	}
	if st.IsCompleted(idx) {
		b.WriteString("   " + theme.Correct.Render("completed"))
	}
	b.WriteString("\n\n")

	body := theme.Body.Bold(true).Render(layout.Wrap(rec.Prompt, innerWidth)) + "\n"
	if rec.Snippet != "" {
		body += "\n" + theme.Code.Render(strings.TrimRight(rec.Snippet, "\n")) + "\n"
	}
	body += "\n" + s.choice.View()

	if s.feedback != nil {
		style := theme.Correct
		if !s.feedback.Correct {
			style = theme.Incorrect
		}
		body += "\n" + style.Render(layout.Wrap(s.feedback.Message, innerWidth))
	}
	if s.errMsg != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(body))
	return b.String()
}

// KeyHints implements screen.KeyHintProvider.
func (s *ExercisesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter/a-d", Description: "Answer"},
		{Key: "←→", Description: "Exercise"},
		{Key: "f", Description: "Filter"},
		{Key: "C", Description: "Challenges"},
		{Key: "Tab", Description: "Next tab"},
	}
}
