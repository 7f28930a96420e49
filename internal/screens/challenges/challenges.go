// Package challenges is the coding-challenge overlay pushed from the
// exercises tab.
package challenges

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/screen"
	"github.com/abhisek/golearn/internal/session"
	"github.com/abhisek/golearn/internal/ui/components"
	"github.com/abhisek/golearn/internal/ui/layout"
	"github.com/abhisek/golearn/internal/ui/theme"
)

// ChallengesScreen lists the challenges and hosts the code editor.
type ChallengesScreen struct {
	svc      *session.Service
	selected int

	editing bool
	editor  components.CodeEditor
	status  string
	ok      bool
}

var (
	_ screen.Screen        = (*ChallengesScreen)(nil)
	_ screen.InputCapturer = (*ChallengesScreen)(nil)
)

// New creates the challenges screen.
func New(svc *session.Service) *ChallengesScreen {
	return &ChallengesScreen{svc: svc}
}

func (s *ChallengesScreen) Init() tea.Cmd {
	return nil
}

func (s *ChallengesScreen) Title() string {
	return "Challenges"
}

// CapturingInput implements screen.InputCapturer.
func (s *ChallengesScreen) CapturingInput() bool {
	return s.editing
}

// Editing reports whether the editor is open.
func (s *ChallengesScreen) Editing() bool {
	return s.editing
}

// Status returns the message from the last submission.
func (s *ChallengesScreen) Status() string {
	return s.status
}

func (s *ChallengesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.editing {
		return s.updateEditor(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.svc.Bank().ChallengeCount()-1 {
			s.selected++
		}
	case "enter":
		if s.svc.Bank().ChallengeCount() == 0 {
			return s, nil
		}
		s.editing = true
		s.status = ""
		s.editor = components.NewCodeEditor("// write your solution here", 60, 10)
		return s, s.editor.Init()
	}
	return s, nil
}

func (s *ChallengesScreen) updateEditor(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.editing = false
			return s, nil
		case "ctrl+s":
			s.submit()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s *ChallengesScreen) submit() {
	res, err := s.svc.Dispatch(context.Background(), session.SubmitChallenge{
		Challenge: s.selected,
		Code:      s.editor.Value(),
	})
	if err != nil {
		s.status, s.ok = err.Error(), false
		return
	}
	if res.ChallengeCounted {
		s.status, s.ok = fmt.Sprintf("Solution recorded. Challenges completed: %d", res.State.ChallengeScore), true
		s.editing = false
		return
	}
	s.status, s.ok = fmt.Sprintf("Write at least %d characters of code before submitting.", quiz.MinSubmissionLength+1), false
}

func (s *ChallengesScreen) View(width, height int) string {
	bank := s.svc.Bank()
	if bank.ChallengeCount() == 0 {
		return "\n  " + theme.Hint.Render("This exercise bank has no challenges.")
	}

	innerWidth := max(width-4, 20)
	score := s.svc.State().ChallengeScore

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Completed %d of %d", min(score, bank.ChallengeCount()), bank.ChallengeCount())))
	b.WriteString("\n\n")

	for i, c := range bank.Challenges() {
		mark := "  "
		if i < score {
			mark = theme.Correct.Render("✓ ")
		}
		label := fmt.Sprintf("%d. %s", i+1, c.Title)
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ ") + mark + theme.Selected.Render(label))
		} else {
			b.WriteString(theme.Unselected.Render("  ") + mark + theme.Unselected.Render(label))
		}
		if c.Difficulty != "" {
			b.WriteString("  " + theme.Badge.Render(c.Difficulty.Label()))
		}
		b.WriteString("\n")
	}

	c, err := bank.Challenge(s.selected)
	if err == nil {
		b.WriteString("\n" + theme.Body.Render(layout.Wrap(c.Description, innerWidth)) + "\n")
		if c.ExpectedOutput != "" {
			b.WriteString("\n" + theme.Hint.Render("Expected output:") + "\n")
			b.WriteString(theme.Code.Render(strings.TrimRight(c.ExpectedOutput, "\n")) + "\n")
		}
	}

	if s.editing {
		s.editor.SetSize(min(innerWidth, 100), max(height-lipgloss.Height(b.String())-4, 5))
		b.WriteString("\n" + s.editor.View() + "\n")
	}
	if s.status != "" {
		style := theme.Incorrect
		if s.ok {
			style = theme.Correct
		}
		b.WriteString("\n" + style.Render(s.status) + "\n")
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

// KeyHints implements screen.KeyHintProvider.
func (s *ChallengesScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Esc", Description: "Close editor"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Solve"},
		{Key: "Esc", Description: "Back"},
	}
}
