// Package progress is the progress tab: completion bars, the current
// session's activity, and answer history when a history store is present.
package progress

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/router"
	"github.com/abhisek/golearn/internal/screen"
	"github.com/abhisek/golearn/internal/session"
	"github.com/abhisek/golearn/internal/store"
	"github.com/abhisek/golearn/internal/ui/components"
	"github.com/abhisek/golearn/internal/ui/layout"
	"github.com/abhisek/golearn/internal/ui/theme"
)

const resetConfirmID = "reset-progress"

// maxHardest caps the "most missed" list.
const maxHardest = 3

// ProgressScreen summarizes the learner's progress.
type ProgressScreen struct {
	svc    *session.Service
	events store.EventRepo // optional

	stats   []store.ExerciseStats
	confirm *components.Confirm
	status  string
}

var (
	_ screen.Screen        = (*ProgressScreen)(nil)
	_ screen.InputCapturer = (*ProgressScreen)(nil)
)

// New creates the progress screen. events may be nil.
func New(svc *session.Service, events store.EventRepo) *ProgressScreen {
	s := &ProgressScreen{svc: svc, events: events}
	s.loadStats()
	return s
}

func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

// CapturingInput implements screen.InputCapturer.
func (s *ProgressScreen) CapturingInput() bool {
	return s.confirm != nil
}

// Confirming reports whether the reset prompt is open.
func (s *ProgressScreen) Confirming() bool {
	return s.confirm != nil
}

func (s *ProgressScreen) loadStats() {
	if s.events == nil {
		return
	}
	stats, err := s.events.AnswerStats(context.Background())
	if err != nil {
		s.stats = nil
		return
	}
	s.stats = stats
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.TabChangedMsg:
		s.status = ""
		s.loadStats()
		return s, nil

	case components.ConfirmResultMsg:
		if msg.ID != resetConfirmID {
			return s, nil
		}
		s.confirm = nil
		if !msg.OK {
			return s, nil
		}
		if _, err := s.svc.Dispatch(context.Background(), session.Reset{}); err != nil {
			s.status = err.Error()
			return s, nil
		}
		s.status = "Progress has been reset."
		return s, nil
	}

	if s.confirm != nil {
		var cmd tea.Cmd
		*s.confirm, cmd = s.confirm.Update(msg)
		return s, cmd
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "R" {
		c := components.NewConfirm(resetConfirmID, "Reset all progress? This cannot be undone.")
		s.confirm = &c
		s.status = ""
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	barWidth := min(max(width-6, 30), 80)
	sum := quiz.Breakdown(s.svc.Bank(), s.svc.State())

	const labelWidth = 14
	bar := func(label string, pct float64, detail string) string {
		p := components.NewProgressBar(label, pct, detail, barWidth)
		p.LabelWidth = labelWidth
		return p.View() + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("Overall") + "\n\n")
	b.WriteString(bar("Overall", sum.Percent, ""))
	b.WriteString(bar("Exercises", components.Ratio(sum.Score, sum.TotalExercises),
		fmt.Sprintf("%d/%d", sum.Score, sum.TotalExercises)))
	b.WriteString(bar("Challenges", components.Ratio(min(sum.ChallengeScore, sum.TotalChallenges), sum.TotalChallenges),
		fmt.Sprintf("%d/%d", sum.ChallengeScore, sum.TotalChallenges)))
	b.WriteString(bar("Roadmap", components.Ratio(sum.RoadmapDone, sum.RoadmapTotal),
		fmt.Sprintf("%d/%d", sum.RoadmapDone, sum.RoadmapTotal)))

	if len(sum.ByDifficulty) > 0 {
		b.WriteString("\n" + theme.Title.Render("By difficulty") + "\n\n")
		for _, dc := range sum.ByDifficulty {
			b.WriteString(bar(dc.Difficulty.Label(), components.Ratio(dc.Completed, dc.Total),
				fmt.Sprintf("%d/%d", dc.Completed, dc.Total)))
		}
	}

	ss := s.svc.Summary()
	b.WriteString("\n" + theme.Title.Render("This session") + "\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf(
		"%d answers, %d correct (%.0f%%), %d newly completed, %d challenges, %s",
		ss.Answers, ss.Correct, ss.Accuracy*100, ss.NewlyCompleted, ss.ChallengesCounted,
		ss.Duration.Round(time.Second))) + "\n")

	if hardest := s.hardest(); len(hardest) > 0 {
		b.WriteString("\n" + theme.Title.Render("Most missed") + "\n\n")
		for _, st := range hardest {
			label := fmt.Sprintf("Exercise %d", st.ExerciseIndex+1)
			if rec, err := s.svc.Bank().Exercise(st.ExerciseIndex); err == nil {
				label = layout.Wrap(rec.Prompt, barWidth)
				if i := strings.IndexByte(label, '\n'); i >= 0 {
					label = label[:i] + "…"
				}
			}
			b.WriteString(theme.Body.Render(label) + "\n")
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d attempts, %.0f%% correct", st.Attempts, st.Accuracy()*100)) + "\n")
		}
	}

	if s.confirm != nil {
		b.WriteString("\n" + s.confirm.View() + "\n")
	}
	if s.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(s.status) + "\n")
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

// hardest returns the exercises with the lowest accuracy that have at least
// one miss.
func (s *ProgressScreen) hardest() []store.ExerciseStats {
	var missed []store.ExerciseStats
	for _, st := range s.stats {
		if st.Correct < st.Attempts {
			missed = append(missed, st)
		}
	}
	sort.SliceStable(missed, func(i, j int) bool {
		return missed[i].Accuracy() < missed[j].Accuracy()
	})
	if len(missed) > maxHardest {
		missed = missed[:maxHardest]
	}
	return missed
}

// KeyHints implements screen.KeyHintProvider.
func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	if s.confirm != nil {
		return []layout.KeyHint{
			{Key: "y/n", Description: "Answer"},
			{Key: "←→", Description: "Choose"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Reset progress"},
		{Key: "Tab", Description: "Next tab"},
	}
}
