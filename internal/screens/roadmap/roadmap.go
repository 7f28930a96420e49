// Package roadmap is the learning-roadmap tab.
package roadmap

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/router"
	"github.com/abhisek/golearn/internal/screen"
	"github.com/abhisek/golearn/internal/session"
	"github.com/abhisek/golearn/internal/ui/components"
	"github.com/abhisek/golearn/internal/ui/layout"
	"github.com/abhisek/golearn/internal/ui/theme"
)

const maxTopicLength = 60

// RoadmapScreen is a checklist of the built-in topics followed by any
// custom topics the learner has added.
type RoadmapScreen struct {
	svc   *session.Service
	list  components.Checklist
	input *components.TextInput
}

var (
	_ screen.Screen        = (*RoadmapScreen)(nil)
	_ screen.InputCapturer = (*RoadmapScreen)(nil)
)

// New creates the roadmap screen.
func New(svc *session.Service) *RoadmapScreen {
	s := &RoadmapScreen{svc: svc}
	s.list = components.NewChecklist(nil)
	s.refresh()
	return s
}

func (s *RoadmapScreen) Init() tea.Cmd {
	return nil
}

func (s *RoadmapScreen) Title() string {
	return "Roadmap"
}

// CapturingInput implements screen.InputCapturer.
func (s *RoadmapScreen) CapturingInput() bool {
	return s.input != nil
}

// Items returns the rows currently shown.
func (s *RoadmapScreen) Items() []components.ChecklistItem {
	return s.list.Items
}

func (s *RoadmapScreen) refresh() {
	s.list.SetItems(checklistItems(s.svc))
}

func checklistItems(svc *session.Service) []components.ChecklistItem {
	st := svc.State()
	items := make([]components.ChecklistItem, 0, len(quiz.DefaultTopics))
	for _, t := range quiz.DefaultTopics {
		items = append(items, components.ChecklistItem{
			ID:     t.ID,
			Label:  t.Title,
			Detail: t.Description,
			Done:   st.IsTopicDone(t.ID),
		})
	}

	var custom []string
	for _, id := range st.RoadmapList() {
		if _, ok := quiz.FindTopic(id); !ok {
			custom = append(custom, id)
		}
	}
	sort.Strings(custom)
	for _, id := range custom {
		items = append(items, components.ChecklistItem{ID: id, Label: id, Detail: "custom topic", Done: true})
	}
	return items
}

func (s *RoadmapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.input != nil {
		return s.updateInput(msg)
	}

	switch msg := msg.(type) {
	case router.TabChangedMsg:
		s.refresh()
		return s, nil

	case components.ToggleItemMsg:
		s.toggle(msg.ID)
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "a" {
			ti := components.NewTextInput("New topic", "e.g. context cancellation", maxTopicLength)
			s.input = &ti
			return s, ti.Init()
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *RoadmapScreen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.input = nil
			return s, nil
		case "enter":
			topic := s.input.Value()
			if topic == "" {
				s.input.SetError("Topic cannot be empty")
				return s, nil
			}
			if s.svc.State().IsTopicDone(topic) {
				s.input.SetError("Topic is already on the roadmap")
				return s, nil
			}
			s.input = nil
			s.toggle(topic)
			return s, nil
		}
	}

	var cmd tea.Cmd
	*s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *RoadmapScreen) toggle(id string) {
	if _, err := s.svc.Dispatch(context.Background(), session.ToggleTopic{TopicID: id}); err != nil {
		return
	}
	s.refresh()
}

func (s *RoadmapScreen) View(width, height int) string {
	sum := quiz.Breakdown(s.svc.Bank(), s.svc.State())

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d of %d topics done", sum.RoadmapDone, sum.RoadmapTotal)))
	b.WriteString("\n\n")
	b.WriteString(s.list.View())

	if s.input != nil {
		b.WriteString("\n" + s.input.View() + "\n")
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

// KeyHints implements screen.KeyHintProvider.
func (s *RoadmapScreen) KeyHints() []layout.KeyHint {
	if s.input != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "a", Description: "Add topic"},
		{Key: "Tab", Description: "Next tab"},
	}
}
