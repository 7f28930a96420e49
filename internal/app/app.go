// Package app wires the tabbed terminal UI to a session.
package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/router"
	"github.com/abhisek/golearn/internal/screen"
	"github.com/abhisek/golearn/internal/screens/exercises"
	"github.com/abhisek/golearn/internal/screens/progress"
	"github.com/abhisek/golearn/internal/screens/roadmap"
	"github.com/abhisek/golearn/internal/session"
	"github.com/abhisek/golearn/internal/store"
	"github.com/abhisek/golearn/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Session *session.Service
	Events  store.EventRepo // optional, enables history on the progress tab
	Logger  *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    *session.Service
	logger *slog.Logger
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tabs := []router.Tab{
		{ID: session.TabExercises, Label: "Exercises", Screen: exercises.New(opts.Session)},
		{ID: session.TabRoadmap, Label: "Roadmap", Screen: roadmap.New(opts.Session)},
		{ID: session.TabProgress, Label: "Progress", Screen: progress.New(opts.Session, opts.Events)},
	}
	return AppModel{
		router: router.New(tabs, opts.Session.Tab()),
		svc:    opts.Session,
		logger: logger.With("component", "tui"),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.TabChangedMsg:
		if _, err := m.svc.Dispatch(context.Background(), session.SelectTab{Tab: msg.ID}); err != nil {
			m.logger.Warn("select tab failed", "tab", msg.ID, "error", err)
		}
		// Let the newly active screen refresh from the session.
		return m, m.router.Update(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.capturing() {
			switch msg.String() {
			case "tab":
				return m, m.router.Next()
			case "shift+tab":
				return m, m.router.Prev()
			case "esc":
				if m.router.Depth() > 1 {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
				return m, nil
			case "q":
				if m.router.Depth() <= 1 {
					return m, tea.Quit
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// capturing reports whether the active screen is consuming raw key input.
func (m AppModel) capturing() bool {
	if c, ok := m.router.Active().(screen.InputCapturer); ok {
		return c.CapturingInput()
	}
	return false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	st := m.svc.State()
	bank := m.svc.Bank()
	header := layout.RenderHeader(m.tabLabels(), st.Score, bank.Len(), quiz.Percent(bank, st), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) tabLabels() []layout.TabLabel {
	active := m.router.ActiveTab()
	var labels []layout.TabLabel
	for _, t := range m.router.Tabs() {
		labels = append(labels, layout.TabLabel{Label: t.Label, Active: t.ID == active})
	}
	return labels
}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	if m.router.Depth() > 1 && !m.capturing() {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program and persists the session when it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("run app: no session")
	}
	defer opts.Session.Close(context.WithoutCancel(ctx))

	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
