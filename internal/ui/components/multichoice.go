package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector. It does not know the correct
// answer until Lock reveals it.
type MultiChoice struct {
	Options  []string
	Selected int

	// Chosen is the submitted option, or -1 while unanswered.
	Chosen int

	locked       bool
	correctIndex int
}

// NewMultiChoice creates an unanswered selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1}
}

// Update handles keyboard navigation and selection. Enter submits the
// highlighted option; a letter or digit submits that option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.locked || m.Chosen >= 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		m.Chosen = m.Selected
		return m, nil
	}

	if i, ok := directChoice(key, len(m.Options)); ok {
		m.Selected = i
		m.Chosen = i
	}
	return m, nil
}

// directChoice maps "a".."d" and "1".."4" to an option index.
func directChoice(key string, n int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	var i int
	switch {
	case c >= 'a' && c <= 'd':
		i = int(c - 'a')
	case c >= '1' && c <= '4':
		i = int(c - '1')
	default:
		return 0, false
	}
	return i, i < n
}

// Submitted reports whether an option has been chosen.
func (m MultiChoice) Submitted() bool {
	return m.Chosen >= 0
}

// Lock freezes the selector on chosen and reveals correctIndex.
func (m *MultiChoice) Lock(chosen, correctIndex int) {
	m.locked = true
	m.Chosen = chosen
	m.Selected = chosen
	m.correctIndex = correctIndex
}

// Locked reports whether the answer has been revealed.
func (m MultiChoice) Locked() bool {
	return m.locked
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, optionLabels[i], opt)

		var style lipgloss.Style
		switch {
		case m.locked && i == m.correctIndex:
			style = theme.Correct
			line += "  ✓"
		case m.locked && i == m.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.locked:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
