package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/ui/theme"
)

// ConfirmResultMsg reports the answer to a Confirm prompt.
type ConfirmResultMsg struct {
	ID string
	OK bool
}

// Confirm is a yes/no prompt rendered as two buttons. No is the default.
type Confirm struct {
	ID       string
	Question string
	yes      bool
}

// NewConfirm creates a prompt whose result carries id.
func NewConfirm(id, question string) Confirm {
	return Confirm{ID: id, Question: question}
}

// Update handles left/right to pick a button, enter to answer, y/n as
// shortcuts and esc as no.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h", "right", "l", "tab":
		c.yes = !c.yes
	case "y":
		return c, c.answer(true)
	case "n", "esc":
		return c, c.answer(false)
	case "enter":
		return c, c.answer(c.yes)
	}
	return c, nil
}

func (c Confirm) answer(ok bool) tea.Cmd {
	id := c.ID
	return func() tea.Msg { return ConfirmResultMsg{ID: id, OK: ok} }
}

// View renders the question and the two buttons.
func (c Confirm) View() string {
	yes, no := theme.ButtonInactive, theme.ButtonActive
	if c.yes {
		yes, no = theme.ButtonActive, theme.ButtonInactive
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yes.Render("Yes"), "  ", no.Render("No"))
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Question) + "\n\n" + buttons
}
