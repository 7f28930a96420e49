package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with GoLearn styling.
type TextInput struct {
	Model    textinput.Model
	Prompt   string
	errorMsg string
}

// NewTextInput creates a focused single-line input.
func NewTextInput(prompt, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti, Prompt: prompt}
}

// Init returns the cursor blink command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	t.errorMsg = ""
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := ""
	if t.Prompt != "" {
		view = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(t.Prompt) + "\n"
	}
	view += t.Model.View()
	if t.errorMsg != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(t.errorMsg)
	}
	return view
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetError shows msg under the input until the next keystroke.
func (t *TextInput) SetError(msg string) {
	t.errorMsg = msg
}
