package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// CodeEditor is a multi-line editor for challenge submissions.
type CodeEditor struct {
	Model textarea.Model
}

// NewCodeEditor creates a focused editor with line numbers.
func NewCodeEditor(placeholder string, width, height int) CodeEditor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return CodeEditor{Model: ta}
}

// Init returns the cursor blink command.
func (e CodeEditor) Init() tea.Cmd {
	return e.Model.Focus()
}

// Update forwards input to the textarea.
func (e CodeEditor) Update(msg tea.Msg) (CodeEditor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// SetSize resizes the editor.
func (e *CodeEditor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// View renders the editor.
func (e CodeEditor) View() string {
	return e.Model.View()
}

// Value returns the editor contents.
func (e CodeEditor) Value() string {
	return e.Model.Value()
}
