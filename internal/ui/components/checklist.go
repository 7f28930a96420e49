package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/ui/theme"
)

// ChecklistItem is one row of a Checklist.
type ChecklistItem struct {
	ID     string
	Label  string
	Detail string
	Done   bool
}

// ToggleItemMsg is emitted when the user toggles the selected item.
type ToggleItemMsg struct {
	ID string
}

// Checklist is a vertical list of items that can be ticked off.
type Checklist struct {
	Items    []ChecklistItem
	Selected int
}

// NewChecklist creates a checklist with the first item selected.
func NewChecklist(items []ChecklistItem) Checklist {
	return Checklist{Items: items}
}

// SetItems replaces the items, keeping the cursor in range.
func (c *Checklist) SetItems(items []ChecklistItem) {
	c.Items = items
	if c.Selected >= len(items) {
		c.Selected = max(len(items)-1, 0)
	}
}

// Update handles keyboard navigation. Enter or space emits ToggleItemMsg.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Items)-1 {
			c.Selected++
		}
	case "enter", "space", " ":
		if c.Selected >= 0 && c.Selected < len(c.Items) {
			id := c.Items[c.Selected].ID
			return c, func() tea.Msg { return ToggleItemMsg{ID: id} }
		}
	}
	return c, nil
}

// View renders the checklist.
func (c Checklist) View() string {
	var b strings.Builder
	for i, item := range c.Items {
		box := "[ ]"
		if item.Done {
			box = "[✓]"
		}
		line := box + " " + item.Label

		cursor := "    "
		style := theme.Unselected
		if item.Done {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		if i == c.Selected {
			cursor = "  ▸ "
			style = style.Bold(true).Foreground(theme.Primary)
		}
		b.WriteString(cursor + style.Render(line))
		if item.Detail != "" && i == c.Selected {
			b.WriteString("\n      " + theme.Hint.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
