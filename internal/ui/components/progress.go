package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/golearn/internal/ui/theme"
)

// ProgressBar displays a labelled horizontal bar for a percentage in [0, 100].
type ProgressBar struct {
	Label      string
	LabelWidth int // pads labels so stacked bars line up
	Percent    float64
	Detail     string // shown after the bar, e.g. "3/8"
	Width      int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, detail string, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Detail:  detail,
		Width:   width,
	}
}

// Ratio returns done/total as a percentage, or 0 when total is 0.
func Ratio(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(done) / float64(total)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	label := p.Label
	if w := p.LabelWidth - lipgloss.Width(label); w > 0 {
		label += strings.Repeat(" ", w)
	}

	var result string
	if label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	tail := fmt.Sprintf("  %3.0f%%", min(max(p.Percent, 0), 100))
	if p.Detail != "" {
		tail += "  " + p.Detail
	}

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(tail), 4)
	filled := min(max(int(float64(barWidth)*p.Percent/100), 0), barWidth)

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(tail)
	return result
}
