package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/yusufk/chefmate/internal/ui/theme"
)

// ScoreBar displays a horizontal accuracy bar for one module.
type ScoreBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(label string, percent float64, showPercent bool, width int) ScoreBar {
	return ScoreBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the score bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += theme.ScoreFilled.Render(strings.Repeat(" ", filled))
	result += theme.ScoreEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}
