package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yusufk/chefmate/internal/ui/theme"
)

// SelectBox cycles through a fixed list of options with left/right keys.
type SelectBox struct {
	Label   string
	Options []string
	Index   int
	Focused bool
}

// NewSelectBox creates a SelectBox preselecting the option equal to value.
func NewSelectBox(label string, options []string, value string) SelectBox {
	index := 0
	for i, opt := range options {
		if opt == value {
			index = i
			break
		}
	}
	return SelectBox{Label: label, Options: options, Index: index}
}

// Update handles left/right cycling when focused.
func (s SelectBox) Update(msg tea.Msg) (SelectBox, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.Index--
		if s.Index < 0 {
			s.Index = len(s.Options) - 1
		}
	case "right", "l":
		s.Index++
		if s.Index >= len(s.Options) {
			s.Index = 0
		}
	}
	return s, nil
}

// View renders the label and the current option.
func (s SelectBox) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12).Render(s.Label)
	value := fmt.Sprintf("◂ %s ▸", s.Value())
	if s.Focused {
		return label + "  " + theme.Selected.Render(value)
	}
	return label + "  " + theme.Unselected.Render(value)
}

// Value returns the currently selected option.
func (s SelectBox) Value() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[s.Index]
}
