// Package settings implements the configuration screen: five selectors
// covering depth, style, time budget, lesson mode and language.
package settings

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yusufk/chefmate/internal/config"
	"github.com/yusufk/chefmate/internal/navigation"
	"github.com/yusufk/chefmate/internal/screen"
	"github.com/yusufk/chefmate/internal/ui/components"
	"github.com/yusufk/chefmate/internal/ui/layout"
	"github.com/yusufk/chefmate/internal/ui/theme"
)

// SettingsScreen edits the live tutoring configuration.
type SettingsScreen struct {
	state   *config.State
	boxes   []components.SelectBox
	focused int
	errMsg  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings screen bound to the configuration state.
func New(state *config.State) *SettingsScreen {
	cfg := state.Current()
	boxes := []components.SelectBox{
		components.NewSelectBox("Depth", asStrings(config.Depths), string(cfg.Depth)),
		components.NewSelectBox("Style", asStrings(config.Styles), string(cfg.Style)),
		components.NewSelectBox("Time", asStrings(config.TimeBudgets), string(cfg.Time)),
		components.NewSelectBox("Mode", asStrings(config.Modes), string(cfg.Mode)),
		components.NewSelectBox("Language", asStrings(config.Languages), string(cfg.Language)),
	}
	boxes[0].Focused = true
	return &SettingsScreen{state: state, boxes: boxes}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "◂▸", Description: "Change"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		s.moveFocus(-1)
		return s, nil
	case "down", "j":
		s.moveFocus(1)
		return s, nil
	case "enter":
		if err := s.save(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return navigation.PopScreenMsg{} }
	}

	var cmd tea.Cmd
	s.boxes[s.focused], cmd = s.boxes[s.focused].Update(msg)
	return s, cmd
}

func (s *SettingsScreen) moveFocus(delta int) {
	s.boxes[s.focused].Focused = false
	s.focused += delta
	if s.focused < 0 {
		s.focused = len(s.boxes) - 1
	}
	if s.focused >= len(s.boxes) {
		s.focused = 0
	}
	s.boxes[s.focused].Focused = true
}

func (s *SettingsScreen) save() error {
	next := config.Config{
		Depth:    config.Depth(s.boxes[0].Value()),
		Style:    config.Style(s.boxes[1].Value()),
		Time:     config.TimeBudget(s.boxes[2].Value()),
		Mode:     config.Mode(s.boxes[3].Value()),
		Language: config.Language(s.boxes[4].Value()),
	}
	_, err := s.state.Update(next)
	return err
}

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Subtitle.Render("Tune how ChefMate teaches you") + "\n\n")
	for _, box := range s.boxes {
		b.WriteString(box.View() + "\n\n")
	}
	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Render(s.errMsg) + "\n")
	}

	card := theme.Card.Render(b.String())
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func asStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
