// Package app wires the Bubble Tea root model around the screen stack.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yusufk/chefmate/internal/navigation"
	"github.com/yusufk/chefmate/internal/screen"
	"github.com/yusufk/chefmate/internal/screens/chat"
	"github.com/yusufk/chefmate/internal/session"
	"github.com/yusufk/chefmate/internal/tutor"
	"github.com/yusufk/chefmate/internal/ui/layout"
)

// Deps are the collaborators the UI needs.
type Deps struct {
	Router  *tutor.Router
	Session *session.State
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	stack   *navigation.Stack
	session *session.State
	width   int
	height  int
}

func newAppModel(deps Deps) AppModel {
	chatScreen := chat.New(deps.Router, deps.Session)
	return AppModel{
		stack:   navigation.New(chatScreen),
		session: deps.Session,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.stack.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.stack.Depth() > 1 {
				return m, func() tea.Msg { return navigation.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.stack.Update(msg)
	return m, cmd
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

	active := m.stack.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	cfg := m.session.Config.Current()
	configSummary := fmt.Sprintf("%s · %s · %s", cfg.Depth, cfg.Mode, cfg.Language)

	header := layout.RenderHeader(title, configSummary, m.width)

	var footerHints []layout.KeyHint
	if hinter, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hinter.KeyHints()
	}
	if len(footerHints) == 0 {
		footerHints = []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.stack.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
