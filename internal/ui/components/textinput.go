package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/yusufk/chefmate/internal/ui/theme"
)

// ChatInput wraps bubbles/textinput for the chat prompt line.
type ChatInput struct {
	Model textinput.Model
}

// NewChatInput creates a focused, styled chat input.
func NewChatInput(placeholder string, charLimit int) ChatInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return ChatInput{Model: ti}
}

// Init returns the initial command.
func (c ChatInput) Init() tea.Cmd {
	return c.Model.Focus()
}

// Update handles messages.
func (c ChatInput) Update(msg tea.Msg) (ChatInput, tea.Cmd) {
	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	return c, cmd
}

// View renders the input with the prompt marker.
func (c ChatInput) View() string {
	return theme.Selected.Render("> ") + c.Model.View()
}

// Value returns the current input value.
func (c ChatInput) Value() string {
	return c.Model.Value()
}

// Reset clears the input.
func (c *ChatInput) Reset() {
	c.Model.SetValue("")
}
