// Package navigation manages the screen stack: the chat screen at the
// bottom, settings or other overlays pushed on top.
package navigation

import (
	tea "charm.land/bubbletea/v2"

	"github.com/yusufk/chefmate/internal/screen"
)

// PushScreenMsg requests pushing a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests popping the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests replacing the current top screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Stack manages a stack of screens.
type Stack struct {
	screens []screen.Screen
}

// New creates a Stack with the given initial screen.
func New(initial screen.Screen) *Stack {
	return &Stack{screens: []screen.Screen{initial}}
}

// Push adds a screen on top of the stack and calls its Init().
func (s *Stack) Push(sc screen.Screen) tea.Cmd {
	s.screens = append(s.screens, sc)
	return sc.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (s *Stack) Pop() tea.Cmd {
	if len(s.screens) <= 1 {
		return nil
	}
	s.screens = s.screens[:len(s.screens)-1]
	return nil
}

// Replace swaps the top screen for a new one and calls its Init().
func (s *Stack) Replace(sc screen.Screen) tea.Cmd {
	if len(s.screens) == 0 {
		return s.Push(sc)
	}
	s.screens[len(s.screens)-1] = sc
	return sc.Init()
}

// Active returns the top screen on the stack.
func (s *Stack) Active() screen.Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Depth returns the number of screens on the stack.
func (s *Stack) Depth() int {
	return len(s.screens)
}

// Update forwards a message to the active screen and handles navigation messages.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return s.Push(msg.Screen)
	case PopScreenMsg:
		return s.Pop()
	case ReplaceScreenMsg:
		return s.Replace(msg.Screen)
	}

	active := s.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	s.screens[len(s.screens)-1] = updated
	return cmd
}

// View renders the active screen.
func (s *Stack) View(width, height int) string {
	active := s.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
