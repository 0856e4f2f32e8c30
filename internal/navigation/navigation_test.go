package navigation

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/yusufk/chefmate/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "chat"}
	st := New(s1)

	s2 := &stubScreen{title: "settings"}
	st.Push(s2)

	if st.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", st.Depth())
	}
	if st.Active().Title() != "settings" {
		t.Errorf("expected active 'settings', got %q", st.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "chat"}
	st := New(s1)

	s2 := &stubScreen{title: "settings"}
	st.Push(s2)
	st.Pop()

	if st.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", st.Depth())
	}
	if st.Active().Title() != "chat" {
		t.Errorf("expected active 'chat', got %q", st.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	st := New(&stubScreen{title: "chat"})

	st.Pop()

	if st.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", st.Depth())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	st := New(&stubScreen{title: "chat"})

	s2 := &stubScreen{title: "flashcards"}
	st.Update(ReplaceScreenMsg{Screen: s2})

	if st.Active().Title() != "flashcards" {
		t.Errorf("expected active 'flashcards', got %q", st.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
	if st.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", st.Depth())
	}
}
