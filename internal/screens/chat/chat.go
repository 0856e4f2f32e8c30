// Package chat implements the main conversation screen: transcript,
// prompt line, curriculum sidebar and inline quizzes.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/yusufk/chefmate/internal/navigation"
	"github.com/yusufk/chefmate/internal/screen"
	"github.com/yusufk/chefmate/internal/screens/settings"
	"github.com/yusufk/chefmate/internal/session"
	"github.com/yusufk/chefmate/internal/tutor"
	"github.com/yusufk/chefmate/internal/ui/components"
	"github.com/yusufk/chefmate/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// focusArea tracks which pane receives key input.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// activeQuiz is the in-progress quiz run: one question at a time,
// answers collected until the last one is submitted.
type activeQuiz struct {
	instance session.QuizInstance
	index    int
	choice   components.MultiChoice
	answers  []string
}

// ChatScreen implements screen.Screen for the conversation.
type ChatScreen struct {
	router  *tutor.Router
	session *session.State

	input   components.ChatInput
	sidebar components.Menu
	focus   focusArea

	busy         bool
	spinnerFrame int
	scrollUp     int // lines scrolled up from the bottom

	quiz        *activeQuiz
	lastAttempt *quizScoredMsg

	errMsg string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates the chat screen with injected dependencies.
func New(router *tutor.Router, sess *session.State) *ChatScreen {
	s := &ChatScreen{
		router:  router,
		session: sess,
		input:   components.NewChatInput("Ask anything, or name a dish to learn...", 400),
	}
	s.rebuildSidebar()
	return s
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	if cur := s.session.Curriculum(); cur != nil {
		return "Cooking " + cur.Topic
	}
	return "Chat"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	if s.quiz != nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Sidebar"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+S", Description: "Settings"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	return hints
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case turnDoneMsg:
		return s.handleTurnDone(msg)

	case quizScoredMsg:
		s.lastAttempt = &msg
		return s, nil

	case spinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.spinnerFrame++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == focusInput && s.quiz == nil && !s.busy {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ChatScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.quiz != nil {
		return s.handleQuizKey(msg)
	}

	switch msg.String() {
	case "tab":
		if s.focus == focusInput {
			s.focus = focusSidebar
		} else {
			s.focus = focusInput
		}
		return s, nil

	case "ctrl+s":
		return s, func() tea.Msg {
			return navigation.PushScreenMsg{Screen: settings.New(s.session.Config)}
		}

	case "pgup":
		s.scrollUp += 5
		return s, nil

	case "pgdown":
		s.scrollUp -= 5
		if s.scrollUp < 0 {
			s.scrollUp = 0
		}
		return s, nil

	case "enter":
		if s.focus == focusInput && !s.busy {
			text := strings.TrimSpace(s.input.Value())
			if text == "" {
				return s, nil
			}
			s.input.Reset()
			return s, s.submit(text)
		}
	}

	if s.focus == focusSidebar {
		var cmd tea.Cmd
		s.sidebar, cmd = s.sidebar.Update(msg)
		return s, cmd
	}

	if s.focus == focusInput && !s.busy {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ChatScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := s.quiz
	var cmd tea.Cmd
	q.choice, cmd = q.choice.Update(msg)
	if !q.choice.Submitted {
		return s, cmd
	}

	q.answers = append(q.answers, q.choice.Answer())

	if q.index+1 < len(q.instance.Questions) {
		q.index++
		next := q.instance.Questions[q.index]
		q.choice = components.NewMultiChoice(next.Text, next.Options, correctIndex(next.Options, next.Answer))
		return s, nil
	}

	// Last question answered: score the run.
	inst := q.instance
	answers := q.answers
	s.quiz = nil
	return s, func() tea.Msg {
		attempt, err := s.session.Engine.Submit(inst.ModuleIndex, inst.ID, inst.Questions, answers)
		return quizScoredMsg{Attempt: attempt, Err: err}
	}
}

// submit routes an utterance through the tutor in the background.
func (s *ChatScreen) submit(text string) tea.Cmd {
	s.busy = true
	s.errMsg = ""
	s.scrollUp = 0
	return tea.Batch(
		func() tea.Msg {
			resp, err := s.router.Route(context.Background(), text, s.session)
			return turnDoneMsg{Resp: resp, Err: err}
		},
		spinnerTick(),
	)
}

func (s *ChatScreen) handleTurnDone(msg turnDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	s.focus = focusInput
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.rebuildSidebar()

	if msg.Resp.Kind == tutor.KindQuiz {
		if inst, ok := s.session.QuizByID(msg.Resp.QuizID); ok && len(inst.Questions) > 0 {
			first := inst.Questions[0]
			s.quiz = &activeQuiz{
				instance: inst,
				choice:   components.NewMultiChoice(first.Text, first.Options, correctIndex(first.Options, first.Answer)),
			}
			s.lastAttempt = nil
		}
	}
	return s, nil
}

// rebuildSidebar refreshes the module menu from the current curriculum.
func (s *ChatScreen) rebuildSidebar() {
	var items []components.MenuItem

	cur := s.session.Curriculum()
	for i := 1; i <= cur.Len(); i++ {
		mod, _ := cur.Module(i)
		n := i
		items = append(items,
			components.MenuItem{
				Label: fmt.Sprintf("Learn %d: %s", mod.Number, mod.Title),
				Action: func() tea.Cmd {
					return s.submit(fmt.Sprintf("Proceed to module %d", n))
				},
			},
			components.MenuItem{
				Label: fmt.Sprintf("Quiz %d", mod.Number),
				Action: func() tea.Cmd {
					return s.submit(fmt.Sprintf("Evaluate me on Module %d", n))
				},
			},
		)
	}
	if cur.Len() > 0 {
		items = append(items, components.MenuItem{
			Label: "Analyse me",
			Action: func() tea.Cmd {
				return s.submit("Analyse my quiz results")
			},
		})
	}
	if len(items) == 0 {
		items = []components.MenuItem{{Label: "No curriculum yet", Disabled: true}}
	}
	s.sidebar = components.NewMenu(items)
}

func correctIndex(options []string, answer string) int {
	for i, opt := range options {
		if strings.TrimSpace(opt) == strings.TrimSpace(answer) {
			return i
		}
	}
	return 0
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
