package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/yusufk/chefmate/internal/quiz"
	"github.com/yusufk/chefmate/internal/session"
	"github.com/yusufk/chefmate/internal/tutor"
	"github.com/yusufk/chefmate/internal/ui/components"
	"github.com/yusufk/chefmate/internal/ui/layout"
	"github.com/yusufk/chefmate/internal/ui/theme"
)

const sidebarWidth = 30

func (s *ChatScreen) View(width, height int) string {
	transcriptWidth := width
	showSidebar := !layout.IsCompactWidth(width)
	if showSidebar {
		transcriptWidth = width - sidebarWidth - 1
	}

	left := s.renderConversation(transcriptWidth, height)
	if !showSidebar {
		return left
	}

	right := s.renderSidebar(sidebarWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// renderConversation renders the transcript, any active quiz and the
// prompt line, bottom-anchored.
func (s *ChatScreen) renderConversation(width, height int) string {
	bottom := s.renderBottom(width)
	bottomHeight := lipgloss.Height(bottom)

	historyHeight := height - bottomHeight - 1
	if historyHeight < 0 {
		historyHeight = 0
	}

	history := s.renderTranscript(width, historyHeight)

	return history + "\n" + bottom
}

func (s *ChatScreen) renderBottom(width int) string {
	var b strings.Builder

	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Render("  "+s.errMsg) + "\n")
	}

	if s.lastAttempt != nil {
		b.WriteString(s.renderAttemptResult(width))
	}

	switch {
	case s.quiz != nil:
		b.WriteString(s.renderQuiz(width))
	case s.busy:
		frame := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %s Cooking up a reply...", frame)))
	default:
		b.WriteString("  " + s.input.View())
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (s *ChatScreen) renderQuiz(width int) string {
	q := s.quiz
	header := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", q.index+1, len(q.instance.Questions)))
	body := q.choice.View()
	return lipgloss.NewStyle().Width(width).Render(header + "\n\n" + body)
}

func (s *ChatScreen) renderAttemptResult(width int) string {
	a := s.lastAttempt
	if a.Err != nil {
		return theme.Incorrect.Render("  "+a.Err.Error()) + "\n"
	}

	correct, total := a.Attempt.Score()
	line := fmt.Sprintf("  Score: %d/%d", correct, total)
	if a.Attempt.Celebratory() {
		line += "  🎉 Chef's kiss!"
		return theme.Correct.Render(line) + "\n"
	}
	return theme.Body.Render(line) + "\n"
}

// renderTranscript renders the most recent turns that fit, honoring the
// scroll offset.
func (s *ChatScreen) renderTranscript(width, height int) string {
	turns := s.session.Transcript()
	if len(turns) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Tell me what you want to learn to cook.")
	}

	var lines []string
	for _, turn := range turns {
		lines = append(lines, renderTurn(turn, width)...)
		lines = append(lines, "")
	}

	end := len(lines) - s.scrollUp
	if end > len(lines) {
		end = len(lines)
	}
	if end < 0 {
		end = 0
	}
	start := end - height
	if start < 0 {
		start = 0
	}

	visible := strings.Join(lines[start:end], "\n")
	return lipgloss.NewStyle().Width(width).Height(height).Render(visible)
}

func renderTurn(turn session.Turn, width int) []string {
	var speaker, text string
	if turn.Role == session.RoleUser {
		speaker = theme.UserTurn.Render("You")
		text = turn.Text
	} else {
		speaker = theme.Selected.Render("ChefMate")
		text = assistantText(turn)
	}

	body := lipgloss.NewStyle().
		Width(width - 2).
		Foreground(theme.Text).
		Render(text)

	lines := []string{speaker}
	lines = append(lines, strings.Split(body, "\n")...)
	return lines
}

// assistantText strips wire prefixes for display and annotates payloads.
func assistantText(turn session.Turn) string {
	switch turn.Kind {
	case session.KindQuiz:
		return "Quiz ready. Answer the questions below."
	case session.KindAnalysis:
		return strings.TrimSpace(strings.TrimPrefix(turn.Text, tutor.AnalysisPrefix))
	case session.KindImage:
		text := strings.TrimPrefix(turn.Text, tutor.ImagePrefix)
		if turn.ImageURL != "" {
			text += "\n\n" + theme.Hint.Render("Image: "+turn.ImageURL)
		}
		return text
	default:
		return turn.Text
	}
}

// renderSidebar shows the curriculum menu, quiz scores and the latest
// flashcards.
func (s *ChatScreen) renderSidebar(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Curriculum") + "\n\n")
	b.WriteString(s.sidebar.View())

	if scores := s.renderScores(width); scores != "" {
		b.WriteString("\n" + theme.Title.Render("Scores") + "\n\n")
		b.WriteString(scores)
	}

	if cards := s.renderFlashcards(); cards != "" {
		b.WriteString("\n" + theme.Title.Render("Flashcards") + "\n\n")
		b.WriteString(cards)
	}

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	if s.focus == focusSidebar {
		style = style.BorderForeground(theme.Primary)
	}
	return style.Render(b.String())
}

func (s *ChatScreen) renderScores(width int) string {
	cur := s.session.Curriculum()
	indexes := s.session.Engine.AttemptedModules()
	if len(indexes) == 0 {
		return ""
	}

	var b strings.Builder
	for _, idx := range indexes {
		mod, ok := cur.Module(idx + 1)
		if !ok {
			continue
		}
		correct, total := s.session.Engine.Score(idx)
		percent := 0.0
		if total > 0 {
			percent = float64(correct) / float64(total)
		}
		bar := components.NewScoreBar(fmt.Sprintf("M%d", mod.Number), percent, true, width-6)
		b.WriteString(bar.View() + "\n")
	}

	correct, total := s.session.Engine.TotalScore()
	if total > 0 && float64(correct)/float64(total) >= quiz.CelebrationThreshold {
		b.WriteString(theme.Correct.Render("Great overall accuracy!") + "\n")
	}
	return b.String()
}

func (s *ChatScreen) renderFlashcards() string {
	cur := s.session.Curriculum()
	var b strings.Builder
	for i := cur.Len() - 1; i >= 0; i-- {
		cards := s.session.Flashcards(i)
		if len(cards) == 0 {
			continue
		}
		for _, card := range cards {
			b.WriteString(theme.Hint.Render("• "+card) + "\n")
		}
		break // newest taught module only
	}
	return b.String()
}
