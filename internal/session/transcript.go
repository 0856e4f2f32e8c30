package session

import (
	"fmt"
	"strings"
)

// Role identifies the speaker of a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind identifies what a transcript turn carries.
type Kind string

const (
	KindText     Kind = "text"
	KindQuiz     Kind = "quiz"
	KindAnalysis Kind = "analysis"
	KindImage    Kind = "image"
)

// Turn is one record of the chat transcript.
type Turn struct {
	Role Role
	Kind Kind

	// Text is the prose content: the utterance, answer, analysis
	// narrative, or teaching content accompanying an image.
	Text string

	// QuizID references a registered quiz instance when Kind is KindQuiz.
	QuizID string

	// ImageURL is set when Kind is KindImage.
	ImageURL string
}

// AppendUser records a user utterance.
func (s *State) AppendUser(text string) {
	s.appendTurn(Turn{Role: RoleUser, Kind: KindText, Text: text})
}

// AppendTurn records an assistant turn.
func (s *State) AppendTurn(turn Turn) {
	turn.Role = RoleAssistant
	s.appendTurn(turn)
}

func (s *State) appendTurn(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if turn.Kind == "" {
		turn.Kind = KindText
	}
	s.transcript = append(s.transcript, turn)
}

// Transcript returns a copy of the transcript.
func (s *State) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// historyWindow bounds how many turns the conversational history includes
// when prompting the backend.
const historyWindow = 12

// History renders the recent transcript as conversational context for
// prompts. Non-text payloads are summarized by kind rather than replayed.
func (s *State) History() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if len(s.transcript) > historyWindow {
		start = len(s.transcript) - historyWindow
	}

	var b strings.Builder
	for _, turn := range s.transcript[start:] {
		speaker := "User"
		if turn.Role == RoleAssistant {
			speaker = "Assistant"
		}
		switch turn.Kind {
		case KindQuiz:
			fmt.Fprintf(&b, "%s: [generated a quiz]\n", speaker)
		case KindAnalysis:
			fmt.Fprintf(&b, "%s: [generated a performance analysis]\n", speaker)
		case KindImage:
			fmt.Fprintf(&b, "%s: [generated an image] %s\n", speaker, turn.Text)
		default:
			fmt.Fprintf(&b, "%s: %s\n", speaker, turn.Text)
		}
	}
	return b.String()
}
