package chat

import (
	"time"

	"github.com/yusufk/chefmate/internal/quiz"
	"github.com/yusufk/chefmate/internal/tutor"
)

// turnDoneMsg is sent when the tutor finishes routing an utterance.
type turnDoneMsg struct {
	Resp tutor.Response
	Err  error
}

// quizScoredMsg is sent when a completed quiz has been scored.
type quizScoredMsg struct {
	Attempt quiz.Attempt
	Err     error
}

// spinnerTickMsg animates the thinking indicator while a turn is in flight.
type spinnerTickMsg time.Time
