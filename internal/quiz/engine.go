package quiz

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CelebrationThreshold is the accuracy at or above which the UI celebrates
// a submitted quiz.
const CelebrationThreshold = 0.8

// AnswerRecord is the scored record of one answered question.
type AnswerRecord struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
}

// Attempt is the immutable scored record of one quiz submission.
type Attempt struct {
	ModuleIndex int // zero-based module index
	QuizID      string
	Records     []AnswerRecord
}

// Score returns (correct, total) for this attempt.
func (a Attempt) Score() (int, int) {
	correct := 0
	for _, r := range a.Records {
		if r.IsCorrect {
			correct++
		}
	}
	return correct, len(a.Records)
}

// Perfect reports whether every answer was correct.
func (a Attempt) Perfect() bool {
	correct, total := a.Score()
	return total > 0 && correct == total
}

// Celebratory reports whether the attempt clears the celebration threshold.
func (a Attempt) Celebratory() bool {
	correct, total := a.Score()
	return total > 0 && float64(correct)/float64(total) >= CelebrationThreshold
}

// Engine scores quiz submissions and aggregates results per module.
// The latest attempt for a module supersedes earlier ones, mirroring a
// quiz being retaken.
type Engine struct {
	mu       sync.Mutex
	attempts map[int]Attempt
}

// NewEngine creates an empty Engine.
func NewEngine() *Engine {
	return &Engine{attempts: make(map[int]Attempt)}
}

// Submit scores userAnswers against questions in order and records the
// attempt for moduleIndex. Correctness is exact string equality after
// trimming whitespace; no further normalization is applied.
func (e *Engine) Submit(moduleIndex int, quizID string, questions []Question, userAnswers []string) (Attempt, error) {
	if len(userAnswers) != len(questions) {
		return Attempt{}, fmt.Errorf("answer count %d does not match question count %d", len(userAnswers), len(questions))
	}

	attempt := Attempt{
		ModuleIndex: moduleIndex,
		QuizID:      quizID,
		Records:     make([]AnswerRecord, len(questions)),
	}

	for i, q := range questions {
		user := userAnswers[i]
		attempt.Records[i] = AnswerRecord{
			Question:      q.Text,
			UserAnswer:    user,
			CorrectAnswer: q.Answer,
			IsCorrect:     strings.TrimSpace(user) == strings.TrimSpace(q.Answer),
		}
	}

	e.mu.Lock()
	e.attempts[moduleIndex] = attempt
	e.mu.Unlock()

	return attempt, nil
}

// Attempt returns the recorded attempt for a module, if any.
func (e *Engine) Attempt(moduleIndex int) (Attempt, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.attempts[moduleIndex]
	return a, ok
}

// Score returns (correct, total) for the module's recorded attempt.
// A module with no attempt scores (0, 0).
func (e *Engine) Score(moduleIndex int) (int, int) {
	a, ok := e.Attempt(moduleIndex)
	if !ok {
		return 0, 0
	}
	return a.Score()
}

// TotalScore sums (correct, total) over all modules with a recorded
// attempt. Modules never attempted contribute nothing.
func (e *Engine) TotalScore() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	correct, total := 0, 0
	for _, a := range e.attempts {
		c, n := a.Score()
		correct += c
		total += n
	}
	return correct, total
}

// HasAttempts reports whether any module has a recorded attempt.
func (e *Engine) HasAttempts() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.attempts) > 0
}

// AttemptedModules returns the zero-based indexes of modules with a
// recorded attempt, in ascending order.
func (e *Engine) AttemptedModules() []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	indexes := make([]int, 0, len(e.attempts))
	for i := range e.attempts {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}

// Reset discards all recorded attempts. Called when a new curriculum
// replaces the old one.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attempts = make(map[int]Attempt)
}
