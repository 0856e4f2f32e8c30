package session

import (
	"errors"
	"sync"

	"github.com/yusufk/chefmate/internal/config"
	"github.com/yusufk/chefmate/internal/curriculum"
	"github.com/yusufk/chefmate/internal/quiz"
)

// ErrModuleBusy is returned when a turn targets a module slot that
// another turn is still generating content for.
var ErrModuleBusy = errors.New("module content generation already in progress")

// State is the aggregate root for one interactive session: the active
// configuration, the current curriculum, the per-module side tables, quiz
// results and the chat transcript. Side tables are always sized to the
// curriculum length; a zero value in a slot means "not yet generated",
// never "generation failed".
type State struct {
	Config *config.State
	Engine *quiz.Engine

	mu             sync.Mutex
	curriculum     *curriculum.Curriculum
	moduleContents []string
	flashcards     [][]string
	imageURLs      []string
	quizzes        map[string]QuizInstance
	transcript     []Turn
	inflight       map[int]bool
}

// QuizInstance ties a generated quiz payload to its module.
type QuizInstance struct {
	ID          string
	ModuleIndex int // zero-based
	Questions   []quiz.Question
}

// New creates an empty session with the default configuration.
func New() *State {
	return &State{
		Config:   config.NewState(),
		Engine:   quiz.NewEngine(),
		quizzes:  make(map[string]QuizInstance),
		inflight: make(map[int]bool),
	}
}

// Curriculum returns the active curriculum, or nil if none was generated.
func (s *State) Curriculum() *curriculum.Curriculum {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curriculum
}

// SetCurriculum replaces the active curriculum and resets every
// module-indexed side table to fresh unset arrays of matching length.
// Quiz results and pending slot guards are discarded; the transcript
// survives.
func (s *State) SetCurriculum(cur *curriculum.Curriculum) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.curriculum = cur
	n := cur.Len()
	s.moduleContents = make([]string, n)
	s.flashcards = make([][]string, n)
	s.imageURLs = make([]string, n)
	s.quizzes = make(map[string]QuizInstance)
	s.inflight = make(map[int]bool)
	s.Engine.Reset()
}

// ModuleContent returns the generated teaching content for the zero-based
// module index, or "" if not yet generated.
func (s *State) ModuleContent(index int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.moduleContents) {
		return ""
	}
	return s.moduleContents[index]
}

// SetModuleContent stores teaching content for a module slot.
func (s *State) SetModuleContent(index int, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.moduleContents) {
		s.moduleContents[index] = content
	}
}

// Flashcards returns the flashcards for a module, or nil.
func (s *State) Flashcards(index int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.flashcards) {
		return nil
	}
	return s.flashcards[index]
}

// SetFlashcards stores flashcards for a module slot.
func (s *State) SetFlashcards(index int, cards []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.flashcards) {
		s.flashcards[index] = cards
	}
}

// ImageURL returns the illustrative image URL for a module, or "".
func (s *State) ImageURL(index int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.imageURLs) {
		return ""
	}
	return s.imageURLs[index]
}

// SetImageURL stores an image URL for a module slot.
func (s *State) SetImageURL(index int, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.imageURLs) {
		s.imageURLs[index] = url
	}
}

// BeginModuleWork marks a module slot as in-flight. Returns ErrModuleBusy
// when another turn is already generating content for the same slot.
func (s *State) BeginModuleWork(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[index] {
		return ErrModuleBusy
	}
	s.inflight[index] = true
	return nil
}

// EndModuleWork releases the slot guard taken by BeginModuleWork.
func (s *State) EndModuleWork(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, index)
}

// RegisterQuiz records a generated quiz instance so answer submissions
// can find its questions later.
func (s *State) RegisterQuiz(inst QuizInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[inst.ID] = inst
}

// QuizByID returns a registered quiz instance.
func (s *State) QuizByID(id string) (QuizInstance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.quizzes[id]
	return inst, ok
}
