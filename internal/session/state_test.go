package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/yusufk/chefmate/internal/curriculum"
)

func testCurriculum(t *testing.T) *curriculum.Curriculum {
	t.Helper()
	cur, err := curriculum.Parse("steak", "# Module 1: A\nbody$$$# Module 2: B\nbody$$$# Module 3: C\nbody")
	if err != nil {
		t.Fatalf("parse curriculum: %v", err)
	}
	return cur
}

func TestSetCurriculum_SizesSideTables(t *testing.T) {
	s := New()
	s.SetCurriculum(testCurriculum(t))

	for i := 0; i < 3; i++ {
		if s.ModuleContent(i) != "" {
			t.Errorf("module %d content should be unset", i)
		}
		if s.Flashcards(i) != nil {
			t.Errorf("module %d flashcards should be unset", i)
		}
		if s.ImageURL(i) != "" {
			t.Errorf("module %d image should be unset", i)
		}
	}
}

func TestSetCurriculum_ResetsPriorState(t *testing.T) {
	s := New()
	s.SetCurriculum(testCurriculum(t))

	s.SetModuleContent(1, "teaching content")
	s.SetFlashcards(1, []string{"card"})
	s.SetImageURL(1, "https://img.example/x.png")
	s.AppendUser("how to cook a steak?")

	two, err := curriculum.Parse("soup", "# Module 1: X\nbody$$$# Module 2: Y\nbody")
	if err != nil {
		t.Fatalf("parse curriculum: %v", err)
	}
	s.SetCurriculum(two)

	if s.Curriculum().Len() != 2 {
		t.Fatalf("curriculum len = %d, want 2", s.Curriculum().Len())
	}
	if s.ModuleContent(1) != "" {
		t.Error("module contents should be reset")
	}
	if s.Flashcards(1) != nil {
		t.Error("flashcards should be reset")
	}
	if s.ImageURL(1) != "" {
		t.Error("image URLs should be reset")
	}
	if s.Engine.HasAttempts() {
		t.Error("quiz attempts should be reset")
	}
	if len(s.Transcript()) != 1 {
		t.Error("transcript must survive a curriculum change")
	}
}

func TestBeginModuleWork_RejectsOverlap(t *testing.T) {
	s := New()
	s.SetCurriculum(testCurriculum(t))

	if err := s.BeginModuleWork(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.BeginModuleWork(1); !errors.Is(err, ErrModuleBusy) {
		t.Fatalf("expected ErrModuleBusy, got %v", err)
	}
	// A different slot is fine.
	if err := s.BeginModuleWork(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.EndModuleWork(1)
	if err := s.BeginModuleWork(1); err != nil {
		t.Fatalf("slot should be free after EndModuleWork: %v", err)
	}
}

func TestHistory_SummarizesPayloadTurns(t *testing.T) {
	s := New()
	s.AppendUser("teach me module 1")
	s.AppendTurn(Turn{Kind: KindQuiz, QuizID: "q1"})
	s.AppendTurn(Turn{Kind: KindText, Text: "Here is the lesson."})

	h := s.History()
	if !strings.Contains(h, "User: teach me module 1") {
		t.Errorf("history missing user turn: %q", h)
	}
	if !strings.Contains(h, "[generated a quiz]") {
		t.Errorf("history missing quiz summary: %q", h)
	}
	if !strings.Contains(h, "Assistant: Here is the lesson.") {
		t.Errorf("history missing assistant turn: %q", h)
	}
}

func TestRegisterQuiz_Lookup(t *testing.T) {
	s := New()
	s.SetCurriculum(testCurriculum(t))

	s.RegisterQuiz(QuizInstance{ID: "quiz-2", ModuleIndex: 1})

	inst, ok := s.QuizByID("quiz-2")
	if !ok {
		t.Fatal("quiz instance not found")
	}
	if inst.ModuleIndex != 1 {
		t.Errorf("module index = %d, want 1", inst.ModuleIndex)
	}
	if _, ok := s.QuizByID("quiz-9"); ok {
		t.Error("unknown quiz id should not resolve")
	}
}
