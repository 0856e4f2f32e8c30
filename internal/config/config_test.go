package config

import (
	"strings"
	"sync"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	c := Default()
	c.Depth = "Master"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown depth")
	}

	c = Default()
	c.Language = "Klingon"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown language")
	}
}

func TestFragment_AllWorldSpecialCase(t *testing.T) {
	c := Default()
	c.Style = StyleAllWorld

	frag := c.Fragment()
	if strings.Contains(frag, "All World") {
		t.Errorf("fragment should not mention All World literally: %q", frag)
	}
	if !strings.Contains(frag, "everywhere so it does not matter") {
		t.Errorf("missing All World substitution: %q", frag)
	}
}

func TestFragment_MentionsEveryField(t *testing.T) {
	c := Config{
		Depth:    DepthExpert,
		Style:    StyleAsian,
		Time:     TimeLong,
		Mode:     ModeTextOnly,
		Language: LanguageTurkish,
	}

	frag := c.Fragment()
	for _, want := range []string{"Expert", "Asian", "Long", "Turkish"} {
		if !strings.Contains(frag, want) {
			t.Errorf("fragment missing %q: %q", want, frag)
		}
	}
}

func TestCanonicalKey_DistinguishesJoinedFields(t *testing.T) {
	a := Config{Depth: "Beginner", Style: "South-American", Time: "Short", Mode: ModeTextOnly, Language: LanguageEnglish}
	b := Config{Depth: "Beginner", Style: "South", Time: "American-Short", Mode: ModeTextOnly, Language: LanguageEnglish}

	if a.CanonicalKey() == b.CanonicalKey() {
		t.Error("canonical keys collide for different tuples")
	}
}

func TestState_Update(t *testing.T) {
	s := NewState()

	changed, err := s.Update(Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("identical config should not report a change")
	}

	next := Default()
	next.Mode = ModeImageContaining
	changed, err = s.Update(next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected change to be reported")
	}
	if s.Current().Mode != ModeImageContaining {
		t.Errorf("current mode = %q, want Image-Containing", s.Current().Mode)
	}

	bad := Default()
	bad.Style = "Martian"
	if _, err := s.Update(bad); err == nil {
		t.Error("expected validation error")
	}
}

// The settings screen may apply an update while a turn goroutine is
// rendering prompts from the same State. Run with -race.
func TestState_ConcurrentReadAndUpdate(t *testing.T) {
	s := NewState()

	next := Default()
	next.Mode = ModeImageContaining

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = s.Current().Fragment()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if _, err := s.Update(next); err != nil {
				t.Errorf("update: %v", err)
				return
			}
			if _, err := s.Update(Default()); err != nil {
				t.Errorf("update: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	if err := s.Current().Validate(); err != nil {
		t.Errorf("state left invalid after concurrent updates: %v", err)
	}
}
