package curriculum

import (
	"errors"
	"testing"
)

func TestParse_TwoModules(t *testing.T) {
	raw := "# Module 1: A\nbody1$$$# Module 2: B\nbody2"

	cur, err := Parse("steak", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur.Len() != 2 {
		t.Fatalf("modules = %d, want 2", cur.Len())
	}
	if cur.Modules[0].Title != "A" {
		t.Errorf("first title = %q, want A", cur.Modules[0].Title)
	}
	if cur.Modules[1].Title != "B" {
		t.Errorf("second title = %q, want B", cur.Modules[1].Title)
	}
	if cur.Modules[0].Number != 1 || cur.Modules[1].Number != 2 {
		t.Errorf("numbers = %d, %d, want 1, 2", cur.Modules[0].Number, cur.Modules[1].Number)
	}
}

func TestParse_DropsEmptySegments(t *testing.T) {
	raw := "$$$\n\n$$$# Module 1: Basics\nbody$$$   \n$$$"

	cur, err := Parse("soup", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur.Len() != 1 {
		t.Fatalf("modules = %d, want 1", cur.Len())
	}
	if cur.Modules[0].Title != "Basics" {
		t.Errorf("title = %q, want Basics", cur.Modules[0].Title)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse("soup", "   \n ")
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestParse_DirectionsAndSubmodules(t *testing.T) {
	raw := `# Module 1: Knife Skills
###### Directions: Learn to hold and sharpen a knife.
## :pushpin: Submodule 1.a: The Grip
###### Directions: Practice the pinch grip.
## :pushpin: Submodule 1.b: Sharpening
###### Directions: Use a whetstone safely.`

	cur, err := Parse("prep", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := cur.Modules[0]
	if m.Title != "Knife Skills" {
		t.Errorf("title = %q, want Knife Skills", m.Title)
	}
	if m.Directions != "Learn to hold and sharpen a knife." {
		t.Errorf("directions = %q", m.Directions)
	}
	if len(m.Submodules) != 2 {
		t.Fatalf("submodules = %d, want 2", len(m.Submodules))
	}
	if m.Submodules[0].Title != "The Grip" {
		t.Errorf("submodule title = %q, want The Grip", m.Submodules[0].Title)
	}
	if m.Submodules[1].Directions != "Use a whetstone safely." {
		t.Errorf("submodule directions = %q", m.Submodules[1].Directions)
	}
}

func TestModule_Lookup(t *testing.T) {
	cur, err := Parse("steak", "# Module 1: A\nbody$$$# Module 2: B\nbody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := cur.Module(0); ok {
		t.Error("module 0 should not exist")
	}
	if _, ok := cur.Module(3); ok {
		t.Error("module 3 should not exist")
	}
	m, ok := cur.Module(2)
	if !ok || m.Title != "B" {
		t.Errorf("module 2 = %+v, ok = %v", m, ok)
	}
}

func TestCacheKey_Deterministic(t *testing.T) {
	cfgA := defaultTestConfig()
	cfgB := defaultTestConfig()

	if CacheKey("beef stew", cfgA) != CacheKey("beef stew", cfgB) {
		t.Error("identical inputs must produce identical keys")
	}
	if CacheKey("beef stew", cfgA) == CacheKey("beef-stew", cfgA) {
		t.Error("different topics must produce different keys")
	}

	cfgB.Language = "German"
	if CacheKey("beef stew", cfgA) == CacheKey("beef stew", cfgB) {
		t.Error("different configurations must produce different keys")
	}
}
