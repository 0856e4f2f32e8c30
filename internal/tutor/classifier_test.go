package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yusufk/chefmate/internal/llm"
)

func decisionResponse(action Action, input string) llm.MockResponse {
	return llm.JSONResponse(Decision{Action: action, Input: input})
}

func TestClassify_ReturnsDecision(t *testing.T) {
	mock := llm.NewMockProvider(decisionResponse(ActionGenerateCurriculum, "omelette"))
	c := NewLLMClassifier(mock)

	d, err := c.Classify(context.Background(), "teach me to make an omelette", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Action != ActionGenerateCurriculum {
		t.Errorf("action = %q, want generate_curriculum", d.Action)
	}
	if d.Input != "omelette" {
		t.Errorf("input = %q, want omelette", d.Input)
	}
}

func TestClassify_SendsCatalogAndSchema(t *testing.T) {
	mock := llm.NewMockProvider(decisionResponse(ActionChat, "hi"))
	c := NewLLMClassifier(mock)

	if _, err := c.Classify(context.Background(), "hi", "User: earlier line"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "intent-decision" {
		t.Fatal("classification request must carry the decision schema")
	}
	for _, a := range Actions() {
		if !strings.Contains(req.Messages[0].Content, string(a)) {
			t.Errorf("prompt missing action %q", a)
		}
	}
	if !strings.Contains(req.Messages[0].Content, "earlier line") {
		t.Error("prompt missing conversation history")
	}
}

func TestClassify_RejectsUnknownAction(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"action":"reboot","input":""}`)})
	c := NewLLMClassifier(mock)

	_, err := c.Classify(context.Background(), "whatever", "")
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestStubClassifier_FIFO(t *testing.T) {
	s := &StubClassifier{Decisions: []Decision{
		{Action: ActionAnalyze},
		{Action: ActionChat, Input: "x"},
	}}

	d1, _ := s.Classify(context.Background(), "", "")
	d2, _ := s.Classify(context.Background(), "", "")
	d3, _ := s.Classify(context.Background(), "", "")

	if d1.Action != ActionAnalyze || d2.Action != ActionChat {
		t.Errorf("decisions out of order: %v %v", d1, d2)
	}
	if d3.Action != ActionChat {
		t.Errorf("exhausted stub should default to chat, got %v", d3)
	}
}
