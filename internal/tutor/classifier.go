package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yusufk/chefmate/internal/llm"
	"github.com/yusufk/chefmate/internal/prompts"
)

// Decision is the classifier's verdict for one utterance: which action
// to run and the input string to hand it.
type Decision struct {
	Action Action `json:"action"`
	Input  string `json:"input"`
}

// Classifier maps a free-form utterance to a Decision. Production uses
// the generation backend; tests use a deterministic stub.
type Classifier interface {
	Classify(ctx context.Context, utterance, history string) (Decision, error)
}

// decisionSchema constrains the classifier's output to a known action
// plus an input string.
var decisionSchema = &llm.Schema{
	Name:        "intent-decision",
	Description: "The single action to take for a user utterance, with its input string",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{
				"type": "string",
				"enum": []any{
					string(ActionAnswerQuestion),
					string(ActionGenerateCurriculum),
					string(ActionModuleContent),
					string(ActionEvaluation),
					string(ActionAnalyze),
					string(ActionChat),
				},
				"description": "The name of the single action to execute",
			},
			"input": map[string]any{
				"type":        "string",
				"description": "The input string for the chosen action, empty if the action takes none",
			},
		},
		"required":             []any{"action", "input"},
		"additionalProperties": false,
	},
}

// LLMClassifier delegates intent interpretation to the generation backend.
type LLMClassifier struct {
	provider llm.Provider
}

// NewLLMClassifier creates an LLMClassifier.
func NewLLMClassifier(provider llm.Provider) *LLMClassifier {
	return &LLMClassifier{provider: provider}
}

// Classify asks the model to pick exactly one action for the utterance.
func (c *LLMClassifier) Classify(ctx context.Context, utterance, history string) (Decision, error) {
	ctx = llm.WithPurpose(ctx, "intent")
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      prompts.AgentSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: classifierPrompt(utterance, history)}},
		Schema:      decisionSchema,
		MaxTokens:   256,
		Temperature: 0,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("intent classification: %w", err)
	}

	var d Decision
	if err := json.Unmarshal(resp.Content, &d); err != nil {
		return Decision{}, fmt.Errorf("intent classification: %w", &llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}
	if !d.Action.Valid() {
		return Decision{}, fmt.Errorf("intent classification: %w", &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("unknown action %q", d.Action)})
	}
	return d, nil
}

func classifierPrompt(utterance, history string) string {
	var b strings.Builder
	b.WriteString("Pick exactly one action for the user's message and extract its input string. Available actions:\n\n")
	for _, a := range Actions() {
		fmt.Fprintf(&b, "- %s: %s\n", a, actionDescriptions[a])
	}
	if history != "" {
		b.WriteString("\nConversation history:\n")
		b.WriteString(history)
	}
	b.WriteString("\nUser message: ")
	b.WriteString(utterance)
	return b.String()
}

// StubClassifier returns fixed decisions in FIFO order. Test double.
type StubClassifier struct {
	Decisions []Decision
	Err       error
}

// Classify pops the next fixed decision.
func (s *StubClassifier) Classify(_ context.Context, _, _ string) (Decision, error) {
	if s.Err != nil {
		return Decision{}, s.Err
	}
	if len(s.Decisions) == 0 {
		return Decision{Action: ActionChat}, nil
	}
	d := s.Decisions[0]
	s.Decisions = s.Decisions[1:]
	return d, nil
}
