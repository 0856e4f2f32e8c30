// Package flashcards generates and parses short recall cards for a
// taught module.
package flashcards

import (
	"context"
	"fmt"
	"strings"

	"github.com/yusufk/chefmate/internal/llm"
	"github.com/yusufk/chefmate/internal/prompts"
)

// CardSeparator splits the generated output into individual cards.
const CardSeparator = "####"

// Split cuts raw generated output into trimmed, non-empty cards. Output
// with no separator yields a single card.
func Split(raw string) []string {
	parts := strings.Split(raw, CardSeparator)
	cards := make([]string, 0, len(parts))
	for _, p := range parts {
		if card := strings.TrimSpace(p); card != "" {
			cards = append(cards, card)
		}
	}
	return cards
}

// Generator produces flashcards for module content via the LLM provider.
type Generator struct {
	provider  llm.Provider
	catalog   *prompts.Catalog
	maxTokens int
}

// NewGenerator creates a flashcard Generator.
func NewGenerator(provider llm.Provider, catalog *prompts.Catalog) *Generator {
	return &Generator{provider: provider, catalog: catalog, maxTokens: 1024}
}

// Generate returns the flashcards for the given module content.
func (g *Generator) Generate(ctx context.Context, moduleContent string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "flashcards")
	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: g.catalog.Flashcards(moduleContent)},
		},
		MaxTokens:   g.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("flashcard generation: %w", err)
	}
	return Split(resp.Text()), nil
}
