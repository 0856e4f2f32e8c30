// Package analysis aggregates quiz results across modules and generates
// a narrative performance report.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yusufk/chefmate/internal/curriculum"
	"github.com/yusufk/chefmate/internal/llm"
	"github.com/yusufk/chefmate/internal/prompts"
	"github.com/yusufk/chefmate/internal/quiz"
)

// ErrNoQuizData indicates no quiz attempt has been recorded yet.
var ErrNoQuizData = errors.New("no quiz results found")

// Summary is the aggregated input to the narrative report.
type Summary struct {
	// Statistics lists per-module accuracy lines plus the overall total.
	Statistics string

	// WrongContent lists every incorrectly answered question, grouped by
	// module. Modules answered perfectly are absent here but still counted
	// in Statistics.
	WrongContent string

	// Correct and Total are the overall counts across attempted modules.
	Correct int
	Total   int
}

// Summarize builds the statistics and wrong-answer blocks from the
// recorded attempts. Returns ErrNoQuizData when nothing was attempted.
func Summarize(cur *curriculum.Curriculum, engine *quiz.Engine) (Summary, error) {
	if engine == nil || !engine.HasAttempts() {
		return Summary{}, ErrNoQuizData
	}

	var scores, wrong strings.Builder
	totalCorrect, totalQuestions := 0, 0

	for _, idx := range engine.AttemptedModules() {
		attempt, ok := engine.Attempt(idx)
		if !ok {
			continue
		}
		mod, ok := cur.Module(idx + 1)
		if !ok {
			continue
		}
		label := fmt.Sprintf("Module %d: %s", mod.Number, mod.Title)

		correct, total := attempt.Score()
		totalCorrect += correct
		totalQuestions += total

		if correct != total {
			wrong.WriteString(label)
			for _, r := range attempt.Records {
				if r.IsCorrect {
					continue
				}
				fmt.Fprintf(&wrong, "\nQuestion: %s\nUser Answer: %s\nCorrect Answer: %s\n", r.Question, r.UserAnswer, r.CorrectAnswer)
			}
		}

		fmt.Fprintf(&scores, "%s: User correct answer accuracy %d/%d\n", label, correct, total)
	}

	fmt.Fprintf(&scores, "\n\nTotal All modules user correct answer accuracy: %d/%d", totalCorrect, totalQuestions)

	return Summary{
		Statistics:   scores.String(),
		WrongContent: wrong.String(),
		Correct:      totalCorrect,
		Total:        totalQuestions,
	}, nil
}

// Reporter turns a Summary into a narrative report via the LLM provider.
type Reporter struct {
	provider llm.Provider
	catalog  *prompts.Catalog
}

// NewReporter creates a Reporter.
func NewReporter(provider llm.Provider, catalog *prompts.Catalog) *Reporter {
	return &Reporter{provider: provider, catalog: catalog}
}

// Report generates the narrative performance report. The model tends to
// sign reports with a "[Your Name]" placeholder; that is stripped.
func (r *Reporter) Report(ctx context.Context, s Summary) (string, error) {
	ctx = llm.WithPurpose(ctx, "analysis")
	resp, err := r.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: r.catalog.Analysis(s.Statistics, s.WrongContent)},
		},
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("analysis generation: %w", err)
	}
	return strings.ReplaceAll(resp.Text(), "[Your Name]", ""), nil
}
