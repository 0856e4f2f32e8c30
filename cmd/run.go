package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yusufk/chefmate/internal/analysis"
	"github.com/yusufk/chefmate/internal/app"
	"github.com/yusufk/chefmate/internal/curriculum"
	"github.com/yusufk/chefmate/internal/flashcards"
	"github.com/yusufk/chefmate/internal/llm"
	"github.com/yusufk/chefmate/internal/prompts"
	"github.com/yusufk/chefmate/internal/session"
	"github.com/yusufk/chefmate/internal/store"
	"github.com/yusufk/chefmate/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := store.Open(resolveDBPath(cmd))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	llmCfg, err := llm.ResolveConfigFromEnv()
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}
	provider, err := llm.NewProvider(ctx, llmCfg, st)
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}
	images, err := llm.NewImageGenerator(llmCfg)
	if err != nil {
		return fmt.Errorf("initialize image backend: %w", err)
	}

	sess := session.New()
	catalog := prompts.NewCatalog(sess.Config)

	router := tutor.NewRouter(
		tutor.NewLLMClassifier(provider),
		provider,
		catalog,
		curriculum.NewStore(provider, catalog, st, curriculum.DefaultGenerateConfig()),
		flashcards.NewGenerator(provider, catalog),
		analysis.NewReporter(provider, catalog),
		images,
	)

	return app.Run(app.Deps{Router: router, Session: sess})
}
