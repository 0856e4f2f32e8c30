package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yusufk/chefmate/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "chefmate",
	Short: "AI cooking tutor in your terminal",
	Long:  "ChefMate is a conversational cooking tutor that builds a curriculum for any dish, teaches it module by module, and quizzes you on what you learned.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Local .env is a convenience for API keys; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CHEFMATE_DB env var)")

	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then CHEFMATE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p
	}
	return store.DefaultPath()
}
