package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tuturo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tuturo",
	Short: "AI learning path generator",
	Long:  "Tuturo builds a ten-topic learning path for any subject and explains each topic at your level.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./tuturo.yaml or $HOME/.config/tuturo/tuturo.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TUTURO_DB env var)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: anthropic, openai, gemini, openrouter or mock")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then TUTURO_DB env var and the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
