package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alphabetz/alphabetz/internal/config"
	"github.com/alphabetz/alphabetz/internal/store"
)

// fileConfig is the loaded config file; set before any command runs.
var fileConfig config.File

var rootCmd = &cobra.Command{
	Use:   "alphabetz",
	Short: "English tense practice in the terminal",
	Long: `Alphabetz helps you learn and practice the twelve English tenses:
a tense reference, generated practice quizzes and a sentence converter.

An LLM provider is needed for quizzes and conversions. Set one of
GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY
(a .env file in the working directory is read), or point --gateway at a
running "alphabetz serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.DefaultPath()
		}
		f, err := config.Load(path)
		if err != nil {
			return err
		}
		fileConfig = f
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ALPHABETZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/alphabetz/config.yaml)")
	rootCmd.PersistentFlags().String("gateway", "", "Base URL of an alphabetz gateway to use instead of a local provider")
	rootCmd.Flags().Bool("no-splash", false, "Skip the start-up animation")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(tensesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ALPHABETZ_DB, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if fileConfig.DB != "" && os.Getenv("ALPHABETZ_DB") == "" {
		return fileConfig.DB, store.EnsureDir(fileConfig.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store for a command.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
