package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "clog",
	Short: "clog - commit changelog generator",
	Long: `clog turns Git commits into structured changelog entries.

Each entry lists the commit's file changes grouped by kind and, when
summarization is enabled, a short AI-generated summary of the eligible
diffs. Entries are appended to the changelog file, never rewritten.`,
	SilenceUsage: true,
}

var logger *slog.Logger

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	flags := rootCmd.PersistentFlags()
	flags.Bool("summarize", false, "Request an AI summary for each commit")
	flags.String("model", "", "Model identifier for the summarizer")
	flags.String("changelog", "", "Target changelog file path")

	_ = viper.BindPFlag("summarize.enabled", flags.Lookup("summarize"))
	_ = viper.BindPFlag("summarize.model", flags.Lookup("model"))
	_ = viper.BindPFlag("changelog.path", flags.Lookup("changelog"))
}

// initConfig layers configuration: defaults, then .clog.yaml, then CLOG_*
// environment variables, then flags. The API key is read only from the
// OPENAI_API_KEY environment, never from the config file.
func initConfig() {
	viper.SetDefault("summarize.enabled", false)
	viper.SetDefault("summarize.model", "gpt-4o-mini")
	viper.SetDefault("summarize.max_sentences", 2)
	viper.SetDefault("summarize.max_prompt_tokens", 8000)
	viper.SetDefault("changelog.path", "CHANGELOG.md")
	viper.SetDefault("changelog.backup", true)

	viper.SetConfigName(".clog")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("CLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}
