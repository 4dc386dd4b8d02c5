package cmd

import (
	"context"
	"fmt"

	"github.com/Yates-Labs/clog/internal/changelog"
	"github.com/Yates-Labs/clog/internal/commit"
	"github.com/Yates-Labs/clog/internal/ignore"
	"github.com/Yates-Labs/clog/internal/pipeline"
	"github.com/Yates-Labs/clog/internal/repo"
	"github.com/Yates-Labs/clog/internal/summarize"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var commitHash string

// ruleCache holds one published ignore rule set per repository root;
// buildPipeline resolves rules through it so repeated builds reuse the
// compiled set until it is invalidated.
var ruleCache = ignore.NewCache()

var recordCmd = &cobra.Command{
	Use:   "record [repository]",
	Short: "Record one commit as a changelog entry",
	Long: `Record a commit from a local repository as a changelog entry.

By default the commit HEAD points at is recorded; pass --commit to record
a specific hash. The entry is appended to the configured changelog file.

Examples:
  clog record
  clog record /path/to/repo
  clog record --commit 3f2a91bc --summarize`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVar(&commitHash, "commit", "", "Commit hash to record (default: HEAD)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	p, err := buildPipeline(repoPath)
	if err != nil {
		return err
	}

	result, err := p.Run(context.Background(), commitHash)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

// buildPipeline assembles the pipeline from the configured settings: the
// repository handle, the ignore rules found under the repository root, the
// summarization client when enabled, and the changelog writer.
func buildPipeline(repoPath string) (*pipeline.Pipeline, error) {
	r, err := repo.Open(repoPath)
	if err != nil {
		return nil, err
	}

	rules := ruleCache.For(repoPath)
	assembler := commit.NewAssembler(r, rules, logger)
	writer := changelog.NewWriter(viper.GetBool("changelog.backup"), logger)

	cfg := pipeline.Config{
		SummarizeEnabled: viper.GetBool("summarize.enabled"),
		ChangelogPath:    viper.GetString("changelog.path"),
	}

	var client *summarize.Client
	if cfg.SummarizeEnabled {
		client, err = buildClient()
		if err != nil {
			return nil, err
		}
	}

	return pipeline.New(assembler, client, writer, cfg, logger), nil
}

func buildClient() (*summarize.Client, error) {
	scfg := summarize.DefaultConfig()
	scfg.Model = viper.GetString("summarize.model")
	scfg.MaxSentences = viper.GetInt("summarize.max_sentences")
	scfg.MaxPromptTokens = viper.GetInt("summarize.max_prompt_tokens")

	llm, err := summarize.NewOpenAILLM(scfg)
	if err != nil {
		return nil, err
	}
	return summarize.NewClient(llm, scfg), nil
}

func printResult(result *pipeline.Result) {
	var (
		headerColor  = lipgloss.Color("#F780FF") // Bright pink
		labelColor   = lipgloss.Color("#BD93F9") // Purple
		valueColor   = lipgloss.Color("#E9E9F4") // Light purple/white
		successColor = lipgloss.Color("#50FA7B") // Green
		warnColor    = lipgloss.Color("#FFB86C") // Orange
	)

	headerStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(labelColor).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(valueColor)
	successStyle := lipgloss.NewStyle().Foreground(successColor)
	warnStyle := lipgloss.NewStyle().Foreground(warnColor)

	short := result.Hash
	if len(short) > 8 {
		short = short[:8]
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("✓ Recorded %s — %s", short, result.Subject)))

	counts := fmt.Sprintf("Added: %d, Modified: %d, Deleted: %d",
		result.Added, result.Modified, result.Deleted)
	fmt.Println(labelStyle.Render("Changes") + valueStyle.Render(counts))
	fmt.Println(labelStyle.Render("Eligible") + valueStyle.Render(fmt.Sprintf("%d", result.Eligible)))

	switch {
	case result.Summarized:
		usage := fmt.Sprintf("summary generated (%d tokens)", result.Usage.Total)
		fmt.Println(labelStyle.Render("AI Summary") + successStyle.Render(usage))
	case result.FailureKind != "":
		failure := fmt.Sprintf("%s: %s", result.FailureKind, result.Advice)
		fmt.Println(labelStyle.Render("AI Summary") + warnStyle.Render(failure))
	}
}
