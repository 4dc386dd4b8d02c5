package summarize

import (
	"fmt"
	"strings"

	"github.com/Yates-Labs/clog/internal/commit"
)

// EstimateTokens approximates the token cost of a prompt using a fixed
// characters-per-token heuristic, rounded up.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// BuildPrompt assembles the summarization request for a commit record:
// instruction text bounded to maxSentences, the commit message, the full file
// listing (every change, eligible or not, for context), and the filtered diffs
// of eligible files only.
func BuildPrompt(rec *commit.Record, extraContext string, maxSentences int) string {
	var b strings.Builder

	b.WriteString("You are a technical writer producing changelog entries. ")
	b.WriteString(fmt.Sprintf("Summarize the following commit in at most %d sentences. ", maxSentences))
	b.WriteString("Describe what changed and why it matters; do not restate the file list ")
	b.WriteString("and do not invent details beyond the diffs shown.\n\n")

	b.WriteString("# Commit Message\n\n")
	b.WriteString(strings.TrimSpace(rec.Message))
	b.WriteString("\n\n")

	b.WriteString("# Changed Files\n\n")
	for _, c := range rec.Changes {
		b.WriteString(fmt.Sprintf("- %s %s (%s)\n", c.Symbol(), c.Path, c.Kind))
	}
	b.WriteString("\n")

	b.WriteString("# Diffs\n\n")
	for _, c := range rec.Changes {
		if !c.EligibleForSummary || c.Diff == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("## %s\n\n", c.Path))
		b.WriteString("```diff\n")
		b.WriteString(c.Diff)
		if !strings.HasSuffix(c.Diff, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString("```\n\n")
	}

	if extraContext != "" {
		b.WriteString("# Additional Context\n\n")
		b.WriteString(strings.TrimSpace(extraContext))
		b.WriteString("\n")
	}

	return b.String()
}
