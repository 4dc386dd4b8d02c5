// Package changelog renders commit records into their fixed textual format
// and appends them to a persistent, append-only log file.
package changelog

import (
	"fmt"
	"strings"

	"github.com/Yates-Labs/clog/internal/commit"
)

// DocumentHeader opens a newly created changelog file.
const DocumentHeader = "# Changelog\n\nAll notable changes to this project are recorded in this file.\n\n---\n\n"

// separator closes every entry.
const separator = "---\n\n"

// noSummaryPlaceholder is written in the AI-summary section when no summary
// was produced.
const noSummaryPlaceholder = "_No summary available for this commit._"

// Render produces the textual changelog entry for a record: header block,
// Added/Modified/Deleted sections in that fixed order (empty sections
// omitted), an AI-summary section when summarization was requested, a
// statistics footer, and a separator.
func Render(rec *commit.Record, summary string, summaryRequested bool) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("## %s\n\n", rec.Subject()))
	b.WriteString(fmt.Sprintf("**Author:** %s <%s>\n", rec.AuthorName, rec.AuthorEmail))
	b.WriteString(fmt.Sprintf("**Date:** %s\n", rec.Timestamp.Local().Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("**Commit:** `%s`\n\n", rec.ShortHash()))

	for _, kind := range []commit.ChangeKind{commit.Added, commit.Modified, commit.Deleted} {
		changes := rec.ByKind(kind)
		if len(changes) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("### %s\n\n", kind))
		for _, c := range changes {
			b.WriteString(fmt.Sprintf("- %s %s\n", c.Symbol(), c.Path))
		}
		b.WriteString("\n")
	}

	if summaryRequested {
		b.WriteString("### AI Summary\n\n")
		if strings.TrimSpace(summary) != "" {
			b.WriteString(strings.TrimSpace(summary))
		} else {
			b.WriteString(noSummaryPlaceholder)
		}
		b.WriteString("\n\n")
	}

	added := len(rec.ByKind(commit.Added))
	modified := len(rec.ByKind(commit.Modified))
	deleted := len(rec.ByKind(commit.Deleted))
	b.WriteString(fmt.Sprintf("**Stats:** Added: %d, Modified: %d, Deleted: %d", added, modified, deleted))
	if summaryRequested {
		b.WriteString(fmt.Sprintf(", Summarized files: %d", rec.EligibleCount()))
	}
	b.WriteString("\n\n")

	b.WriteString(separator)
	return b.String()
}
