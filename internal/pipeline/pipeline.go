// Package pipeline orchestrates the commit-to-changelog flow: assemble the
// commit record, optionally request a remote summary, and append the rendered
// entry. Summarization failures never prevent the changelog write.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Yates-Labs/clog/internal/changelog"
	"github.com/Yates-Labs/clog/internal/commit"
	"github.com/Yates-Labs/clog/internal/summarize"
)

// Config holds the pipeline settings supplied by the caller.
type Config struct {
	// SummarizeEnabled requests a remote summary for each commit.
	SummarizeEnabled bool

	// ChangelogPath is the target log file.
	ChangelogPath string
}

// Result describes one processed commit for display by the caller.
type Result struct {
	Hash     string `json:"hash"`
	Subject  string `json:"subject"`
	Added    int    `json:"added"`
	Modified int    `json:"modified"`
	Deleted  int    `json:"deleted"`
	Eligible int    `json:"eligible"`

	Summarized bool                 `json:"summarized"`
	Usage      summarize.TokenUsage `json:"usage"`

	// FailureKind names the summarization failure kind when summarization was
	// attempted and failed; empty otherwise.
	FailureKind string `json:"failure_kind,omitempty"`

	// Advice carries the suggested recovery action for FailureKind.
	Advice string `json:"advice,omitempty"`
}

// Pipeline wires the assembler, summarization client and changelog writer
// together. All dependencies are constructed by the caller; the pipeline
// keeps no hidden state.
type Pipeline struct {
	assembler *commit.Assembler
	client    *summarize.Client
	writer    *changelog.Writer
	config    Config
	log       *slog.Logger
}

// New creates a pipeline. client may be nil when summarization is disabled.
func New(assembler *commit.Assembler, client *summarize.Client, writer *changelog.Writer, config Config, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		assembler: assembler,
		client:    client,
		writer:    writer,
		config:    config,
		log:       log,
	}
}

// Run processes one commit identified by hash (HEAD when empty): assembles
// the record, requests a summary when enabled, and appends the entry. Only a
// failed assembly or a failed write fails the run; summarization failures are
// logged and the entry is written with a placeholder.
func (p *Pipeline) Run(ctx context.Context, hash string) (*Result, error) {
	summarizeRequested := p.config.SummarizeEnabled && p.client != nil

	rec, err := p.assembler.Assemble(hash, summarizeRequested)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble commit record: %w", err)
	}

	result := &Result{
		Hash:     rec.Hash,
		Subject:  rec.Subject(),
		Added:    len(rec.ByKind(commit.Added)),
		Modified: len(rec.ByKind(commit.Modified)),
		Deleted:  len(rec.ByKind(commit.Deleted)),
		Eligible: rec.EligibleCount(),
	}

	summaryText := ""
	if summarizeRequested {
		summary, err := p.client.Summarize(ctx, rec, "")
		switch {
		case err == nil:
			summaryText = summary.Text
			result.Summarized = true
			result.Usage = summary.Usage
		case errors.Is(err, summarize.ErrNothingToSummarize):
			// Not a failure: the entry gets the placeholder line.
			p.log.Debug("no eligible diffs to summarize", slog.String("commit", rec.ShortHash()))
		default:
			p.recordFailure(result, rec, err)
		}
	}

	if err := p.writer.Append(rec, summaryText, summarizeRequested, p.config.ChangelogPath); err != nil {
		return nil, err
	}

	return result, nil
}

// recordFailure logs a summarization failure and stores its kind and advice
// on the result. The pipeline continues to the changelog write regardless.
func (p *Pipeline) recordFailure(result *Result, rec *commit.Record, err error) {
	serr := summarize.ClassifyFailure(err)
	result.FailureKind = serr.Kind.String()
	result.Advice = serr.Kind.Advice()

	p.log.Warn("summarization failed, writing entry without summary",
		slog.String("commit", rec.ShortHash()),
		slog.String("kind", serr.Kind.String()),
		slog.String("advice", serr.Kind.Advice()),
		slog.Any("err", err))
}
