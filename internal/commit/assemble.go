package commit

import (
	"fmt"
	"log/slog"

	"github.com/Yates-Labs/clog/internal/ignore"
	"github.com/Yates-Labs/clog/internal/repo"
)

// DefaultMaxDiffBytes is the per-file ceiling on filtered diff size. A diff
// over the ceiling is discarded and the file demoted to ineligible, but the
// file stays in the changelog listing.
const DefaultMaxDiffBytes = 50000

// Source is the repository surface the assembler consumes. *repo.Repository
// implements it.
type Source interface {
	Head() (repo.Meta, error)
	Commit(hash string) (repo.Meta, error)
	FileStats(hash string) ([]repo.FileStat, error)
	FileDiff(hash, path string) (string, error)
}

// Assembler builds one Record per commit event from repository data.
type Assembler struct {
	source Source
	rules  *ignore.RuleSet
	log    *slog.Logger

	// MaxDiffBytes bounds the filtered diff kept per file.
	MaxDiffBytes int
}

// NewAssembler creates an assembler over a repository source and ignore rules.
func NewAssembler(source Source, rules *ignore.RuleSet, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{
		source:       source,
		rules:        rules,
		log:          log,
		MaxDiffBytes: DefaultMaxDiffBytes,
	}
}

// Assemble builds the record for the commit identified by hash, or for HEAD
// when hash is empty. When summarizationEnabled is set, diffs are extracted
// for files that are not deleted and not ignored; per-file extraction failures
// are logged and skipped without aborting the rest. Assembly fails only when
// commit metadata is unavailable.
func (a *Assembler) Assemble(hash string, summarizationEnabled bool) (*Record, error) {
	var (
		meta repo.Meta
		err  error
	)
	if hash == "" {
		meta, err = a.source.Head()
	} else {
		meta, err = a.source.Commit(hash)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read commit metadata: %w", err)
	}

	stats, err := a.source.FileStats(meta.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read file stats for %s: %w", meta.Hash, err)
	}

	changes := make([]FileChange, 0, len(stats))
	for _, stat := range stats {
		change := FileChange{
			Path: stat.Path,
			Kind: Classify(stat.Insertions, stat.Deletions),
		}

		// Binary files never yield a useful diff, so extraction is skipped
		// up front and the file stays listed without one.
		if summarizationEnabled && change.Kind != Deleted && !stat.Binary && !a.rules.Ignored(stat.Path) {
			a.captureDiff(meta.Hash, &change)
		}

		changes = append(changes, change)
	}

	return &Record{
		Hash:        meta.Hash,
		Message:     meta.Message,
		AuthorName:  meta.AuthorName,
		AuthorEmail: meta.AuthorEmail,
		Timestamp:   meta.When,
		Changes:     changes,
	}, nil
}

// captureDiff extracts and filters the diff for one file, marking the change
// eligible when the result fits the size budget.
func (a *Assembler) captureDiff(hash string, change *FileChange) {
	raw, err := a.source.FileDiff(hash, change.Path)
	if err != nil {
		a.log.Warn("diff extraction failed, file listed without diff",
			slog.String("path", change.Path),
			slog.String("commit", hash),
			slog.Any("err", err))
		return
	}

	filtered := repo.FilterDiff(raw)
	if len(filtered) > a.MaxDiffBytes {
		a.log.Debug("diff exceeds size budget, excluded from summarization",
			slog.String("path", change.Path),
			slog.Int("size", len(filtered)),
			slog.Int("limit", a.MaxDiffBytes))
		return
	}

	change.Diff = filtered
	change.DiffSize = len(filtered)
	change.EligibleForSummary = true
}
