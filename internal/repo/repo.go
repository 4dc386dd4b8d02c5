// Package repo wraps a local Git repository behind the small surface the
// changelog pipeline needs: commit metadata lookup, per-file diff statistics,
// and unified diffs for single paths.
package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/format/diff"
	"github.com/go-git/go-git/v6/plumbing/object"
)

var (
	// ErrNoCommits is returned when the repository has no reachable commits.
	ErrNoCommits = errors.New("repository has no commits")

	// ErrNoDiff is returned when a commit+path pair produced no diff content.
	ErrNoDiff = errors.New("no diff content for path")
)

// Repository is a validated handle on a local Git repository.
type Repository struct {
	gr *git.Repository
}

// Open opens the Git repository at path.
func Open(path string) (*Repository, error) {
	gr, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", path, err)
	}
	return &Repository{gr: gr}, nil
}

// Meta holds the commit metadata the changelog entry header needs.
type Meta struct {
	Hash        string
	Message     string
	AuthorName  string
	AuthorEmail string
	When        time.Time
}

// Head returns metadata for the commit HEAD points at.
func (r *Repository) Head() (Meta, error) {
	ref, err := r.gr.Head()
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %w", ErrNoCommits, err)
	}
	return r.Commit(ref.Hash().String())
}

// Commit returns metadata for the commit identified by hash.
func (r *Repository) Commit(hash string) (Meta, error) {
	c, err := r.commitObject(hash)
	if err != nil {
		return Meta{}, err
	}
	return Meta{
		Hash:        c.Hash.String(),
		Message:     c.Message,
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
		When:        c.Author.When,
	}, nil
}

func (r *Repository) commitObject(hash string) (*object.Commit, error) {
	c, err := r.gr.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commit %s: %w", hash, err)
	}
	return c, nil
}

// FileStat describes one file touched by a commit.
type FileStat struct {
	Path       string
	Insertions int
	Deletions  int
	Binary     bool
}

// FileStats returns per-file insertion/deletion counts for a commit, in the
// order the underlying patch lists the files. The root commit is compared
// against the empty tree, so every file counts as inserted.
func (r *Repository) FileStats(hash string) ([]FileStat, error) {
	c, err := r.commitObject(hash)
	if err != nil {
		return nil, err
	}

	parent, err := c.Parents().Next()
	if err != nil {
		// Root commit: every tree file is an addition.
		tree, err := c.Tree()
		if err != nil {
			return nil, fmt.Errorf("failed to get tree: %w", err)
		}

		var stats []FileStat
		err = tree.Files().ForEach(func(file *object.File) error {
			isBinary, _ := file.IsBinary()
			lines := 0
			if !isBinary {
				content, _ := file.Contents()
				lines = countLines(content)
			}
			stats = append(stats, FileStat{
				Path:       file.Name,
				Insertions: lines,
				Binary:     isBinary,
			})
			return nil
		})
		return stats, err
	}

	patch, err := parent.Patch(c)
	if err != nil {
		return nil, fmt.Errorf("failed to get patch: %w", err)
	}

	var stats []FileStat
	for _, filePatch := range patch.FilePatches() {
		from, to := filePatch.Files()

		stat := FileStat{Binary: filePatch.IsBinary()}
		switch {
		case to != nil:
			stat.Path = to.Path()
		case from != nil:
			stat.Path = from.Path()
		default:
			continue
		}

		for _, chunk := range filePatch.Chunks() {
			switch chunk.Type() {
			case diff.Add:
				stat.Insertions += strings.Count(chunk.Content(), "\n")
			case diff.Delete:
				stat.Deletions += strings.Count(chunk.Content(), "\n")
			}
		}

		stats = append(stats, stat)
	}

	return stats, nil
}

// countLines counts the lines of a text blob. A trailing newline terminates
// the last line rather than starting a new one.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	lines := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		lines++
	}
	return lines
}

// FileDiff returns the unified diff between a commit's first parent and the
// commit, restricted to a single path. The root commit diffs against the
// empty tree. Returns ErrNoDiff when the path produced no diff content.
func (r *Repository) FileDiff(hash, path string) (string, error) {
	c, err := r.commitObject(hash)
	if err != nil {
		return "", err
	}

	tree, err := c.Tree()
	if err != nil {
		return "", fmt.Errorf("failed to get tree: %w", err)
	}

	var parentTree *object.Tree
	if parent, err := c.Parents().Next(); err == nil {
		parentTree, err = parent.Tree()
		if err != nil {
			return "", fmt.Errorf("failed to get parent tree: %w", err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return "", fmt.Errorf("failed to diff trees: %w", err)
	}

	for _, change := range changes {
		if change.To.Name != path && change.From.Name != path {
			continue
		}
		patch, err := change.Patch()
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrNoDiff, path, err)
		}
		text := patch.String()
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("%w: %s", ErrNoDiff, path)
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNoDiff, path)
}
