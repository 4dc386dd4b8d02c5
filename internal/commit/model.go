// Package commit defines the structured record built for each commit and the
// assembler that produces it from repository data.
package commit

import (
	"strings"
	"time"
)

// ChangeKind classifies how a commit touched a file.
type ChangeKind int

const (
	Added ChangeKind = iota
	Modified
	Deleted
)

// String returns the changelog section name for the kind.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	default:
		return "Modified"
	}
}

// Symbol returns the display glyph for the kind.
func (k ChangeKind) Symbol() string {
	switch k {
	case Added:
		return "+"
	case Deleted:
		return "-"
	default:
		return "*"
	}
}

// Classify maps per-file insertion/deletion counts to a change kind. Pure and
// total: only-insertions is Added, only-deletions is Deleted, everything else
// (both, neither, binary files without line counts) is Modified.
func Classify(insertions, deletions int) ChangeKind {
	switch {
	case insertions > 0 && deletions == 0:
		return Added
	case insertions == 0 && deletions > 0:
		return Deleted
	default:
		return Modified
	}
}

// FileChange is one file touched by a commit.
type FileChange struct {
	Path string     `json:"path"`
	Kind ChangeKind `json:"kind"`

	// Diff holds the filtered diff text, set only when the file is eligible
	// for summarization and its diff fit the size budget. DiffSize is the
	// byte length of Diff.
	Diff     string `json:"diff,omitempty"`
	DiffSize int    `json:"diff_size,omitempty"`

	EligibleForSummary bool `json:"eligible_for_summary"`
}

// Symbol returns the display glyph for the change.
func (f FileChange) Symbol() string {
	return f.Kind.Symbol()
}

// Record is an immutable snapshot of one commit's metadata and classified
// file changes. Built once per commit event; consumers read it by reference
// and never mutate it.
type Record struct {
	Hash        string       `json:"hash"`
	Message     string       `json:"message"`
	AuthorName  string       `json:"author_name"`
	AuthorEmail string       `json:"author_email"`
	Timestamp   time.Time    `json:"timestamp"`
	Changes     []FileChange `json:"changes"`
}

// ShortHash returns the first 8 characters of the commit hash for display.
func (r *Record) ShortHash() string {
	if len(r.Hash) < 8 {
		return r.Hash
	}
	return r.Hash[:8]
}

// Subject returns the first line of the commit message.
func (r *Record) Subject() string {
	subject, _, _ := strings.Cut(r.Message, "\n")
	return strings.TrimSpace(subject)
}

// ByKind returns the changes of one kind, in listing order.
func (r *Record) ByKind(kind ChangeKind) []FileChange {
	var out []FileChange
	for _, c := range r.Changes {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// EligibleCount returns how many changes carry a summarization-eligible diff.
func (r *Record) EligibleCount() int {
	n := 0
	for _, c := range r.Changes {
		if c.EligibleForSummary {
			n++
		}
	}
	return n
}

// HasEligibleDiff reports whether at least one change has a non-empty diff
// eligible for summarization.
func (r *Record) HasEligibleDiff() bool {
	for _, c := range r.Changes {
		if c.EligibleForSummary && c.Diff != "" {
			return true
		}
	}
	return false
}
