package commit

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Yates-Labs/clog/internal/ignore"
	"github.com/Yates-Labs/clog/internal/repo"
)

// fakeSource is an in-memory Source for assembler tests.
type fakeSource struct {
	meta    repo.Meta
	metaErr error
	stats   []repo.FileStat
	diffs   map[string]string
	diffErr map[string]error

	diffCalls []string
}

func (f *fakeSource) Head() (repo.Meta, error) {
	return f.meta, f.metaErr
}

func (f *fakeSource) Commit(hash string) (repo.Meta, error) {
	return f.meta, f.metaErr
}

func (f *fakeSource) FileStats(hash string) ([]repo.FileStat, error) {
	return f.stats, nil
}

func (f *fakeSource) FileDiff(hash, path string) (string, error) {
	f.diffCalls = append(f.diffCalls, path)
	if err, ok := f.diffErr[path]; ok {
		return "", err
	}
	return f.diffs[path], nil
}

func diffFor(path, added string) string {
	return "diff --git a/" + path + " b/" + path + "\n" +
		"--- a/" + path + "\n" +
		"+++ b/" + path + "\n" +
		"@@ -1 +1,2 @@\n" +
		" old\n" +
		"+" + added + "\n"
}

func testSource() *fakeSource {
	return &fakeSource{
		meta: repo.Meta{
			Hash:        "0123456789abcdef0123456789abcdef01234567",
			Message:     "Add login",
			AuthorName:  "Alice",
			AuthorEmail: "alice@example.com",
			When:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		stats: []repo.FileStat{
			{Path: "login.ts", Insertions: 10, Deletions: 0},
			{Path: "app.ts", Insertions: 3, Deletions: 1},
			{Path: "temp.js", Insertions: 0, Deletions: 5},
		},
		diffs: map[string]string{
			"login.ts": diffFor("login.ts", "login code"),
			"app.ts":   diffFor("app.ts", "app code"),
		},
	}
}

func TestAssembleClassifiesAndOrders(t *testing.T) {
	source := testSource()
	a := NewAssembler(source, ignore.Compile(nil), nil)

	rec, err := a.Assemble("", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.Changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(rec.Changes))
	}
	// Listing order follows the stats order, never re-sorted.
	wantOrder := []string{"login.ts", "app.ts", "temp.js"}
	wantKinds := []ChangeKind{Added, Modified, Deleted}
	for i, c := range rec.Changes {
		if c.Path != wantOrder[i] {
			t.Errorf("change %d path = %s, want %s", i, c.Path, wantOrder[i])
		}
		if c.Kind != wantKinds[i] {
			t.Errorf("change %d kind = %v, want %v", i, c.Kind, wantKinds[i])
		}
	}

	// Summarization disabled: no diff extraction at all.
	if len(source.diffCalls) != 0 {
		t.Errorf("expected no diff extraction, got calls for %v", source.diffCalls)
	}
	if rec.EligibleCount() != 0 {
		t.Errorf("expected no eligible files, got %d", rec.EligibleCount())
	}
}

func TestAssembleEligibility(t *testing.T) {
	source := testSource()
	// app.ts matches the project ignore rules; temp.js is deleted.
	rules := ignore.Compile([]string{"app.ts"})
	a := NewAssembler(source, rules, nil)

	rec, err := a.Assemble("", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.EligibleCount() != 1 {
		t.Fatalf("expected 1 eligible file, got %d", rec.EligibleCount())
	}
	login := rec.Changes[0]
	if !login.EligibleForSummary || login.Diff == "" {
		t.Error("expected login.ts to carry an eligible diff")
	}
	if login.DiffSize != len(login.Diff) {
		t.Errorf("diff size %d does not match diff length %d", login.DiffSize, len(login.Diff))
	}
	if !strings.Contains(login.Diff, "+login code") {
		t.Errorf("diff content missing: %q", login.Diff)
	}

	// Only login.ts was extracted: app.ts is ignored, temp.js is deleted.
	if len(source.diffCalls) != 1 || source.diffCalls[0] != "login.ts" {
		t.Errorf("unexpected diff extraction calls: %v", source.diffCalls)
	}
}

func TestAssembleSkipsBinaryFiles(t *testing.T) {
	source := testSource()
	source.stats = append(source.stats, repo.FileStat{Path: "logo.png", Binary: true})
	a := NewAssembler(source, ignore.Compile(nil), nil)

	rec, err := a.Assemble("", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The binary file stays listed as Modified but is never extracted.
	last := rec.Changes[len(rec.Changes)-1]
	if last.Path != "logo.png" || last.Kind != Modified {
		t.Fatalf("binary file missing from listing: %+v", last)
	}
	if last.EligibleForSummary || last.Diff != "" {
		t.Error("binary file must not carry a diff")
	}
	for _, path := range source.diffCalls {
		if path == "logo.png" {
			t.Error("diff extraction attempted for a binary file")
		}
	}
}

func TestAssembleExtractionFailureIsSkipped(t *testing.T) {
	source := testSource()
	source.diffErr = map[string]error{"login.ts": repo.ErrNoDiff}
	a := NewAssembler(source, ignore.Compile(nil), nil)

	rec, err := a.Assemble("", true)
	if err != nil {
		t.Fatalf("extraction failure must not abort assembly: %v", err)
	}

	// The file stays listed, just without a diff.
	if rec.Changes[0].Path != "login.ts" {
		t.Fatalf("login.ts missing from listing")
	}
	if rec.Changes[0].EligibleForSummary || rec.Changes[0].Diff != "" {
		t.Error("failed extraction must leave the file ineligible")
	}
	if rec.Changes[1].EligibleForSummary != true {
		t.Error("other files must still be extracted")
	}
}

func TestAssembleSizeBudgetDemotesEligibility(t *testing.T) {
	source := testSource()
	a := NewAssembler(source, ignore.Compile(nil), nil)
	a.MaxDiffBytes = 10

	rec, err := a.Assemble("", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range rec.Changes {
		if c.EligibleForSummary {
			t.Errorf("file %s eligible despite over-budget diff", c.Path)
		}
		if c.Diff != "" {
			t.Errorf("file %s kept an over-budget diff", c.Path)
		}
	}
	// Files remain in the listing regardless.
	if len(rec.Changes) != 3 {
		t.Errorf("expected 3 changes, got %d", len(rec.Changes))
	}
}

func TestAssembleNoMetadataFails(t *testing.T) {
	source := testSource()
	source.metaErr = repo.ErrNoCommits
	a := NewAssembler(source, ignore.Compile(nil), nil)

	_, err := a.Assemble("", false)
	if err == nil {
		t.Fatal("expected assembly to fail without commit metadata")
	}
	if !errors.Is(err, repo.ErrNoCommits) {
		t.Errorf("expected wrapped ErrNoCommits, got %v", err)
	}
}
